// Copyright 2026 The launchexp Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package experiment turns experiment files into launch requests.
//
// An experiment file is a YAML document with a "job" map of Slurm resources and
// environment, a "default" map of training parameters, and either a "runs" list
// of per-run parameters or an "orion" search space:
//
//   job:
//     partition: long
//     time: 86400
//     env: ocp
//   default:
//     mode: train
//     config-yml: configs/is2re/10k/sfarinet/sfarinet.yml
//   runs:
//     - optim:
//         lr_initial: 0.001
//     - job:
//         gres: gpu:2
//       optim:
//         batch_size: 64
package experiment

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"

	"github.com/ocp-tools/launchexp/helper/stringutil"
)

const (
	jobKey          = "job"
	defaultKey      = "default"
	runsKey         = "runs"
	orionKey        = "orion"
	noExpDefaultKey = "_no_exp_default_"
	wandbTagsKey    = "wandb_tags"
	envKey          = "env"
)

// Experiment is a decoded experiment file
type Experiment struct {
	// Name is the file path relative to the experiments directory, without extension
	Name string
	Path string
	// Content is the raw file content, kept for reports
	Content []byte

	Job     yaml.MapSlice
	Default yaml.MapSlice
	Runs    []yaml.MapSlice
	Orion   yaml.MapSlice
}

// Find loads the experiment called name from dir.
//
// The name may contain sub-directories and a .yml or .yaml extension.
func Find(dir, name string) (*Experiment, error) {
	name = stringutil.TrimExtensions(name, ".yml", ".yaml")
	p := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(p); err != nil {
		return nil, errors.Errorf("Could not find experiment %q in %q", name, dir)
	}
	exp, err := Load(p)
	if err != nil {
		return nil, err
	}
	exp.Name = filepath.ToSlash(name)
	return exp, nil
}

// Load reads and decodes the experiment file at path
func Load(path string) (*Experiment, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read experiment file %q", path)
	}
	exp, err := decode(content)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid experiment file %q", path)
	}
	exp.Path = path
	exp.Name = stringutil.TrimExtensions(filepath.Base(path), ".yml", ".yaml")
	return exp, nil
}

func decode(content []byte) (*Experiment, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode YAML")
	}
	exp := &Experiment{Content: content}
	var err error
	if exp.Job, err = mapValue(doc, jobKey); err != nil {
		return nil, err
	}
	if exp.Default, err = mapValue(doc, defaultKey); err != nil {
		return nil, err
	}
	if exp.Orion, err = mapValue(doc, orionKey); err != nil {
		return nil, err
	}
	runs, ok := lookup(doc, runsKey)
	if !ok {
		return exp, nil
	}
	// a present runs key conflicts with orion, even when empty
	exp.Runs = []yaml.MapSlice{}
	if runs == nil {
		return exp, nil
	}
	list, ok := runs.([]interface{})
	if !ok {
		return nil, errors.Errorf("%q must be a list, got %T", runsKey, runs)
	}
	for i, r := range list {
		switch run := r.(type) {
		case nil:
			exp.Runs = append(exp.Runs, yaml.MapSlice{})
		case yaml.MapSlice:
			exp.Runs = append(exp.Runs, run)
		default:
			return nil, errors.Errorf("run %d must be a map, got %T", i, r)
		}
	}
	return exp, nil
}

func mapValue(m yaml.MapSlice, key string) (yaml.MapSlice, error) {
	v, ok := lookup(m, key)
	if !ok || v == nil {
		return nil, nil
	}
	res, ok := v.(yaml.MapSlice)
	if !ok {
		return nil, errors.Errorf("%q must be a map, got %T", key, v)
	}
	return res, nil
}

func lookup(m yaml.MapSlice, key string) (interface{}, bool) {
	if i := indexOf(m, key); i >= 0 {
		return m[i].Value, true
	}
	return nil, false
}

func indexOf(m yaml.MapSlice, key string) int {
	for i, item := range m {
		if cast.ToString(item.Key) == key {
			return i
		}
	}
	return -1
}

func without(m yaml.MapSlice, keys ...string) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(m))
	for _, item := range m {
		skip := false
		for _, k := range keys {
			if cast.ToString(item.Key) == k {
				skip = true
				break
			}
		}
		if !skip {
			res = append(res, item)
		}
	}
	return res
}
