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
package experiment

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"

	"github.com/ocp-tools/launchexp/launch"
	"github.com/ocp-tools/launchexp/log"
)

// Options controls the expansion of an experiment
type Options struct {
	// OrionDir is where search spaces are written, it is required for Orion experiments
	OrionDir string
	// Timestamp prefixes generated search space file names
	Timestamp string
}

// Run is a single job of an experiment
type Run struct {
	Index      int
	Job        yaml.MapSlice
	Params     yaml.MapSlice
	Request    *launch.LaunchRequest
	Invocation string
}

// SecondsToTimeString formats a number of seconds as HH:MM:SS
func SecondsToTimeString(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// Expand returns one rendered Run per experiment run.
//
// Errors of all runs are collected and returned together.
func (e *Experiment) Expand(opts Options) ([]Run, error) {
	runs := e.Runs
	if e.Orion == nil && len(runs) == 0 {
		return nil, errors.New("experiment has neither runs nor an Orion search space")
	}
	if e.Orion != nil {
		if e.Runs != nil {
			return nil, errors.New("Cannot use both Orion and runs")
		}
		var err error
		runs, err = e.orionRuns(opts)
		if err != nil {
			return nil, err
		}
	}

	var errs *multierror.Error
	res := make([]Run, 0, len(runs))
	for i, r := range runs {
		run, err := e.expandRun(i, r)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "run %d", i))
			continue
		}
		res = append(res, run)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Experiment) expandRun(index int, r yaml.MapSlice) (Run, error) {
	run := Run{Index: index}
	runJob, err := mapValue(r, jobKey)
	if err != nil {
		return run, err
	}
	run.Job, err = Merge(e.Job, runJob)
	if err != nil {
		return run, errors.Wrap(err, "failed to merge job")
	}

	params := e.Default
	if v, _ := lookup(r, noExpDefaultKey); cast.ToBool(v) {
		params = nil
	}
	run.Params, err = Merge(params, without(r, jobKey, noExpDefaultKey))
	if err != nil {
		return run, errors.Wrap(err, "failed to merge parameters")
	}
	if i := indexOf(run.Params, wandbTagsKey); i >= 0 {
		run.Params[i].Value = cast.ToString(run.Params[i].Value) + "," + e.Name
	} else {
		run.Params = append(run.Params, yaml.MapItem{Key: wandbTagsKey, Value: e.Name})
	}

	b := launch.NewBuilder()
	if e.Name != "" {
		b.ExperimentName(e.Name)
	}
	for _, item := range run.Job {
		key := cast.ToString(item.Key)
		if key == envKey {
			b.Environment(cast.ToString(item.Value))
			continue
		}
		value, err := jobValue(key, item.Value)
		if err != nil {
			return run, err
		}
		b.Resource(key, value)
	}
	for _, o := range Flatten(run.Params) {
		b.Arg(o.Key, o.Value)
	}
	run.Request, err = b.Build()
	if err != nil {
		return run, err
	}
	run.Invocation, err = run.Request.Render()
	return run, err
}

var secondsPattern = regexp.MustCompile(`^[0-9]+$`)

// jobValue converts a job entry to its resource value, time may be a number of seconds
func jobValue(key string, v interface{}) (string, error) {
	if key != string(launch.Time) {
		return cast.ToString(v), nil
	}
	if s, ok := v.(string); ok {
		if !secondsPattern.MatchString(s) {
			return s, nil
		}
		v, _ = strconv.Atoi(s)
	}
	seconds, err := cast.ToIntE(v)
	if err != nil {
		return "", errors.Errorf("invalid job time %v", v)
	}
	if seconds <= 0 {
		return "", errors.Errorf("job time must be a positive number of seconds, got %d", seconds)
	}
	return SecondsToTimeString(seconds), nil
}

// orionRuns writes the search space and returns the runs that share it
func (e *Experiment) orionRuns(opts Options) ([]yaml.MapSlice, error) {
	meta, err := mapValue(e.Orion, "_meta_")
	if err != nil {
		return nil, err
	}
	name, ok := lookup(meta, "unique_exp_name")
	if !ok || cast.ToString(name) == "" {
		return nil, errors.New("Must specify 'orion._meta_.unique_exp_name' in exp file")
	}
	n, ok := lookup(meta, "n_runs")
	if !ok {
		return nil, errors.New("Must specify 'orion._meta_.n_runs' in exp file")
	}
	nRuns, err := cast.ToIntE(n)
	if err != nil || nRuns <= 0 {
		return nil, errors.Errorf("'orion._meta_.n_runs' must be a positive integer, got %v", n)
	}
	if opts.OrionDir == "" {
		return nil, errors.New("no Orion directory configured")
	}

	searchPath := filepath.Join(opts.OrionDir, "search-spaces", fmt.Sprintf("%s-%s.yaml", opts.Timestamp, cast.ToString(name)))
	if _, err := os.Stat(searchPath); err == nil {
		return nil, errors.Errorf("search space %q already exists", searchPath)
	}
	content, err := yaml.Marshal(without(e.Orion, "_meta_"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode Orion search space")
	}
	if err := os.MkdirAll(filepath.Dir(searchPath), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create Orion search spaces directory")
	}
	if err := ioutil.WriteFile(searchPath, content, 0644); err != nil {
		return nil, errors.Wrapf(err, "failed to write search space %q", searchPath)
	}
	log.Debugf("Orion search space written to %q", searchPath)

	runs := make([]yaml.MapSlice, nRuns)
	for i := range runs {
		runs[i] = yaml.MapSlice{
			{Key: "orion_search_path", Value: searchPath},
			{Key: "orion_unique_exp_name", Value: cast.ToString(name)},
		}
	}
	return runs, nil
}

// Filter keeps the runs whose submission command line matches pattern.
//
// The command line is the submission command followed by the run invocation.
func Filter(runs []Run, command, pattern string) ([]Run, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid run filter %q", pattern)
	}
	res := make([]Run, 0, len(runs))
	for _, r := range runs {
		line := r.Invocation
		if command != "" {
			line = command + " " + line
		}
		if re.MatchString(line) {
			res = append(res, r)
		}
	}
	return res, nil
}
