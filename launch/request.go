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

// Package launch builds, validates, renders and parses the invocation line handed to the
// job submission helper in order to queue one training run on the cluster scheduler.
//
// A rendered invocation looks like:
//
//	gres=gpu:1 partition=long time=24:00:00 cpus=4 mem=32GB py_args="--mode train --config-yml configs/x.yml --optim.lr_milestones='[1500, 2000, 3000]'" env=ocp
package launch

// A ResourceKey is a cluster allocation parameter of a job submission
type ResourceKey string

const (
	// Gres is the generic resources request (ie. gpu:1)
	Gres ResourceKey = "gres"
	// Partition is the scheduler partition
	Partition ResourceKey = "partition"
	// Time is the wall-clock time limit formatted as HH:MM:SS
	Time ResourceKey = "time"
	// CPUs is the number of CPUs per task
	CPUs ResourceKey = "cpus"
	// Mem is the memory request (ie. 32GB)
	Mem ResourceKey = "mem"
)

// ResourceKeys lists the recognized resource keys in rendering order
var ResourceKeys = []ResourceKey{Gres, Partition, Time, CPUs, Mem}

// Keys of the submission helper command line that are not resources
const (
	pyArgsKey  = "py_args"
	envKey     = "env"
	expNameKey = "exp_name"
)

// Distinguished training arguments
const (
	// ModeArg selects the run mode of the training process
	ModeArg = "mode"
	// ConfigArg selects the base configuration file of the training process
	ConfigArg = "config-yml"
	// NoteArg is a free-text annotation of the run
	NoteArg = "note"

	configArgAlias = "config_yml"
)

// IsResourceKey checks if key is one of the recognized resource keys
func IsResourceKey(key string) bool {
	for _, k := range ResourceKeys {
		if string(k) == key {
			return true
		}
	}
	return false
}

// An Override replaces a field of the external base configuration document for one run.
//
// Key is a dotted path (ie. optim.lr_initial). Value is the textual form of a scalar, a string or a list (ie. [1500, 2000, 3000]).
type Override struct {
	Key   string
	Value string
}

// A LaunchRequest is the full description of one job submission.
//
// It is meant to be created through a Builder or by Parse, rendered once and discarded.
type LaunchRequest struct {
	Resources      map[ResourceKey]string
	Environment    string
	Mode           string
	ConfigPath     string
	Overrides      []Override
	Note           string
	ExperimentName string
}

// Override returns the value of the override with the given key
func (r *LaunchRequest) Override(key string) (string, bool) {
	for _, o := range r.Overrides {
		if o.Key == key {
			return o.Value, true
		}
	}
	return "", false
}

// Validate checks the request against every construction rule
func (r *LaunchRequest) Validate() error {
	_, err := r.toBuilder().Build()
	return err
}

func (r *LaunchRequest) toBuilder() *Builder {
	b := NewBuilder()
	for _, k := range ResourceKeys {
		if v, ok := r.Resources[k]; ok {
			b.Resource(string(k), v)
		}
	}
	for _, k := range sortedUnknownKeys(r.Resources) {
		b.Resource(string(k), r.Resources[k])
	}
	b.Environment(r.Environment)
	if r.ExperimentName != "" {
		b.ExperimentName(r.ExperimentName)
	}
	b.Arg(ModeArg, r.Mode)
	b.Arg(ConfigArg, r.ConfigPath)
	for _, o := range r.Overrides {
		b.Arg(o.Key, o.Value)
	}
	if r.Note != "" {
		b.Arg(NoteArg, r.Note)
	}
	return b
}
