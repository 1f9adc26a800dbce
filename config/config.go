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

// Package config defines configuration structures
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// DefaultSubmitCommand is the default command line of the job submission helper
const DefaultSubmitCommand = "python sbatch.py"

// DefaultExperimentsDir is the default directory, relative to the root directory, where experiment files are looked up
const DefaultExperimentsDir = "configs/exps"

// DefaultOutputsDir is the default directory, relative to the root directory, where launch reports are written
const DefaultOutputsDir = "data/exp_outputs"

// DefaultOrionDir is the default directory, relative to the root directory, where Orion search spaces are written
const DefaultOrionDir = "data/orion"

// DefaultSSHPort is the default port of the cluster login node
const DefaultSSHPort = 22

// DefaultServiceName is the default service name used for metrics
const DefaultServiceName = "launchexp"

// Configuration holds config information filled by Cobra and Viper (see commands package for more information)
type Configuration struct {
	RootDir        string
	ExperimentsDir string
	OutputsDir     string
	OrionDir       string
	SubmitCommand  string
	SubmitEnv      DynamicMap
	SSH            SSHConfiguration
	Telemetry      Telemetry
}

// SSHConfiguration holds the connection settings of the cluster login node used for remote submissions
type SSHConfiguration struct {
	Host       string
	Port       int
	User       string
	PrivateKey string

	// WorkingDirectory is the remote directory the submission helper runs from
	WorkingDirectory string
}

// Enabled returns true if submissions should go through the login node
func (s SSHConfiguration) Enabled() bool {
	return s.Host != ""
}

// Telemetry holds the configuration for the telemetry service
type Telemetry struct {
	StatsdAddress   string
	ServiceName     string
	DisableHostName bool
}

// ResolvePath returns p unchanged if it is absolute, joined to the root directory otherwise
func (c Configuration) ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RootDir, p)
}

// SubmitEnviron returns the extra environment of the submission helper as sorted KEY=VALUE entries.
//
// List values are joined with commas.
func (c Configuration) SubmitEnviron() []string {
	keys := c.SubmitEnv.Keys()
	res := make([]string, 0, len(keys))
	for _, k := range keys {
		value := c.SubmitEnv.GetString(k)
		if _, ok := c.SubmitEnv[k].([]interface{}); ok {
			value = strings.Join(c.SubmitEnv.GetStringSlice(k), ",")
		}
		res = append(res, fmt.Sprintf("%s=%s", strings.ToUpper(k), value))
	}
	return res
}

// DynamicMap allows to store configuration parameters that are not known in advance.
//
// It has methods to automatically cast data to the desired type.
type DynamicMap map[string]interface{}

// Keys returns the sorted keys of the map
func (dm DynamicMap) Keys() []string {
	keys := make([]string, 0, len(dm))
	for k := range dm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the value of the given key casted into a string.
// An empty string is returned if not found.
func (dm DynamicMap) GetString(name string) string {
	return cast.ToString(dm[name])
}

// GetStringSlice returns the value of the given key casted into a slice of string.
// If the corresponding raw value is a string, it is  splited on comas.
// A nil or empty slice is returned if not found.
func (dm DynamicMap) GetStringSlice(name string) []string {
	val := dm[name]
	switch v := val.(type) {
	case string:
		return strings.Split(v, ",")
	default:
		return cast.ToStringSlice(dm[name])
	}
}
