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

package launch

import (
	"sort"

	"github.com/hashicorp/go-multierror"
)

// A Builder assembles a LaunchRequest and validates every entry as it is added.
//
// Errors are accumulated and returned all together by Build so callers can fix their input in one go.
type Builder struct {
	req       LaunchRequest
	resources map[string]bool
	args      map[string]bool
	envSet    bool
	expSet    bool
	errs      *multierror.Error
}

// NewBuilder returns an empty Builder
func NewBuilder() *Builder {
	return &Builder{
		req:       LaunchRequest{Resources: make(map[ResourceKey]string)},
		resources: make(map[string]bool),
		args:      make(map[string]bool),
	}
}

func (b *Builder) fail(err *Error) {
	b.errs = multierror.Append(b.errs, err)
}

// Resource adds a resource request entry
func (b *Builder) Resource(key, value string) *Builder {
	if !IsResourceKey(key) {
		b.fail(newError(UnknownResourceKey, key, "recognized resource keys are gres, partition, time, cpus and mem"))
		return b
	}
	if b.resources[key] {
		b.fail(newError(DuplicateKey, key, "resource given more than once"))
		return b
	}
	b.resources[key] = true
	if err := validateResource(ResourceKey(key), value); err != nil {
		b.fail(err)
		return b
	}
	b.req.Resources[ResourceKey(key)] = value
	return b
}

// Resources adds all entries of the given mapping.
//
// Recognized keys are added in rendering order, unknown keys follow in lexical order.
func (b *Builder) Resources(resources map[string]string) *Builder {
	for _, k := range ResourceKeys {
		if v, ok := resources[string(k)]; ok {
			b.Resource(string(k), v)
		}
	}
	var unknown []string
	for k := range resources {
		if !IsResourceKey(k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		b.Resource(k, resources[k])
	}
	return b
}

// Environment sets the name of the runtime environment activated before the job starts
func (b *Builder) Environment(name string) *Builder {
	if b.envSet {
		b.fail(newError(DuplicateKey, envKey, "environment given more than once"))
		return b
	}
	b.envSet = true
	if name == "" {
		return b
	}
	if err := validateUTF8(envKey, name); err != nil {
		b.fail(err)
		return b
	}
	if !envPattern.MatchString(name) {
		b.fail(newError(InvalidFormat, envKey, "invalid environment name %q", name))
		return b
	}
	b.req.Environment = name
	return b
}

// ExperimentName sets the name of the experiment the job belongs to
func (b *Builder) ExperimentName(name string) *Builder {
	if b.expSet {
		b.fail(newError(DuplicateKey, expNameKey, "experiment name given more than once"))
		return b
	}
	b.expSet = true
	if err := validateUTF8(expNameKey, name); err != nil {
		b.fail(err)
		return b
	}
	if !envPattern.MatchString(name) {
		b.fail(newError(InvalidFormat, expNameKey, "invalid experiment name %q", name))
		return b
	}
	b.req.ExperimentName = name
	return b
}

// Arg adds a training argument.
//
// The mode, config-yml (or config_yml) and note keys fill the distinguished fields of the request,
// any other key is an override of the base configuration and must be a dotted path.
func (b *Builder) Arg(key, value string) *Builder {
	canonical := key
	if key == configArgAlias {
		canonical = ConfigArg
	}
	if b.args[canonical] {
		b.fail(newError(DuplicateKey, key, "training argument given more than once"))
		return b
	}
	b.args[canonical] = true

	switch canonical {
	case ModeArg, ConfigArg:
		if value == "" {
			return b
		}
	case NoteArg:
		if err := validateArgValue(canonical, value); err != nil {
			b.fail(err)
			return b
		}
		b.req.Note = value
		return b
	default:
		if !argKeyPattern.MatchString(key) {
			b.fail(newError(InvalidFormat, key, "override keys are dotted paths of [A-Za-z0-9_-] segments"))
			return b
		}
	}

	if err := validateArgValue(canonical, value); err != nil {
		b.fail(err)
		return b
	}
	switch canonical {
	case ModeArg:
		b.req.Mode = value
	case ConfigArg:
		b.req.ConfigPath = value
	default:
		b.req.Overrides = append(b.req.Overrides, Override{Key: key, Value: value})
	}
	return b
}

// Build returns the assembled request or every error found while assembling it
func (b *Builder) Build() (*LaunchRequest, error) {
	var errs *multierror.Error
	if b.errs != nil {
		errs = multierror.Append(errs, b.errs.Errors...)
	}
	for _, k := range ResourceKeys {
		if !b.resources[string(k)] {
			errs = multierror.Append(errs, newError(MissingKey, string(k), "resource is required"))
		}
	}
	if b.req.Environment == "" && !hasErrorFor(b.errs, envKey) {
		errs = multierror.Append(errs, newError(MissingKey, envKey, "environment is required"))
	}
	if b.req.Mode == "" && !hasErrorFor(b.errs, ModeArg) {
		errs = multierror.Append(errs, newError(MissingKey, ModeArg, "training mode is required"))
	}
	if b.req.ConfigPath == "" && !hasErrorFor(b.errs, ConfigArg) && !hasErrorFor(b.errs, configArgAlias) {
		errs = multierror.Append(errs, newError(MissingKey, ConfigArg, "configuration file path is required"))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	req := b.req
	req.Resources = make(map[ResourceKey]string, len(b.req.Resources))
	for k, v := range b.req.Resources {
		req.Resources[k] = v
	}
	req.Overrides = append([]Override(nil), b.req.Overrides...)
	return &req, nil
}

func hasErrorFor(errs *multierror.Error, key string) bool {
	for _, e := range Errors(errs.ErrorOrNil()) {
		if e.Key == key {
			return true
		}
	}
	return false
}

func sortedUnknownKeys(resources map[ResourceKey]string) []ResourceKey {
	var res []ResourceKey
	for k := range resources {
		if !IsResourceKey(string(k)) {
			res = append(res, k)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}
