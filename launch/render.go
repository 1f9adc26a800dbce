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
	"fmt"
	"strings"
)

// TrainingArgs renders the command line of the training process.
//
// The request is expected to be valid, use Render to get a validated invocation.
func (r *LaunchRequest) TrainingArgs() string {
	parts := []string{
		"--" + ModeArg, quoteArg(r.Mode, false),
		"--" + ConfigArg, quoteArg(r.ConfigPath, false),
	}
	for _, o := range r.Overrides {
		parts = append(parts, fmt.Sprintf("--%s=%s", o.Key, quoteArg(o.Value, false)))
	}
	if r.Note != "" {
		parts = append(parts, fmt.Sprintf("--%s=%s", NoteArg, quoteArg(r.Note, true)))
	}
	return strings.Join(parts, " ")
}

// Render validates the request and renders the submission helper invocation
func (r *LaunchRequest) Render() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(ResourceKeys)+3)
	for _, k := range ResourceKeys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.Resources[k]))
	}
	parts = append(parts, fmt.Sprintf("%s=\"%s\"", pyArgsKey, escapeDoubleQuoted(r.TrainingArgs())))
	parts = append(parts, fmt.Sprintf("%s=%s", envKey, r.Environment))
	if r.ExperimentName != "" {
		parts = append(parts, fmt.Sprintf("%s=%s", expNameKey, r.ExperimentName))
	}
	return strings.Join(parts, " "), nil
}
