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
package executil

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// CombinedOutput runs a command line through "sh -c" in dir with env appended
// to the current environment, and returns its interleaved stdout and stderr.
//
// The output is returned even when the command fails.
func CombinedOutput(ctx context.Context, dir string, env []string, cmdLine string) (string, error) {
	cmd := Command(ctx, "sh", "-c", cmdLine)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var b bytes.Buffer
	cmd.Stdout = &b
	cmd.Stderr = &b
	err := cmd.Run()
	if err != nil {
		return b.String(), errors.Wrapf(err, "command %q failed", cmdLine)
	}
	return b.String(), nil
}

// Output runs the named program and returns its trimmed standard output.
func Output(ctx context.Context, dir string, name string, arg ...string) (string, error) {
	cmd := Command(ctx, name, arg...)
	cmd.Dir = dir
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "%s failed: %s", name, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(out.String()), nil
}
