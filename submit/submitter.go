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
// Package submit hands rendered invocations to the submission helper and
// manages the resulting Slurm jobs.
package submit

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/pkg/errors"

	"github.com/ocp-tools/launchexp/helper/executil"
	"github.com/ocp-tools/launchexp/helper/sshutil"
)

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// A Runner runs a shell command line and returns its combined output
type Runner interface {
	Run(ctx context.Context, cmdLine string) (string, error)
}

// A Submitter submits an invocation of the submission helper and returns the helper output
type Submitter interface {
	Submit(ctx context.Context, invocation string) (string, error)
}

// CommandLine returns the shell command line submitting invocation
func CommandLine(command, invocation string) string {
	return command + " " + invocation
}

// LocalSubmitter runs the submission helper on this host.
//
// The helper runs in its own process group, killed when the context is done.
type LocalSubmitter struct {
	Command string
	Dir     string
	Env     []string
}

// Submit implements Submitter
func (s *LocalSubmitter) Submit(ctx context.Context, invocation string) (string, error) {
	return s.Run(ctx, CommandLine(s.Command, invocation))
}

// Run implements Runner
func (s *LocalSubmitter) Run(ctx context.Context, cmdLine string) (string, error) {
	return executil.CombinedOutput(ctx, s.Dir, s.Env, cmdLine)
}

// SSHSubmitter runs the submission helper on the cluster login node
type SSHSubmitter struct {
	Client  sshutil.Client
	Command string
	// Dir is the remote working directory, the login shell directory is used if empty
	Dir string
	Env []string
}

// Submit implements Submitter
func (s *SSHSubmitter) Submit(ctx context.Context, invocation string) (string, error) {
	return s.Run(ctx, CommandLine(s.Command, invocation))
}

// Run implements Runner
func (s *SSHSubmitter) Run(ctx context.Context, cmdLine string) (string, error) {
	line, err := remoteCommandLine(s.Dir, s.Env, cmdLine)
	if err != nil {
		return "", err
	}
	return s.Client.RunCommand(ctx, line)
}

func remoteCommandLine(dir string, env []string, cmdLine string) (string, error) {
	var b strings.Builder
	if dir != "" {
		fmt.Fprintf(&b, "cd %s && ", shellquote.Join(dir))
	}
	for _, e := range env {
		kv := strings.SplitN(e, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if !envNamePattern.MatchString(kv[0]) {
			return "", errors.Errorf("invalid environment variable name %q", kv[0])
		}
		fmt.Fprintf(&b, "%s=%s ", kv[0], shellquote.Join(kv[1]))
	}
	b.WriteString(cmdLine)
	return b.String(), nil
}

// DryRunSubmitter records command lines instead of running them.
//
// Each submission answers a fake job line so that reports can be checked end to end.
type DryRunSubmitter struct {
	Command string
	// Out receives a copy of each command line, it may be nil
	Out io.Writer

	mu    sync.Mutex
	lines []string
}

// Submit implements Submitter
func (s *DryRunSubmitter) Submit(ctx context.Context, invocation string) (string, error) {
	n := s.record(CommandLine(s.Command, invocation))
	return fmt.Sprintf("%sdry-run-%d", jobLinePrefix, n), nil
}

// Run implements Runner
func (s *DryRunSubmitter) Run(ctx context.Context, cmdLine string) (string, error) {
	s.record(cmdLine)
	return "", nil
}

func (s *DryRunSubmitter) record(line string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	if s.Out != nil {
		fmt.Fprintf(s.Out, "[dry-run] %s\n", line)
	}
	return len(s.lines)
}

// Lines returns the recorded command lines in submission order
func (s *DryRunSubmitter) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// SortedLines returns the recorded command lines in lexical order
func (s *DryRunSubmitter) SortedLines() []string {
	lines := s.Lines()
	sort.Strings(lines)
	return lines
}
