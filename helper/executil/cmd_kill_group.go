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
// +build !windows

package executil

import (
	"context"
	"os/exec"
	"syscall"

	"github.com/ocp-tools/launchexp/log"
)

// Cmd is an exec.Cmd that kills the whole process group of the
// submission helper when its context is done.
type Cmd struct {
	ctx context.Context
	*exec.Cmd
	waitDone chan struct{}
}

// Command returns the Cmd struct to execute the named program with
// the given arguments in its own process group.
func Command(ctx context.Context, name string, arg ...string) *Cmd {
	if ctx == nil {
		panic("nil Context")
	}
	log.Debugf("Preparing command %s %q", name, arg)
	cmd := &Cmd{ctx: ctx, Cmd: exec.Command(name, arg...), waitDone: make(chan struct{})}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}

// Run starts the command and waits for it to complete.
func (c *Cmd) Run() error {
	if err := c.Start(); err != nil {
		return err
	}
	return c.Wait()
}

// Start starts the command without waiting for it.
//
// If the context is done before Wait returns, SIGKILL is sent to the whole group.
func (c *Cmd) Start() error {
	select {
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
	}
	if err := c.Cmd.Start(); err != nil {
		return err
	}
	go func() {
		select {
		case <-c.ctx.Done():
			if err := syscall.Kill(-c.Process.Pid, syscall.SIGKILL); err != nil {
				log.Printf("[ERROR] failed to kill process group %d: %v", c.Process.Pid, err)
			}
		case <-c.waitDone:
		}
	}()
	return nil
}

// Wait waits for the command to exit. It must have been started by Start.
func (c *Cmd) Wait() error {
	defer close(c.waitDone)
	err := c.Cmd.Wait()
	if c.ctx.Err() != nil {
		return c.ctx.Err()
	}
	return err
}
