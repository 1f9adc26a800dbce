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

package commands

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/ocp-tools/launchexp/config"
	"github.com/ocp-tools/launchexp/helper/sshutil"
	"github.com/ocp-tools/launchexp/log"
	"github.com/ocp-tools/launchexp/submit"
)

type submitRunner interface {
	submit.Submitter
	submit.Runner
}

func newSubmitter(cfg config.Configuration, dryRun bool, out io.Writer) (submitRunner, error) {
	if dryRun {
		return &submit.DryRunSubmitter{Command: cfg.SubmitCommand, Out: out}, nil
	}
	if cfg.SSH.Enabled() {
		client, err := sshutil.NewClient(cfg.SSH)
		if err != nil {
			return nil, err
		}
		log.Debugf("Submitting through %s@%s:%d", cfg.SSH.User, client.Host, client.Port)
		return &submit.SSHSubmitter{
			Client:  client,
			Command: cfg.SubmitCommand,
			Dir:     cfg.SSH.WorkingDirectory,
			Env:     cfg.SubmitEnviron(),
		}, nil
	}
	return &submit.LocalSubmitter{
		Command: cfg.SubmitCommand,
		Dir:     cfg.RootDir,
		Env:     cfg.SubmitEnviron(),
	}, nil
}

// interruptibleContext returns a context cancelled on the first SIGINT
func interruptibleContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			log.Debug("Interrupt received")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
