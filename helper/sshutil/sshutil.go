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
// Package sshutil runs commands on the cluster login node.
package sshutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/ocp-tools/launchexp/config"
	"github.com/ocp-tools/launchexp/log"
)

// DefaultPrivateKeyFilePath is the private key used when none is configured
const DefaultPrivateKeyFilePath = "~/.ssh/id_rsa"

const knownHostsFilePath = "~/.ssh/known_hosts"

const dialTimeout = 30 * time.Second

// Client is interface allowing running command
type Client interface {
	RunCommand(ctx context.Context, cmd string) (string, error)
}

// SSHClient is a client SSH
type SSHClient struct {
	Config *ssh.ClientConfig
	Host   string
	Port   int
}

// NewClient returns an SSHClient for the configured login node
func NewClient(cfg config.SSHConfiguration) (*SSHClient, error) {
	if !cfg.Enabled() {
		return nil, errors.New("no SSH host configured")
	}
	if cfg.User == "" {
		return nil, errors.Errorf("no SSH user configured for host %q", cfg.Host)
	}
	pk := cfg.PrivateKey
	if pk == "" {
		pk = DefaultPrivateKeyFilePath
	}
	auth, err := ReadPrivateKey(pk)
	if err != nil {
		return nil, err
	}
	hostKeyCallback, err := hostKeyCallback()
	if err != nil {
		return nil, err
	}
	port := cfg.Port
	if port == 0 {
		port = config.DefaultSSHPort
	}
	return &SSHClient{
		Config: &ssh.ClientConfig{
			User:            cfg.User,
			Auth:            []ssh.AuthMethod{auth},
			HostKeyCallback: hostKeyCallback,
			Timeout:         dialTimeout,
		},
		Host: cfg.Host,
		Port: port,
	}, nil
}

func hostKeyCallback() (ssh.HostKeyCallback, error) {
	p, err := homedir.Expand(knownHostsFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to expand known hosts path")
	}
	if _, err := os.Stat(p); err != nil {
		log.Warnf("No known hosts file found at %q, host keys will not be verified", p)
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read known hosts file %q", p)
	}
	return cb, nil
}

// RunCommand runs cmd in a new session and returns its combined stdout and stderr.
//
// When ctx is done the remote process is sent SIGKILL and the session is closed.
func (client *SSHClient) RunCommand(ctx context.Context, cmd string) (string, error) {
	conn, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", client.Host, client.Port), client.Config)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to open SSH connection to %s:%d", client.Host, client.Port)
	}
	defer conn.Close()
	session, err := conn.NewSession()
	if err != nil {
		return "", errors.Wrap(err, "Failed to create session")
	}
	defer session.Close()

	var b bytes.Buffer
	session.Stderr = &b
	session.Stdout = &b

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Debug("[SSHSession] Cancellation has been sent: a sigkill signal is sent to remote process")
			session.Signal(ssh.SIGKILL)
			session.Close()
		case <-done:
		}
	}()

	log.Debugf("[SSHSession] %q", cmd)
	err = session.Run(cmd)
	if ctx.Err() != nil {
		return b.String(), ctx.Err()
	}
	return b.String(), err
}
