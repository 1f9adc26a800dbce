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
package sshutil

import (
	"encoding/pem"
	"io/ioutil"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// PrivateKey represent a parsed ssh Private Key.
// Content is always set but Path is populated only if the key content was read from a filesystem path (not provided directly)
type PrivateKey struct {
	Content []byte
	Path    string
}

// GetPrivateKey returns a parsed PrivateKey
//
// The argument is :
// - either a path to the private key file,
// - or the content or this private key file
func GetPrivateKey(pathOrContent string) (*PrivateKey, error) {
	k := &PrivateKey{Content: []byte(pathOrContent)}
	path, err := homedir.Expand(pathOrContent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read private key file, error in fs home expansion")
	}
	if _, err := os.Stat(path); err == nil {
		k.Path = path
		k.Content, err = ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read file")
		}
	}

	block, _ := pem.Decode(k.Content)
	if block == nil {
		return nil, errors.Errorf("Failed to read key %q: no key found", k.name())
	}
	if block.Headers["Proc-Type"] == "4,ENCRYPTED" {
		return nil, errors.Errorf(
			"Failed to read key %q: password protected keys are\n"+
				"not supported. Please decrypt the key prior to use.", k.name())
	}
	return k, nil
}

// ReadPrivateKey returns an authentication method relying on private/public key pairs
func ReadPrivateKey(pathOrContent string) (ssh.AuthMethod, error) {
	pk, err := GetPrivateKey(pathOrContent)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(pk.Content)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse key file %q", pk.name())
	}
	return ssh.PublicKeys(signer), nil
}

func (pk *PrivateKey) name() string {
	if pk.Path == "" {
		return "<private key content redacted>"
	}
	return pk.Path
}
