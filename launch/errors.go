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

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrorKind classifies launch request construction errors
type ErrorKind int

const (
	// UnknownResourceKey is returned for a key that is not part of the recognized resources set
	UnknownResourceKey ErrorKind = iota + 1
	// InvalidFormat is returned for malformed values (durations, numbers, sizes, keys)
	InvalidFormat
	// DuplicateKey is returned when the same key is given twice in one request
	DuplicateKey
	// UnbalancedQuoting is returned when a quoted or list value is not safely terminated
	UnbalancedQuoting
	// MissingKey is returned when a required entry is absent
	MissingKey
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownResourceKey:
		return "UnknownResourceKey"
	case InvalidFormat:
		return "InvalidFormat"
	case DuplicateKey:
		return "DuplicateKey"
	case UnbalancedQuoting:
		return "UnbalancedQuoting"
	case MissingKey:
		return "MissingKey"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// An Error describes why a launch request could not be built
type Error struct {
	Kind ErrorKind
	Key  string
	Msg  string
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind, e.Key, e.Msg)
}

func newError(kind ErrorKind, key, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Key: key, Msg: fmt.Sprintf(format, args...)}
}

// Errors flattens err into the list of launch errors it carries.
//
// Multi-errors are walked recursively and wrapped errors are unwrapped using errors.Cause.
func Errors(err error) []*Error {
	if err == nil {
		return nil
	}
	var res []*Error
	switch e := errors.Cause(err).(type) {
	case *multierror.Error:
		for _, inner := range e.Errors {
			res = append(res, Errors(inner)...)
		}
	case *Error:
		res = append(res, e)
	}
	return res
}

// HasKind returns true if err carries at least one launch error of the given kind
func HasKind(err error, kind ErrorKind) bool {
	for _, e := range Errors(err) {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
