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
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ocp-tools/launchexp/helper/sizeutil"
)

var (
	gresPattern      = regexp.MustCompile(`^[A-Za-z0-9_]+(:[A-Za-z0-9_.-]+)*$`)
	partitionPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+(,[A-Za-z0-9_.-]+)*$`)
	timePattern      = regexp.MustCompile(`^[0-9]{1,4}:[0-5][0-9]:[0-5][0-9]$`)
	envPattern       = regexp.MustCompile(`^[A-Za-z0-9_.+/~-]+$`)
	argKeyPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)
)

func validateResource(key ResourceKey, value string) *Error {
	if value == "" {
		return newError(InvalidFormat, string(key), "empty value")
	}
	if err := validateUTF8(string(key), value); err != nil {
		return err
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return newError(InvalidFormat, string(key), "value %q contains whitespace", value)
	}
	switch key {
	case Gres:
		if !gresPattern.MatchString(value) {
			return newError(InvalidFormat, string(key), "expecting <name>[:<type>]:<count>, got %q", value)
		}
	case Partition:
		if !partitionPattern.MatchString(value) {
			return newError(InvalidFormat, string(key), "invalid partition name %q", value)
		}
	case Time:
		if !timePattern.MatchString(value) {
			return newError(InvalidFormat, string(key), "expecting a HH:MM:SS duration, got %q", value)
		}
	case CPUs:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return newError(InvalidFormat, string(key), "expecting a positive integer, got %q", value)
		}
	case Mem:
		size, err := sizeutil.ParseMemory(value)
		if err != nil || size == 0 {
			return newError(InvalidFormat, string(key), "expecting a memory size such as 32GB, got %q", value)
		}
	}
	return nil
}

// validateUTF8 rejects values that would be altered when written out as text
func validateUTF8(key, value string) *Error {
	if !utf8.ValidString(value) {
		return newError(InvalidFormat, key, "value %q is not valid UTF-8", value)
	}
	return nil
}

func validateArgValue(key, value string) *Error {
	if err := validateUTF8(key, value); err != nil {
		return err
	}
	if strings.IndexFunc(value, unicode.IsControl) >= 0 {
		return newError(InvalidFormat, key, "value contains control characters")
	}
	if key != NoteArg && strings.HasPrefix(value, "[") {
		if !balancedList(value) {
			return newError(UnbalancedQuoting, key, "list value %q is not terminated", value)
		}
		return nil
	}
	if q := leadingQuote(value); q != 0 {
		if len(value) < 2 || value[len(value)-1] != q {
			return newError(UnbalancedQuoting, key, "quoted value %s is not terminated", value)
		}
	}
	return nil
}

func leadingQuote(value string) byte {
	if value != "" && (value[0] == '\'' || value[0] == '"') {
		return value[0]
	}
	return 0
}

// balancedList checks that brackets and quotes of a list literal are closed and that the list ends the value.
// A backslash escapes the next character of a quoted item.
func balancedList(value string) bool {
	depth := 0
	var quote rune
	escaped := false
	for i, r := range value {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			quote = r
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return false
			}
			if depth == 0 && i != len(value)-1 {
				return false
			}
		}
	}
	return depth == 0 && quote == 0
}
