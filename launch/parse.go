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
	"strings"
)

// Parse reads back an invocation produced by Render.
//
// The request is rebuilt through a Builder so every construction rule applies to parsed input too.
func Parse(invocation string) (*LaunchRequest, error) {
	tokens, perr := splitInvocation(invocation)
	if perr != nil {
		return nil, perr
	}
	b := NewBuilder()
	pyArgsSeen := false
	for _, token := range tokens {
		idx := strings.Index(token, "=")
		if idx <= 0 {
			b.fail(newError(InvalidFormat, token, "expecting key=value"))
			continue
		}
		key, value := token[:idx], token[idx+1:]
		switch {
		case IsResourceKey(key):
			b.Resource(key, value)
		case key == envKey:
			b.Environment(value)
		case key == expNameKey:
			b.ExperimentName(value)
		case key == pyArgsKey:
			if pyArgsSeen {
				b.fail(newError(DuplicateKey, key, "training arguments given more than once"))
				continue
			}
			pyArgsSeen = true
			line, err := unquoteDouble(key, value)
			if err != nil {
				b.fail(err)
				continue
			}
			parseTrainingArgs(b, line)
		default:
			b.fail(newError(UnknownResourceKey, key, "unexpected key in invocation"))
		}
	}
	if !pyArgsSeen {
		b.fail(newError(MissingKey, pyArgsKey, "training arguments are required"))
	}
	return b.Build()
}

func parseTrainingArgs(b *Builder, line string) {
	tokens, perr := splitTrainingArgs(line)
	if perr != nil {
		b.fail(perr)
		return
	}
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if !strings.HasPrefix(token, "--") {
			b.fail(newError(InvalidFormat, token, "expecting a --key=value training argument"))
			continue
		}
		token = strings.TrimPrefix(token, "--")
		var key, value string
		if idx := strings.Index(token, "="); idx >= 0 {
			key, value = token[:idx], token[idx+1:]
		} else {
			key = token
			if key != ModeArg && key != ConfigArg && key != configArgAlias {
				b.fail(newError(InvalidFormat, key, "missing value"))
				continue
			}
			if i+1 >= len(tokens) {
				b.fail(newError(MissingKey, key, "missing value"))
				continue
			}
			i++
			value = tokens[i]
		}
		b.Arg(key, value)
	}
}
