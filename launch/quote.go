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
	"unicode"

	shellquote "github.com/kballard/go-shellquote"
)

// isBare checks if a training argument value can be rendered without quotes
func isBare(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("_-./:+@%", r):
		default:
			return false
		}
	}
	return true
}

// quoteArg renders a training argument value, single-quoting it when needed.
// A ' inside the value is written as '\'' so the word stays valid for a POSIX shell.
func quoteArg(value string, force bool) string {
	if !force && isBare(value) {
		return value
	}
	return "'" + strings.Replace(value, "'", `'\''`, -1) + "'"
}

// escapeDoubleQuoted escapes s so that it can be placed between double quotes of a POSIX shell
func escapeDoubleQuoted(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\"\\$`", r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// splitInvocation splits an invocation on whitespace found outside double quotes.
//
// Quotes and escapes are kept in the returned tokens.
func splitInvocation(s string) ([]string, *Error) {
	return split(s, '"', pyArgsKey)
}

// splitTrainingArgs splits a training arguments line into words the way a POSIX shell does.
//
// Quotes and escapes are resolved in the returned words.
func splitTrainingArgs(s string) ([]string, *Error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, newError(UnbalancedQuoting, pyArgsKey, "%v", err)
	}
	return words, nil
}

func split(s string, quote rune, key string) ([]string, *Error) {
	var tokens []string
	var current strings.Builder
	inQuote, escaped, inToken := false, false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == quote:
			inQuote = !inQuote
		case !inQuote && unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
			continue
		}
		current.WriteRune(r)
		inToken = true
	}
	if inQuote || escaped {
		return nil, newError(UnbalancedQuoting, key, "unterminated %c quote", quote)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// unquoteDouble strips the double quotes of a token value and resolves its escapes
func unquoteDouble(key, raw string) (string, *Error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", newError(UnbalancedQuoting, key, "expecting a double quoted value")
	}
	inner := raw[1 : len(raw)-1]
	var sb strings.Builder
	escaped := false
	for _, r := range inner {
		switch {
		case escaped:
			if !strings.ContainsRune("\"\\$`", r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return "", newError(UnbalancedQuoting, key, "unescaped double quote inside value")
		default:
			sb.WriteRune(r)
		}
	}
	if escaped {
		return "", newError(UnbalancedQuoting, key, "dangling escape at end of value")
	}
	return sb.String(), nil
}
