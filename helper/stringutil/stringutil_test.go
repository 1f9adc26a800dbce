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
package stringutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetLastElement(t *testing.T) {
	t.Parallel()
	type args struct {
		str       string
		separator string
	}
	tests := []struct {
		name     string
		args     args
		expected string
	}{
		{name: "TestWithSeparator", args: args{str: "is2re/10k/sfarinet", separator: "/"}, expected: "sfarinet"},
		{name: "TestWithoutSeparator", args: args{str: "sfarinet", separator: "/"}, expected: "sfarinet"},
		{name: "TestLongSeparator", args: args{str: "a::b::c", separator: "::"}, expected: "c"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, GetLastElement(tt.args.str, tt.args.separator), tt.name)
	}
}

func TestTrimExtensions(t *testing.T) {
	t.Parallel()
	require.Equal(t, "is2re/sfarinet", TrimExtensions("is2re/sfarinet.yml", ".yml", ".yaml"))
	require.Equal(t, "is2re/sfarinet", TrimExtensions("is2re/sfarinet.yaml", ".yml", ".yaml"))
	require.Equal(t, "sfarinet", TrimExtensions("sfarinet", ".yml", ".yaml"))
}

func TestTimestamp(t *testing.T) {
	t.Parallel()
	require.Equal(t, "20221003_140502", Timestamp(time.Date(2022, 10, 3, 14, 5, 2, 0, time.UTC)))
}

func TestTimestampedName(t *testing.T) {
	t.Parallel()

	type args struct {
		prefix string
		suffix string
	}
	tests := []struct {
		name string
		args args
	}{
		{name: "TestWithoutSuffix", args: args{prefix: ".launchexp_", suffix: ""}},
		{name: "TestWithSuffix", args: args{prefix: ".launchexp_", suffix: ".yaml"}},
	}

	for _, tt := range tests {
		name := UniqueTimestampedName(tt.args.prefix, tt.args.suffix)
		require.Contains(t, name, tt.args.prefix)
		require.Contains(t, name, tt.args.suffix)
	}
}
