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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		env     []string
		cmdLine string
		want    string
		wantErr bool
	}{
		{"Stdout", nil, "echo Submitted batch job 42", "Submitted batch job 42\n", false},
		{"StderrIsKept", nil, "echo oops 1>&2", "oops\n", false},
		{"Env", []string{"SBATCH_ACCOUNT=rrg"}, "echo $SBATCH_ACCOUNT", "rrg\n", false},
		{"FailureKeepsOutput", nil, "echo partial; exit 3", "partial\n", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CombinedOutput(context.Background(), "", tt.env, tt.cmdLine)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCombinedOutputCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := CombinedOutput(ctx, "", nil, "sleep 30; echo never")
	require.Error(t, err)
	assert.True(t, time.Since(start) < 10*time.Second)
}

func TestOutput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	got, err := Output(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), filepath.Base(got))

	_, err = Output(context.Background(), dir, "sh", "-c", "echo bad 1>&2; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}
