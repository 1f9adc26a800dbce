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
package experiment

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilStrings(t *testing.T) {
	t.Parallel()
	jobs := []string{"1001", "1002"}
	assert.Equal(t, "All jobs launched: 1001, 1002\n"+
		"Cancel experiment: scancel 1001 1002\n"+
		"WandB query for dashboard: (1001|1002)", UtilStrings(jobs, false))
	assert.Equal(t, "# All jobs launched: 1001, 1002\n"+
		"# Cancel experiment: scancel 1001 1002\n"+
		"# WandB query for dashboard: (1001|1002)", UtilStrings(jobs, true))
}

func TestReportPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join("/out", "is2re", "sfarinet", "sfarinet_20221003_140502.txt"),
		ReportPath("/out", "is2re/sfarinet", "20221003_140502"))
	assert.Equal(t, filepath.Join("/out", "baseline", "baseline_ts.txt"), ReportPath("/out", "baseline", "ts"))
}

func TestWriteReport(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "is2re", "sfarinet", "sfarinet_ts.txt")
	r := &Report{
		Command:  "launchexp launch is2re/sfarinet",
		Commit:   "abc123",
		Config:   []byte("job:\n  env: ocp\n"),
		Commands: []string{"python sbatch.py a", "python sbatch.py b"},
		Outputs:  []string{"Submitted batch job 1001", "Submitted batch job 1002"},
		JobIDs:   []string{"1001", "1002"},
	}
	require.NoError(t, WriteReport(p, r))
	content, err := ioutil.ReadFile(p)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, "<><><> Experiment command: $ launchexp launch is2re/sfarinet\n<><><> Experiment commit: abc123\n"))
	assert.Contains(t, text, "-----job:\n  env: ocp\n-----")
	assert.Contains(t, text, " • python sbatch.py a\n\n  • python sbatch.py b")
	assert.Contains(t, text, "Submitted batch job 1001"+reportSeparator+"Submitted batch job 1002")
	assert.True(t, strings.HasSuffix(text, reportSeparator+"All jobs launched: 1001 1002"))

	files, err := ioutil.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestWriteAnnotatedYAML(t *testing.T) {
	t.Parallel()
	exp := `job:
  env: ocp
default:
  optim:
    lr_milestones:
      - 1500
      - 2000
runs:
  - {}
  # second run
  - optim:
      lr_milestones:
        - 10
        - 20
  - note: last
orion_comment: none
`
	reportPath := filepath.Join(t.TempDir(), "sfarinet_ts.txt")
	out, err := WriteAnnotatedYAML([]byte(exp), reportPath, []string{"1001", "1002", "1003"})
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(reportPath, ".txt")+".yaml", out)

	content, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	want := `job:
  env: ocp
default:
  optim:
    lr_milestones:
      - 1500
      - 2000
runs:
  - {}  # 1001
  # second run
  - optim:  # 1002
      lr_milestones:
        - 10
        - 20
  - note: last  # 1003
orion_comment: none

# All jobs launched: 1001, 1002, 1003
# Cancel experiment: scancel 1001 1002 1003
# WandB query for dashboard: (1001|1002|1003)
`
	assert.Equal(t, want, string(content))
}

func TestWriteAnnotatedYAMLWithFewerJobs(t *testing.T) {
	t.Parallel()
	reportPath := filepath.Join(t.TempDir(), "exp_ts.txt")
	out, err := WriteAnnotatedYAML([]byte("runs:\n- a: 1\n- a: 2\n"), reportPath, []string{"1001"})
	require.NoError(t, err)
	content, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "runs:\n- a: 1  # 1001\n- a: 2\n\n"))
}

func TestCommitOutsideRepository(t *testing.T) {
	t.Parallel()
	assert.Equal(t, unknownCommit, Commit(context.Background(), t.TempDir()))
}
