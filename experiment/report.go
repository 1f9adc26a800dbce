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
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ocp-tools/launchexp/helper/executil"
	"github.com/ocp-tools/launchexp/helper/stringutil"
	"github.com/ocp-tools/launchexp/log"
)

const unknownCommit = "unknown"

var reportSeparator = strings.Repeat("\n", 4) + strings.Repeat(strings.Repeat("#", 80)+"\n", 4) + strings.Repeat("\n", 4)

// Report is the text log of a launch
type Report struct {
	// Command is the command line that started the launch
	Command string
	Commit  string
	// Config is the experiment file content
	Config []byte
	// Commands are the submitted command lines
	Commands []string
	Outputs  []string
	JobIDs   []string
}

// String renders the report
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("<><><> Experiment command: $ " + r.Command)
	b.WriteString("\n<><><> Experiment commit: " + r.Commit)
	b.WriteString("\n<><><> Experiment config:\n\n-----" + string(r.Config) + "-----")
	b.WriteString("\n<><><> Experiment runs:\n\n • " + strings.Join(r.Commands, "\n\n  • ") + reportSeparator)
	b.WriteString(strings.Join(r.Outputs, reportSeparator))
	b.WriteString(reportSeparator + "All jobs launched: " + strings.Join(r.JobIDs, " "))
	return b.String()
}

// UtilStrings returns the follow-up hints of a launch: job list, cancel command and dashboard query
func UtilStrings(jobs []string, yamlComments bool) string {
	lines := []string{
		"All jobs launched: " + strings.Join(jobs, ", "),
		"Cancel experiment: scancel " + strings.Join(jobs, " "),
		"WandB query for dashboard: (" + strings.Join(jobs, "|") + ")",
	}
	if yamlComments {
		for i := range lines {
			lines[i] = "# " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// ReportPath returns <outputsDir>/<experiment name>/<last name element>_<timestamp>.txt
func ReportPath(outputsDir, name, timestamp string) string {
	return filepath.Join(outputsDir, filepath.FromSlash(name), stringutil.GetLastElement(name, "/")+"_"+timestamp+".txt")
}

// WriteReport writes the report to path, creating parent directories
func WriteReport(path string, r *Report) error {
	return writeFile(path, []byte(r.String()))
}

// WriteAnnotatedYAML writes a copy of the experiment file next to the report
// with each run annotated by its job ID, followed by the launch hints as YAML comments.
//
// It returns the path of the written file.
func WriteAnnotatedYAML(expContent []byte, reportPath string, jobs []string) (string, error) {
	lines := strings.Split(strings.TrimRight(string(expContent), "\n"), "\n")
	annotateRuns(lines, jobs)
	lines = append(lines, "")
	lines = append(lines, strings.Split(UtilStrings(jobs, true), "\n")...)

	out := strings.TrimSuffix(reportPath, filepath.Ext(reportPath)) + ".yaml"
	return out, writeFile(out, []byte(strings.Join(lines, "\n")+"\n"))
}

// annotateRuns appends "  # <job>" to the list items directly under the top-level runs key
func annotateRuns(lines []string, jobs []string) {
	start := -1
	for i, l := range lines {
		if strings.TrimRight(l, " ") == "runs:" {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return
	}
	indent := -1
	j := 0
	for i := start; i < len(lines) && j < len(jobs); i++ {
		trimmed := strings.TrimLeft(lines[i], " ")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		depth := len(lines[i]) - len(trimmed)
		if depth == 0 && !strings.HasPrefix(trimmed, "-") {
			// next top-level key
			return
		}
		if !strings.HasPrefix(trimmed, "- ") && trimmed != "-" {
			continue
		}
		if indent < 0 {
			indent = depth
		}
		if depth == indent {
			lines[i] += "  # " + jobs[j]
			j++
		}
	}
}

// Commit returns the current git commit of dir, or "unknown"
func Commit(ctx context.Context, dir string) string {
	commit, err := executil.Output(ctx, dir, "git", "rev-parse", "--verify", "HEAD")
	if err != nil {
		log.Debugf("Failed to get git commit: %v", err)
		return unknownCommit
	}
	return commit
}

func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %q", dir)
	}
	tmp := filepath.Join(dir, stringutil.UniqueTimestampedName(".launchexp_", ".tmp"))
	if err := ioutil.WriteFile(tmp, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %q", path)
	}
	return errors.Wrapf(os.Rename(tmp, path), "failed to write %q", path)
}
