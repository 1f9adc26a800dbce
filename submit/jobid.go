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
package submit

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const jobLinePrefix = "Submitted batch job "

var jobIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ParseJobID returns the job ID announced by sbatch in output.
//
// The last "Submitted batch job <id>" line wins.
func ParseJobID(output string) (string, bool) {
	var id string
	for _, line := range strings.Split(output, "\n") {
		i := strings.Index(line, jobLinePrefix)
		if i < 0 {
			continue
		}
		if fields := strings.Fields(line[i+len(jobLinePrefix):]); len(fields) > 0 {
			id = fields[0]
		}
	}
	return id, id != ""
}

// ParseJobIDs returns the IDs of all the "Submitted batch job <id>" lines of text, in order
func ParseJobIDs(text string) []string {
	var ids []string
	for _, line := range strings.Split(text, "\n") {
		if id, ok := ParseJobID(line); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func checkJobID(id string) error {
	if !jobIDPattern.MatchString(id) {
		return errors.Errorf("invalid job ID %q", id)
	}
	return nil
}
