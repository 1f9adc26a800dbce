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
	"context"
	"strings"
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ocp-tools/launchexp/helper/metricsutil"
	"github.com/ocp-tools/launchexp/log"
)

// Result is the outcome of one submission
type Result struct {
	Invocation string
	Output     string
	JobID      string
	Err        error
}

// Summary gathers the results of a launch
type Summary struct {
	Results []Result
	// Interrupted is true if the context was done before all invocations were submitted
	Interrupted bool
}

// JobIDs returns the IDs of the submitted jobs, in submission order
func (s *Summary) JobIDs() []string {
	var ids []string
	for _, r := range s.Results {
		if r.JobID != "" {
			ids = append(ids, r.JobID)
		}
	}
	return ids
}

// Outputs returns the trimmed helper output of each submission
func (s *Summary) Outputs() []string {
	res := make([]string, len(s.Results))
	for i, r := range s.Results {
		res[i] = strings.TrimSpace(r.Output)
	}
	return res
}

// Launcher submits invocations one after the other
type Launcher struct {
	Submitter Submitter
	// Name is added to metric keys, typically the experiment name
	Name string
	// Progress is called before each submission with its index, it may be nil
	Progress func(i, total int)
}

// Launch submits invocations sequentially.
//
// A failed submission does not stop the launch, all failures are returned together.
// When ctx is done the launch stops and the summary is marked as interrupted.
func (l *Launcher) Launch(ctx context.Context, invocations []string) (*Summary, error) {
	summary := &Summary{Results: make([]Result, 0, len(invocations))}
	var errs *multierror.Error
	for i, inv := range invocations {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}
		if l.Progress != nil {
			l.Progress(i, len(invocations))
		}
		res := l.submit(ctx, inv)
		if ctx.Err() != nil {
			// the helper was killed, its job may still have been accepted
			summary.Interrupted = true
		}
		if res.Err != nil {
			errs = multierror.Append(errs, errors.Wrapf(res.Err, "job %d", i))
		}
		summary.Results = append(summary.Results, res)
	}
	return summary, errs.ErrorOrNil()
}

func (l *Launcher) submit(ctx context.Context, invocation string) Result {
	defer metrics.MeasureSince(metricsutil.CleanupMetricKey("submit", l.Name, "duration"), time.Now())
	metrics.IncrCounter(metricsutil.CleanupMetricKey("submit", l.Name, "jobs"), 1)

	res := Result{Invocation: invocation}
	res.Output, res.Err = l.Submitter.Submit(ctx, invocation)
	if res.Err == nil {
		var ok bool
		if res.JobID, ok = ParseJobID(res.Output); !ok {
			res.Err = errors.Errorf("no job ID found in submission output: %s", strings.TrimSpace(res.Output))
		}
	} else {
		res.Err = errors.Wrapf(res.Err, "submission failed: %s", strings.TrimSpace(res.Output))
		// a job line may be printed before a failure
		res.JobID, _ = ParseJobID(res.Output)
	}
	if res.Err != nil {
		metrics.IncrCounter(metricsutil.CleanupMetricKey("submit", l.Name, "failures"), 1)
		log.Debugf("%+v", res.Err)
	}
	return res
}

// Launch submits invocations sequentially with s, see Launcher.Launch
func Launch(ctx context.Context, s Submitter, invocations []string) (*Summary, error) {
	return (&Launcher{Submitter: s}).Launch(ctx, invocations)
}
