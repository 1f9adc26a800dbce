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
	"fmt"

	metrics "github.com/armon/go-metrics"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ocp-tools/launchexp/helper/metricsutil"
	"github.com/ocp-tools/launchexp/log"
)

// Cancel runs scancel for every job concurrently.
//
// Job IDs are checked before anything runs. The first scancel failure is returned.
func Cancel(ctx context.Context, r Runner, jobIDs []string) error {
	var errs *multierror.Error
	for _, id := range jobIDs {
		if err := checkJobID(id); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range jobIDs {
		jobID := id
		g.Go(func() error {
			out, err := r.Run(ctx, fmt.Sprintf("scancel %s", jobID))
			if err != nil {
				metrics.IncrCounter(metricsutil.CleanupMetricKey("cancel", "failures"), 1)
				return errors.Wrapf(err, "Failed to cancel Slurm job %s: %s", jobID, out)
			}
			metrics.IncrCounter(metricsutil.CleanupMetricKey("cancel", "jobs"), 1)
			log.Debugf("Cancelled job %s", jobID)
			return nil
		})
	}
	return g.Wait()
}
