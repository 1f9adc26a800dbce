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

package commands

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	survey "gopkg.in/AlecAivazis/survey.v1"

	"github.com/ocp-tools/launchexp/helper/metricsutil"
	"github.com/ocp-tools/launchexp/submit"
)

func init() {
	RootCmd.AddCommand(cancelCmd)
	cancelCmd.Flags().StringP("report", "r", "", "Cancel the jobs listed in this launch report")
	cancelCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	cancelCmd.Flags().Bool("dry-run", false, "Print the scancel command lines instead of running them")
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [<job id>...]",
	Short: "Cancel Slurm jobs",
	Long:  `Cancel the given Slurm jobs, or the jobs submitted by a launch when --report is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if _, err := metricsutil.SetupTelemetry(cfg.Telemetry); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		jobs := args
		if report, _ := cmd.Flags().GetString("report"); report != "" {
			content, err := ioutil.ReadFile(report)
			if err != nil {
				return errors.Wrapf(err, "failed to read launch report %q", report)
			}
			jobs = append(jobs, submit.ParseJobIDs(string(content))...)
		}
		if len(jobs) == 0 {
			return errors.New("no job to cancel")
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			confirmed := false
			prompt := &survey.Confirm{Message: fmt.Sprintf("Cancel %d jobs (%s)?", len(jobs), strings.Join(jobs, " "))}
			if err := survey.AskOne(prompt, &confirmed, nil); err != nil {
				return errors.Wrap(err, "failed to read confirmation")
			}
			if !confirmed {
				fmt.Fprintln(out, "Aborting")
				return nil
			}
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		r, err := newSubmitter(cfg, dryRun, out)
		if err != nil {
			return err
		}
		ctx, cancel := interruptibleContext()
		defer cancel()
		if err := submit.Cancel(ctx, r, jobs); err != nil {
			return err
		}
		fmt.Fprintln(out, successColor(fmt.Sprintf("%d jobs cancelled", len(jobs))))
		return nil
	},
}
