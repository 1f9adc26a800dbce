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
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	survey "gopkg.in/AlecAivazis/survey.v1"

	"github.com/ocp-tools/launchexp/experiment"
	"github.com/ocp-tools/launchexp/helper/metricsutil"
	"github.com/ocp-tools/launchexp/helper/stringutil"
	"github.com/ocp-tools/launchexp/submit"
)

func init() {
	RootCmd.AddCommand(launchCmd)
	launchCmd.Flags().StringP("match", "m", ".*", "Only launch the runs whose invocation matches this regular expression")
	launchCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	launchCmd.Flags().Bool("dry-run", false, "Print the submission command lines instead of running them")
}

var launchCmd = &cobra.Command{
	Use:   "launch <experiment>",
	Short: "Submit every run of an experiment file",
	Long: `Submit every run of an experiment file.

The experiment is looked up as <experiments_dir>/<experiment>.yaml. Once submitted, a report
and a copy of the experiment annotated with job IDs are written to <outputs_dir>/<experiment>/.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if _, err := metricsutil.SetupTelemetry(cfg.Telemetry); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		ts := stringutil.Timestamp(time.Now())

		exp, err := experiment.Find(cfg.ResolvePath(cfg.ExperimentsDir), args[0])
		if err != nil {
			return err
		}
		runs, err := exp.Expand(experiment.Options{OrionDir: cfg.ResolvePath(cfg.OrionDir), Timestamp: ts})
		if err != nil {
			return errors.Wrapf(err, "invalid experiment %q", exp.Name)
		}
		match, _ := cmd.Flags().GetString("match")
		runs, err = experiment.Filter(runs, cfg.SubmitCommand, match)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, warnColor("No run to launch"))
			return nil
		}

		invocations := make([]string, len(runs))
		commands := make([]string, len(runs))
		for i, r := range runs {
			invocations[i] = r.Invocation
			commands[i] = submit.CommandLine(cfg.SubmitCommand, r.Invocation)
		}
		fmt.Fprintf(out, "%s\n\n • %s\n", boldColor(fmt.Sprintf("About to run %d jobs:", len(runs))), strings.Join(commands, "\n\n  • "))

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirmed := false
			if err := survey.AskOne(&survey.Confirm{Message: "Confirm?"}, &confirmed, nil); err != nil {
				return errors.Wrap(err, "failed to read confirmation")
			}
			if !confirmed {
				fmt.Fprintln(out, "Aborting")
				return nil
			}
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		s, err := newSubmitter(cfg, dryRun, out)
		if err != nil {
			return err
		}
		ctx, cancel := interruptibleContext()
		defer cancel()
		launcher := &submit.Launcher{
			Submitter: s,
			Name:      exp.Name,
			Progress: func(i, total int) {
				fmt.Fprintf(out, "Launching job %3d/%d\r", i+1, total)
			},
		}
		summary, launchErr := launcher.Launch(ctx, invocations)
		fmt.Fprintln(out)
		jobs := summary.JobIDs()
		if summary.Interrupted {
			fmt.Fprintf(out, "%s Kill jobs with:\n$ scancel %s\n", errorColor("Interrupted."), strings.Join(jobs, " "))
			return errors.New("launch interrupted")
		}

		report := &experiment.Report{
			Command:  strings.Join(os.Args, " "),
			Commit:   experiment.Commit(context.Background(), cfg.RootDir),
			Config:   exp.Content,
			Commands: commands,
			Outputs:  summary.Outputs(),
			JobIDs:   jobs,
		}
		reportPath := experiment.ReportPath(cfg.ResolvePath(cfg.OutputsDir), exp.Name, ts)
		if err := experiment.WriteReport(reportPath, report); err != nil {
			return err
		}
		fmt.Fprintf(out, "Output written to %s\n", reportPath)
		fmt.Fprintln(out, experiment.UtilStrings(jobs, false))
		ymlPath, err := experiment.WriteAnnotatedYAML(exp.Content, reportPath, jobs)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Experiment summary YAML in %s\n", ymlPath)

		if launchErr != nil {
			fmt.Fprintln(out, errorColor("Some jobs could not be submitted"))
			return launchErr
		}
		fmt.Fprintln(out, successColor(fmt.Sprintf("%d jobs submitted", len(jobs))))
		return nil
	},
}
