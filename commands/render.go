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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ocp-tools/launchexp/launch"
	"github.com/ocp-tools/launchexp/submit"
)

func init() {
	RootCmd.AddCommand(renderCmd)
	flags := renderCmd.Flags()
	for _, k := range launch.ResourceKeys {
		flags.String(string(k), "", fmt.Sprintf("Slurm %s request", k))
	}
	flags.String("env", "", "Runtime environment activated before the job starts")
	flags.String("mode", "", "Mode of the training process (train, predict, ...)")
	flags.String("config-yml", "", "Base configuration file of the training process")
	flags.StringArrayP("arg", "a", nil, "Override of the base configuration as <dotted.key>=<value>, may be repeated")
	flags.String("note", "", "Free text note attached to the run")
	flags.String("exp-name", "", "Name of the experiment the job belongs to")
	flags.Bool("with-command", false, "Prefix the invocation with the submission helper command")
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the submission helper invocation of a single job",
	Long: `Render the submission helper invocation of a single job.

Example:
  launchexp render --gres gpu:1 --partition long --time 24:00:00 --cpus 4 --mem 32GB \
    --env ocp --mode train --config-yml configs/is2re/10k/sfarinet/sfarinet.yml \
    -a optim.lr_milestones="[1500, 2000, 3000]" --note "baseline"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		invocation, err := req.Render()
		if err != nil {
			return err
		}
		if with, _ := cmd.Flags().GetBool("with-command"); with {
			invocation = submit.CommandLine(viper.GetString("submit_command"), invocation)
		}
		fmt.Fprintln(cmd.OutOrStdout(), invocation)
		return nil
	},
}

func requestFromFlags(cmd *cobra.Command) (*launch.LaunchRequest, error) {
	flags := cmd.Flags()
	b := launch.NewBuilder()
	for _, k := range launch.ResourceKeys {
		if v, _ := flags.GetString(string(k)); v != "" {
			b.Resource(string(k), v)
		}
	}
	env, _ := flags.GetString("env")
	b.Environment(env)
	if name, _ := flags.GetString("exp-name"); name != "" {
		b.ExperimentName(name)
	}
	mode, _ := flags.GetString("mode")
	b.Arg(launch.ModeArg, mode)
	configPath, _ := flags.GetString("config-yml")
	b.Arg(launch.ConfigArg, configPath)
	overrides, _ := flags.GetStringArray("arg")
	for _, o := range overrides {
		kv := strings.SplitN(o, "=", 2)
		if len(kv) != 2 {
			return nil, errors.Errorf("invalid override %q, expecting <dotted.key>=<value>", o)
		}
		b.Arg(kv[0], kv[1])
	}
	if note, _ := flags.GetString("note"); note != "" {
		b.Arg(launch.NoteArg, note)
	}
	return b.Build()
}
