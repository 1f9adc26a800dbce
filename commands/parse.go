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

	"github.com/spf13/cobra"

	"github.com/ocp-tools/launchexp/helper/sizeutil"
	"github.com/ocp-tools/launchexp/helper/tabutil"
	"github.com/ocp-tools/launchexp/launch"
)

func init() {
	RootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <invocation>",
	Short: "Check a submission helper invocation and show its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := launch.Parse(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), requestTable(req).Render())
		return nil
	},
}

func requestTable(req *launch.LaunchRequest) tabutil.Table {
	table := tabutil.NewTable("Key", "Value")
	for _, k := range launch.ResourceKeys {
		v := req.Resources[k]
		if k == launch.Mem {
			if human, err := sizeutil.FormatMemory(v); err == nil {
				v = fmt.Sprintf("%s (%s)", v, human)
			}
		}
		table.AddRow(string(k), v)
	}
	table.AddRow("env", req.Environment)
	if req.ExperimentName != "" {
		table.AddRow("exp_name", req.ExperimentName)
	}
	table.AddRow("--"+launch.ModeArg, req.Mode)
	table.AddRow("--"+launch.ConfigArg, req.ConfigPath)
	for _, o := range req.Overrides {
		table.AddRow("--"+o.Key, o.Value)
	}
	if req.Note != "" {
		table.AddRow("--"+launch.NoteArg, req.Note)
	}
	return table
}
