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

// Package commands holds the launchexp command line interface
package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ocp-tools/launchexp/config"
	"github.com/ocp-tools/launchexp/log"
)

var cfgFile string

// RootCmd is the root of launchexp commands tree
var RootCmd = &cobra.Command{
	Use:   "launchexp",
	Short: "Render and submit Slurm training jobs",
	Long: `launchexp renders the invocation of the Slurm submission helper for a training job,
and launches whole experiments described in YAML files.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			log.SetDebug(true)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			fmt.Print(err)
		}
	},
}

func init() {
	setConfig()
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugln("Using config file:", viper.ConfigFileUsed())
	} else {
		log.Debugln("Config not found... ")
	}
}

func setConfig() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is launchexp.[yaml|json|toml] in . or /etc/launchexp/)")
	flags.Bool("debug", false, "Print debug logs")
	flags.String("root_dir", ".", "Directory of the training code, experiment, output and Orion paths are relative to it")
	flags.String("experiments_dir", config.DefaultExperimentsDir, "Directory of the experiment files")
	flags.String("outputs_dir", config.DefaultOutputsDir, "Directory where launch reports are written")
	flags.String("orion_dir", config.DefaultOrionDir, "Directory where Orion search spaces are written")
	flags.String("submit_command", config.DefaultSubmitCommand, "Command line of the job submission helper")
	flags.String("ssh_host", "", "Submit through this cluster login node instead of locally")
	flags.Int("ssh_port", config.DefaultSSHPort, "SSH port of the login node")
	flags.String("ssh_user", "", "SSH user on the login node")
	flags.String("ssh_private_key", "", "Path to, or content of, the SSH private key (default is ~/.ssh/id_rsa)")
	flags.String("ssh_working_directory", "", "Remote directory the submission helper runs from")
	flags.String("statsd_address", "", "Address of a statsd server receiving submission metrics")

	for key, flag := range map[string]string{
		"debug":                    "debug",
		"root_dir":                 "root_dir",
		"experiments_dir":          "experiments_dir",
		"outputs_dir":              "outputs_dir",
		"orion_dir":                "orion_dir",
		"submit_command":           "submit_command",
		"ssh.host":                 "ssh_host",
		"ssh.port":                 "ssh_port",
		"ssh.user":                 "ssh_user",
		"ssh.private_key":          "ssh_private_key",
		"ssh.working_directory":    "ssh_working_directory",
		"telemetry.statsd_address": "statsd_address",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	//Environment Variables
	viper.SetEnvPrefix("launchexp") // will be uppercased automatically - Become "LAUNCHEXP_"
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault("telemetry.service_name", config.DefaultServiceName)

	//Configuration file directories
	viper.SetConfigName("launchexp") // name of config file (without extension)
	viper.AddConfigPath("/etc/launchexp/")
	viper.AddConfigPath(".")
}

// GetConfig gets configuration from viper
func GetConfig() config.Configuration {
	return config.Configuration{
		RootDir:        viper.GetString("root_dir"),
		ExperimentsDir: viper.GetString("experiments_dir"),
		OutputsDir:     viper.GetString("outputs_dir"),
		OrionDir:       viper.GetString("orion_dir"),
		SubmitCommand:  viper.GetString("submit_command"),
		SubmitEnv:      config.DynamicMap(viper.GetStringMap("submit_env")),
		SSH: config.SSHConfiguration{
			Host:             viper.GetString("ssh.host"),
			Port:             viper.GetInt("ssh.port"),
			User:             viper.GetString("ssh.user"),
			PrivateKey:       viper.GetString("ssh.private_key"),
			WorkingDirectory: viper.GetString("ssh.working_directory"),
		},
		Telemetry: config.Telemetry{
			StatsdAddress:   viper.GetString("telemetry.statsd_address"),
			ServiceName:     viper.GetString("telemetry.service_name"),
			DisableHostName: viper.GetBool("telemetry.disable_hostname"),
		},
	}
}

var (
	errorColor   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	successColor = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	boldColor    = color.New(color.Bold).SprintFunc()
)
