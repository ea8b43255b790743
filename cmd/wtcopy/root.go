// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/wtcopy/cmd/wtcopy/commands"
	"github.com/walteh/wtcopy/cmd/wtcopy/opts"
)

// newRootOpts creates the shared options with process defaults
func newRootOpts() *opts.RootOpts {
	return &opts.RootOpts{
		Stdout: os.Stdout,
	}
}

// newRootCmd builds the command tree. The root command itself runs create.
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	root := &cobra.Command{
		Use:   "wtcopy [destination] [branch]",
		Short: "Provision a git worktree with the local files git ignores",
		Long: `wtcopy creates a git worktree and copies the untracked local files a working
copy needs (environment files, local settings, editor state) into it, while
never copying dependency or build directories.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(o.Debug)
		},
		RunE: commands.RunCreate(o),
	}

	addRootFlags(root, o)
	commands.AddCreateFlags(root, o)

	root.AddCommand(
		commands.NewCreateCmd(o),
		commands.NewSyncCmd(o),
		newVersionCmd(o),
	)

	return root
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .wtcopy.{hcl,yaml,yml,json} at the repository root)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
