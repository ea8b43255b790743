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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/wtcopy/cmd/wtcopy/opts"
	"github.com/walteh/wtcopy/pkg/operation"
)

const createLong = `Create registers a new git worktree and copies the local files git leaves
behind into it. Candidates are the ignore-file patterns of the repository plus
a fixed list of environment and local settings files. Dependency and build
directories are never copied, nor are files over the size ceiling.

Both arguments are optional:
  destination  defaults to ../worktrees/<repo>-<unix time>
  branch       defaults to wt/<token>-<unix time>

An existing local or remote-tracking branch is checked out; otherwise the
branch is created from --base, or from HEAD.`

// 🌿 NewCreateCmd creates the create command
func NewCreateCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [destination] [branch]",
		Short: "Create a worktree and sync local files into it",
		Long:  createLong,
		Args:  cobra.MaximumNArgs(2),
		RunE:  RunCreate(o),
	}
	AddCreateFlags(cmd, o)
	return cmd
}

// AddCreateFlags adds the flags create understands to cmd.
func AddCreateFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.Flags().StringVarP(&o.BaseRef, "base", "b", "", "start point for a new branch (default: base_ref or HEAD)")
}

// RunCreate returns the create action, shared with the root command.
func RunCreate(o *opts.RootOpts) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		in := operation.Input{BaseRef: o.BaseRef}
		if len(args) > 0 {
			in.Destination = args[0]
		}
		if len(args) > 1 {
			in.Branch = args[1]
		}

		p, err := newProvisioner(ctx, o)
		if err != nil {
			return err
		}

		_, err = p.Run(ctx, in)
		return err
	}
}
