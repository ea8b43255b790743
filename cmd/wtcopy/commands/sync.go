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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/wtcopy/cmd/wtcopy/opts"
)

// 🔄 NewSyncCmd creates the sync command
func NewSyncCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <destination>",
		Short: "Copy local files into an existing directory",
		Long: `Sync runs only the copy step of create: it resolves candidates in the current
repository and copies them into an existing destination, usually a worktree
created earlier. No worktree is created and nothing is removed on failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "sync").Logger().WithContext(cmd.Context())

			p, err := newProvisioner(ctx, o)
			if err != nil {
				return err
			}

			_, err = p.Sync(ctx, args[0])
			return err
		},
	}

	return cmd
}
