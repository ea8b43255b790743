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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/wtcopy/cmd/wtcopy/opts"
	"github.com/walteh/wtcopy/pkg/log"
	"github.com/walteh/wtcopy/pkg/operation"
)

// newProvisioner wires a provisioner to a console logger. The console
// mirror only reaches zerolog when debugging.
func newProvisioner(ctx context.Context, o *opts.RootOpts) (*operation.Provisioner, error) {
	mirror := zerolog.Nop()
	if o.Debug {
		mirror = zerolog.Ctx(ctx).With().Str("component", "console").Logger()
	}

	open := o.Open
	if open == nil {
		open = operation.OpenGit
	}

	return operation.New(operation.Options{
		WorkDir:    o.WorkDir,
		ConfigPath: o.ConfigFile,
		Open:       open,
		Reporter:   log.New(o.Stdout, mirror),
	})
}
