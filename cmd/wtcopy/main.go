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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/walteh/wtcopy/pkg/operation"
)

func main() {
	root := newRootCmd(newRootOpts())
	err := root.ExecuteContext(context.Background())
	reportFailure(os.Stderr, err)
	os.Exit(operation.ExitCode(err))
}

// reportFailure prints a failed run's error and any hint for it.
func reportFailure(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "❌ %s\n", color.New(color.FgRed).Sprint(err.Error()))
	if hint := operation.Hint(err); hint != "" {
		fmt.Fprintf(w, "   %s\n", color.New(color.Faint).Sprint(hint))
	}
}
