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

package operation

import (
	"strings"

	"github.com/walteh/wtcopy/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

// Validation failure causes, matched with errors.Is.
var (
	ErrNotRepository        = errors.Base("not inside a git repository")
	ErrDestinationExists    = errors.Base("destination already exists")
	ErrDestinationMissing   = errors.Base("destination is not an existing directory")
	ErrInvalidBranch        = errors.Base("invalid branch name")
	ErrInvalidConfiguration = errors.Base("invalid configuration")
)

// ❌ ValidationError is a failure in Validating. Nothing was created, so no
// cleanup follows it.
type ValidationError struct {
	Reason error // One of the Err* causes above
	Err    error // Underlying detail, may be nil
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

func invalid(reason, err error) error {
	return errors.WithStack(&ValidationError{Reason: reason, Err: err})
}

// 💥 ExternalToolError is a failed call into the version-control tool
type ExternalToolError struct {
	Op     string   // What was attempted, e.g. "worktree add"
	Args   []string // Command arguments, when a process ran
	Stderr string   // Captured standard error, when a process ran
	Err    error
}

func (e *ExternalToolError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

func externalTool(op string, err error) error {
	e := &ExternalToolError{Op: op, Err: err}
	var cmdErr *vcs.CommandError
	if errors.As(err, &cmdErr) {
		e.Args = cmdErr.Args
		e.Stderr = cmdErr.Stderr
	}
	return errors.WithStack(e)
}

// 🚦 ExitCode maps a run error to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return 2
	}
	return 1
}

// Hint returns a one-line suggestion for a failed run, or "".
func Hint(err error) string {
	var toolErr *ExternalToolError
	switch {
	case errors.Is(err, ErrDestinationExists):
		return "choose another destination or remove the existing directory"
	case errors.Is(err, ErrInvalidBranch):
		return "branch names follow git check-ref-format rules"
	case errors.Is(err, ErrNotRepository):
		return "run wtcopy from inside a git repository"
	case errors.As(err, &toolErr) && strings.Contains(toolErr.Stderr, "already checked out"):
		return "that branch is checked out in another worktree"
	}
	return ""
}
