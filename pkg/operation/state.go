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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 State is a provisioning step
type State int

const (
	StateValidating State = iota
	StateWorktreeCreating
	StateSyncing
	StateReporting
	StateCleanup
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateWorktreeCreating:
		return "worktree-creating"
	case StateSyncing:
		return "syncing"
	case StateReporting:
		return "reporting"
	case StateCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// transitions lists the states reachable from each state. Cleanup is
// reachable from everything after Validating and is terminal.
var transitions = map[State][]State{
	StateValidating:       {StateWorktreeCreating},
	StateWorktreeCreating: {StateSyncing, StateCleanup},
	StateSyncing:          {StateReporting, StateCleanup},
	StateReporting:        {StateCleanup},
	StateCleanup:          nil,
}

// CanTransition reports whether from may be followed by to.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// machine tracks the current state of one run.
type machine struct {
	current State
	history []State
}

func newMachine(start State) *machine {
	return &machine{current: start, history: []State{start}}
}

func (m *machine) advance(ctx context.Context, to State) error {
	if !CanTransition(m.current, to) {
		return errors.Errorf("invalid state transition %s -> %s", m.current, to)
	}
	zerolog.Ctx(ctx).Debug().
		Stringer("from", m.current).
		Stringer("to", to).
		Msg("state transition")
	m.current = to
	m.history = append(m.history, to)
	return nil
}

func (m *machine) states() []State {
	out := make([]State, len(m.history))
	copy(out, m.history)
	return out
}
