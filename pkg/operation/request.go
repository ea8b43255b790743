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
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"
)

// Input is what the caller asks for. Empty fields get generated defaults.
type Input struct {
	Destination string
	Branch      string
	BaseRef     string
}

// 📋 Request is a validated provisioning request
type Request struct {
	SourceRoot  string // Absolute root of the source work tree
	Destination string // Absolute path of the new worktree
	Branch      string // Branch the worktree checks out
	BaseRef     string // Start point when Branch is created, may be empty
}

// DefaultDestination is <worktreesDir>/<repo>-<unix>. An empty worktreesDir
// means a "worktrees" directory next to root; a relative one is taken from root.
func DefaultDestination(root, worktreesDir string, now time.Time) string {
	dir := worktreesDir
	switch {
	case dir == "":
		dir = filepath.Join(filepath.Dir(root), "worktrees")
	case !filepath.IsAbs(dir):
		dir = filepath.Join(root, dir)
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d", filepath.Base(root), now.Unix()))
}

// DefaultBranch is <prefix><token>-<unix>.
func DefaultBranch(prefix, token string, now time.Time) string {
	return fmt.Sprintf("%s%s-%d", prefix, token, now.Unix())
}

// randomToken picks one entry of tokens.
func randomToken(tokens []string) string {
	if len(tokens) == 0 {
		return "wt"
	}
	return tokens[rand.IntN(len(tokens))]
}
