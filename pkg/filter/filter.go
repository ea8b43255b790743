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

// Package filter decides which candidate files are too heavy or too
// sensitive to copy into a new worktree.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// DefaultMaxSize is the largest file, in bytes, that will be copied.
const DefaultMaxSize int64 = 10 * 1024 * 1024

// DefaultBlacklist holds the built-in directory and file name globs that are
// never copied, wherever they appear in a path.
var DefaultBlacklist = []string{
	"node_modules",
	"bower_components",
	"vendor",
	"target",
	"dist",
	".next",
	".nuxt",
	".svelte-kit",
	".turbo",
	".parcel-cache",
	".cache",
	".gradle",
	".terraform",
	"__pycache__",
	".pytest_cache",
	".mypy_cache",
	".tox",
	".venv",
	"venv",
	"*.egg-info",
	"coverage",
	"Pods",
	"DerivedData",
}

// 🚦 Reason is the outcome of a filter decision
type Reason int

const (
	Accepted    Reason = iota
	Blacklisted        // a path component matched a blacklist entry
	Oversize           // file is larger than the size ceiling
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Blacklisted:
		return "blacklisted"
	case Oversize:
		return "oversize"
	default:
		return "unknown"
	}
}

// 📋 Decision describes why a candidate was accepted or rejected
type Decision struct {
	Reason Reason
	// Component is the path component that matched, set for Blacklisted.
	Component string
	// Pattern is the blacklist entry that matched, set for Blacklisted.
	Pattern string
}

// Options configures a Filter. Zero values fall back to the defaults.
type Options struct {
	// Blacklist replaces DefaultBlacklist when non-nil.
	Blacklist []string
	// MaxSize replaces DefaultMaxSize when positive.
	MaxSize int64
}

// 🧹 Filter applies the blacklist and size ceiling. It holds no per-run state.
type Filter struct {
	blacklist []string
	maxSize   int64
}

// 🏭 New creates a filter, validating every blacklist glob
func New(opts Options) (*Filter, error) {
	blacklist := opts.Blacklist
	if blacklist == nil {
		blacklist = DefaultBlacklist
	}
	if err := ValidatePatterns(blacklist); err != nil {
		return nil, err
	}

	lowered := make([]string, 0, len(blacklist))
	for _, p := range blacklist {
		lowered = append(lowered, strings.ToLower(p))
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &Filter{
		blacklist: lowered,
		maxSize:   maxSize,
	}, nil
}

// ValidatePatterns checks that every entry is a usable single-segment glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if p == "" {
			return errors.Errorf("empty blacklist pattern")
		}
		if strings.ContainsAny(p, `/\`) {
			return errors.Errorf("blacklist pattern %q must not contain a path separator", p)
		}
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid blacklist pattern %q", p)
		}
	}
	return nil
}

// 🔍 Decide evaluates a candidate by its path relative to the source root and
// its size. Blacklist rejection wins over oversize rejection.
func (f *Filter) Decide(relPath string, size int64) Decision {
	for _, component := range Components(relPath) {
		if pattern, ok := f.match(component); ok {
			return Decision{Reason: Blacklisted, Component: component, Pattern: pattern}
		}
	}

	if size > f.maxSize {
		return Decision{Reason: Oversize}
	}

	return Decision{Reason: Accepted}
}

func (f *Filter) match(component string) (string, bool) {
	lower := strings.ToLower(component)
	for _, p := range f.blacklist {
		// patterns were validated in New, so Match cannot fail here
		if ok, _ := doublestar.Match(p, lower); ok {
			return p, true
		}
	}
	return "", false
}

// Components splits a relative path into its ordered names, accepting either
// separator so paths from any host decompose the same way.
func Components(relPath string) []string {
	relPath = filepath.ToSlash(filepath.Clean(relPath))
	relPath = strings.ReplaceAll(relPath, `\`, "/")
	parts := strings.Split(relPath, "/")
	out := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		out = append(out, p)
	}
	return out
}
