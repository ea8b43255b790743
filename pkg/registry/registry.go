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

// Package registry tracks which source files a provisioning run has already
// scheduled, so overlapping pattern rules never copy the same file twice.
package registry

import (
	"path/filepath"
	"strings"
)

// 📒 Registry is the per-run seen set keyed on canonical absolute paths.
//
// Keys are compared case-insensitively on every platform so both macOS/Windows
// and Linux hosts make the same dedup decisions. Two files that differ only in
// case collapse into one entry.
type Registry struct {
	seen map[string]struct{}
}

// 🏭 New creates an empty registry
func New() *Registry {
	return &Registry{
		seen: make(map[string]struct{}),
	}
}

// Canonical returns the lookup key for path.
func Canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return strings.ToLower(filepath.ToSlash(filepath.Clean(path)))
}

// ➕ Add records path and reports whether it was new to this run
func (r *Registry) Add(path string) bool {
	key := Canonical(path)
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct paths recorded.
func (r *Registry) Len() int {
	return len(r.seen)
}
