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

// Package pattern turns a repository's ignore file and a fixed list of
// well-known local config paths into candidate files for a new worktree.
package pattern

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultIgnoreFile is read from the source root when no other name is configured.
const DefaultIgnoreFile = ".gitignore"

// DefaultExplicitPaths are always considered, relative to the source root,
// whether or not the ignore file mentions them.
var DefaultExplicitPaths = []string{
	".env",
	".env.local",
	".env.development",
	".env.development.local",
	".env.test",
	".env.test.local",
	".env.production.local",
	".claude/settings.local.json",
	"config/local.json",
	"config/local.yaml",
	"config/local.yml",
	"config/local.toml",
	"config/settings.local.json",
}

// 📄 Candidate is a source file selected for possible copy
type Candidate struct {
	Path    string      // Absolute path in the source tree
	RelPath string      // Path relative to the source root
	Size    int64       // Size in bytes
	ModTime time.Time   // Modification time
	Mode    fs.FileMode // Permission bits
	Pattern string      // Ignore pattern that matched, empty for explicit paths
}

// Options configures a Resolver.
type Options struct {
	// Root is the source repository root.
	Root string
	// IgnoreFile is the ignore file name relative to Root.
	IgnoreFile string
	// ExplicitPaths replaces DefaultExplicitPaths when non-nil.
	ExplicitPaths []string
	// SkipDirs are absolute directories the scan must never enter.
	SkipDirs []string
}

// 🔎 Resolver scans a source tree for ignore-pattern matches and explicit paths
type Resolver struct {
	root          string
	ignoreFile    string
	explicitPaths []string
	skipDirs      map[string]struct{}
}

// 🏭 New creates a resolver rooted at opts.Root
func New(opts Options) (*Resolver, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}

	ignoreFile := opts.IgnoreFile
	if ignoreFile == "" {
		ignoreFile = DefaultIgnoreFile
	}

	explicit := opts.ExplicitPaths
	if explicit == nil {
		explicit = DefaultExplicitPaths
	}

	skip := make(map[string]struct{}, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		if abs, err := filepath.Abs(d); err == nil {
			skip[filepath.Clean(abs)] = struct{}{}
		}
	}

	return &Resolver{
		root:          root,
		ignoreFile:    ignoreFile,
		explicitPaths: explicit,
		skipDirs:      skip,
	}, nil
}

// Root returns the absolute source root.
func (r *Resolver) Root() string {
	return r.root
}

// 📜 Patterns reads and parses the ignore file. A missing file yields no
// patterns and no error.
func (r *Resolver) Patterns(ctx context.Context) ([]string, error) {
	path := filepath.Join(r.root, r.ignoreFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no ignore file")
			return nil, nil
		}
		return nil, errors.Errorf("reading ignore file: %w", err)
	}

	patterns := Parse(string(data))
	zerolog.Ctx(ctx).Debug().Str("path", path).Strs("patterns", patterns).Msg("parsed ignore file")
	return patterns, nil
}

// 🚶 Resolve calls fn once per (pattern, file) match and once per existing
// explicit path. The same file can be reported more than once; callers dedup.
//
// Unreadable entries below the root are logged and skipped. An unreadable
// ignore file is logged and only the explicit paths are produced.
func (r *Resolver) Resolve(ctx context.Context, fn func(Candidate) error) error {
	logger := zerolog.Ctx(ctx)

	patterns, err := r.Patterns(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring unreadable ignore file")
		patterns = nil
	}

	if len(patterns) > 0 {
		if err := r.scan(ctx, patterns, fn); err != nil {
			return err
		}
	}

	return r.explicit(ctx, fn)
}

func (r *Resolver) scan(ctx context.Context, patterns []string, fn func(Candidate) error) error {
	logger := zerolog.Ctx(ctx)

	return filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == r.root {
				return errors.Errorf("scanning %s: %w", r.root, err)
			}
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == r.root {
			return nil
		}
		if r.skipped(path, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		for _, p := range patterns {
			// patterns come from Parse, which only keeps valid globs
			if ok, _ := doublestar.Match(p, name); !ok {
				continue
			}
			if d.IsDir() {
				// expand already reports everything below path
				if err := r.expand(ctx, path, p, fn); err != nil {
					return err
				}
				return filepath.SkipDir
			}
			if err := r.emit(ctx, path, d, p, fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// expand reports every regular file below a directory whose name matched.
func (r *Resolver) expand(ctx context.Context, dir, pattern string, fn func(Candidate) error) error {
	logger := zerolog.Ctx(ctx)

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if r.skipped(path, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		return r.emit(ctx, path, d, pattern, fn)
	})
}

func (r *Resolver) explicit(ctx context.Context, fn func(Candidate) error) error {
	logger := zerolog.Ctx(ctx)

	for _, rel := range r.explicitPaths {
		path := filepath.Join(r.root, filepath.FromSlash(rel))
		info, err := os.Lstat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable explicit path")
			}
			continue
		}
		if !info.Mode().IsRegular() {
			logger.Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("explicit path is not a regular file")
			continue
		}
		if err := fn(r.candidate(path, info, "")); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) emit(ctx context.Context, path string, d fs.DirEntry, pattern string, fn func(Candidate) error) error {
	if !d.Type().IsRegular() {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("skipping non-regular file")
		return nil
	}
	info, err := d.Info()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("skipping file without info")
		return nil
	}
	return fn(r.candidate(path, info, pattern))
}

func (r *Resolver) candidate(path string, info fs.FileInfo, pattern string) Candidate {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		rel = info.Name()
	}
	return Candidate{
		Path:    path,
		RelPath: rel,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode().Perm(),
		Pattern: pattern,
	}
}

// skipped reports entries the scan never looks at: version-control metadata
// and configured directories such as the destination worktree.
func (r *Resolver) skipped(path string, d fs.DirEntry) bool {
	if d.Name() == ".git" {
		return true
	}
	if d.IsDir() {
		if _, ok := r.skipDirs[filepath.Clean(path)]; ok {
			return true
		}
	}
	return false
}
