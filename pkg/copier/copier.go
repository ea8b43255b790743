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

// Package copier writes candidate files into a destination worktree,
// byte-for-byte and with their timestamps intact.
package copier

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/wtcopy/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

// 📦 Copier copies files from a source tree into a destination root
type Copier struct {
	destRoot string
}

// 🏭 New creates a copier that writes below destRoot
func New(destRoot string) *Copier {
	return &Copier{destRoot: filepath.Clean(destRoot)}
}

// Destination returns where a candidate will be written.
func (c *Copier) Destination(cand pattern.Candidate) string {
	return filepath.Join(c.destRoot, cand.RelPath)
}

// 📋 Copy writes one candidate to its destination and returns the
// destination path. The source is only ever opened for reading.
//
// The content goes to a temporary sibling first and is renamed into place, so
// a failed copy never leaves a truncated file behind. Permission bits and the
// modification time are carried over; creation time is carried over where the
// platform allows it.
func (c *Copier) Copy(ctx context.Context, cand pattern.Candidate) (string, error) {
	dst := c.Destination(cand)

	src, err := os.Open(cand.Path)
	if err != nil {
		return dst, errors.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return dst, errors.Errorf("reading source info: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return dst, errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".wtcopy-*")
	if err != nil {
		return dst, errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return dst, errors.Errorf("copying file content: %w", err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return dst, errors.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return dst, errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return dst, errors.Errorf("renaming temp file: %w", err)
	}
	committed = true

	mtime := info.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return dst, errors.Errorf("preserving modification time: %w", err)
	}
	if err := setCreationTime(dst, info); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", dst).Msg("creation time not preserved")
	}

	return dst, nil
}
