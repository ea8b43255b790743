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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/wtcopy/pkg/status"
	"github.com/walteh/wtcopy/pkg/vcs"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Root() string {
	return m.Called().String(0)
}

func (m *mockRepository) HasLocalBranch(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) RemoteBranch(ctx context.Context, name string) (string, bool, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockRepository) AddWorktree(ctx context.Context, opts vcs.AddOptions) error {
	return m.Called(ctx, opts).Error(0)
}

func (m *mockRepository) RemoveWorktree(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockRepository) PruneWorktrees(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type recordingReporter struct {
	headers   []string
	infos     []string
	successes []string
	warnings  []string
	errors    []string
	results   []status.CopyResult
	summaries []*status.Summary
}

func (r *recordingReporter) Header(msg string) { r.headers = append(r.headers, msg) }

func (r *recordingReporter) Infof(format string, args ...interface{}) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Successf(format string, args ...interface{}) {
	r.successes = append(r.successes, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warningf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) LogResult(ctx context.Context, res status.CopyResult) {
	r.results = append(r.results, res)
}

func (r *recordingReporter) LogSummary(ctx context.Context, s *status.Summary) {
	r.summaries = append(r.summaries, s)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// writeTree creates files of the given sizes below root.
func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
	}
}

// writeSparse creates a file that reports size bytes without writing them.
func writeSparse(t *testing.T, path string, size int64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
}

func relPaths(results []status.CopyResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, filepath.ToSlash(r.RelPath))
	}
	sort.Strings(out)
	return out
}
