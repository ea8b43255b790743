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

package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	return nil, r.err
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitFile(t *testing.T, dir string, repo *git.Repository) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func sameDir(t *testing.T, want, got string) {
	t.Helper()
	w, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	g, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, w, g)
}

func TestOpen(t *testing.T) {
	ctx := testContext(t)

	t.Run("not a repository", func(t *testing.T) {
		_, err := Open(ctx, t.TempDir(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotRepository))
	})

	t.Run("root from subdirectory", func(t *testing.T) {
		dir, _ := initRepo(t)
		sub := filepath.Join(dir, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		repo, err := Open(ctx, sub, nil)
		require.NoError(t, err)
		sameDir(t, dir, repo.Root())
	})
}

func TestBranchLookup(t *testing.T) {
	ctx := testContext(t)
	dir, repo := initRepo(t)
	hash := commitFile(t, dir, repo)

	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), hash)))

	_, err := repo.CreateRemote(&config.RemoteConfig{Name: "upstream", URLs: []string{"https://example.com/up.git"}})
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"https://example.com/origin.git"}})
	require.NoError(t, err)

	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName("upstream", "shared"), hash)))
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "shared"), hash)))
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName("upstream", "only-up"), hash)))

	r, err := Open(ctx, dir, &recordingRunner{})
	require.NoError(t, err)

	ok, err := r.HasLocalBranch(ctx, "feature")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.HasLocalBranch(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	tests := []struct {
		name   string
		branch string
		want   string
		found  bool
	}{
		{name: "origin preferred", branch: "shared", want: "origin/shared", found: true},
		{name: "other remote", branch: "only-up", want: "upstream/only-up", found: true},
		{name: "absent", branch: "nowhere", want: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := r.RemoteBranch(ctx, tt.branch)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddWorktreeArgs(t *testing.T) {
	ctx := testContext(t)
	dir, _ := initRepo(t)

	tests := []struct {
		name    string
		opts    AddOptions
		want    []string
		wantErr bool
	}{
		{
			name: "existing branch",
			opts: AddOptions{Path: "/tmp/wt", Branch: "feature", Mode: AttachExisting},
			want: []string{"worktree", "add", "/tmp/wt", "feature"},
		},
		{
			name: "remote branch",
			opts: AddOptions{Path: "/tmp/wt", Branch: "feature", Mode: AttachRemote, StartPoint: "origin/feature"},
			want: []string{"worktree", "add", "--track", "-b", "feature", "/tmp/wt", "origin/feature"},
		},
		{
			name: "new branch",
			opts: AddOptions{Path: "/tmp/wt", Branch: "wt/x", Mode: AttachNew},
			want: []string{"worktree", "add", "-b", "wt/x", "/tmp/wt"},
		},
		{
			name: "new branch from base",
			opts: AddOptions{Path: "/tmp/wt", Branch: "wt/x", Mode: AttachNew, StartPoint: "main"},
			want: []string{"worktree", "add", "-b", "wt/x", "/tmp/wt", "main"},
		},
		{
			name:    "remote without start point",
			opts:    AddOptions{Path: "/tmp/wt", Branch: "feature", Mode: AttachRemote},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			r, err := Open(ctx, dir, runner)
			require.NoError(t, err)

			err = r.AddWorktree(ctx, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, runner.calls)
				return
			}
			require.NoError(t, err)
			require.Len(t, runner.calls, 1)
			assert.Equal(t, append([]string{"-C", r.Root()}, tt.want...), runner.calls[0])
		})
	}
}

func TestRunnerFailure(t *testing.T) {
	ctx := testContext(t)
	dir, _ := initRepo(t)

	cause := &CommandError{Binary: "git", Args: []string{"worktree", "add"}, Stderr: "fatal: nope", Err: errors.New("exit status 128")}
	runner := &recordingRunner{err: cause}
	r, err := Open(ctx, dir, runner)
	require.NoError(t, err)

	err = r.AddWorktree(ctx, AddOptions{Path: "/tmp/wt", Branch: "x", Mode: AttachNew})
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "fatal: nope", cmdErr.Stderr)
	assert.Contains(t, err.Error(), "fatal: nope")
	assert.Equal(t, -1, cmdErr.ExitCode())
}

func TestWorktreeLifecycle(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	ctx := testContext(t)
	dir, repo := initRepo(t)
	commitFile(t, dir, repo)

	r, err := Open(ctx, dir, nil)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "wt")
	require.NoError(t, r.AddWorktree(ctx, AddOptions{Path: dest, Branch: "wt/test", Mode: AttachNew}))
	assert.FileExists(t, filepath.Join(dest, "README.md"))

	ok, err := r.HasLocalBranch(ctx, "wt/test")
	require.NoError(t, err)
	assert.True(t, ok)

	linked, err := Open(ctx, dest, nil)
	require.NoError(t, err)
	sameDir(t, dest, linked.Root())

	err = r.AddWorktree(ctx, AddOptions{Path: dest, Branch: "wt/test", Mode: AttachExisting})
	require.Error(t, err)
	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.NotEmpty(t, cmdErr.Stderr)
	assert.Positive(t, cmdErr.ExitCode())

	require.NoError(t, r.RemoveWorktree(ctx, dest))
	assert.NoDirExists(t, dest)
	require.NoError(t, r.PruneWorktrees(ctx))
}

func TestValidateBranchName(t *testing.T) {
	tests := []struct {
		name    string
		branch  string
		wantErr bool
	}{
		{name: "simple", branch: "feature", wantErr: false},
		{name: "nested", branch: "wt/claude-123", wantErr: false},
		{name: "empty", branch: "", wantErr: true},
		{name: "blank", branch: "  ", wantErr: true},
		{name: "leading dash", branch: "-x", wantErr: true},
		{name: "head", branch: "HEAD", wantErr: true},
		{name: "double dot", branch: "a..b", wantErr: true},
		{name: "tilde", branch: "feat~1", wantErr: true},
		{name: "colon", branch: "bad:name", wantErr: true},
		{name: "trailing slash", branch: "trailing/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.branch)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
