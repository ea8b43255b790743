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

// Package vcs is the boundary to the version-control tool. Reads (repository
// root, refs, branch-name rules) go through go-git; worktree registration,
// which go-git cannot do, shells out to the git binary.
package vcs

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNotRepository is returned by Open when dir is not inside a work tree.
var ErrNotRepository = errors.Base("not a git repository")

// 🔗 AttachMode says how a worktree is bound to its branch
type AttachMode int

const (
	AttachExisting AttachMode = iota // check out an existing local branch
	AttachRemote                     // create a local branch tracking a remote one
	AttachNew                        // create a new branch from a start point
)

func (m AttachMode) String() string {
	switch m {
	case AttachExisting:
		return "existing"
	case AttachRemote:
		return "remote"
	case AttachNew:
		return "new"
	default:
		return "unknown"
	}
}

// 🌿 AddOptions describes a worktree to register
type AddOptions struct {
	Path   string     // Destination directory
	Branch string     // Local branch name
	Mode   AttachMode // How to bind the branch
	// StartPoint is the remote ref ("origin/x") for AttachRemote, or the
	// optional base ref for AttachNew.
	StartPoint string
}

// 🎯 Repository is what provisioning needs from version control
type Repository interface {
	// Root returns the absolute work tree root.
	Root() string
	// HasLocalBranch reports whether refs/heads/<name> exists.
	HasLocalBranch(ctx context.Context, name string) (bool, error)
	// RemoteBranch returns "<remote>/<name>" for the first remote-tracking
	// ref that exists, preferring origin.
	RemoteBranch(ctx context.Context, name string) (string, bool, error)
	// AddWorktree registers and checks out a new worktree.
	AddWorktree(ctx context.Context, opts AddOptions) error
	// RemoveWorktree force-removes a registered worktree.
	RemoveWorktree(ctx context.Context, path string) error
	// PruneWorktrees drops registrations whose directories are gone.
	PruneWorktrees(ctx context.Context) error
}

// 📦 Repo implements Repository
type Repo struct {
	repo   *git.Repository
	root   string
	runner Runner
}

// 🏭 Open finds the repository containing dir. The returned Repo runs git
// commands through runner, or through the git binary when runner is nil.
func Open(ctx context.Context, dir string, runner Runner) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", dir, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.WithStack(ErrNotRepository)
		}
		return nil, errors.Errorf("opening repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, errors.WithStack(ErrNotRepository)
		}
		return nil, errors.Errorf("reading work tree: %w", err)
	}

	if runner == nil {
		runner = NewExecRunner("git")
	}

	root := wt.Filesystem.Root()
	zerolog.Ctx(ctx).Debug().Str("dir", abs).Str("root", root).Msg("opened repository")

	return &Repo{repo: repo, root: root, runner: runner}, nil
}

func (r *Repo) Root() string {
	return r.root
}

func (r *Repo) HasLocalBranch(ctx context.Context, name string) (bool, error) {
	return r.hasRef(plumbing.NewBranchReferenceName(name))
}

func (r *Repo) RemoteBranch(ctx context.Context, name string) (string, bool, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return "", false, errors.Errorf("listing remotes: %w", err)
	}

	names := make([]string, 0, len(remotes))
	for _, rm := range remotes {
		names = append(names, rm.Config().Name)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == "origin") != (names[j] == "origin") {
			return names[i] == "origin"
		}
		return names[i] < names[j]
	})

	for _, remote := range names {
		ok, err := r.hasRef(plumbing.NewRemoteReferenceName(remote, name))
		if err != nil {
			return "", false, err
		}
		if ok {
			return remote + "/" + name, true, nil
		}
	}
	return "", false, nil
}

func (r *Repo) hasRef(name plumbing.ReferenceName) (bool, error) {
	_, err := r.repo.Reference(name, false)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, errors.Errorf("reading %s: %w", name, err)
}

func (r *Repo) AddWorktree(ctx context.Context, opts AddOptions) error {
	args, err := addArgs(r.root, opts)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Strs("args", args).Msg("adding worktree")
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return errors.Errorf("adding worktree: %w", err)
	}
	return nil
}

func addArgs(root string, opts AddOptions) ([]string, error) {
	args := []string{"-C", root, "worktree", "add"}
	switch opts.Mode {
	case AttachExisting:
		args = append(args, opts.Path, opts.Branch)
	case AttachRemote:
		if opts.StartPoint == "" {
			return nil, errors.Errorf("remote attach requires a start point")
		}
		args = append(args, "--track", "-b", opts.Branch, opts.Path, opts.StartPoint)
	case AttachNew:
		args = append(args, "-b", opts.Branch, opts.Path)
		if opts.StartPoint != "" {
			args = append(args, opts.StartPoint)
		}
	default:
		return nil, errors.Errorf("unknown attach mode %d", opts.Mode)
	}
	return args, nil
}

func (r *Repo) RemoveWorktree(ctx context.Context, path string) error {
	if _, err := r.runner.Run(ctx, "-C", r.root, "worktree", "remove", "--force", path); err != nil {
		return errors.Errorf("removing worktree: %w", err)
	}
	return nil
}

func (r *Repo) PruneWorktrees(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, "-C", r.root, "worktree", "prune"); err != nil {
		return errors.Errorf("pruning worktrees: %w", err)
	}
	return nil
}

// ValidateBranchName applies git's ref-format rules to a branch name.
func ValidateBranchName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Errorf("branch name is empty")
	case strings.HasPrefix(name, "-"):
		return errors.Errorf("branch name %q must not start with '-'", name)
	case name == "HEAD":
		return errors.Errorf("branch name %q is reserved", name)
	}
	if err := plumbing.NewBranchReferenceName(name).Validate(); err != nil {
		return errors.Errorf("branch name %q: %w", name, err)
	}
	return nil
}
