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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/wtcopy/pkg/config"
	"github.com/walteh/wtcopy/pkg/status"
	"github.com/walteh/wtcopy/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

// OpenFunc opens the repository that contains dir.
type OpenFunc func(ctx context.Context, dir string) (vcs.Repository, error)

// OpenGit opens dir with go-git and runs worktree commands with the git binary.
func OpenGit(ctx context.Context, dir string) (vcs.Repository, error) {
	repo, err := vcs.Open(ctx, dir, nil)
	if err != nil {
		// a nil *vcs.Repo would become a non-nil Repository
		return nil, err
	}
	return repo, nil
}

// 🔧 Options configures a Provisioner
type Options struct {
	// WorkDir is where the run starts, defaults to the process working directory.
	WorkDir string
	// ConfigPath names a settings file; empty means discover one at the root.
	ConfigPath string
	// Open opens the source repository.
	Open OpenFunc
	// Reporter receives console output.
	Reporter Reporter
	// Now and Token feed generated defaults.
	Now   func() time.Time
	Token func(tokens []string) string
}

// 🏗️ Provisioner runs the provisioning state machine
type Provisioner struct {
	workDir    string
	configPath string
	open       OpenFunc
	reporter   Reporter
	now        func() time.Time
	token      func([]string) string
}

// 📊 Result is what a run produced
type Result struct {
	Request Request
	Summary *status.Summary
	// States lists every state the run entered, in order.
	States []State
}

// 🏭 New creates a provisioner with the given options
func New(opts Options) (*Provisioner, error) {
	if opts.Open == nil {
		return nil, errors.Errorf("open function is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	p := &Provisioner{
		workDir:    workDir,
		configPath: opts.ConfigPath,
		open:       opts.Open,
		reporter:   opts.Reporter,
		now:        opts.Now,
		token:      opts.Token,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.token == nil {
		p.token = randomToken
	}
	return p, nil
}

// validated is everything Validating hands to the later states.
type validated struct {
	req    Request
	repo   vcs.Repository
	syncer *Syncer
}

// 🚀 Run provisions a worktree for in and syncs local files into it.
//
// Validating failures return a *ValidationError and leave nothing behind.
// Once the worktree is requested, any failure before Reporting removes the
// destination and the worktree registration exactly once.
func (p *Provisioner) Run(ctx context.Context, in Input) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	m := newMachine(StateValidating)
	result := &Result{}

	v, err := p.validate(ctx, in)
	if err != nil {
		result.States = m.states()
		return result, err
	}
	result.Request = v.req

	fin := newFinalizer(func() {
		if err := m.advance(ctx, StateCleanup); err != nil {
			logger.Error().Err(err).Msg("entering cleanup")
		}
		p.cleanup(ctx, v.repo, v.req.Destination)
	})
	defer func() {
		fin.run()
		result.States = m.states()
	}()

	p.reporter.Header(fmt.Sprintf("provisioning %s on %s", v.req.Destination, v.req.Branch))

	if err := m.advance(ctx, StateWorktreeCreating); err != nil {
		return result, err
	}
	if err := p.createWorktree(ctx, v.repo, v.req); err != nil {
		return result, err
	}

	if err := m.advance(ctx, StateSyncing); err != nil {
		return result, err
	}
	result.Summary = v.syncer.Run(ctx)

	if err := m.advance(ctx, StateReporting); err != nil {
		return result, err
	}
	fin.release()
	p.report(ctx, result.Summary)
	p.reporter.Successf("worktree ready at %s", v.req.Destination)

	return result, nil
}

// 🔁 Sync runs only Syncing and Reporting from the current repository into an
// existing directory. Nothing is created or removed besides copied files.
func (p *Provisioner) Sync(ctx context.Context, destination string) (*Result, error) {
	m := newMachine(StateSyncing)
	result := &Result{}

	repo, cfg, err := p.openSource(ctx)
	if err != nil {
		result.States = m.states()
		return result, err
	}

	dest := p.absolute(destination)
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		result.States = m.states()
		return result, invalid(ErrDestinationMissing, errors.Errorf("%s", dest))
	}

	syncer, err := NewSyncer(SyncOptions{
		SourceRoot:  repo.Root(),
		Destination: dest,
		Config:      cfg,
		Reporter:    p.reporter,
	})
	if err != nil {
		result.States = m.states()
		return result, invalid(ErrInvalidConfiguration, err)
	}

	result.Request = Request{SourceRoot: repo.Root(), Destination: dest}
	p.reporter.Header(fmt.Sprintf("syncing %s", dest))
	result.Summary = syncer.Run(ctx)

	if err := m.advance(ctx, StateReporting); err != nil {
		result.States = m.states()
		return result, err
	}
	p.report(ctx, result.Summary)
	result.States = m.states()

	return result, nil
}

func (p *Provisioner) openSource(ctx context.Context) (vcs.Repository, *config.Config, error) {
	repo, err := p.open(ctx, p.workDir)
	if err != nil {
		if errors.Is(err, vcs.ErrNotRepository) {
			return nil, nil, invalid(ErrNotRepository, errors.Errorf("%s", p.workDir))
		}
		return nil, nil, invalid(ErrNotRepository, err)
	}

	cfg, err := config.Discover(ctx, repo.Root(), p.configPath)
	if err != nil {
		return nil, nil, invalid(ErrInvalidConfiguration, err)
	}
	return repo, cfg, nil
}

// ✅ validate is the Validating state. It reads but never writes.
func (p *Provisioner) validate(ctx context.Context, in Input) (*validated, error) {
	repo, cfg, err := p.openSource(ctx)
	if err != nil {
		return nil, err
	}

	root := repo.Root()
	now := p.now()

	req := Request{
		SourceRoot:  root,
		Destination: in.Destination,
		Branch:      in.Branch,
		BaseRef:     in.BaseRef,
	}
	if req.Destination == "" {
		req.Destination = DefaultDestination(root, cfg.WorktreesDir, now)
	} else {
		req.Destination = p.absolute(req.Destination)
	}
	if req.Branch == "" {
		req.Branch = DefaultBranch(cfg.BranchPrefix, p.token(cfg.BrandTokens), now)
	}
	if req.BaseRef == "" {
		req.BaseRef = cfg.BaseRef
	}

	if _, err := os.Lstat(req.Destination); err == nil {
		return nil, invalid(ErrDestinationExists, errors.Errorf("%s", req.Destination))
	} else if !os.IsNotExist(err) {
		return nil, errors.Errorf("checking destination: %w", err)
	}

	if err := vcs.ValidateBranchName(req.Branch); err != nil {
		return nil, invalid(ErrInvalidBranch, err)
	}

	syncer, err := NewSyncer(SyncOptions{
		SourceRoot:  root,
		Destination: req.Destination,
		Config:      cfg,
		Reporter:    p.reporter,
	})
	if err != nil {
		return nil, invalid(ErrInvalidConfiguration, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("root", req.SourceRoot).
		Str("destination", req.Destination).
		Str("branch", req.Branch).
		Str("base", req.BaseRef).
		Msg("request validated")

	return &validated{req: req, repo: repo, syncer: syncer}, nil
}

// 🌿 createWorktree is the WorktreeCreating state
func (p *Provisioner) createWorktree(ctx context.Context, repo vcs.Repository, req Request) error {
	opts := vcs.AddOptions{Path: req.Destination, Branch: req.Branch, Mode: vcs.AttachNew, StartPoint: req.BaseRef}

	local, err := repo.HasLocalBranch(ctx, req.Branch)
	if err != nil {
		return externalTool("branch lookup", err)
	}
	if local {
		opts.Mode = vcs.AttachExisting
		opts.StartPoint = ""
	} else {
		remote, ok, err := repo.RemoteBranch(ctx, req.Branch)
		if err != nil {
			return externalTool("branch lookup", err)
		}
		if ok {
			opts.Mode = vcs.AttachRemote
			opts.StartPoint = remote
		}
	}

	zerolog.Ctx(ctx).Debug().Stringer("mode", opts.Mode).Str("start", opts.StartPoint).Msg("creating worktree")
	switch opts.Mode {
	case vcs.AttachExisting:
		p.reporter.Infof("checking out existing branch %s", req.Branch)
	case vcs.AttachRemote:
		p.reporter.Infof("tracking %s as %s", opts.StartPoint, req.Branch)
	default:
		p.reporter.Infof("creating branch %s from %s", req.Branch, startPoint(opts.StartPoint))
	}

	if err := repo.AddWorktree(ctx, opts); err != nil {
		return externalTool("worktree add", err)
	}
	return nil
}

// 🧹 cleanup is the Cleanup state. Every step is best effort and runs once;
// failures are logged and never retried.
func (p *Provisioner) cleanup(ctx context.Context, repo vcs.Repository, dest string) {
	logger := zerolog.Ctx(ctx)
	p.reporter.Warningf("cleaning up %s", dest)

	if _, err := os.Lstat(dest); err == nil {
		if err := repo.RemoveWorktree(ctx, dest); err != nil {
			logger.Debug().Err(err).Str("path", dest).Msg("removing worktree")
			p.reporter.Errorf("removing worktree %s: %v", dest, err)
		}
	}

	if err := os.RemoveAll(dest); err != nil {
		logger.Debug().Err(err).Str("path", dest).Msg("removing destination")
		p.reporter.Errorf("removing %s: %v", dest, err)
	}

	if err := repo.PruneWorktrees(ctx); err != nil {
		logger.Debug().Err(err).Msg("pruning worktrees")
	}
}

func startPoint(ref string) string {
	if ref == "" {
		return "HEAD"
	}
	return ref
}

func (p *Provisioner) report(ctx context.Context, s *status.Summary) {
	p.reporter.LogSummary(ctx, s)
	if s.HasFailures() {
		p.reporter.Warningf("%d file(s) could not be copied", s.Counts().Failed)
	}
}

func (p *Provisioner) absolute(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.workDir, path)
}
