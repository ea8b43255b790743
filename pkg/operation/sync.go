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
	"github.com/walteh/wtcopy/pkg/config"
	"github.com/walteh/wtcopy/pkg/copier"
	"github.com/walteh/wtcopy/pkg/filter"
	"github.com/walteh/wtcopy/pkg/pattern"
	"github.com/walteh/wtcopy/pkg/registry"
	"github.com/walteh/wtcopy/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// SyncOptions configures a Syncer.
type SyncOptions struct {
	SourceRoot  string
	Destination string
	Config      *config.Config
	Reporter    Reporter
}

// 🔁 Syncer runs the sync pipeline: resolve, register, filter, copy
type Syncer struct {
	resolver *pattern.Resolver
	filter   *filter.Filter
	copier   *copier.Copier
	reporter Reporter
}

// 🏭 NewSyncer builds the pipeline. It touches nothing on disk.
func NewSyncer(opts SyncOptions) (*Syncer, error) {
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	resolver, err := pattern.New(pattern.Options{
		Root:          opts.SourceRoot,
		IgnoreFile:    cfg.IgnoreFile,
		ExplicitPaths: cfg.ExplicitPaths(),
		SkipDirs:      []string{opts.Destination},
	})
	if err != nil {
		return nil, errors.Errorf("creating resolver: %w", err)
	}

	f, err := filter.New(filter.Options{
		Blacklist: cfg.Blacklist(),
		MaxSize:   cfg.MaxFileSize,
	})
	if err != nil {
		return nil, errors.Errorf("creating filter: %w", err)
	}

	return &Syncer{
		resolver: resolver,
		filter:   f,
		copier:   copier.New(opts.Destination),
		reporter: opts.Reporter,
	}, nil
}

// 🏃 Run processes every candidate once and returns the summary. Nothing in
// here fails the run: copy errors become Failed results and a scan error is
// reported and cuts the candidate list short. Blacklisted candidates are
// counted in the summary but get no per-file line.
func (s *Syncer) Run(ctx context.Context) *status.Summary {
	logger := zerolog.Ctx(ctx)
	summary := status.NewSummary()
	seen := registry.New()

	err := s.resolver.Resolve(ctx, func(c pattern.Candidate) error {
		if !seen.Add(c.Path) {
			logger.Debug().Str("path", c.RelPath).Str("pattern", c.Pattern).Msg("already scheduled")
			return nil
		}

		res := s.process(ctx, c)
		summary.Record(res)
		if res.Outcome == status.SkippedBlacklisted {
			// only the component name reaches the console, in the summary
			logger.Debug().Str("path", res.RelPath).Str("excluded", res.Excluded).Msg("blacklisted")
			return nil
		}
		s.reporter.LogResult(ctx, res)
		return nil
	})
	if err != nil {
		logger.Debug().Err(err).Msg("scan stopped early")
		s.reporter.Warningf("scan stopped early: %v", err)
	}

	logger.Debug().
		Int("candidates", seen.Len()).
		Strs("excluded", summary.Excluded()).
		Msg("sync finished")

	return summary
}

func (s *Syncer) process(ctx context.Context, c pattern.Candidate) status.CopyResult {
	res := status.CopyResult{
		Source:      c.Path,
		Destination: s.copier.Destination(c),
		RelPath:     c.RelPath,
		Size:        c.Size,
	}

	decision := s.filter.Decide(c.RelPath, c.Size)
	switch decision.Reason {
	case filter.Blacklisted:
		res.Outcome = status.SkippedBlacklisted
		res.Excluded = decision.Component
		return res
	case filter.Oversize:
		res.Outcome = status.SkippedOversize
		return res
	}

	if _, err := s.copier.Copy(ctx, c); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", c.RelPath).Msg("copy failed")
		s.reporter.Warningf("copying %s: %v", c.RelPath, err)
		res.Outcome = status.Failed
		res.Err = err
		return res
	}

	res.Outcome = status.Copied
	return res
}
