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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/wtcopy/pkg/filter"
	"github.com/walteh/wtcopy/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

// FileNames are the settings files looked for at a repository root, in order.
var FileNames = []string{".wtcopy.hcl", ".wtcopy.yaml", ".wtcopy.yml", ".wtcopy.json"}

// DefaultBranchPrefix is prepended to generated branch names.
const DefaultBranchPrefix = "wt/"

// DefaultBrandTokens feed generated branch names.
var DefaultBrandTokens = []string{"claude", "spark", "nova", "atlas", "ember", "orbit"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config is the wtcopy settings file
type Config struct {
	IgnoreFile         string   `json:"ignore_file,omitempty" yaml:"ignore_file,omitempty" hcl:"ignore_file,optional"`
	MaxFileSize        int64    `json:"max_file_size,omitempty" yaml:"max_file_size,omitempty" hcl:"max_file_size,optional"`
	ExtraBlacklist     []string `json:"extra_blacklist,omitempty" yaml:"extra_blacklist,omitempty" hcl:"extra_blacklist,optional"`
	ExtraExplicitPaths []string `json:"extra_explicit_paths,omitempty" yaml:"extra_explicit_paths,omitempty" hcl:"extra_explicit_paths,optional"`
	WorktreesDir       string   `json:"worktrees_dir,omitempty" yaml:"worktrees_dir,omitempty" hcl:"worktrees_dir,optional"`
	BranchPrefix       string   `json:"branch_prefix,omitempty" yaml:"branch_prefix,omitempty" hcl:"branch_prefix,optional"`
	BrandTokens        []string `json:"brand_tokens,omitempty" yaml:"brand_tokens,omitempty" hcl:"brand_tokens,optional"`
	BaseRef            string   `json:"base_ref,omitempty" yaml:"base_ref,omitempty" hcl:"base_ref,optional"`

	location string
}

// 🏭 Default returns the settings used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.IgnoreFile == "" {
		cfg.IgnoreFile = pattern.DefaultIgnoreFile
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = filter.DefaultMaxSize
	}
	if cfg.BranchPrefix == "" {
		cfg.BranchPrefix = DefaultBranchPrefix
	}
	if len(cfg.BrandTokens) == 0 {
		cfg.BrandTokens = append([]string(nil), DefaultBrandTokens...)
	}
}

// Location is the file the settings came from, empty for Default.
func (cfg *Config) Location() string {
	return cfg.location
}

// Blacklist is the built-in blacklist followed by ExtraBlacklist.
func (cfg *Config) Blacklist() []string {
	out := make([]string, 0, len(filter.DefaultBlacklist)+len(cfg.ExtraBlacklist))
	out = append(out, filter.DefaultBlacklist...)
	return append(out, cfg.ExtraBlacklist...)
}

// ExplicitPaths is the built-in explicit list followed by ExtraExplicitPaths.
func (cfg *Config) ExplicitPaths() []string {
	out := make([]string, 0, len(pattern.DefaultExplicitPaths)+len(cfg.ExtraExplicitPaths))
	out = append(out, pattern.DefaultExplicitPaths...)
	return append(out, cfg.ExtraExplicitPaths...)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.MaxFileSize < 0 {
		return errors.Errorf("max_file_size must not be negative, got %d", cfg.MaxFileSize)
	}
	if err := checkRelative("ignore_file", cfg.IgnoreFile); err != nil {
		return err
	}
	for _, p := range cfg.ExtraExplicitPaths {
		if err := checkRelative("extra_explicit_paths", p); err != nil {
			return err
		}
	}
	if err := filter.ValidatePatterns(cfg.ExtraBlacklist); err != nil {
		return errors.Errorf("extra_blacklist: %w", err)
	}
	for _, tok := range cfg.BrandTokens {
		if strings.TrimSpace(tok) == "" {
			return errors.Errorf("brand_tokens must not contain empty entries")
		}
	}
	return nil
}

func checkRelative(field, p string) error {
	if p == "" {
		return errors.Errorf("%s: empty path", field)
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return errors.Errorf("%s: %q must be relative to the repository root", field, p)
	}
	clean := filepath.ToSlash(filepath.Clean(p))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Errorf("%s: %q escapes the repository root", field, p)
	}
	return nil
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}
	cfg.location = path

	return cfg, nil
}

// 🔍 Discover loads explicit when set, otherwise the first of FileNames
// present in root, otherwise Default.
func Discover(ctx context.Context, root, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(ctx, explicit)
	}

	for _, name := range FileNames {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Errorf("checking %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return Load(ctx, path)
	}

	zerolog.Ctx(ctx).Debug().Str("root", root).Msg("no config file, using defaults")
	return Default(), nil
}
