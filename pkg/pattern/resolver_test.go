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

package pattern

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 writeTree creates files (relative path -> size) under root
func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0o644))
	}
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// collect runs the resolver and returns "pattern|rel" keys, sorted
func collect(t *testing.T, r *Resolver) []string {
	t.Helper()
	var got []string
	err := r.Resolve(testContext(t), func(c Candidate) error {
		got = append(got, c.Pattern+"|"+filepath.ToSlash(c.RelPath))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	return got
}

func TestResolvePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		".gitignore":                 0,
		".env":                       500,
		"node_modules/.env":          500,
		"config/app.local.json":      2048,
		"config/app.json":            10,
		"src/main.go":                10,
		".idea/workspace.xml":        10,
		".idea/inner/misc.xml":       10,
		".git/config":                10,
		"services/api/.env.local":    10,
		"services/api/app.LOCAL.yml": 10,
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(".env\n*.local.*\n.idea/\n.env.local\n"), 0o644))

	r, err := New(Options{Root: root, ExplicitPaths: []string{}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"*.local.*|config/app.local.json",
		".env.local|services/api/.env.local",
		".env|.env",
		".env|node_modules/.env",
		".idea|.idea/inner/misc.xml",
		".idea|.idea/workspace.xml",
	}, collect(t, r))
}

func TestResolveListedDirectoryWalkedOnce(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		".env":                  1,
		"node_modules/.env":     1,
		"node_modules/a/b.js":   1,
		"node_modules/a/.env":   1,
		"pkg/node_modules/c.js": 1,
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("node_modules/\n.env\n"), 0o644))

	r, err := New(Options{Root: root, ExplicitPaths: []string{}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		".env|.env",
		"node_modules|node_modules/.env",
		"node_modules|node_modules/a/.env",
		"node_modules|node_modules/a/b.js",
		"node_modules|pkg/node_modules/c.js",
	}, collect(t, r))
}

func TestResolveExplicitPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		".env":                        10,
		".claude/settings.local.json": 10,
		"config/local.yaml":           10,
	})

	r, err := New(Options{Root: root})
	require.NoError(t, err)

	// no ignore file: only the explicit list, missing entries silently omitted
	assert.Equal(t, []string{
		"|.claude/settings.local.json",
		"|.env",
		"|config/local.yaml",
	}, collect(t, r))
}

func TestResolveReportsOverlapTwice(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{".env.local": 10})
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(".env*\n*.local\n"), 0o644))

	r, err := New(Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"*.local|.env.local",
		".env*|.env.local",
		"|.env.local",
	}, collect(t, r))
}

func TestResolveIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		".env":         1,
		"a/b/.env":     1,
		"a/x.local.js": 1,
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.local.*\n.env\n"), 0o644))

	r, err := New(Options{Root: root})
	require.NoError(t, err)

	first := collect(t, r)
	second := collect(t, r)
	assert.Equal(t, first, second)
}

func TestResolvePatternOrderIndependent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		".env":              1,
		"cfg/app.local.yml": 1,
		"node_modules/.env": 1,
	})

	run := func(ignore string) []string {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(ignore), 0o644))
		r, err := New(Options{Root: root, ExplicitPaths: []string{}})
		require.NoError(t, err)
		return collect(t, r)
	}

	assert.Equal(t, run(".env\n*.local.*\n"), run("*.local.*\n.env\n"))
}

func TestResolveSkipsDirsAndSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		".env":                   1,
		"worktrees/feature/.env": 1,
		"real.local.json":        1,
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "real.local.json"), filepath.Join(root, "link.local.json")))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(".env\n*.local.json\n"), 0o644))

	r, err := New(Options{
		Root:          root,
		ExplicitPaths: []string{},
		SkipDirs:      []string{filepath.Join(root, "worktrees", "feature")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"*.local.json|real.local.json",
		".env|.env",
	}, collect(t, r))
}

func TestResolveCallbackErrorStops(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{".env": 1})

	r, err := New(Options{Root: root})
	require.NoError(t, err)

	stop := assert.AnError
	err = r.Resolve(testContext(t), func(Candidate) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestResolveCandidateMetadata(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{".env": 42})

	r, err := New(Options{Root: root})
	require.NoError(t, err)

	var got []Candidate
	require.NoError(t, r.Resolve(testContext(t), func(c Candidate) error {
		got = append(got, c)
		return nil
	}))
	require.Len(t, got, 1)

	info, err := os.Stat(filepath.Join(root, ".env"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Root(), ".env"), got[0].Path)
	assert.Equal(t, ".env", got[0].RelPath)
	assert.Equal(t, int64(42), got[0].Size)
	assert.True(t, info.ModTime().Equal(got[0].ModTime))
	assert.Empty(t, got[0].Pattern, "explicit paths carry no pattern")
}

func TestNewRequiresRoot(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
