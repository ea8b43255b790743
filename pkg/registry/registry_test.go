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

package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAdd(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		paths   []string
		wantNew []bool
		wantLen int
	}{
		{
			name:    "distinct_paths",
			paths:   []string{filepath.Join(root, ".env"), filepath.Join(root, "config", "app.local.json")},
			wantNew: []bool{true, true},
			wantLen: 2,
		},
		{
			name:    "same_path_twice",
			paths:   []string{filepath.Join(root, ".env"), filepath.Join(root, ".env")},
			wantNew: []bool{true, false},
			wantLen: 1,
		},
		{
			name:    "unclean_variant",
			paths:   []string{filepath.Join(root, "config", "app.json"), root + "/config/../config/./app.json"},
			wantNew: []bool{true, false},
			wantLen: 1,
		},
		{
			name:    "case_variant_collapses",
			paths:   []string{filepath.Join(root, "App.Local.json"), filepath.Join(root, "app.local.JSON")},
			wantNew: []bool{true, false},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			require.Len(t, tt.wantNew, len(tt.paths))
			for i, p := range tt.paths {
				assert.Equal(t, tt.wantNew[i], reg.Add(p), "add %d (%s)", i, p)
			}
			assert.Equal(t, tt.wantLen, reg.Len())
			for _, p := range tt.paths {
				assert.False(t, reg.Add(p), "re-adding %s should report a duplicate", p)
			}
			assert.Equal(t, tt.wantLen, reg.Len())
		})
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	a := New()
	b := New()
	assert.True(t, a.Add(path))
	assert.True(t, b.Add(path), "a fresh registry must not see another run's paths")
}
