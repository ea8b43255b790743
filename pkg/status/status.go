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

package status

import (
	"strings"
)

// 📊 Outcome is what happened to one candidate file
type Outcome int

const (
	OutcomeUnknown     Outcome = iota
	Copied                     // File was written to the destination
	SkippedOversize            // File exceeded the size ceiling
	SkippedBlacklisted         // A path component matched the blacklist
	Failed                     // Copy was attempted and failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case Copied:
		return "copied"
	case SkippedOversize:
		return "skipped-oversize"
	case SkippedBlacklisted:
		return "skipped-blacklisted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 CopyResult is the final word on one candidate file
type CopyResult struct {
	Source      string  // Absolute source path
	Destination string  // Absolute destination path
	RelPath     string  // Path relative to both roots
	Size        int64   // Source size in bytes
	Outcome     Outcome // What happened
	Excluded    string  // Blacklisted component, for SkippedBlacklisted
	Err         error   // Cause, for Failed
}

// 🔢 Counts are the aggregate totals of a run
type Counts struct {
	Copied             int `json:"copied"`
	SkippedOversize    int `json:"skipped_oversize"`
	SkippedBlacklisted int `json:"skipped_blacklisted"`
	Failed             int `json:"failed"`
}

// Total returns the number of results counted.
func (c Counts) Total() int {
	return c.Copied + c.SkippedOversize + c.SkippedBlacklisted + c.Failed
}

// 📈 Summary accumulates the results of one run
type Summary struct {
	results      []CopyResult
	counts       Counts
	excluded     []string
	excludedSeen map[string]struct{}
}

// 🏭 NewSummary creates an empty summary
func NewSummary() *Summary {
	return &Summary{
		excludedSeen: make(map[string]struct{}),
	}
}

// 📝 Record adds one result
func (s *Summary) Record(r CopyResult) {
	s.results = append(s.results, r)

	switch r.Outcome {
	case Copied:
		s.counts.Copied++
	case SkippedOversize:
		s.counts.SkippedOversize++
	case SkippedBlacklisted:
		s.counts.SkippedBlacklisted++
		s.addExcluded(r.Excluded)
	case Failed:
		s.counts.Failed++
	}
}

func (s *Summary) addExcluded(name string) {
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	if _, ok := s.excludedSeen[key]; ok {
		return
	}
	s.excludedSeen[key] = struct{}{}
	s.excluded = append(s.excluded, name)
}

// Counts returns the aggregate totals.
func (s *Summary) Counts() Counts {
	return s.counts
}

// Excluded returns the distinct blacklisted component names, in first-seen order.
func (s *Summary) Excluded() []string {
	out := make([]string, len(s.excluded))
	copy(out, s.excluded)
	return out
}

// Results returns every recorded result in the order recorded.
func (s *Summary) Results() []CopyResult {
	out := make([]CopyResult, len(s.results))
	copy(out, s.results)
	return out
}

// Filter returns the results with the given outcome.
func (s *Summary) Filter(o Outcome) []CopyResult {
	var out []CopyResult
	for _, r := range s.results {
		if r.Outcome == o {
			out = append(out, r)
		}
	}
	return out
}

// HasFailures reports whether any copy failed.
func (s *Summary) HasFailures() bool {
	return s.counts.Failed > 0
}
