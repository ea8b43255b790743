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
	"bufio"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// 📜 Parse extracts the supported patterns from ignore-file content, in file
// order and without duplicates.
//
// Only single-segment globs survive. Blank lines, comments and negations are
// dropped, as is anything with a path separator of either kind, a "**" or a
// brace. A single trailing "/" directory marker is stripped first.
func Parse(content string) []string {
	var out []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		p, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}

// ParseLine returns the pattern on one ignore-file line, or false when the
// line is empty, a comment, or uses syntax this resolver does not support.
func ParseLine(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return "", false
	case strings.HasPrefix(line, "#"):
		return "", false
	case strings.HasPrefix(line, "!"):
		return "", false
	}

	line = strings.TrimSuffix(line, "/")
	if line == "" || strings.ContainsAny(line, `/\`) || strings.Contains(line, "**") {
		return "", false
	}
	// braces are literal in ignore files but alternation to doublestar
	if strings.ContainsAny(line, "{}") {
		return "", false
	}

	if !doublestar.ValidatePattern(line) {
		return "", false
	}

	return line, true
}
