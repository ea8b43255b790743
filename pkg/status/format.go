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
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 40 // Base width for the relative path
	statusWidth = 20 // Width for outcome text
)

// Formatter defines how results are rendered for people.
type Formatter interface {
	// FormatResult formats a single copy result line
	FormatResult(r CopyResult) string
}

// DefaultFormatter renders colored, fixed-width lines.
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// 🎯 FormatResult formats a copy result for display
func (f *DefaultFormatter) FormatResult(r CopyResult) string {
	var prefix, detail string
	switch r.Outcome {
	case Copied:
		prefix = color.GreenString("✓")
	case SkippedBlacklisted:
		prefix = color.HiBlackString("⊘")
		detail = "in " + r.Excluded
	case SkippedOversize:
		prefix = color.YellowString("⇡")
		detail = formatBytes(r.Size)
	case Failed:
		prefix = color.RedString("✗")
		if r.Err != nil {
			detail = r.Err.Error()
		}
	default:
		prefix = color.HiBlackString("-")
	}

	line := fmt.Sprintf("%s%s %-*s %-*s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, r.RelPath,
		statusWidth, r.Outcome.String(),
	)
	if detail != "" {
		line += " " + detail
	}
	return strings.TrimRight(line, " ")
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
