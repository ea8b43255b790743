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

package log

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/wtcopy/pkg/status"
)

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.Formatter
	mu        sync.Mutex
}

// 🏭 New creates a logger that prints to console and mirrors every line to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFormatter(),
	}
}

// 📝 LogResult prints one per-file status line
func (l *Logger) LogResult(ctx context.Context, r status.CopyResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatter.FormatResult(r))

	ev := l.zlog.Info()
	if r.Outcome == status.Failed {
		ev = l.zlog.Warn().Err(r.Err)
	}
	ev.Str("file", r.RelPath).
		Str("outcome", r.Outcome.String()).
		Int64("size", r.Size).
		Str("excluded", r.Excluded).
		Msg("file result")
}

// 📊 LogSummary prints the outcome table and the excluded directory names
func (l *Logger) LogSummary(ctx context.Context, s *status.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := s.Counts()
	data := pterm.TableData{
		{"Outcome", "Files"},
		{status.Copied.String(), strconv.Itoa(counts.Copied)},
		{status.SkippedOversize.String(), strconv.Itoa(counts.SkippedOversize)},
		{status.SkippedBlacklisted.String(), strconv.Itoa(counts.SkippedBlacklisted)},
		{status.Failed.String(), strconv.Itoa(counts.Failed)},
	}

	fmt.Fprintln(l.console)
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// fall back to plain lines
		for _, row := range data[1:] {
			fmt.Fprintf(l.console, "%s: %s\n", row[0], row[1])
		}
	} else {
		fmt.Fprintln(l.console, table)
	}

	excluded := s.Excluded()
	if len(excluded) > 0 {
		fmt.Fprintf(l.console, "%s %s\n",
			color.New(color.Faint).Sprint("excluded:"),
			color.New(color.FgYellow).Sprint(strings.Join(excluded, ", ")))
	}

	l.zlog.Info().
		Int("copied", counts.Copied).
		Int("skipped_oversize", counts.SkippedOversize).
		Int("skipped_blacklisted", counts.SkippedBlacklisted).
		Int("failed", counts.Failed).
		Strs("excluded", excluded).
		Msg("sync summary")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("wtcopy")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
