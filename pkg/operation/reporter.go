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

	"github.com/walteh/wtcopy/pkg/status"
)

// 📣 Reporter receives the user-facing output of a run
type Reporter interface {
	Header(msg string)
	Infof(format string, args ...interface{})
	Successf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	// LogResult is called once per candidate, as soon as its outcome is known.
	LogResult(ctx context.Context, r status.CopyResult)
	// LogSummary is called once, in Reporting.
	LogSummary(ctx context.Context, s *status.Summary)
}
