// Copyright 2026 The Treeverify Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/micllynn/treeverify/pkg/events"
	"github.com/micllynn/treeverify/pkg/logging"
	"github.com/schollz/progressbar/v3"
)

// progressReporter renders verification progress as a spinner with a count
// on stderr. The total is unknown up front in the diff-scoped modes, so an
// indeterminate bar is used throughout.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

func newProgressReporter() *progressReporter {
	bar := progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("verifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(120*time.Millisecond),
	)
	return &progressReporter{bar: bar}
}

// Report advances the bar on each verified path.
func (r *progressReporter) Report(e events.Event) {
	switch e.Kind {
	case events.KindPathStarted:
		r.bar.Describe("verifying " + e.Path)
	case events.KindPathVerified:
		_ = r.bar.Add(1)
	}
}

// Finish clears the bar so report output starts on a clean line.
func (r *progressReporter) Finish() {
	_ = r.bar.Finish()
	fmt.Fprintln(os.Stderr)
}

// logReporter forwards progress events to the structured logger.
type logReporter struct {
	log logging.Logger
}

// Report logs each event at a level matching its outcome.
func (r logReporter) Report(e events.Event) {
	switch e.Kind {
	case events.KindPathStarted:
		r.log.Debug("verifying %s", e.Path)
	case events.KindPathVerified:
		if e.Err != nil {
			r.log.Warn("verify %s: %v", e.Path, e.Err)
		} else if e.Match {
			r.log.Debug("verified %s", e.Path)
		} else {
			r.log.Warn("mismatch at %s", e.Path)
		}
	case events.KindPathDeleted:
		r.log.Info("deleted %s", e.Path)
	case events.KindPathSkipped:
		if e.Err != nil {
			r.log.Error("delete %s: %v", e.Path, e.Err)
		} else {
			r.log.Info("kept %s", e.Path)
		}
	}
}
