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

// Package clean removes destination subtrees that failed verification so a
// resynchronization pass can retry them.
//
// Deletion is destructive and irreversible, so it is never automatic: the
// caller opts in, and can additionally gate every path behind an injected
// yes/no confirmation. The coordinator runs strictly after a verification
// pass has completed; it is the only component that ever mutates the
// destination tree.
package clean

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/micllynn/treeverify/pkg/compare"
	"github.com/micllynn/treeverify/pkg/events"
)

// ConfirmFunc answers the yes/no question "delete this destination
// subtree?". In a CLI this is an interactive prompt; tests inject a
// canned answer.
type ConfirmFunc func(path string) bool

// Outcome classifies what happened to one failing path during cleanup.
type Outcome int

const (
	// OutcomeDeleted means the destination subtree was removed (or was
	// already gone, which amounts to the same thing for a resync).
	OutcomeDeleted Outcome = iota

	// OutcomeDeclined means confirmation was refused; the path is untouched.
	// This is a normal skip, not an error.
	OutcomeDeclined

	// OutcomeFailed means removal was attempted but failed.
	OutcomeFailed
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeDeclined:
		return "declined"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PathResult records the cleanup outcome for one failing path.
type PathResult struct {
	// Path is the relative path the verdict flagged.
	Path string

	// Outcome says whether the subtree was deleted, declined, or failed.
	Outcome Outcome

	// Err carries the removal failure for OutcomeFailed.
	Err error
}

// Result aggregates the per-path cleanup outcomes of one MaybeDelete call.
type Result struct {
	results map[string]PathResult
}

// Deleted returns the sorted paths whose destination subtrees were removed.
func (r *Result) Deleted() []string {
	return r.pathsWith(OutcomeDeleted)
}

// Declined returns the sorted paths left untouched after a refused
// confirmation.
func (r *Result) Declined() []string {
	return r.pathsWith(OutcomeDeclined)
}

// Failed returns the sorted paths whose removal failed.
func (r *Result) Failed() []string {
	return r.pathsWith(OutcomeFailed)
}

// Entry returns the outcome recorded for the given path.
func (r *Result) Entry(path string) (PathResult, bool) {
	pr, ok := r.results[filepath.ToSlash(path)]
	return pr, ok
}

// Len returns the number of paths cleanup considered.
func (r *Result) Len() int {
	return len(r.results)
}

func (r *Result) pathsWith(outcome Outcome) []string {
	paths := []string{}
	for p, pr := range r.results {
		if pr.Outcome == outcome {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Coordinator drives confirmable deletion of failed destination subtrees.
type Coordinator struct {
	confirm  ConfirmFunc
	reporter events.Reporter
}

// NewCoordinator builds a Coordinator.
//
// confirm may be nil; when confirmation is then requested every path is
// declined, which is the safe default for a coordinator wired without a
// prompt. reporter may be nil to discard events.
func NewCoordinator(confirm ConfirmFunc, reporter events.Reporter) *Coordinator {
	if reporter == nil {
		reporter = events.Nop{}
	}
	return &Coordinator{
		confirm:  confirm,
		reporter: reporter,
	}
}

// MaybeDelete removes the destination subtree for every path in the report
// whose verdict did not match.
//
// With askConfirmation set, each path is individually confirmed first; a
// declined path stays untouched and is recorded as declined. A path that
// is already gone (deleted along with an earlier parent, or raced away)
// counts as deleted. Removal failures are recorded per path and never stop
// the remaining deletions.
func (c *Coordinator) MaybeDelete(report *compare.IntegrityReport, destRoot string, askConfirmation bool) *Result {
	result := &Result{results: make(map[string]PathResult)}

	for _, path := range report.FailedPaths() {
		target := filepath.Join(destRoot, filepath.FromSlash(path))

		if askConfirmation && !c.confirmed(path) {
			result.results[path] = PathResult{Path: path, Outcome: OutcomeDeclined}
			c.reporter.Report(events.Now(events.KindPathSkipped, path))
			continue
		}

		if _, err := os.Lstat(target); os.IsNotExist(err) {
			result.results[path] = PathResult{Path: path, Outcome: OutcomeDeleted}
			c.reporter.Report(events.Now(events.KindPathDeleted, path))
			continue
		}

		if err := os.RemoveAll(target); err != nil {
			deleteErr := compare.NewErrorWithPath(compare.ErrTypeDeletionFailed, path,
				"remove destination subtree", err)
			result.results[path] = PathResult{Path: path, Outcome: OutcomeFailed, Err: deleteErr}

			e := events.Now(events.KindPathSkipped, path)
			e.Err = deleteErr
			c.reporter.Report(e)
			continue
		}

		result.results[path] = PathResult{Path: path, Outcome: OutcomeDeleted}
		c.reporter.Report(events.Now(events.KindPathDeleted, path))
	}

	return result
}

func (c *Coordinator) confirmed(path string) bool {
	if c.confirm == nil {
		return false
	}
	return c.confirm(path)
}
