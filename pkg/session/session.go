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

// Package session orchestrates one verification run around an external
// transfer.
//
// A SyncSession observes directory state before and after a transfer it
// never performs itself: the caller runs rsync/rclone/whatever between
// Begin and Verify, then signals completion simply by calling Verify.
// Nothing is cached across sessions; every run re-reads the disk.
package session

import (
	"context"
	"fmt"

	"github.com/micllynn/treeverify/pkg/clean"
	"github.com/micllynn/treeverify/pkg/compare"
	"github.com/micllynn/treeverify/pkg/events"
	"github.com/micllynn/treeverify/pkg/snapshot"
)

// Mode selects when the diff that scopes verification is taken.
type Mode int

const (
	// ModePostTransferDiff snapshots the destination before and after the
	// transfer; the diff identifies what changed on the destination, and
	// those paths are compared against their source counterparts.
	ModePostTransferDiff Mode = iota

	// ModePreTransferDiff diffs source against destination before the
	// transfer; verification later covers exactly the paths that were
	// still missing on the destination.
	ModePreTransferDiff
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePostTransferDiff:
		return "post-transfer-diff"
	case ModePreTransferDiff:
		return "pre-transfer-diff"
	default:
		return "unknown"
	}
}

// State tracks a session's progress through its fixed lifecycle.
type State int

const (
	// StateInit is a freshly created session holding only the roots.
	StateInit State = iota
	// StateSnapshotTaken means Begin captured the pre-transfer state.
	StateSnapshotTaken
	// StateDiffComputed means the set of paths to verify is known.
	StateDiffComputed
	// StateVerified means the integrity report is available.
	StateVerified
	// StateCleaned means deletion of failed paths was at least attempted.
	StateCleaned
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateSnapshotTaken:
		return "SNAPSHOT_TAKEN"
	case StateDiffComputed:
		return "DIFF_COMPUTED"
	case StateVerified:
		return "VERIFIED"
	case StateCleaned:
		return "CLEANED"
	default:
		return "UNKNOWN"
	}
}

// SyncSession carries the state of one verification run: the two roots,
// the comparator configuration, and whatever the current lifecycle state
// requires (pre-transfer snapshot or diff, then the report).
//
// Sessions are not safe for concurrent use; one run is one goroutine's
// sequential Begin → Verify → Clean.
type SyncSession struct {
	sourceRoot string
	destRoot   string
	mode       Mode
	opts       compare.Options
	confirm    clean.ConfirmFunc

	state       State
	preSnapshot *snapshot.Snapshot // post-transfer-diff mode
	preDiff     []string           // pre-transfer-diff mode
	newPaths    []string
	report      *compare.IntegrityReport
	cleanResult *clean.Result
}

// New creates a session in StateInit. The comparator options also carry
// the reporter that will receive progress events; confirm gates cleanup
// and may be nil when cleanup is unconfirmed or never requested.
func New(sourceRoot, destRoot string, mode Mode, opts compare.Options, confirm clean.ConfirmFunc) *SyncSession {
	return &SyncSession{
		sourceRoot: sourceRoot,
		destRoot:   destRoot,
		mode:       mode,
		opts:       opts,
		confirm:    confirm,
		state:      StateInit,
	}
}

// State returns the session's current lifecycle state.
func (s *SyncSession) State() State {
	return s.state
}

// Mode returns the session's diff mode.
func (s *SyncSession) Mode() Mode {
	return s.mode
}

// Begin captures the pre-transfer observation: the destination snapshot in
// post-transfer-diff mode, or the source-versus-destination diff in
// pre-transfer-diff mode. The caller then runs the external transfer and
// calls Verify once it finishes.
func (s *SyncSession) Begin() error {
	if s.state != StateInit {
		return fmt.Errorf("Begin: session is %s, want %s", s.state, StateInit)
	}

	switch s.mode {
	case ModePostTransferDiff:
		snap, err := snapshot.Take(s.destRoot)
		if err != nil {
			return compare.NewErrorWithPath(compare.ErrTypeRootNotFound, s.destRoot,
				"snapshot destination before transfer", err)
		}
		s.preSnapshot = snap
		s.state = StateSnapshotTaken

	case ModePreTransferDiff:
		diff, err := snapshot.DiffRoots(s.sourceRoot, s.destRoot)
		if err != nil {
			return compare.NewError(compare.ErrTypeRootNotFound, "diff source against destination", err)
		}
		s.preDiff = snapshot.Prune(diff)
		s.state = StateSnapshotTaken

	default:
		return fmt.Errorf("unknown session mode %d", int(s.mode))
	}

	return nil
}

// PendingPaths returns the paths verification will cover, as far as they
// are known before Verify runs. In pre-transfer-diff mode that is the
// recorded diff; in post-transfer-diff mode the answer only exists after
// the post-transfer snapshot, so nil is returned until then.
func (s *SyncSession) PendingPaths() []string {
	if s.mode == ModePreTransferDiff {
		out := make([]string, len(s.preDiff))
		copy(out, s.preDiff)
		return out
	}
	out := make([]string, len(s.newPaths))
	copy(out, s.newPaths)
	return out
}

// Verify is the caller's signal that the external transfer completed. It
// computes the path set for this mode, compares every path on both sides,
// and stores the resulting report.
func (s *SyncSession) Verify(ctx context.Context) (*compare.IntegrityReport, error) {
	if s.state != StateSnapshotTaken {
		return nil, fmt.Errorf("Verify: session is %s, want %s", s.state, StateSnapshotTaken)
	}

	switch s.mode {
	case ModePostTransferDiff:
		after, err := snapshot.Take(s.destRoot)
		if err != nil {
			return nil, compare.NewErrorWithPath(compare.ErrTypeRootNotFound, s.destRoot,
				"snapshot destination after transfer", err)
		}
		s.newPaths = snapshot.Prune(snapshot.Diff(s.preSnapshot, after))

	case ModePreTransferDiff:
		s.newPaths = s.preDiff
	}
	s.state = StateDiffComputed

	comparator, err := compare.New(s.sourceRoot, s.destRoot, s.opts)
	if err != nil {
		return nil, err
	}

	report, err := comparator.Compare(ctx, s.newPaths)
	if err != nil {
		return nil, err
	}

	s.report = report
	s.state = StateVerified
	return report, nil
}

// Report returns the integrity report once Verify has run.
func (s *SyncSession) Report() *compare.IntegrityReport {
	return s.report
}

// Clean deletes the destination subtrees of failed paths, asking for
// per-path confirmation when ask is set. Valid only after Verify.
func (s *SyncSession) Clean(ask bool) (*clean.Result, error) {
	if s.state != StateVerified {
		return nil, fmt.Errorf("Clean: session is %s, want %s", s.state, StateVerified)
	}

	reporter := s.opts.Reporter
	if reporter == nil {
		reporter = events.Nop{}
	}

	coordinator := clean.NewCoordinator(s.confirm, reporter)
	s.cleanResult = coordinator.MaybeDelete(s.report, s.destRoot, ask)
	s.state = StateCleaned
	return s.cleanResult, nil
}
