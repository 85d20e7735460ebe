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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/micllynn/treeverify/cmd/treeverify/cli/options"
	"github.com/micllynn/treeverify/pkg/clean"
	"github.com/micllynn/treeverify/pkg/compare"
	"github.com/micllynn/treeverify/pkg/events"
	"github.com/micllynn/treeverify/pkg/logging"
	"github.com/micllynn/treeverify/pkg/session"
	"github.com/micllynn/treeverify/pkg/snapshot"
	"github.com/micllynn/treeverify/pkg/tracing"
)

// Verify creates the verify command.
func Verify() *cobra.Command {
	o := &options.VerifyOptions{}

	long := `Verify a copied directory tree against its source.

Checksums files on both sides of a copy and compares the digests. In full
mode the whole destination is verified against the source. The diff-scoped
modes bracket an external transfer (rsync, cp, scp, ...): pre-diff records
what is missing on the destination before the transfer and verifies exactly
those paths afterwards; post-diff snapshots the destination around the
transfer and verifies what appeared.

With --delete-mismatched, destination subtrees that failed verification are
removed after the comparison so the transfer can be retried; each deletion
is confirmed interactively unless --yes is given.`

	cmd := &cobra.Command{
		Use:   "verify [OPTIONS]",
		Short: "Verify a copied directory tree against its source.",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, o)
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runVerify(cmd *cobra.Command, o *options.VerifyOptions) error {
	if err := o.Validate(); err != nil {
		return fatal(err)
	}
	cfg, err := o.ToVerifyConfig(cmd)
	if err != nil {
		return fatal(err)
	}

	log := ro.NewObservability().Logger

	ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
	defer cancel()

	var progress *progressReporter
	reporters := events.Multi{logReporter{log: log}}
	if o.Progress {
		progress = newProgressReporter()
		reporters = append(reporters, progress)
	}

	opts := cfg.CompareOptions()
	opts.Reporter = reporters

	attrs := map[string]interface{}{
		"treeverify.source":    o.Source,
		"treeverify.dest":      o.Dest,
		"treeverify.mode":      cfg.Mode(),
		"treeverify.algorithm": cfg.HashAlgorithm(),
	}
	return tracing.Run(ctx, "Verify", attrs, func(ctx context.Context) error {
		var (
			report      *compare.IntegrityReport
			cleanResult *clean.Result
			err         error
		)

		if mode, scoped := cfg.SessionMode(); scoped {
			report, cleanResult, err = runSessionVerify(ctx, o, mode, opts, log)
		} else {
			report, cleanResult, err = runFullVerify(ctx, o, opts)
		}
		if progress != nil {
			progress.Finish()
		}
		if err != nil {
			var ec *exitError
			if errors.As(err, &ec) {
				return err
			}
			return fatal(err)
		}

		printReport(cmd.OutOrStdout(), report, cleanResult)
		if !report.OverallOK() {
			return &exitError{code: 1, err: fmt.Errorf("verification failed for %d path(s)",
				len(report.FailedPaths()))}
		}
		return nil
	})
}

// runFullVerify compares every top-level entry of the source tree against
// the destination. Deletion, when requested, then applies per failed entry.
func runFullVerify(ctx context.Context, o *options.VerifyOptions, opts compare.Options) (*compare.IntegrityReport, *clean.Result, error) {
	snap, err := snapshot.Take(o.Source)
	if err != nil {
		return nil, nil, err
	}
	paths := snapshot.Prune(snap.Paths())

	comparator, err := compare.New(o.Source, o.Dest, opts)
	if err != nil {
		return nil, nil, err
	}
	report, err := comparator.Compare(ctx, paths)
	if err != nil {
		return nil, nil, err
	}

	var cleanResult *clean.Result
	if o.DeleteMismatched && !report.OverallOK() {
		confirm, ask := deletionPolicy(o)
		coordinator := clean.NewCoordinator(confirm, opts.Reporter)
		cleanResult = coordinator.MaybeDelete(report, o.Dest, ask)
	}
	return report, cleanResult, nil
}

// runSessionVerify drives the diff-scoped modes: observe, wait for the
// external transfer, verify, optionally clean.
func runSessionVerify(ctx context.Context, o *options.VerifyOptions, mode session.Mode, opts compare.Options, log logging.Logger) (*compare.IntegrityReport, *clean.Result, error) {
	confirm, ask := deletionPolicy(o)

	sess := session.New(o.Source, o.Dest, mode, opts, confirm)
	if err := sess.Begin(); err != nil {
		return nil, nil, err
	}

	if mode == session.ModePreTransferDiff {
		log.Info("%d path(s) pending transfer", len(sess.PendingPaths()))
	}

	// The transfer happens outside this process. Block until the user says
	// it finished, unless confirmation was waived.
	if !o.AssumeYes && shouldPrompt() {
		if !confirmTransferComplete() {
			return nil, nil, fatal(fmt.Errorf("aborted before verification"))
		}
	}

	report, err := sess.Verify(ctx)
	if err != nil {
		return nil, nil, err
	}

	var cleanResult *clean.Result
	if o.DeleteMismatched && !report.OverallOK() {
		cleanResult, err = sess.Clean(ask)
		if err != nil {
			return nil, nil, err
		}
	}
	return report, cleanResult, nil
}

// deletionPolicy maps the --yes flag and the terminal state onto the
// coordinator's confirm/ask pair. Without --yes and without a terminal the
// nil confirm plus ask=true declines everything, which keeps unattended
// runs from deleting anything.
func deletionPolicy(o *options.VerifyOptions) (clean.ConfirmFunc, bool) {
	if o.AssumeYes {
		return nil, false
	}
	if !shouldPrompt() {
		return nil, true
	}
	return confirmDelete, true
}

func printReport(w io.Writer, report *compare.IntegrityReport, cleanResult *clean.Result) {
	for _, v := range report.Entries() {
		switch {
		case v.Match:
			fmt.Fprintf(w, "ok        %s\n", v.Path)
		case v.Err != nil:
			fmt.Fprintf(w, "failed    %s: %v\n", v.Path, v.Err)
		default:
			fmt.Fprintf(w, "mismatch  %s\n", v.Path)
		}

		if v.Detail != nil {
			for _, p := range v.Detail.MissingFiles {
				fmt.Fprintf(w, "    missing on destination: %s\n", p)
			}
			for _, p := range v.Detail.ExtraFiles {
				fmt.Fprintf(w, "    only on destination:    %s\n", p)
			}
			for _, m := range v.Detail.Mismatches {
				fmt.Fprintf(w, "    content differs:        %s\n", m.Path)
			}
			for _, p := range v.Detail.Unreadable {
				fmt.Fprintf(w, "    unreadable:             %s\n", p)
			}
		}
	}

	if cleanResult != nil {
		for _, p := range cleanResult.Deleted() {
			fmt.Fprintf(w, "deleted   %s\n", p)
		}
		for _, p := range cleanResult.Declined() {
			fmt.Fprintf(w, "kept      %s\n", p)
		}
		for _, p := range cleanResult.Failed() {
			fmt.Fprintf(w, "undeleted %s\n", p)
		}
	}

	failed := len(report.FailedPaths())
	if report.OverallOK() {
		fmt.Fprintf(w, "OK: %d path(s) verified (%s)\n", report.Len(), report.Algorithm())
	} else {
		fmt.Fprintf(w, "FAILED: %d of %d path(s) did not verify (%s)\n",
			failed, report.Len(), report.Algorithm())
	}
}
