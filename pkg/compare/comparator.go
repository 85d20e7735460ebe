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

// Package compare computes source-versus-destination checksum verdicts and
// aggregates them into an integrity report.
//
// The comparator never mutates either tree; its only side effects are
// filesystem reads and the progress events it emits.
package compare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/micllynn/treeverify/pkg/checksum"
	"github.com/micllynn/treeverify/pkg/events"
	hashengines "github.com/micllynn/treeverify/pkg/hashing/engines"
	fileio "github.com/micllynn/treeverify/pkg/hashing/engines/io"

	// Register the built-in hash engines.
	_ "github.com/micllynn/treeverify/pkg/hashing/engines/memory"

	"github.com/micllynn/treeverify/pkg/tracing"
)

// DefaultChunkSize is the read chunk size used when none is configured.
const DefaultChunkSize = 8192

// Options configures a Comparator.
type Options struct {
	// Algorithm names the digest function; empty means "sha256".
	Algorithm string

	// ChunkSize is the per-read buffer size in bytes; 0 means
	// DefaultChunkSize, negative is invalid.
	ChunkSize int

	// MaxWorkers bounds the checksum worker pool; <= 0 means NumCPU.
	MaxWorkers int

	// FollowSymlinks enables symlink traversal during tree walks.
	FollowSymlinks bool

	// IgnorePaths are excluded from every tree walk.
	IgnorePaths []string

	// Reporter receives progress events; nil means discard.
	Reporter events.Reporter
}

// Comparator verifies paths present on both a source and a destination
// root by checksumming each side and comparing the results.
type Comparator struct {
	sourceRoot     string
	destRoot       string
	algorithm      string
	chunkSize      int
	followSymlinks bool
	reporter       events.Reporter
	tree           *checksum.TreeChecksummer
}

// New validates the two roots and builds a Comparator.
//
// A missing or non-directory root is an ErrTypeRootNotFound, an unknown
// algorithm an ErrTypeConfiguration; both are fatal to the session.
func New(sourceRoot, destRoot string, opts Options) (*Comparator, error) {
	if err := checksum.CheckDirectory(sourceRoot); err != nil {
		return nil, NewErrorWithPath(ErrTypeRootNotFound, sourceRoot, "invalid source root", err)
	}
	if err := checksum.CheckDirectory(destRoot); err != nil {
		return nil, NewErrorWithPath(ErrTypeRootNotFound, destRoot, "invalid destination root", err)
	}

	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = "sha256"
	}
	if !hashengines.IsSupported(algorithm) {
		return nil, NewError(ErrTypeConfiguration,
			fmt.Sprintf("unsupported hash algorithm %q (supported: %v)",
				algorithm, hashengines.SupportedAlgorithms()), nil)
	}

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < 0 {
		return nil, NewError(ErrTypeConfiguration,
			fmt.Sprintf("chunk size must be non-negative, got %d", chunkSize), nil)
	}

	factory := fileio.NewFileChecksummerFactory(algorithm, chunkSize)
	tree, err := checksum.NewTreeChecksummer(factory, opts.MaxWorkers, opts.FollowSymlinks, opts.IgnorePaths)
	if err != nil {
		return nil, NewError(ErrTypeConfiguration, "build tree checksummer", err)
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = events.Nop{}
	}

	return &Comparator{
		sourceRoot:     sourceRoot,
		destRoot:       destRoot,
		algorithm:      algorithm,
		chunkSize:      chunkSize,
		followSymlinks: opts.FollowSymlinks,
		reporter:       reporter,
		tree:           tree,
	}, nil
}

// Algorithm returns the digest algorithm the comparator uses.
func (c *Comparator) Algorithm() string {
	return c.algorithm
}

// Compare verifies every path in paths on both sides and aggregates the
// verdicts into an IntegrityReport.
//
// Each input path yields exactly one VerdictEntry: folder paths get a
// folder-level verdict (matching iff the two subtree ChecksumMaps are
// identical), file paths a file-level one. A path missing on either side,
// a type conflict, or any I/O failure produces a failing verdict instead
// of an error, so the report fails closed while the remaining paths are
// still verified. Cancellation discards the partial report.
func (c *Comparator) Compare(ctx context.Context, paths []string) (*IntegrityReport, error) {
	var report *IntegrityReport

	err := tracing.Run(ctx, "compare.Compare", map[string]interface{}{
		"source":    c.sourceRoot,
		"dest":      c.destRoot,
		"algorithm": c.algorithm,
		"paths":     len(paths),
	}, func(ctx context.Context) error {
		verdicts := make([]VerdictEntry, 0, len(paths))

		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				return NewError(ErrTypeCancelled, "verification aborted", err)
			}

			c.reporter.Report(events.Now(events.KindPathStarted, p))

			verdict, err := c.comparePath(ctx, p)
			if err != nil {
				return err
			}
			verdicts = append(verdicts, verdict)

			e := events.Now(events.KindPathVerified, p)
			e.Match = verdict.Match
			e.Err = verdict.Err
			c.reporter.Report(e)
		}

		report = NewIntegrityReport(c.sourceRoot, c.destRoot, c.algorithm, verdicts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// comparePath produces the verdict for a single relative path. Only
// cancellation is returned as an error; everything else becomes a failing
// verdict.
//
// Symlink policy matches the tree walk: paths are inspected with Lstat,
// and with traversal disabled a symlink is compared by its link target
// rather than followed.
func (c *Comparator) comparePath(ctx context.Context, path string) (VerdictEntry, error) {
	rel := filepath.FromSlash(path)
	srcPath := filepath.Join(c.sourceRoot, rel)
	dstPath := filepath.Join(c.destRoot, rel)

	srcInfo, srcErr := os.Lstat(srcPath)
	dstInfo, dstErr := os.Lstat(dstPath)

	switch {
	case srcErr != nil:
		return VerdictEntry{
			Path:  path,
			Match: false,
			Err:   NewErrorWithPath(ErrTypeFileUnreadable, path, "missing or unreadable on source side", srcErr),
		}, nil
	case dstErr != nil:
		return VerdictEntry{
			Path:  path,
			IsDir: srcInfo.IsDir(),
			Match: false,
			Err:   NewErrorWithPath(ErrTypeFileUnreadable, path, "missing or unreadable on destination side", dstErr),
		}, nil
	}

	srcLink := srcInfo.Mode()&os.ModeSymlink != 0
	dstLink := dstInfo.Mode()&os.ModeSymlink != 0

	if srcLink || dstLink {
		if !c.followSymlinks {
			if srcLink != dstLink {
				return VerdictEntry{
					Path:  path,
					IsDir: srcInfo.IsDir(),
					Match: false,
					Err: NewErrorWithPath(ErrTypeIO, path,
						"path is a symlink on one side only", nil),
				}, nil
			}
			return c.compareSymlink(path, srcPath, dstPath), nil
		}

		// Traversal enabled: resolve both sides and compare the targets.
		if srcLink {
			if srcInfo, srcErr = os.Stat(srcPath); srcErr != nil {
				return VerdictEntry{
					Path:  path,
					Match: false,
					Err:   NewErrorWithPath(ErrTypeFileUnreadable, path, "broken symlink on source side", srcErr),
				}, nil
			}
		}
		if dstLink {
			if dstInfo, dstErr = os.Stat(dstPath); dstErr != nil {
				return VerdictEntry{
					Path:  path,
					IsDir: srcInfo.IsDir(),
					Match: false,
					Err:   NewErrorWithPath(ErrTypeFileUnreadable, path, "broken symlink on destination side", dstErr),
				}, nil
			}
		}
	}

	switch {
	case srcInfo.IsDir() != dstInfo.IsDir():
		return VerdictEntry{
			Path:  path,
			IsDir: srcInfo.IsDir(),
			Match: false,
			Err: NewErrorWithPath(ErrTypeIO, path,
				"path is a directory on one side and a file on the other", nil),
		}, nil
	case srcInfo.IsDir():
		return c.compareFolder(ctx, path, srcPath, dstPath)
	default:
		return c.compareFile(path, srcPath, dstPath), nil
	}
}

// compareSymlink compares a symlink present on both sides by its link
// target, without dereferencing either side.
func (c *Comparator) compareSymlink(path, srcPath, dstPath string) VerdictEntry {
	verdict := VerdictEntry{Path: path}

	srcTarget, err := os.Readlink(srcPath)
	if err != nil {
		verdict.Err = NewErrorWithPath(ErrTypeFileUnreadable, path, "read source symlink", err)
		return verdict
	}

	dstTarget, err := os.Readlink(dstPath)
	if err != nil {
		verdict.Err = NewErrorWithPath(ErrTypeFileUnreadable, path, "read destination symlink", err)
		return verdict
	}

	verdict.Match = srcTarget == dstTarget
	if !verdict.Match {
		verdict.Err = NewErrorWithPath(ErrTypeIO, path,
			fmt.Sprintf("symlink targets differ: %q vs %q", srcTarget, dstTarget), nil)
	}
	return verdict
}

// compareFolder checksums the subtree on both sides and compares the two
// maps key-by-key. The folder matches iff the file sets are identical,
// every digest agrees, and no file failed to read on either side.
func (c *Comparator) compareFolder(ctx context.Context, path, srcPath, dstPath string) (VerdictEntry, error) {
	srcMap, err := c.tree.ChecksumTree(ctx, srcPath, nil)
	if err != nil {
		if ctx.Err() != nil {
			return VerdictEntry{}, NewError(ErrTypeCancelled, "verification aborted", ctx.Err())
		}
		return VerdictEntry{
			Path:  path,
			IsDir: true,
			Match: false,
			Err:   NewErrorWithPath(ErrTypeIO, path, "checksum source subtree", err),
		}, nil
	}

	dstMap, err := c.tree.ChecksumTree(ctx, dstPath, nil)
	if err != nil {
		if ctx.Err() != nil {
			return VerdictEntry{}, NewError(ErrTypeCancelled, "verification aborted", ctx.Err())
		}
		return VerdictEntry{
			Path:  path,
			IsDir: true,
			Match: false,
			Err:   NewErrorWithPath(ErrTypeIO, path, "checksum destination subtree", err),
		}, nil
	}

	verdict := VerdictEntry{
		Path:  path,
		IsDir: true,
		Match: srcMap.Equal(dstMap),
	}

	// Aggregate digests are only computable for fully readable subtrees.
	if d, err := srcMap.RootDigest(); err == nil {
		verdict.SourceDigest = d
	}
	if d, err := dstMap.RootDigest(); err == nil {
		verdict.DestinationDigest = d
	}

	if !verdict.Match {
		diff := checksum.Diff(srcMap, dstMap)
		verdict.Detail = diff
		if len(diff.Unreadable) > 0 {
			verdict.Err = NewErrorWithPath(ErrTypeFileUnreadable, path,
				fmt.Sprintf("%d file(s) could not be checksummed", len(diff.Unreadable)), nil)
		}
	}

	return verdict, nil
}

// compareFile checksums one file on both sides and compares the digests
// byte-for-byte.
func (c *Comparator) compareFile(path, srcPath, dstPath string) VerdictEntry {
	verdict := VerdictEntry{Path: path}

	factory := fileio.NewFileChecksummerFactory(c.algorithm, c.chunkSize)

	srcHasher, err := factory(srcPath)
	if err == nil {
		verdict.SourceDigest, err = srcHasher.Compute()
	}
	if err != nil {
		verdict.Err = NewErrorWithPath(ErrTypeFileUnreadable, path, "checksum source file", err)
		return verdict
	}

	dstHasher, err := factory(dstPath)
	if err == nil {
		verdict.DestinationDigest, err = dstHasher.Compute()
	}
	if err != nil {
		verdict.Err = NewErrorWithPath(ErrTypeFileUnreadable, path, "checksum destination file", err)
		return verdict
	}

	verdict.Match = verdict.SourceDigest.Equal(verdict.DestinationDigest)
	return verdict
}
