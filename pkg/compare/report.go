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

package compare

import (
	"path/filepath"
	"sort"

	"github.com/micllynn/treeverify/pkg/checksum"
	"github.com/micllynn/treeverify/pkg/hashing/digests"
)

// VerdictEntry is the match/mismatch outcome for one verified path.
//
// For a file path the two digests are the file's checksums on each side.
// For a folder path they are aggregate digests over the folder's
// ChecksumMaps, and Detail carries the per-child differences.
type VerdictEntry struct {
	// Path is the verified path, relative to both roots.
	Path string

	// IsDir records whether the verdict is folder-level.
	IsDir bool

	// Match is true iff both sides carry identical content.
	Match bool

	// SourceDigest is the checksum computed on the source side. Zero when
	// the source side could not be read.
	SourceDigest digests.Digest

	// DestinationDigest is the checksum computed on the destination side.
	// Zero when the destination side could not be read.
	DestinationDigest digests.Digest

	// Detail lists the per-child differences for folder verdicts; nil for
	// file verdicts and for matching folders.
	Detail *checksum.MapDiff

	// Err carries the I/O failure that forced the mismatch, if any.
	Err error
}

// IntegrityReport aggregates the verdicts of one verification pass.
//
// A report is created once per Compare call and never mutated afterward;
// its logical content is independent of how many workers computed the
// underlying checksums.
type IntegrityReport struct {
	sourceRoot string
	destRoot   string
	algorithm  string
	entries    map[string]VerdictEntry
	overallOK  bool
}

// NewIntegrityReport builds a report from the per-path verdicts.
//
// OverallOK is the logical AND over every entry's Match, so one mismatch,
// missing file, or I/O failure anywhere fails the whole report.
func NewIntegrityReport(sourceRoot, destRoot, algorithm string, verdicts []VerdictEntry) *IntegrityReport {
	entries := make(map[string]VerdictEntry, len(verdicts))
	overallOK := true
	for _, v := range verdicts {
		v.Path = filepath.ToSlash(v.Path)
		entries[v.Path] = v
		if !v.Match {
			overallOK = false
		}
	}

	return &IntegrityReport{
		sourceRoot: sourceRoot,
		destRoot:   destRoot,
		algorithm:  algorithm,
		entries:    entries,
		overallOK:  overallOK,
	}
}

// SourceRoot returns the source tree root the report was computed against.
func (r *IntegrityReport) SourceRoot() string {
	return r.sourceRoot
}

// DestinationRoot returns the destination tree root.
func (r *IntegrityReport) DestinationRoot() string {
	return r.destRoot
}

// Algorithm returns the digest algorithm used for the pass.
func (r *IntegrityReport) Algorithm() string {
	return r.algorithm
}

// OverallOK reports whether every verified path matched.
func (r *IntegrityReport) OverallOK() bool {
	return r.overallOK
}

// Len returns the number of verdicts in the report.
func (r *IntegrityReport) Len() int {
	return len(r.entries)
}

// Entry returns the verdict for the given path.
func (r *IntegrityReport) Entry(path string) (VerdictEntry, bool) {
	v, ok := r.entries[filepath.ToSlash(path)]
	return v, ok
}

// Entries returns every verdict sorted by path.
func (r *IntegrityReport) Entries() []VerdictEntry {
	paths := make([]string, 0, len(r.entries))
	for p := range r.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]VerdictEntry, 0, len(paths))
	for _, p := range paths {
		out = append(out, r.entries[p])
	}
	return out
}

// FailedPaths returns the sorted paths whose verdicts did not match. These
// are the candidates the deletion coordinator acts on.
func (r *IntegrityReport) FailedPaths() []string {
	failed := []string{}
	for p, v := range r.entries {
		if !v.Match {
			failed = append(failed, p)
		}
	}
	sort.Strings(failed)
	return failed
}
