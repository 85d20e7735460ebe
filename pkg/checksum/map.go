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

// Package checksum computes and holds per-file digests for directory trees.
//
// A ChecksumMap records the digest of every regular file under one root,
// keyed by slash-canonical path relative to that root, so two maps built
// from differently rooted trees compare path-for-path. Maps are built once
// per verification pass and read-only afterward; nothing is cached across
// passes.
package checksum

import (
	"path/filepath"
	"sort"

	"github.com/micllynn/treeverify/pkg/hashing/digests"
)

// Entry pairs one relative path with its digest.
type Entry struct {
	// Path is the slash-canonical path relative to the map's root.
	Path string

	// Digest is the checksum of the file's full contents.
	Digest digests.Digest
}

// NewEntry builds an Entry, canonicalizing the path to slash form so maps
// built on different operating systems stay comparable.
func NewEntry(path string, digest digests.Digest) Entry {
	return Entry{
		Path:   filepath.ToSlash(path),
		Digest: digest,
	}
}

// ChecksumMap maps every regular file under one root to its digest.
//
// Files the walk discovered but could not read are kept separately in a
// failed set; their presence makes the owning verification fail closed
// without preventing the rest of the tree from being checksummed. Paths
// the walk deliberately left out, such as symlinks when traversal is
// disabled, are kept in a skipped set that carries no verdict weight.
//
//nolint:revive
type ChecksumMap struct {
	root      string
	algorithm string
	items     map[string]digests.Digest
	failed    map[string]error
	skipped   []string
}

// NewChecksumMap builds a read-only map from already computed entries.
//
// The root parameter is informative only; it does not take part in
// equality. The failed map records per-file checksumming errors keyed by
// relative path, skipped the paths the walk left out on purpose; both may
// be nil.
func NewChecksumMap(root, algorithm string, entries []Entry, failed map[string]error, skipped []string) *ChecksumMap {
	items := make(map[string]digests.Digest, len(entries))
	for _, e := range entries {
		items[e.Path] = e.Digest
	}

	failedCopy := make(map[string]error, len(failed))
	for p, err := range failed {
		failedCopy[filepath.ToSlash(p)] = err
	}

	skippedCopy := make([]string, 0, len(skipped))
	for _, p := range skipped {
		skippedCopy = append(skippedCopy, filepath.ToSlash(p))
	}
	sort.Strings(skippedCopy)

	return &ChecksumMap{
		root:      root,
		algorithm: algorithm,
		items:     items,
		failed:    failedCopy,
		skipped:   skippedCopy,
	}
}

// Root returns the tree root this map was computed from.
func (m *ChecksumMap) Root() string {
	return m.root
}

// Algorithm returns the digest algorithm name used for every entry.
func (m *ChecksumMap) Algorithm() string {
	return m.algorithm
}

// Len returns the number of successfully checksummed files.
func (m *ChecksumMap) Len() int {
	return len(m.items)
}

// Digest returns the digest recorded for the given relative path.
func (m *ChecksumMap) Digest(path string) (digests.Digest, bool) {
	d, ok := m.items[filepath.ToSlash(path)]
	return d, ok
}

// Paths returns every checksummed path, sorted for deterministic reports.
func (m *ChecksumMap) Paths() []string {
	paths := make([]string, 0, len(m.items))
	for p := range m.items {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Failed returns a copy of the per-file checksumming errors, keyed by
// relative path.
func (m *ChecksumMap) Failed() map[string]error {
	out := make(map[string]error, len(m.failed))
	for p, err := range m.failed {
		out[p] = err
	}
	return out
}

// HasFailures reports whether any file under the root could not be read.
func (m *ChecksumMap) HasFailures() bool {
	return len(m.failed) > 0
}

// Skipped returns the sorted relative paths the walk left out on purpose.
func (m *ChecksumMap) Skipped() []string {
	out := make([]string, len(m.skipped))
	copy(out, m.skipped)
	return out
}

// Equal reports whether both maps contain the same paths with equal
// digests and neither has failures. Skipped paths do not take part:
// a symlink present on both sides neither matches nor mismatches.
//
// Roots are ignored; only the path-to-digest mapping matters, which is
// what makes a source map comparable with a destination map.
func (m *ChecksumMap) Equal(other *ChecksumMap) bool {
	if m == other {
		return true
	}
	if other == nil {
		return false
	}

	if len(m.failed) > 0 || len(other.failed) > 0 {
		return false
	}

	if len(m.items) != len(other.items) {
		return false
	}

	for path, digest := range m.items {
		otherDigest, ok := other.items[path]
		if !ok {
			return false
		}
		if !digest.Equal(otherDigest) {
			return false
		}
	}

	return true
}
