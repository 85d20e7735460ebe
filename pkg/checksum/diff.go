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

package checksum

import "sort"

// MapDiff holds the structured differences between a source ChecksumMap and
// a destination ChecksumMap. All slices are sorted so the same trees always
// produce the same diff.
type MapDiff struct {
	// ExtraFiles are present on the destination but not on the source.
	ExtraFiles []string

	// MissingFiles are present on the source but not on the destination.
	MissingFiles []string

	// Mismatches exist on both sides with differing digests.
	Mismatches []DigestMismatch

	// Unreadable are files that could not be checksummed on either side.
	Unreadable []string
}

// DigestMismatch is a single file whose digests disagree between the two
// sides of a comparison.
type DigestMismatch struct {
	// Path is the relative file path.
	Path string

	// SourceHash is the digest hex computed from the source tree.
	SourceHash string

	// DestinationHash is the digest hex computed from the destination tree.
	DestinationHash string
}

// IsEmpty returns true if the two maps were identical and fully readable.
func (d *MapDiff) IsEmpty() bool {
	return len(d.ExtraFiles) == 0 && len(d.MissingFiles) == 0 &&
		len(d.Mismatches) == 0 && len(d.Unreadable) == 0
}

// Diff computes the differences between a source map and a destination map.
//
// Files failing checksumming on either side are reported as Unreadable, so
// an I/O failure always surfaces as a difference rather than a silent pass.
// Returns a MapDiff with every slice sorted alphabetically.
func Diff(source, destination *ChecksumMap) *MapDiff {
	diff := &MapDiff{
		ExtraFiles:   []string{},
		MissingFiles: []string{},
		Mismatches:   []DigestMismatch{},
		Unreadable:   []string{},
	}

	unreadable := make(map[string]bool)
	for path := range source.failed {
		unreadable[path] = true
	}
	for path := range destination.failed {
		unreadable[path] = true
	}
	for path := range unreadable {
		diff.Unreadable = append(diff.Unreadable, path)
	}
	sort.Strings(diff.Unreadable)

	// Destination-only files.
	for path := range destination.items {
		if _, exists := source.items[path]; !exists && !unreadable[path] {
			diff.ExtraFiles = append(diff.ExtraFiles, path)
		}
	}
	sort.Strings(diff.ExtraFiles)

	// Source-only files.
	for path := range source.items {
		if _, exists := destination.items[path]; !exists && !unreadable[path] {
			diff.MissingFiles = append(diff.MissingFiles, path)
		}
	}
	sort.Strings(diff.MissingFiles)

	// Files on both sides, compared digest-by-digest.
	var common []string
	for path := range source.items {
		if _, exists := destination.items[path]; exists {
			common = append(common, path)
		}
	}
	sort.Strings(common)

	for _, path := range common {
		srcDigest := source.items[path]
		dstDigest := destination.items[path]
		if !srcDigest.Equal(dstDigest) {
			diff.Mismatches = append(diff.Mismatches, DigestMismatch{
				Path:            path,
				SourceHash:      srcDigest.Hex(),
				DestinationHash: dstDigest.Hex(),
			})
		}
	}

	return diff
}
