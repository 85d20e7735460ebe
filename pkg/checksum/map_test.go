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

import (
	"errors"
	"reflect"
	"testing"

	"github.com/micllynn/treeverify/pkg/hashing/digests"
)

func digestOf(b byte) digests.Digest {
	return digests.NewDigest("sha256", []byte{b})
}

func mapOf(root string, items map[string]byte, failed map[string]error) *ChecksumMap {
	entries := make([]Entry, 0, len(items))
	for p, b := range items {
		entries = append(entries, NewEntry(p, digestOf(b)))
	}
	return NewChecksumMap(root, "sha256", entries, failed, nil)
}

func TestChecksumMap_Basics(t *testing.T) {
	m := mapOf("/src", map[string]byte{"a.txt": 1, "dir/b.txt": 2}, nil)

	if m.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", m.Len())
	}

	if m.Algorithm() != "sha256" {
		t.Errorf("Expected algorithm 'sha256', got '%s'", m.Algorithm())
	}

	wantPaths := []string{"a.txt", "dir/b.txt"}
	if !reflect.DeepEqual(m.Paths(), wantPaths) {
		t.Errorf("Expected paths %v, got %v", wantPaths, m.Paths())
	}

	d, ok := m.Digest("dir/b.txt")
	if !ok {
		t.Fatal("Expected digest for dir/b.txt")
	}
	if !d.Equal(digestOf(2)) {
		t.Errorf("Unexpected digest for dir/b.txt: %s", d)
	}

	if _, ok := m.Digest("missing"); ok {
		t.Error("Expected no digest for unknown path")
	}
}

func TestChecksumMap_Equal(t *testing.T) {
	a := mapOf("/src", map[string]byte{"a": 1, "b": 2}, nil)
	b := mapOf("/dst", map[string]byte{"a": 1, "b": 2}, nil)

	if !a.Equal(b) {
		t.Error("Expected maps with identical entries to be equal regardless of root")
	}

	c := mapOf("/dst", map[string]byte{"a": 1, "b": 3}, nil)
	if a.Equal(c) {
		t.Error("Expected maps with different digests to be unequal")
	}

	d := mapOf("/dst", map[string]byte{"a": 1}, nil)
	if a.Equal(d) {
		t.Error("Expected maps with different path sets to be unequal")
	}
}

func TestChecksumMap_FailuresBreakEquality(t *testing.T) {
	a := mapOf("/src", map[string]byte{"a": 1}, nil)
	b := mapOf("/dst", map[string]byte{"a": 1}, map[string]error{"b": errors.New("unreadable")})

	if a.Equal(b) {
		t.Error("Expected a map with failures to never compare equal")
	}
	if b.Equal(b) != true {
		// Identity is the one exception.
		t.Error("Expected a map to equal itself")
	}

	if !b.HasFailures() {
		t.Error("Expected HasFailures to be true")
	}
}

func TestChecksumMap_SkippedIgnoredByEquality(t *testing.T) {
	a := NewChecksumMap("/src", "sha256",
		[]Entry{NewEntry("a", digestOf(1))}, nil, []string{"link.txt"})
	b := NewChecksumMap("/dst", "sha256",
		[]Entry{NewEntry("a", digestOf(1))}, nil, []string{"link.txt"})
	c := mapOf("/dst", map[string]byte{"a": 1}, nil)

	if !a.Equal(b) {
		t.Error("Expected maps with matching entries and skipped paths to be equal")
	}
	if !a.Equal(c) {
		t.Error("Expected skipped paths to carry no weight in equality")
	}

	if a.HasFailures() {
		t.Errorf("Expected skipped paths to not count as failures, got %v", a.Failed())
	}

	want := []string{"link.txt"}
	if !reflect.DeepEqual(a.Skipped(), want) {
		t.Errorf("Expected skipped %v, got %v", want, a.Skipped())
	}
}

func TestDiff_Empty(t *testing.T) {
	a := mapOf("/src", map[string]byte{"a": 1, "b": 2}, nil)
	b := mapOf("/dst", map[string]byte{"a": 1, "b": 2}, nil)

	diff := Diff(a, b)
	if !diff.IsEmpty() {
		t.Errorf("Expected empty diff, got %+v", diff)
	}
}

func TestDiff_Categories(t *testing.T) {
	source := mapOf("/src", map[string]byte{"same": 1, "changed": 2, "src-only": 3}, nil)
	dest := mapOf("/dst", map[string]byte{"same": 1, "changed": 9, "dst-only": 4}, nil)

	diff := Diff(source, dest)

	if !reflect.DeepEqual(diff.MissingFiles, []string{"src-only"}) {
		t.Errorf("Expected missing [src-only], got %v", diff.MissingFiles)
	}

	if !reflect.DeepEqual(diff.ExtraFiles, []string{"dst-only"}) {
		t.Errorf("Expected extra [dst-only], got %v", diff.ExtraFiles)
	}

	if len(diff.Mismatches) != 1 || diff.Mismatches[0].Path != "changed" {
		t.Fatalf("Expected one mismatch at 'changed', got %+v", diff.Mismatches)
	}

	m := diff.Mismatches[0]
	if m.SourceHash != digestOf(2).Hex() || m.DestinationHash != digestOf(9).Hex() {
		t.Errorf("Mismatch carries wrong digests: %+v", m)
	}
}

func TestDiff_UnreadableExcludedFromExtraMissing(t *testing.T) {
	source := mapOf("/src", map[string]byte{"ok": 1}, map[string]error{"bad": errors.New("read error")})
	dest := mapOf("/dst", map[string]byte{"ok": 1, "bad": 2}, nil)

	diff := Diff(source, dest)

	if len(diff.ExtraFiles) != 0 {
		t.Errorf("Expected unreadable path to not show as extra, got %v", diff.ExtraFiles)
	}
	if !reflect.DeepEqual(diff.Unreadable, []string{"bad"}) {
		t.Errorf("Expected unreadable [bad], got %v", diff.Unreadable)
	}
	if diff.IsEmpty() {
		t.Error("Expected diff with unreadable files to be non-empty")
	}
}

func TestDiff_Sorted(t *testing.T) {
	source := mapOf("/src", map[string]byte{"z": 1, "a": 2, "m": 3}, nil)
	dest := mapOf("/dst", map[string]byte{}, nil)

	diff := Diff(source, dest)
	want := []string{"a", "m", "z"}
	if !reflect.DeepEqual(diff.MissingFiles, want) {
		t.Errorf("Expected sorted missing %v, got %v", want, diff.MissingFiles)
	}
}
