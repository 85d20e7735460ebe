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
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/micllynn/treeverify/pkg/events"
	hashengines "github.com/micllynn/treeverify/pkg/hashing/engines"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
}

func newComparator(t *testing.T, src, dst string, opts Options) *Comparator {
	t.Helper()
	c, err := New(src, dst, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestCompare_IdenticalTrees(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	files := map[string]string{
		"docs/a.txt": "hello",
		"docs/b.txt": "world",
		"top.txt":    "top",
	}
	writeTree(t, src, files)
	writeTree(t, dst, files)

	c := newComparator(t, src, dst, Options{})
	report, err := c.Compare(context.Background(), []string{"docs", "top.txt"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if !report.OverallOK() {
		t.Error("Expected overall OK for identical trees")
	}

	if report.Len() != 2 {
		t.Errorf("Expected 2 verdicts, got %d", report.Len())
	}

	for _, v := range report.Entries() {
		if !v.Match {
			t.Errorf("Expected match for %s", v.Path)
		}
		if v.Err != nil {
			t.Errorf("Expected no error for %s, got %v", v.Path, v.Err)
		}
	}
}

func TestCompare_CorruptedFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"d/a.txt": "hello", "d/b.txt": "world"})
	writeTree(t, dst, map[string]string{"d/a.txt": "hello", "d/b.txt": "worlx"})

	c := newComparator(t, src, dst, Options{})
	report, err := c.Compare(context.Background(), []string{"d"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if report.OverallOK() {
		t.Error("Expected overall failure for corrupted tree")
	}

	v, ok := report.Entry("d")
	if !ok {
		t.Fatal("Expected a verdict for d")
	}
	if v.Match {
		t.Error("Expected folder verdict to fail")
	}
	if v.Detail == nil {
		t.Fatal("Expected mismatch detail")
	}
	if len(v.Detail.Mismatches) != 1 || v.Detail.Mismatches[0].Path != "b.txt" {
		t.Errorf("Expected exactly b.txt mismatched, got %+v", v.Detail.Mismatches)
	}
	if len(v.Detail.ExtraFiles) != 0 || len(v.Detail.MissingFiles) != 0 {
		t.Errorf("Expected no extra or missing files, got %+v", v.Detail)
	}
}

func TestCompare_MissingOnDestination(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "hello"})

	c := newComparator(t, src, dst, Options{})
	report, err := c.Compare(context.Background(), []string{"a.txt"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if report.OverallOK() {
		t.Error("Expected failure when the path is missing on the destination")
	}

	v, _ := report.Entry("a.txt")
	if v.Err == nil {
		t.Error("Expected verdict to carry an error")
	}
	if !IsType(v.Err, ErrTypeFileUnreadable) {
		t.Errorf("Expected ErrTypeFileUnreadable, got %v", v.Err)
	}
}

func TestCompare_TypeConflict(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"thing/inner.txt": "x"})
	writeTree(t, dst, map[string]string{"thing": "i am a file"})

	c := newComparator(t, src, dst, Options{})
	report, err := c.Compare(context.Background(), []string{"thing"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	v, _ := report.Entry("thing")
	if v.Match {
		t.Error("Expected type conflict to fail verification")
	}
	if v.Err == nil {
		t.Error("Expected verdict to carry an error")
	}
}

func TestCompare_SymlinkInBothTrees(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"d/real.txt": "content"})
	writeTree(t, dst, map[string]string{"d/real.txt": "content"})
	if err := os.Symlink("real.txt", filepath.Join(src, "d", "link.txt")); err != nil {
		t.Skipf("Cannot create symlink: %v", err)
	}
	if err := os.Symlink("real.txt", filepath.Join(dst, "d", "link.txt")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	c := newComparator(t, src, dst, Options{})
	report, err := c.Compare(context.Background(), []string{"d"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if !report.OverallOK() {
		t.Error("Expected identical trees to verify when both carry the same symlink")
	}
}

func TestCompare_SymlinkPath(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"real.txt": "content", "other.txt": "other", "mixed": "content"})
	writeTree(t, dst, map[string]string{"real.txt": "content", "other.txt": "other"})

	if err := os.Symlink("real.txt", filepath.Join(src, "same")); err != nil {
		t.Skipf("Cannot create symlink: %v", err)
	}
	links := []struct {
		root, name, target string
	}{
		{src, "diverged", "real.txt"},
		{dst, "same", "real.txt"},
		{dst, "diverged", "other.txt"},
		{dst, "mixed", "real.txt"},
	}
	for _, l := range links {
		if err := os.Symlink(l.target, filepath.Join(l.root, l.name)); err != nil {
			t.Fatalf("Failed to create symlink: %v", err)
		}
	}

	c := newComparator(t, src, dst, Options{})
	report, err := c.Compare(context.Background(), []string{"same", "diverged", "mixed"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if v, _ := report.Entry("same"); !v.Match {
		t.Errorf("Expected symlinks with the same target to match, got %+v", v)
	}

	if v, _ := report.Entry("diverged"); v.Match || v.Err == nil {
		t.Errorf("Expected symlinks with different targets to fail, got %+v", v)
	}

	// A regular file on one side and a symlink on the other never matches,
	// even when the link resolves to identical content.
	if v, _ := report.Entry("mixed"); v.Match || v.Err == nil {
		t.Errorf("Expected file-versus-symlink to fail, got %+v", v)
	}
}

func TestCompare_FileVerdictDigests(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"f.txt": "abc"})
	writeTree(t, dst, map[string]string{"f.txt": "abc"})

	c := newComparator(t, src, dst, Options{})
	report, err := c.Compare(context.Background(), []string{"f.txt"})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	v, _ := report.Entry("f.txt")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if v.SourceDigest.Hex() != want {
		t.Errorf("Expected source digest %s, got %s", want, v.SourceDigest.Hex())
	}
	if !v.SourceDigest.Equal(v.DestinationDigest) {
		t.Error("Expected matching digests on both sides")
	}
}

func TestCompare_Deterministic(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	files := map[string]string{}
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		files["dir/"+n+".txt"] = n
	}
	writeTree(t, src, files)
	writeTree(t, dst, files)

	serial := newComparator(t, src, dst, Options{MaxWorkers: 1})
	parallel := newComparator(t, src, dst, Options{MaxWorkers: 8})

	a, err := serial.Compare(context.Background(), []string{"dir"})
	if err != nil {
		t.Fatalf("Serial compare failed: %v", err)
	}
	b, err := parallel.Compare(context.Background(), []string{"dir"})
	if err != nil {
		t.Fatalf("Parallel compare failed: %v", err)
	}

	if a.OverallOK() != b.OverallOK() {
		t.Error("Expected identical outcomes independent of worker count")
	}

	av, _ := a.Entry("dir")
	bv, _ := b.Entry("dir")
	if !av.SourceDigest.Equal(bv.SourceDigest) {
		t.Error("Expected identical aggregate digests independent of worker count")
	}
}

func TestCompare_Cancelled(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a"})
	writeTree(t, dst, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newComparator(t, src, dst, Options{})
	_, err := c.Compare(ctx, []string{"a.txt"})
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if !IsType(err, ErrTypeCancelled) {
		t.Errorf("Expected ErrTypeCancelled, got %v", err)
	}
}

func TestCompare_EmitsEvents(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a"})
	writeTree(t, dst, map[string]string{"a.txt": "a"})

	var mu sync.Mutex
	var kinds []events.Kind
	reporter := events.Func(func(e events.Event) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, e.Kind)
	})

	c := newComparator(t, src, dst, Options{Reporter: reporter})
	if _, err := c.Compare(context.Background(), []string{"a.txt"}); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	want := []events.Kind{events.KindPathStarted, events.KindPathVerified}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("Expected events %v, got %v", want, kinds)
	}
}

func TestNew_BadRoots(t *testing.T) {
	good := t.TempDir()

	_, err := New(filepath.Join(good, "missing"), good, Options{})
	if err == nil {
		t.Fatal("Expected error for missing source root")
	}
	if !IsType(err, ErrTypeRootNotFound) {
		t.Errorf("Expected ErrTypeRootNotFound, got %v", err)
	}

	if _, err := New(good, filepath.Join(good, "missing"), Options{}); err == nil {
		t.Error("Expected error for missing destination root")
	}
}

// Importing this package must be enough to get a populated engine
// registry; no caller should have to link the memory engines themselves.
func TestNew_BuiltinAlgorithmsLinked(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	for _, algo := range []string{"sha256", "sha1", "sha512", "md5", "blake2b", "blake3"} {
		if !hashengines.IsSupported(algo) {
			t.Errorf("Expected %s to be registered, supported set is %v",
				algo, hashengines.SupportedAlgorithms())
		}
		if _, err := New(src, dst, Options{Algorithm: algo}); err != nil {
			t.Errorf("New with algorithm %s failed: %v", algo, err)
		}
	}
}

func TestNew_BadConfig(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	_, err := New(src, dst, Options{Algorithm: "no-such"})
	if err == nil {
		t.Fatal("Expected error for unknown algorithm")
	}
	if !IsType(err, ErrTypeConfiguration) {
		t.Errorf("Expected ErrTypeConfiguration, got %v", err)
	}

	if _, err := New(src, dst, Options{ChunkSize: -1}); err == nil {
		t.Error("Expected error for negative chunk size")
	}
}
