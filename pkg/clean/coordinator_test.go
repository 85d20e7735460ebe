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

package clean

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/micllynn/treeverify/pkg/compare"
	"github.com/micllynn/treeverify/pkg/events"
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

// failingReport verifies paths against mismatching trees so that the
// report carries real failed verdicts for the coordinator to act on.
func failingReport(t *testing.T, src, dst string, paths []string) *compare.IntegrityReport {
	t.Helper()
	c, err := compare.New(src, dst, compare.Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	report, err := c.Compare(context.Background(), paths)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	return report
}

func TestMaybeDelete_Confirmed(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"bad/a.txt": "good"})
	writeTree(t, dst, map[string]string{"bad/a.txt": "corrupt"})

	report := failingReport(t, src, dst, []string{"bad"})

	var asked []string
	coord := NewCoordinator(func(path string) bool {
		asked = append(asked, path)
		return true
	}, nil)

	result := coord.MaybeDelete(report, dst, true)

	if !reflect.DeepEqual(asked, []string{"bad"}) {
		t.Errorf("Expected confirmation for [bad], got %v", asked)
	}
	if !reflect.DeepEqual(result.Deleted(), []string{"bad"}) {
		t.Errorf("Expected deleted [bad], got %v", result.Deleted())
	}
	if _, err := os.Lstat(filepath.Join(dst, "bad")); !os.IsNotExist(err) {
		t.Error("Expected destination subtree to be removed")
	}
	// The source side is never touched.
	if _, err := os.Stat(filepath.Join(src, "bad", "a.txt")); err != nil {
		t.Errorf("Expected source tree untouched, got %v", err)
	}
}

func TestMaybeDelete_Declined(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"bad.txt": "good"})
	writeTree(t, dst, map[string]string{"bad.txt": "corrupt"})

	report := failingReport(t, src, dst, []string{"bad.txt"})

	coord := NewCoordinator(func(string) bool { return false }, nil)
	result := coord.MaybeDelete(report, dst, true)

	if !reflect.DeepEqual(result.Declined(), []string{"bad.txt"}) {
		t.Errorf("Expected declined [bad.txt], got %v", result.Declined())
	}
	if len(result.Deleted()) != 0 {
		t.Errorf("Expected nothing deleted, got %v", result.Deleted())
	}
	if _, err := os.Stat(filepath.Join(dst, "bad.txt")); err != nil {
		t.Errorf("Expected declined path untouched, got %v", err)
	}
}

func TestMaybeDelete_NoConfirmation(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"bad.txt": "good"})
	writeTree(t, dst, map[string]string{"bad.txt": "corrupt"})

	report := failingReport(t, src, dst, []string{"bad.txt"})

	// askConfirmation false: deletes without consulting confirm.
	coord := NewCoordinator(func(string) bool {
		t.Fatal("Confirm must not be called when askConfirmation is false")
		return false
	}, nil)
	result := coord.MaybeDelete(report, dst, false)

	if !reflect.DeepEqual(result.Deleted(), []string{"bad.txt"}) {
		t.Errorf("Expected deleted [bad.txt], got %v", result.Deleted())
	}
}

func TestMaybeDelete_NilConfirmDeclinesAll(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"bad.txt": "good"})
	writeTree(t, dst, map[string]string{"bad.txt": "corrupt"})

	report := failingReport(t, src, dst, []string{"bad.txt"})

	coord := NewCoordinator(nil, nil)
	result := coord.MaybeDelete(report, dst, true)

	if !reflect.DeepEqual(result.Declined(), []string{"bad.txt"}) {
		t.Errorf("Expected declined [bad.txt], got %v", result.Declined())
	}
	if _, err := os.Stat(filepath.Join(dst, "bad.txt")); err != nil {
		t.Errorf("Expected path untouched, got %v", err)
	}
}

func TestMaybeDelete_AlreadyGoneCountsAsDeleted(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"gone.txt": "content"})
	// Destination never had the file; the verdict fails, the target is
	// already absent.
	report := failingReport(t, src, dst, []string{"gone.txt"})

	coord := NewCoordinator(nil, nil)
	result := coord.MaybeDelete(report, dst, false)

	if !reflect.DeepEqual(result.Deleted(), []string{"gone.txt"}) {
		t.Errorf("Expected deleted [gone.txt], got %v", result.Deleted())
	}
}

func TestMaybeDelete_SkipsMatchingPaths(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"ok.txt": "same", "bad.txt": "good"})
	writeTree(t, dst, map[string]string{"ok.txt": "same", "bad.txt": "corrupt"})

	report := failingReport(t, src, dst, []string{"ok.txt", "bad.txt"})

	coord := NewCoordinator(nil, nil)
	result := coord.MaybeDelete(report, dst, false)

	if result.Len() != 1 {
		t.Errorf("Expected 1 path considered, got %d", result.Len())
	}
	if _, ok := result.Entry("ok.txt"); ok {
		t.Error("Expected matching path to never reach cleanup")
	}
	if _, err := os.Stat(filepath.Join(dst, "ok.txt")); err != nil {
		t.Errorf("Expected verified path untouched, got %v", err)
	}
}

func TestMaybeDelete_EmitsEvents(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"del.txt": "good", "keep.txt": "good"})
	writeTree(t, dst, map[string]string{"del.txt": "bad", "keep.txt": "bad"})

	report := failingReport(t, src, dst, []string{"del.txt", "keep.txt"})

	got := map[string]events.Kind{}
	reporter := events.Func(func(e events.Event) {
		got[e.Path] = e.Kind
	})

	coord := NewCoordinator(func(path string) bool {
		return path == "del.txt"
	}, reporter)
	coord.MaybeDelete(report, dst, true)

	if got["del.txt"] != events.KindPathDeleted {
		t.Errorf("Expected del.txt deleted event, got %v", got["del.txt"])
	}
	if got["keep.txt"] != events.KindPathSkipped {
		t.Errorf("Expected keep.txt skipped event, got %v", got["keep.txt"])
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeDeleted:  "deleted",
		OutcomeDeclined: "declined",
		OutcomeFailed:   "failed",
		Outcome(99):     "unknown",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Errorf("Expected '%s', got '%s'", want, got)
		}
	}
}
