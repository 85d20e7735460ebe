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

// Package snapshot captures point-in-time path sets of directory trees and
// diffs them.
//
// A Snapshot records every file and directory reachable from a root as a
// path relative to that root. Snapshots are immutable once taken: the diff
// between a "before" and an "after" snapshot identifies exactly the paths
// that arrived in between, which is what a verification pass needs to know.
package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Snapshot is an immutable point-in-time record of a directory tree's path
// set. Membership reflects the filesystem state at capture time on a
// best-effort basis; concurrent mutation during the walk is not detected.
type Snapshot struct {
	root    string
	taken   time.Time
	members map[string]bool
}

// Take enumerates every path (file or directory) reachable from root and
// records it relative to root. The root itself is not a member. Symlinks
// are recorded as entries but never followed, so a link cycle cannot hang
// the walk.
//
// Returns an error if root does not exist or is not a directory.
func Take(root string) (*Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("snapshot root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot root %q is not a directory", root)
	}

	members := make(map[string]bool)

	walkFn := func(path string, dir fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees simply stay out of the snapshot.
			if dir != nil && dir.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		members[filepath.ToSlash(rel)] = true
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("walk %q: %w", root, err)
	}

	return &Snapshot{
		root:    root,
		taken:   time.Now(),
		members: members,
	}, nil
}

// Root returns the root the snapshot was taken under.
func (s *Snapshot) Root() string {
	return s.root
}

// Taken returns the capture time.
func (s *Snapshot) Taken() time.Time {
	return s.taken
}

// Len returns the number of paths in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.members)
}

// Contains reports whether the given relative path was present at capture
// time.
func (s *Snapshot) Contains(path string) bool {
	return s.members[filepath.ToSlash(path)]
}

// Paths returns the members sorted lexically for deterministic output.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.members))
	for p := range s.members {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Equal reports whether two snapshots contain exactly the same path set.
// Two back-to-back snapshots of an unchanged tree are always Equal.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == other {
		return true
	}
	if other == nil {
		return false
	}
	if len(s.members) != len(other.members) {
		return false
	}
	for p := range s.members {
		if !other.members[p] {
			return false
		}
	}
	return true
}
