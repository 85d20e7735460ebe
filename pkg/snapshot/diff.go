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

package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// Diff returns the paths present in after but absent in before, sorted
// lexically. Each addition appears exactly once (snapshots are sets).
//
// Paths that disappeared between the snapshots are deliberately not
// reported: verification only cares about newly arrived content, never
// about deletions on the far side.
func Diff(before, after *Snapshot) []string {
	additions := []string{}
	for p := range after.members {
		if !before.members[p] {
			additions = append(additions, p)
		}
	}
	sort.Strings(additions)
	return additions
}

// DiffRoots enumerates both roots live and returns the paths present under
// sourceRoot but absent under destRoot: the content that has not yet been
// copied and will be the object of verification once the transfer is done.
//
// Either root missing or not a directory is a fatal error.
func DiffRoots(sourceRoot, destRoot string) ([]string, error) {
	source, err := Take(sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("snapshot source: %w", err)
	}

	dest, err := Take(destRoot)
	if err != nil {
		return nil, fmt.Errorf("snapshot destination: %w", err)
	}

	return Diff(dest, source), nil
}

// Prune drops every path whose ancestor is already in paths, leaving only
// subtree roots. Input must be sorted; output stays sorted.
//
// Verifying "a" already covers "a/b", so pruning keeps each new path from
// being verified more than once.
func Prune(paths []string) []string {
	pruned := []string{}
	for _, p := range paths {
		covered := false
		for _, root := range pruned {
			if strings.HasPrefix(p, root+"/") {
				covered = true
				break
			}
		}
		if !covered {
			pruned = append(pruned, p)
		}
	}
	return pruned
}
