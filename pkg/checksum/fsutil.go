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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CheckFileOrDirectory checks that the given path is either a regular file
// or a directory. There is no support for sockets, pipes, or other special
// files. A broken symlink, a missing path, or a permission failure is an
// error. If followSymlinks is false (the default), symlinks are rejected
// even when they ultimately point at a regular file or directory; this is
// the fixed policy that keeps tree walks cycle-free.
func CheckFileOrDirectory(path string, followSymlinks bool) error {
	// Lstat so symlinks are visible without being followed.
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("cannot use %q as file or directory: %w", path, err)
	}

	mode := info.Mode()
	isSymlink := mode&os.ModeSymlink != 0

	if !followSymlinks && isSymlink {
		return fmt.Errorf(
			"cannot use %q because it is a symlink; this behavior can be changed with followSymlinks", path,
		)
	}

	if isSymlink && followSymlinks {
		info, err = os.Stat(path)
		if err != nil {
			return fmt.Errorf(
				"cannot use %q as file or directory; it might be a broken symlink, missing, or permission denied: %w",
				path, err,
			)
		}
		mode = info.Mode()
	}

	if !mode.IsRegular() && !mode.IsDir() {
		return fmt.Errorf(
			"cannot use %q as file or directory; it might be a special file, missing, or there might be a permission issue",
			path,
		)
	}

	return nil
}

// CheckDirectory checks that root exists and is a directory. This is the
// fatal, session-aborting variant: a bad root means nothing under it can be
// verified at all.
func CheckDirectory(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root %q not found: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %q is not a directory", root)
	}
	return nil
}

// ShouldIgnore determines if the provided path should be skipped during a
// tree walk.
//
// If an entry in ignorePaths is a directory, all of its children are also
// ignored. The check is done via path relativity, so "a/b" ignores "a/b"
// itself and everything beneath it.
func ShouldIgnore(path string, ignorePaths []string) bool {
	if len(ignorePaths) == 0 {
		return false
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		// If the path cannot be resolved, err on the side of keeping it.
		return false
	}

	for _, base := range ignorePaths {
		if base == "" {
			continue
		}

		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}

		rel, err := filepath.Rel(absBase, absPath)
		if err != nil {
			continue
		}

		if rel == "." {
			return true
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
