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
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	fileio "github.com/micllynn/treeverify/pkg/hashing/engines/io"
)

// TreeChecksummer walks a directory tree and computes the digest of every
// regular file under it, producing a ChecksumMap keyed by path relative to
// the root.
//
// Checksumming is embarrassingly parallel across files, so files are hashed
// by a worker pool bounded by maxWorkers. An individual unreadable file is
// recorded in the map's failed set instead of aborting the walk; only a bad
// root is fatal. Unless followSymlinks was enabled, symlinks found during
// the walk are left out and recorded in the map's skipped set.
type TreeChecksummer struct {
	hasherFactory   fileio.FileHasherFactory
	maxWorkers      int
	followSymlinks  bool
	baseIgnorePaths []string
	hashType        string
}

// NewTreeChecksummer constructs a TreeChecksummer.
//
//   - hasherFactory: creates one FileHasher per discovered file
//   - maxWorkers: pool size for parallel hashing; <= 0 means NumCPU
//   - followSymlinks: whether symlinks are traversed (default false)
//   - baseIgnorePaths: paths excluded from every walk this checksummer runs
func NewTreeChecksummer(
	hasherFactory fileio.FileHasherFactory,
	maxWorkers int,
	followSymlinks bool,
	baseIgnorePaths []string,
) (*TreeChecksummer, error) {
	if hasherFactory == nil {
		return nil, fmt.Errorf("hasherFactory must not be nil")
	}

	// Probe the factory once so the map can record its algorithm name.
	probe, err := hasherFactory(".")
	if err != nil {
		return nil, fmt.Errorf("create probe file hasher: %w", err)
	}

	hashType := probe.DigestName()
	baseCopy := make([]string, len(baseIgnorePaths))
	copy(baseCopy, baseIgnorePaths)

	return &TreeChecksummer{
		hasherFactory:   hasherFactory,
		maxWorkers:      maxWorkers,
		followSymlinks:  followSymlinks,
		baseIgnorePaths: baseCopy,
		hashType:        hashType,
	}, nil
}

// SetFollowSymlinks updates whether symlink traversal is allowed.
func (s *TreeChecksummer) SetFollowSymlinks(follow bool) {
	s.followSymlinks = follow
}

// ChecksumTree checksums every regular file reachable from root.
//
// The returned map's paths are always relative to root, independent of
// whether root itself is absolute or relative. Cancellation is honored at
// file boundaries: once ctx is done the partial result is discarded and
// ctx.Err() returned.
func (s *TreeChecksummer) ChecksumTree(
	ctx context.Context,
	root string,
	ignorePaths []string,
) (*ChecksumMap, error) {
	if err := CheckDirectory(root); err != nil {
		return nil, err
	}

	allIgnores := make([]string, 0, len(s.baseIgnorePaths)+len(ignorePaths))
	allIgnores = append(allIgnores, s.baseIgnorePaths...)
	allIgnores = append(allIgnores, ignorePaths...)

	filePaths, skipped, failed := s.collectFiles(root, allIgnores)

	entries, hashFailed, err := s.hashFiles(ctx, root, filePaths)
	if err != nil {
		return nil, err
	}
	for p, ferr := range hashFailed {
		failed[p] = ferr
	}

	return NewChecksumMap(root, s.hashType, entries, failed, skipped), nil
}

// ChecksumFile checksums one regular file and returns its digest.
func (s *TreeChecksummer) ChecksumFile(path string) (Entry, error) {
	if err := CheckFileOrDirectory(path, s.followSymlinks); err != nil {
		return Entry{}, err
	}

	hasher, err := s.hasherFactory(path)
	if err != nil {
		return Entry{}, fmt.Errorf("create file hasher for %q: %w", path, err)
	}

	digest, err := hasher.Compute()
	if err != nil {
		return Entry{}, fmt.Errorf("compute digest for %q: %w", path, err)
	}

	return NewEntry(filepath.Base(path), digest), nil
}

// collectFiles walks root and returns the regular files to checksum, the
// paths left out on purpose (symlinks with traversal disabled), and the
// per-path problems found along the way (unwalkable subtrees, special
// files), the latter keyed by path relative to root.
func (s *TreeChecksummer) collectFiles(
	root string,
	ignorePaths []string,
) (files, skipped []string, failed map[string]error) {
	failed = make(map[string]error)

	relative := func(path string) string {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		return filepath.ToSlash(rel)
	}

	record := func(path string, err error) {
		failed[relative(path)] = err
	}

	walkFn := func(path string, dir fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable directory entry poisons only that subtree.
			record(path, err)
			if dir != nil && dir.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if ShouldIgnore(path, ignorePaths) {
			if dir.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if dir.Type()&fs.ModeSymlink != 0 {
			if !s.followSymlinks {
				skipped = append(skipped, relative(path))
				return nil
			}
			// WalkDir never descends through a symlinked directory, so
			// following only applies to links resolving to regular files.
			info, statErr := os.Stat(path)
			switch {
			case statErr != nil:
				record(path, statErr)
			case info.Mode().IsRegular():
				files = append(files, path)
			}
			return nil
		}

		if checkErr := CheckFileOrDirectory(path, s.followSymlinks); checkErr != nil {
			record(path, checkErr)
			if dir.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if dir.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	}

	// walkFn never returns an error other than SkipDir, so WalkDir cannot fail
	// past the root check already done by the caller.
	_ = filepath.WalkDir(root, walkFn)
	return files, skipped, failed
}

// hashFiles hashes the given file paths using a worker pool limited to
// maxWorkers. Per-file hash failures are returned in the failed map; only
// cancellation aborts the pass.
func (s *TreeChecksummer) hashFiles(
	ctx context.Context,
	root string,
	filePaths []string,
) ([]Entry, map[string]error, error) {
	failed := make(map[string]error)
	if len(filePaths) == 0 {
		return nil, failed, ctx.Err()
	}

	workerCount := s.maxWorkers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	if workerCount > len(filePaths) {
		workerCount = len(filePaths)
	}

	type result struct {
		path  string
		entry Entry
		err   error
	}

	jobs := make(chan string)
	results := make(chan result, len(filePaths))

	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			for path := range jobs {
				entry, err := s.computeHash(root, path)
				results <- result{path: path, entry: entry, err: err}
			}
		}()
	}

	// Feed jobs; stop feeding as soon as the context is cancelled so the
	// pass aborts at a file boundary, never mid-read.
	go func() {
		defer close(jobs)
		for _, fp := range filePaths {
			select {
			case jobs <- fp:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close results once the workers drain so the collection loop ends.
	go func() {
		wg.Wait()
		close(results)
	}()

	entries := make([]Entry, 0, len(filePaths))

	for res := range results {
		if res.err != nil {
			rel, relErr := filepath.Rel(root, res.path)
			if relErr != nil {
				rel = res.path
			}
			failed[filepath.ToSlash(rel)] = res.err
			continue
		}
		entries = append(entries, res.entry)
	}

	if err := ctx.Err(); err != nil {
		// Partial results are never surfaced as a complete map.
		return nil, nil, err
	}

	return entries, failed, nil
}

// computeHash digests path and returns the Entry keyed by the path
// relative to root.
func (s *TreeChecksummer) computeHash(root, path string) (Entry, error) {
	hasher, err := s.hasherFactory(path)
	if err != nil {
		return Entry{}, fmt.Errorf("create file hasher for %q: %w", path, err)
	}

	digest, err := hasher.Compute()
	if err != nil {
		return Entry{}, fmt.Errorf("compute digest for %q: %w", path, err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return Entry{}, fmt.Errorf("compute relative path for %q: %w", path, err)
	}

	return NewEntry(rel, digest), nil
}
