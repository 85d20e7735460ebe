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

// Package config holds the user-facing verification configuration: which
// digest algorithm to use, how trees are walked, and which paths are
// excluded. A VerifyConfig is built fluently or loaded from a YAML file and
// then lowered into comparator options.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/micllynn/treeverify/pkg/compare"
	hashengines "github.com/micllynn/treeverify/pkg/hashing/engines"
	"github.com/micllynn/treeverify/pkg/session"
)

// Verification modes accepted by SetMode and the "mode" key in config files.
const (
	// ModeFull verifies the whole destination tree against the source.
	ModeFull = "full"
	// ModePreDiff diffs source against destination before the transfer and
	// verifies only the paths that were still missing.
	ModePreDiff = "pre-diff"
	// ModePostDiff snapshots the destination around the transfer and
	// verifies only the paths that appeared.
	ModePostDiff = "post-diff"
)

// gitRelatedPaths are the conventional git paths excluded when the
// ignore-git toggle is on.
var gitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

// VerifyConfig holds configuration for one verification run.
//
// It determines how files are checksummed, which paths are skipped, and
// which diff mode scopes the run.
type VerifyConfig struct {
	// Hash algorithm (e.g., "sha256", "blake2b")
	hashAlgorithm string

	// Chunk size for file reading (0 = read all at once)
	chunkSize int

	// Worker pool bound; <= 0 means one worker per CPU
	maxWorkers int

	// Whether symlinks are followed during walks
	followSymlinks bool

	// Paths excluded from every walk
	ignoredPaths []string

	// Whether git-related paths are excluded
	ignoreGitPaths bool

	// Verification mode (ModeFull, ModePreDiff, ModePostDiff)
	mode string
}

// NewVerifyConfig creates a verification configuration with defaults:
// sha256, 8KB chunks, one worker per CPU, symlinks not followed, no
// ignored paths, full verification.
func NewVerifyConfig() *VerifyConfig {
	return &VerifyConfig{
		hashAlgorithm:  "sha256",
		chunkSize:      compare.DefaultChunkSize,
		maxWorkers:     0,
		followSymlinks: false,
		ignoredPaths:   []string{},
		ignoreGitPaths: false,
		mode:           ModeFull,
	}
}

// SetHashAlgorithm sets the digest algorithm.
// Returns the VerifyConfig for method chaining.
func (c *VerifyConfig) SetHashAlgorithm(algorithm string) *VerifyConfig {
	c.hashAlgorithm = algorithm
	return c
}

// SetChunkSize sets the chunk size for file reading.
//
// A size of 0 means files are read all at once. Non-zero values enable
// chunked reading for memory efficiency with large files.
//
// Returns the VerifyConfig for method chaining.
func (c *VerifyConfig) SetChunkSize(size int) *VerifyConfig {
	c.chunkSize = size
	return c
}

// SetMaxWorkers bounds the checksum worker pool.
// Returns the VerifyConfig for method chaining.
func (c *VerifyConfig) SetMaxWorkers(n int) *VerifyConfig {
	c.maxWorkers = n
	return c
}

// SetFollowSymlinks sets whether symbolic links are followed.
// Returns the VerifyConfig for method chaining.
func (c *VerifyConfig) SetFollowSymlinks(follow bool) *VerifyConfig {
	c.followSymlinks = follow
	return c
}

// SetIgnoredPaths sets the paths to exclude from every walk.
//
// If ignoreGitPaths is true, common git-related paths are also excluded.
//
// Returns the VerifyConfig for method chaining.
func (c *VerifyConfig) SetIgnoredPaths(paths []string, ignoreGitPaths bool) *VerifyConfig {
	c.ignoredPaths = paths
	c.ignoreGitPaths = ignoreGitPaths

	if ignoreGitPaths {
		c.ignoredPaths = append(c.ignoredPaths, gitRelatedPaths...)
	}

	return c
}

// AddIgnoredPaths adds additional paths to the ignore list, interpreted
// relative to root when not already absolute.
//
// Returns the VerifyConfig for method chaining.
func (c *VerifyConfig) AddIgnoredPaths(root string, paths []string) *VerifyConfig {
	for _, p := range paths {
		if filepath.IsAbs(p) {
			c.ignoredPaths = append(c.ignoredPaths, p)
		} else {
			c.ignoredPaths = append(c.ignoredPaths, filepath.Join(root, p))
		}
	}
	return c
}

// SetMode sets the verification mode.
// Returns the VerifyConfig for method chaining.
func (c *VerifyConfig) SetMode(mode string) *VerifyConfig {
	c.mode = mode
	return c
}

// HashAlgorithm returns the configured digest algorithm.
func (c *VerifyConfig) HashAlgorithm() string {
	return c.hashAlgorithm
}

// ChunkSize returns the configured read chunk size.
func (c *VerifyConfig) ChunkSize() int {
	return c.chunkSize
}

// Mode returns the configured verification mode.
func (c *VerifyConfig) Mode() string {
	return c.mode
}

// IgnoredPaths returns a copy of the excluded paths.
func (c *VerifyConfig) IgnoredPaths() []string {
	out := make([]string, len(c.ignoredPaths))
	copy(out, c.ignoredPaths)
	return out
}

// Validate checks the configuration for internal consistency: the algorithm
// must be registered, the chunk size non-negative, and the mode one of the
// three known modes.
func (c *VerifyConfig) Validate() error {
	if !hashengines.IsSupported(c.hashAlgorithm) {
		return fmt.Errorf("unsupported hash algorithm %q (supported: %v)",
			c.hashAlgorithm, hashengines.SupportedAlgorithms())
	}
	if c.chunkSize < 0 {
		return fmt.Errorf("chunk size must be non-negative, got %d", c.chunkSize)
	}
	switch c.mode {
	case ModeFull, ModePreDiff, ModePostDiff:
	default:
		return fmt.Errorf("unknown mode %q (want %q, %q, or %q)",
			c.mode, ModeFull, ModePreDiff, ModePostDiff)
	}
	return nil
}

// CompareOptions lowers the configuration into comparator options. The
// caller attaches its own event reporter.
func (c *VerifyConfig) CompareOptions() compare.Options {
	return compare.Options{
		Algorithm:      c.hashAlgorithm,
		ChunkSize:      c.chunkSize,
		MaxWorkers:     c.maxWorkers,
		FollowSymlinks: c.followSymlinks,
		IgnorePaths:    c.IgnoredPaths(),
	}
}

// SessionMode maps the configured mode onto a session mode. ModeFull has no
// session equivalent (it skips the snapshot machinery entirely), so the
// second return value reports whether a session applies.
func (c *VerifyConfig) SessionMode() (session.Mode, bool) {
	switch c.mode {
	case ModePreDiff:
		return session.ModePreTransferDiff, true
	case ModePostDiff:
		return session.ModePostTransferDiff, true
	default:
		return session.ModePostTransferDiff, false
	}
}
