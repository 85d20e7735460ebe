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

package options

import (
	"github.com/spf13/cobra"
)

// Interface is implemented by any flag group that can register itself to a
// cobra command.
type Interface interface {
	AddFlags(cmd *cobra.Command)
}

// TreeWalkFlags contains flags for controlling which paths are included
// when trees are walked. These flags are shared by all commands that read
// directory trees.
type TreeWalkFlags struct {
	// IgnorePaths lists paths to exclude from walks.
	IgnorePaths []string
	// IgnoreGitPaths controls whether git-related paths are automatically excluded.
	IgnoreGitPaths bool
	// FollowSymlinks determines whether symbolic links are followed.
	FollowSymlinks bool
}

// AddFlags adds tree walk flags to the cobra command.
func (o *TreeWalkFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.IgnorePaths, "ignore", nil, "Paths to exclude from checksumming.")
	cmd.Flags().BoolVar(&o.IgnoreGitPaths, "ignore-git-paths", false, "Exclude git-related paths (.git, .gitignore, ...).")
	cmd.Flags().BoolVar(&o.FollowSymlinks, "follow-symlinks", false, "Whether to follow symlinks when walking trees.")
}

// HashingFlags contains flags that tune how file contents are checksummed.
type HashingFlags struct {
	// Algorithm names the digest algorithm.
	Algorithm string
	// ChunkSize is the per-read buffer size in bytes (0 = whole file at once).
	ChunkSize int
	// Workers bounds the checksum worker pool (0 = one per CPU).
	Workers int
}

// AddFlags adds hashing flags to the cobra command.
func (o *HashingFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Algorithm, "algorithm", "sha256", "Digest algorithm (sha256, sha512, sha1, md5, blake2b, blake3).")
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", 8192, "Read chunk size in bytes; 0 reads each file at once.")
	cmd.Flags().IntVar(&o.Workers, "workers", 0, "Checksum worker count; 0 means one per CPU.")
}

// SourceDestFlags contains the two tree roots every comparison command needs.
type SourceDestFlags struct {
	// Source is the root of the tree that was copied from.
	Source string
	// Dest is the root of the tree that was copied to.
	Dest string
}

// AddFlags adds the source and destination flags and marks them required.
func (o *SourceDestFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Source, "source", "", "Source tree root. [required]")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagDirname("source")

	cmd.Flags().StringVar(&o.Dest, "dest", "", "Destination tree root. [required]")
	_ = cmd.MarkFlagRequired("dest")
	_ = cmd.MarkFlagDirname("dest")
}

// AddAllFlags is a helper function to register multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...Interface) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}
