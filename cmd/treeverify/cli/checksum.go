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

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/micllynn/treeverify/cmd/treeverify/cli/options"
	"github.com/micllynn/treeverify/pkg/checksum"
	fileio "github.com/micllynn/treeverify/pkg/hashing/engines/io"
	"github.com/micllynn/treeverify/pkg/utils"
)

// Checksum creates the checksum command: print the digest of one file, or
// of every file under a folder.
func Checksum() *cobra.Command {
	hf := &options.HashingFlags{}
	wf := &options.TreeWalkFlags{}

	cmd := &cobra.Command{
		Use:   "checksum [OPTIONS] PATH",
		Short: "Print checksums for a file or a directory tree.",
		Long: `Print checksums for a file or a directory tree.

For a file, one line with the digest is printed. For a directory, one line
per regular file (sorted by relative path) plus a final aggregate digest
over the whole tree. Files that cannot be read are reported on stderr and
leave no digest line; an aggregate is only printed for fully readable
trees.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecksum(cmd, hf, wf, args[0])
		},
	}

	options.AddAllFlags(cmd, hf, wf)
	return cmd
}

func runChecksum(cmd *cobra.Command, hf *options.HashingFlags, wf *options.TreeWalkFlags, path string) error {
	if err := utils.ValidatePathExists("path", path); err != nil {
		return fatal(err)
	}

	log := ro.NewObservability().Logger
	out := cmd.OutOrStdout()

	factory := fileio.NewFileChecksummerFactory(hf.Algorithm, hf.ChunkSize)
	tree, err := checksum.NewTreeChecksummer(factory, hf.Workers, wf.FollowSymlinks, wf.IgnorePaths)
	if err != nil {
		return fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fatal(err)
	}

	if !info.IsDir() {
		entry, err := tree.ChecksumFile(path)
		if err != nil {
			return fatal(err)
		}
		fmt.Fprintf(out, "%s  %s\n", entry.Digest, entry.Path)
		return nil
	}

	ctx, cancel := contextWithTimeout(cmd)
	defer cancel()

	cmap, err := tree.ChecksumTree(ctx, path, nil)
	if err != nil {
		return fatal(err)
	}

	for _, p := range cmap.Paths() {
		d, _ := cmap.Digest(p)
		fmt.Fprintf(out, "%s  %s\n", d, p)
	}
	for p, ferr := range cmap.Failed() {
		log.Warn("checksum %s: %v", p, ferr)
	}
	for _, p := range cmap.Skipped() {
		log.Debug("skipped symlink %s", p)
	}

	if root, err := cmap.RootDigest(); err == nil {
		fmt.Fprintf(out, "%s  .\n", root)
	}

	if cmap.HasFailures() {
		return &exitError{code: 1, err: fmt.Errorf("%d file(s) could not be checksummed", len(cmap.Failed()))}
	}
	return nil
}
