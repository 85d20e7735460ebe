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

	"github.com/spf13/cobra"

	"github.com/micllynn/treeverify/pkg/snapshot"
	"github.com/micllynn/treeverify/pkg/utils"
)

// Snapshot creates the snapshot command, a debugging aid that prints the
// relative path set of a tree. Nothing is persisted.
func Snapshot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot ROOT",
		Short: "Print the sorted relative path set of a directory tree.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if err := utils.ValidateFolderExists("root", root); err != nil {
				return fatal(err)
			}

			snap, err := snapshot.Take(root)
			if err != nil {
				return fatal(err)
			}
			for _, p := range snap.Paths() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	return cmd
}
