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

	"github.com/micllynn/treeverify/cmd/treeverify/cli/options"
	"github.com/micllynn/treeverify/pkg/snapshot"
	"github.com/micllynn/treeverify/pkg/utils"
)

// Diff creates the diff command.
func Diff() *cobra.Command {
	o := &options.SourceDestFlags{}

	cmd := &cobra.Command{
		Use:   "diff [OPTIONS]",
		Short: "List paths present on the source but absent on the destination.",
		Long: `List paths present on the source but absent on the destination.

This is the pre-transfer view: every listed path would be verified after a
transfer run in pre-diff mode. One line per path, sorted, relative to the
roots. Nothing is checksummed and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := utils.ValidateFolderExists("source", o.Source); err != nil {
				return fatal(err)
			}
			if err := utils.ValidateFolderExists("dest", o.Dest); err != nil {
				return fatal(err)
			}

			paths, err := snapshot.DiffRoots(o.Source, o.Dest)
			if err != nil {
				return fatal(err)
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	o.AddFlags(cmd)
	return cmd
}
