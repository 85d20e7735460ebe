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
	"github.com/micllynn/treeverify/pkg/config"
	"github.com/micllynn/treeverify/pkg/utils"
	"github.com/spf13/cobra"
)

// VerifyOptions holds the flags of the verify command.
type VerifyOptions struct {
	SourceDestFlags
	TreeWalkFlags
	HashingFlags

	// Mode selects the verification scope (full, pre-diff, post-diff).
	Mode string
	// ConfigFile optionally points to a YAML config file; flags that were
	// set explicitly override its values.
	ConfigFile string
	// DeleteMismatched enables deletion of failed destination subtrees.
	DeleteMismatched bool
	// AssumeYes skips all interactive confirmations.
	AssumeYes bool
	// Progress renders a progress bar on stderr.
	Progress bool
}

var _ Interface = (*VerifyOptions)(nil)

// AddFlags adds the verify command's flags to the cobra command.
func (o *VerifyOptions) AddFlags(cmd *cobra.Command) {
	o.SourceDestFlags.AddFlags(cmd)
	o.TreeWalkFlags.AddFlags(cmd)
	o.HashingFlags.AddFlags(cmd)

	cmd.Flags().StringVar(&o.Mode, "mode", config.ModeFull,
		"Verification mode: full (whole tree), pre-diff (verify what was missing), post-diff (verify what appeared).")
	cmd.Flags().StringVar(&o.ConfigFile, "config", "",
		"Path to a YAML config file; explicit flags take precedence.")
	_ = cmd.MarkFlagFilename("config", "yaml", "yml")
	cmd.Flags().BoolVar(&o.DeleteMismatched, "delete-mismatched", false,
		"Delete destination subtrees that failed verification.")
	cmd.Flags().BoolVarP(&o.AssumeYes, "yes", "y", false,
		"Assume yes to every confirmation prompt.")
	cmd.Flags().BoolVar(&o.Progress, "progress", false,
		"Render a progress bar while verifying.")
}

// Validate checks option consistency beyond what cobra enforces.
func (o *VerifyOptions) Validate() error {
	if err := utils.ValidateFolderExists("source", o.Source); err != nil {
		return err
	}
	if err := utils.ValidateFolderExists("dest", o.Dest); err != nil {
		return err
	}
	return utils.ValidateOptionalFile("config", o.ConfigFile)
}

// ToVerifyConfig builds the effective configuration: config file values
// first (when given), then every flag the user set explicitly on top.
func (o *VerifyOptions) ToVerifyConfig(cmd *cobra.Command) (*config.VerifyConfig, error) {
	cfg := config.NewVerifyConfig()
	if o.ConfigFile != "" {
		loaded, err := config.LoadFile(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flagSet := cmd.Flags()
	if o.ConfigFile == "" || flagSet.Changed("algorithm") {
		cfg.SetHashAlgorithm(o.Algorithm)
	}
	if o.ConfigFile == "" || flagSet.Changed("chunk-size") {
		cfg.SetChunkSize(o.ChunkSize)
	}
	if flagSet.Changed("workers") {
		cfg.SetMaxWorkers(o.Workers)
	}
	if flagSet.Changed("follow-symlinks") {
		cfg.SetFollowSymlinks(o.FollowSymlinks)
	}
	if len(o.IgnorePaths) > 0 || o.IgnoreGitPaths {
		cfg.SetIgnoredPaths(append(cfg.IgnoredPaths(), o.IgnorePaths...), o.IgnoreGitPaths)
	}
	if o.ConfigFile == "" || flagSet.Changed("mode") {
		cfg.SetMode(o.Mode)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
