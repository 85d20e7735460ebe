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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape of a verification config file:
//
//	algorithm: sha256
//	chunk_size: 8192
//	workers: 4
//	follow_symlinks: false
//	ignore:
//	  - .DS_Store
//	  - tmp
//	ignore_git_paths: true
//	mode: post-diff
//
// Zero values mean "keep the default"; an explicit chunk_size of 0 is not
// representable from a file, which is fine since 0 (read all at once) is a
// programmatic tuning knob.
type FileConfig struct {
	Algorithm      string   `yaml:"algorithm"`
	ChunkSize      int      `yaml:"chunk_size"`
	Workers        int      `yaml:"workers"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
	Ignore         []string `yaml:"ignore"`
	IgnoreGitPaths bool     `yaml:"ignore_git_paths"`
	Mode           string   `yaml:"mode"`
}

// LoadFile reads a YAML config file and layers it over the defaults.
// Unknown keys are rejected so typos fail loudly.
func LoadFile(path string) (*VerifyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes and layers them over the defaults.
func Parse(data []byte) (*VerifyConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := NewVerifyConfig()
	if fc.Algorithm != "" {
		cfg.SetHashAlgorithm(fc.Algorithm)
	}
	if fc.ChunkSize != 0 {
		cfg.SetChunkSize(fc.ChunkSize)
	}
	if fc.Workers != 0 {
		cfg.SetMaxWorkers(fc.Workers)
	}
	cfg.SetFollowSymlinks(fc.FollowSymlinks)
	cfg.SetIgnoredPaths(fc.Ignore, fc.IgnoreGitPaths)
	if fc.Mode != "" {
		cfg.SetMode(fc.Mode)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
