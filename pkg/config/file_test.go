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
	"os"
	"path/filepath"
	"testing"
)

func TestParse_FullConfig(t *testing.T) {
	data := []byte(`
algorithm: blake2b
chunk_size: 4096
workers: 8
follow_symlinks: true
ignore:
  - .DS_Store
  - tmp
ignore_git_paths: true
mode: post-diff
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.HashAlgorithm() != "blake2b" {
		t.Errorf("Expected 'blake2b', got '%s'", cfg.HashAlgorithm())
	}
	if cfg.ChunkSize() != 4096 {
		t.Errorf("Expected 4096, got %d", cfg.ChunkSize())
	}
	if cfg.Mode() != ModePostDiff {
		t.Errorf("Expected '%s', got '%s'", ModePostDiff, cfg.Mode())
	}

	paths := cfg.IgnoredPaths()
	if len(paths) < 3 || paths[0] != ".DS_Store" || paths[1] != "tmp" {
		t.Errorf("Expected user ignores plus git paths, got %v", paths)
	}
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.HashAlgorithm() != "sha256" {
		t.Errorf("Expected default 'sha256', got '%s'", cfg.HashAlgorithm())
	}
	if cfg.Mode() != ModeFull {
		t.Errorf("Expected default mode '%s', got '%s'", ModeFull, cfg.Mode())
	}
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	if _, err := Parse([]byte("algoritm: sha256\n")); err == nil {
		t.Error("Expected error for misspelled key")
	}
}

func TestParse_InvalidValuesRejected(t *testing.T) {
	if _, err := Parse([]byte("algorithm: no-such\n")); err == nil {
		t.Error("Expected error for unknown algorithm")
	}
	if _, err := Parse([]byte("mode: sideways\n")); err == nil {
		t.Error("Expected error for unknown mode")
	}
	if _, err := Parse([]byte("chunk_size: -5\n")); err == nil {
		t.Error("Expected error for negative chunk size")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("algorithm: sha512\nmode: pre-diff\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.HashAlgorithm() != "sha512" {
		t.Errorf("Expected 'sha512', got '%s'", cfg.HashAlgorithm())
	}
	if cfg.Mode() != ModePreDiff {
		t.Errorf("Expected '%s', got '%s'", ModePreDiff, cfg.Mode())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
