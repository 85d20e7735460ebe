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

// Package io provides hash engines that read their input from the
// filesystem rather than from memory.
package io

import (
	hashengines "github.com/micllynn/treeverify/pkg/hashing/engines"
)

// FileHasher marks hash engines whose input is a file on disk.
//
// It is intentionally just an alias of HashEngine, but it gives APIs that
// specifically expect file-based hashing a semantic distinction from
// arbitrary content hashing.
type FileHasher interface {
	hashengines.HashEngine
}

// FileHasherFactory creates a FileHasher bound to the given path. The tree
// checksummer calls it once per discovered file so each worker gets an
// engine with independent state.
type FileHasherFactory func(path string) (FileHasher, error)

// NewFileChecksummerFactory builds a FileHasherFactory producing
// FileChecksummer instances for the named algorithm and chunk size.
func NewFileChecksummerFactory(algorithm string, chunkSize int) FileHasherFactory {
	return func(path string) (FileHasher, error) {
		engine, err := hashengines.Create(algorithm)
		if err != nil {
			return nil, err
		}
		return NewFileChecksummer(path, engine, chunkSize, "" /* no override */)
	}
}
