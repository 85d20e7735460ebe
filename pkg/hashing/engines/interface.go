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

// Package hashengines defines the pluggable digest-function abstraction.
//
// The verification core never touches a concrete hash algorithm directly; it
// only speaks StreamingHashEngine. Algorithms are registered by name in the
// package registry, and the memory subpackage provides the built-in engines
// (sha256, sha1, sha512, md5, blake2b, blake3).
package hashengines

import (
	"github.com/micllynn/treeverify/pkg/hashing/digests"
)

// HashEngine is the minimal contract for computing a digest.
//
// DigestName must include every parameter that affects the output so that
// two digests with the same name are always computed the same way.
type HashEngine interface {
	// Compute finalizes the hash computation and returns the resulting digest.
	Compute() (digests.Digest, error)

	// DigestName returns the canonical name of the hash algorithm. The name
	// is carried into the algorithm field of the Digest returned by Compute.
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by this
	// engine, matching Size() of the Digest returned by Compute.
	DigestSize() int
}

// Streaming is the incremental-update half of a streaming digest function.
//
// Kept separate from HashEngine so one-shot implementations remain valid
// HashEngines.
type Streaming interface {
	// Update appends additional bytes to the data being hashed.
	Update(data []byte)

	// Reset clears the hash state, optionally seeding it with new data.
	Reset(data []byte)
}

// StreamingHashEngine is the digest-function plug-in point used by the file
// and tree checksummers: streaming update plus finalize.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
