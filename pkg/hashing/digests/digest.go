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

// Package digests provides the value type for cryptographic checksums.
//
// A Digest pairs the algorithm name with the computed hash value. Fields are
// unexported and defensively copied so a Digest is effectively immutable and
// safe to share between the workers that compute checksums and the report
// that aggregates them.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is one computed checksum: the algorithm that produced it plus the
// raw hash bytes. Two digests are comparable only when their algorithm
// names match; equality requires byte-identical values.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest creates a Digest for the given algorithm and raw hash value.
// The value slice is copied, so callers may reuse their buffer.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// ParseDigest parses the "algorithm:hexvalue" form produced by String.
func ParseDigest(s string) (Digest, error) {
	algorithm, hexValue, ok := strings.Cut(s, ":")
	if !ok || algorithm == "" || hexValue == "" {
		return Digest{}, fmt.Errorf("invalid digest %q: want algorithm:hexvalue", s)
	}

	value, err := hex.DecodeString(hexValue)
	if err != nil {
		return Digest{}, fmt.Errorf("invalid digest value in %q: %w", s, err)
	}

	return Digest{algorithm: algorithm, value: value}, nil
}

// Algorithm returns the name of the algorithm that produced this digest.
//
// The name encodes every parameter that influences the output (for example
// "sha256" for plain SHA-256), so digests computed with incompatible
// configurations never compare equal by accident.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Hex returns the lowercase hexadecimal encoding of the digest value.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the length of the digest value in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether this is the zero Digest (no algorithm, no value),
// which is what failed checksum computations produce.
func (d Digest) IsZero() bool {
	return d.algorithm == "" && len(d.value) == 0
}

// String returns the digest in "algorithm:hexvalue" form.
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests use the same algorithm and carry
// byte-identical values.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
