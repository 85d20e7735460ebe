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

package checksum

import (
	"fmt"

	"github.com/micllynn/treeverify/pkg/hashing/digests"
	hashengines "github.com/micllynn/treeverify/pkg/hashing/engines"
)

// RootDigest computes a single aggregate digest representing every entry in
// the map: each path and its digest value are fed, in sorted path order,
// into a fresh engine of the map's own algorithm.
//
// Two maps have equal root digests iff they contain the same paths with the
// same digests, which gives folder-level verdicts a concrete digest pair to
// report. Returns an error if the map records any failed file, since an
// aggregate over incomplete entries would be misleading.
func (m *ChecksumMap) RootDigest() (digests.Digest, error) {
	if m.HasFailures() {
		return digests.Digest{}, fmt.Errorf("cannot aggregate %q: %d file(s) failed checksumming",
			m.root, len(m.failed))
	}

	engine, err := hashengines.Create(m.algorithm)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("create aggregate engine: %w", err)
	}

	for _, path := range m.Paths() {
		engine.Update([]byte(path))
		engine.Update([]byte{0})
		d := m.items[path]
		engine.Update(d.Value())
	}

	root, err := engine.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute aggregate digest: %w", err)
	}
	return root, nil
}
