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

package memory

import (
	"crypto/md5"  // #nosec G501 -- file integrity verification only, not authentication
	"crypto/sha1" // #nosec G505 -- file integrity verification only, not authentication
	"hash"

	hashengines "github.com/micllynn/treeverify/pkg/hashing/engines"
)

// md5 and sha1 stay selectable because existing backup workflows standardized
// on them long before stronger digests were common; they detect transfer
// corruption just as well even though they are not collision resistant.
func init() {
	hashengines.MustRegister("md5", func() (hashengines.StreamingHashEngine, error) {
		return NewGenericHashEngine("md5", md5.Size, func() (hash.Hash, error) {
			return md5.New(), nil // #nosec G401
		}, nil)
	})
	hashengines.MustRegister("sha1", func() (hashengines.StreamingHashEngine, error) {
		return NewGenericHashEngine("sha1", sha1.Size, func() (hash.Hash, error) {
			return sha1.New(), nil // #nosec G401
		}, nil)
	})
}

// NewMD5 creates a new MD5 engine. If initialData is non-empty it is hashed
// immediately.
func NewMD5(initialData []byte) (*GenericHashEngine, error) {
	return NewGenericHashEngine("md5", md5.Size, func() (hash.Hash, error) {
		return md5.New(), nil // #nosec G401
	}, initialData)
}

// NewSHA1 creates a new SHA-1 engine. If initialData is non-empty it is
// hashed immediately.
func NewSHA1(initialData []byte) (*GenericHashEngine, error) {
	return NewGenericHashEngine("sha1", sha1.Size, func() (hash.Hash, error) {
		return sha1.New(), nil // #nosec G401
	}, initialData)
}
