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
	"testing"

	hashengines "github.com/micllynn/treeverify/pkg/hashing/engines"
)

func TestInitRegistersAllAlgorithms(t *testing.T) {
	for _, algo := range []string{"sha256", "sha512", "sha1", "md5", "blake2b", "blake3"} {
		if !hashengines.IsSupported(algo) {
			t.Errorf("Expected algorithm %q to be registered", algo)
		}
	}
}

func TestSHA256Engine_KnownVectors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewSHA256Engine(nil)
			e.Update([]byte(tc.input))
			d, err := e.Compute()
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			if d.Hex() != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, d.Hex())
			}
			if d.Algorithm() != "sha256" {
				t.Errorf("Expected algorithm 'sha256', got '%s'", d.Algorithm())
			}
		})
	}
}

func TestSHA256Engine_Reset(t *testing.T) {
	e := NewSHA256Engine([]byte("ignored"))
	e.Reset(nil)
	e.Update([]byte("abc"))

	d, err := e.Compute()
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if d.Hex() != want {
		t.Errorf("Expected reset engine to hash only post-reset data, got %s", d.Hex())
	}
}

func TestEngines_ChunkedEqualsWhole(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	for _, algo := range []string{"sha256", "sha512", "sha1", "md5", "blake2b", "blake3"} {
		t.Run(algo, func(t *testing.T) {
			whole, err := hashengines.Create(algo)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			whole.Update(data)
			wholeDigest, err := whole.Compute()
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}

			chunked, err := hashengines.Create(algo)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			for i := 0; i < len(data); i += 7 {
				end := i + 7
				if end > len(data) {
					end = len(data)
				}
				chunked.Update(data[i:end])
			}
			chunkedDigest, err := chunked.Compute()
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}

			if !wholeDigest.Equal(chunkedDigest) {
				t.Errorf("Expected chunked and whole digests to match for %s", algo)
			}
		})
	}
}

func TestEngines_DigestSizeMatchesOutput(t *testing.T) {
	for _, algo := range []string{"sha256", "sha512", "sha1", "md5", "blake2b", "blake3"} {
		e, err := hashengines.Create(algo)
		if err != nil {
			t.Fatalf("Create %s failed: %v", algo, err)
		}
		e.Update([]byte("x"))
		d, err := e.Compute()
		if err != nil {
			t.Fatalf("Compute %s failed: %v", algo, err)
		}
		if d.Size() != e.DigestSize() {
			t.Errorf("%s: Expected digest size %d, got %d", algo, e.DigestSize(), d.Size())
		}
		if d.Algorithm() != algo {
			t.Errorf("%s: Expected digest name %q, got %q", algo, algo, d.Algorithm())
		}
	}
}
