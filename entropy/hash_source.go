/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package entropy

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"
)

// DefaultSeed is the seed used when a deterministic source is requested
// without an explicit one.
const DefaultSeed = uint64(9001)

const blockSize = 8

// Hasher selects the hash function a HashSource expands its seed with.
type Hasher int

const (
	// HasherXXHash expands the seed with xxhash64.
	HasherXXHash Hasher = iota
	// HasherMurmur3 expands the seed with the 64-bit murmur3 sum.
	HasherMurmur3
)

func (h Hasher) String() string {
	switch h {
	case HasherXXHash:
		return "xxhash"
	case HasherMurmur3:
		return "murmur3"
	default:
		return fmt.Sprintf("Hasher(%d)", int(h))
	}
}

// ParseHasher returns the Hasher named by s.
func ParseHasher(s string) (Hasher, error) {
	switch s {
	case "", "xxhash":
		return HasherXXHash, nil
	case "murmur3":
		return HasherMurmur3, nil
	}
	return 0, fmt.Errorf("unknown hasher %q", s)
}

// HashSource is a deterministic Source. Block i of its output is the 64-bit
// hash of the little endian counter i under the configured seed, so two
// sources with the same seed and hasher produce the same stream.
//
// A HashSource keeps a read position and is not safe for concurrent use.
type HashSource struct {
	seed    uint64
	hasher  Hasher
	counter uint64
	block   [blockSize]byte
	offset  int
}

// NewHashSource creates a HashSource starting at counter zero.
func NewHashSource(seed uint64, hasher Hasher) *HashSource {
	return &HashSource{
		seed:   seed,
		hasher: hasher,
		offset: blockSize,
	}
}

// Read fills p completely and never fails.
func (s *HashSource) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.offset == blockSize {
			binary.LittleEndian.PutUint64(s.block[:], s.nextBlock())
			s.offset = 0
		}
		c := copy(p[n:], s.block[s.offset:])
		s.offset += c
		n += c
	}
	return n, nil
}

func (s *HashSource) nextBlock() uint64 {
	var scratch [blockSize]byte
	binary.LittleEndian.PutUint64(scratch[:], s.counter)
	s.counter++

	if s.hasher == HasherMurmur3 {
		return murmur3.SeedSum64(s.seed, scratch[:])
	}
	h := xxhash.NewWithSeed(s.seed)
	h.Write(scratch[:])
	return h.Sum64()
}
