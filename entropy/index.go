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
	"fmt"
)

// IndexMode selects how a raw random word is reduced to a bounded index.
type IndexMode int

const (
	// IndexModeUnbiased draws uniformly from [lower, upper) by rejection
	// sampling.
	IndexModeUnbiased IndexMode = iota
	// IndexModeCompat reduces the raw word modulo upper and clamps the
	// result up to lower. Residues below lower all collapse onto lower, so
	// the distribution is skewed towards the left bound. Kept so seeded
	// sources reproduce historical pivot sequences.
	IndexModeCompat
)

func (m IndexMode) String() string {
	switch m {
	case IndexModeUnbiased:
		return "unbiased"
	case IndexModeCompat:
		return "compat"
	default:
		return fmt.Sprintf("IndexMode(%d)", int(m))
	}
}

// ParseIndexMode returns the IndexMode named by s.
func ParseIndexMode(s string) (IndexMode, error) {
	switch s {
	case "", "unbiased":
		return IndexModeUnbiased, nil
	case "compat":
		return IndexModeCompat, nil
	}
	return 0, fmt.Errorf("unknown index mode %q", s)
}

// IndexSource draws bounded indexes from a Source.
type IndexSource struct {
	src  Source
	mode IndexMode
}

// NewIndexSource creates an IndexSource reading from src.
func NewIndexSource(src Source, mode IndexMode) *IndexSource {
	return &IndexSource{src: src, mode: mode}
}

// Mode returns the reduction used by the source.
func (s *IndexSource) Mode() IndexMode {
	return s.mode
}

// Index returns idx with lower <= idx < upper.
//
// It panics if lower is negative or lower >= upper. A failing Source yields
// an error wrapping ErrEntropyUnavailable.
func (s *IndexSource) Index(lower, upper int) (int, error) {
	if lower < 0 || lower >= upper {
		panic(fmt.Sprintf("entropy: invalid index range [%d, %d)", lower, upper))
	}

	if s.mode == IndexModeCompat {
		raw, err := readUint64(s.src)
		if err != nil {
			return 0, err
		}
		return max(int(raw%uint64(upper)), lower), nil
	}

	span := uint64(upper - lower)
	// 2^64 mod span; raw words below it would over-represent small residues.
	threshold := -span % span
	for {
		raw, err := readUint64(s.src)
		if err != nil {
			return 0, err
		}
		if raw >= threshold {
			return lower + int(raw%span), nil
		}
	}
}
