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

// Package median computes order statistics of floating-point slices with
// randomized quickselect, in expected linear time and without sorting.
//
// Every function reorders its input in place. Only the multiset of values is
// preserved.
package median

import (
	"errors"
	"fmt"
	"math"

	"github.com/apache/datasketches-go-median/entropy"
	"github.com/apache/datasketches-go-median/internal"
	"golang.org/x/exp/constraints"
)

var (
	ErrEmpty              = internal.ErrEmpty
	ErrEntropyUnavailable = entropy.ErrEntropyUnavailable
	ErrInvalidRank        = errors.New("rank must be between 0 and len-1 inclusive")
	ErrNaN                = errors.New("operation is undefined for NaN")
)

// selectorOptions holds optional parameters for selector construction.
type selectorOptions struct {
	source entropy.Source
	mode   entropy.IndexMode
}

// Option is a functional option for configuring a Selector.
type Option func(*selectorOptions)

// WithSource sets the entropy source pivots are drawn from.
func WithSource(src entropy.Source) Option {
	return func(opts *selectorOptions) {
		opts.source = src
	}
}

// WithSeed draws pivots from a deterministic xxhash source with the given
// seed. Results never depend on the seed, only the amount of work does.
func WithSeed(seed uint64) Option {
	return WithSource(entropy.NewHashSource(seed, entropy.HasherXXHash))
}

// WithIndexMode sets how raw entropy is reduced to a pivot index.
func WithIndexMode(mode entropy.IndexMode) Option {
	return func(opts *selectorOptions) {
		opts.mode = mode
	}
}

// Selector answers order statistic queries. It holds no sequence state and
// is safe for concurrent use when its entropy source is.
type Selector struct {
	pivots *entropy.IndexSource
}

// NewSelector creates a Selector. By default pivots come from the system
// entropy pool with unbiased index sampling.
func NewSelector(opts ...Option) *Selector {
	options := &selectorOptions{
		source: entropy.SystemSource{},
		mode:   entropy.IndexModeUnbiased,
	}
	for _, opt := range opts {
		opt(options)
	}
	return &Selector{
		pivots: entropy.NewIndexSource(options.source, options.mode),
	}
}

// IndexMode returns how the selector reduces entropy to pivot indexes.
func (s *Selector) IndexMode() entropy.IndexMode {
	return s.pivots.Mode()
}

// Select returns the k-th smallest value of a (0-based).
func (s *Selector) Select(a []float64, k int) (float64, error) {
	return SelectOf(s, a, k)
}

// Median returns the median of a: the middle value for odd lengths and the
// mean of the two middle values for even lengths. The two middle values are
// summed before halving, so values near ±math.MaxFloat64 give ±Inf.
func (s *Selector) Median(a []float64) (float64, error) {
	return MedianOf(s, a)
}

// SelectOf returns the k-th smallest value of a (0-based) for any float type.
// On success a[k] holds the returned value.
func SelectOf[T constraints.Float](s *Selector, a []T, k int) (T, error) {
	if len(a) == 0 {
		return 0, ErrEmpty
	}
	if k < 0 || k >= len(a) {
		return 0, fmt.Errorf("%w: k=%d, len=%d", ErrInvalidRank, k, len(a))
	}
	if hasNaN(a) {
		return 0, ErrNaN
	}
	return selectChecked(s, a, k)
}

// MedianOf returns the median of a for any float type. For even lengths the
// two middle values are summed before halving, so the result is ±Inf when
// both are near the largest finite magnitude of T.
func MedianOf[T constraints.Float](s *Selector, a []T) (T, error) {
	n := len(a)
	if n == 0 {
		return 0, ErrEmpty
	}
	if hasNaN(a) {
		return 0, ErrNaN
	}

	upper, err := selectChecked(s, a, n/2)
	if err != nil {
		return 0, err
	}
	if n%2 != 0 {
		return upper, nil
	}
	// Runs on the order left behind by the first call.
	lower, err := selectChecked(s, a, n/2-1)
	if err != nil {
		return 0, err
	}
	return (upper + lower) / 2, nil
}

func selectChecked[T constraints.Float](s *Selector, a []T, k int) (T, error) {
	v, err := internal.Select(a, k, s.pivots)
	if err != nil {
		return 0, fmt.Errorf("select rank %d: %w", k, err)
	}
	return v, nil
}

func hasNaN[T constraints.Float](a []T) bool {
	for _, v := range a {
		if math.IsNaN(float64(v)) {
			return true
		}
	}
	return false
}

var defaultSelector = NewSelector()

// Select returns the k-th smallest value of a using the system entropy pool.
func Select(a []float64, k int) (float64, error) {
	return defaultSelector.Select(a, k)
}

// Median returns the median of a using the system entropy pool.
func Median(a []float64) (float64, error) {
	return defaultSelector.Median(a)
}
