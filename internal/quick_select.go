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

package internal

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	ErrEmpty = errors.New("operation is undefined for an empty sequence")
)

// PivotSource draws a pivot index in [lower, upper).
type PivotSource interface {
	Index(lower, upper int) (int, error)
}

// Select returns the k-th smallest element of arr using randomized
// quickselect. The slice is reordered in place; on return arr[k] holds the
// result and the remaining positions are only partially ordered.
// k must be in [0, len(arr)). Errors from pivots are returned unchanged.
func Select[T constraints.Float](arr []T, k int, pivots PivotSource) (T, error) {
	if len(arr) == 0 {
		return 0, ErrEmpty
	}

	lo, hi := 0, len(arr)-1
	for {
		if lo == hi {
			return arr[lo], nil
		}
		i, err := pivots.Index(lo, hi+1)
		if err != nil {
			return 0, err
		}
		j := Partition(arr, lo, hi, i)
		if k < j {
			hi = j - 1
		} else if k > j {
			lo = j + 1
		} else {
			return arr[k], nil
		}
	}
}

// Partition rearranges arr[lo..hi] around the value at pivot so that smaller
// values come before it and the rest after it. It returns the final index of
// the pivot value, which is within [lo, hi].
//
// Partition panics unless 0 <= lo <= pivot <= hi < len(arr).
func Partition[T constraints.Float](arr []T, lo int, hi int, pivot int) int {
	if lo < 0 || hi >= len(arr) || lo > hi || pivot < lo || pivot > hi {
		panic(fmt.Sprintf("partition: invalid bounds lo=%d hi=%d pivot=%d len=%d", lo, hi, pivot, len(arr)))
	}

	v := arr[pivot]
	arr[pivot], arr[hi] = arr[hi], arr[pivot]
	j := lo
	for i := lo; i < hi; i++ {
		if arr[i] < v {
			arr[i], arr[j] = arr[j], arr[i]
			j++
		}
	}
	arr[hi], arr[j] = arr[j], arr[hi]
	return j
}
