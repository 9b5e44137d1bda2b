// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package check verifies the output of a sort in parallel: that it is
// ascending and that it holds the same multiset of values as the input.
package check

import (
	"cmp"
	"sync/atomic"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"

	"github.com/ajroetker/go-bitonic/bitonic/workerpool"
)

// fingerprintBatch is the number of elements hashed per work item.
const fingerprintBatch = 1 << 14

// IsSorted reports whether data is in ascending order.
func IsSorted[T cmp.Ordered](pool *workerpool.Pool, data []T) bool {
	if len(data) < 2 {
		return true
	}
	var unsorted atomic.Bool
	// Range [start, end) checks the pairs (i, i+1) starting in it.
	pool.ParallelFor(len(data)-1, func(start, end int) {
		for i := start; i < end; i++ {
			if data[i] > data[i+1] {
				unsorted.Store(true)
				return
			}
		}
	})
	return !unsorted.Load()
}

// FirstUnsorted returns the smallest i with data[i] > data[i+1], or -1.
func FirstUnsorted[T cmp.Ordered](data []T) int {
	for i := 0; i+1 < len(data); i++ {
		if data[i] > data[i+1] {
			return i
		}
	}
	return -1
}

// Fingerprint returns an order-independent hash of the values in data: the
// wrapping sum of the xxhash of every element's bytes. Two slices holding
// the same multiset have the same fingerprint, whatever their order.
func Fingerprint[T constraints.Integer | constraints.Float](pool *workerpool.Pool, data []T) uint64 {
	var sum atomic.Uint64
	pool.ParallelForBatched(len(data), fingerprintBatch, func(start, end int) {
		var local uint64
		for i := start; i < end; i++ {
			local += hashValue(&data[i])
		}
		sum.Add(local)
	})
	return sum.Load()
}

func hashValue[T constraints.Integer | constraints.Float](v *T) uint64 {
	b := unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
	return xxhash.Sum64(b)
}
