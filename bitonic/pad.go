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

package bitonic

import (
	"cmp"
	"context"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/ajroetker/go-bitonic/bitonic/network"
)

// Numeric is the set of types MaxValue and PadMax support.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Pad returns a copy of data extended to the next power of two, with the
// tail filled with sentinel. sentinel must compare >= every value in data,
// so that after sorting the padding sits at the end.
func Pad[T any](data []T, sentinel T) []T {
	out := make([]T, NextPowerOfTwo(len(data)))
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = sentinel
	}
	return out
}

// Unpad drops the padding added by Pad once sorted, keeping the first n
// values.
func Unpad[T any](data []T, n int) []T {
	return data[:n:n]
}

// PadMax is Pad with MaxValue as the sentinel.
func PadMax[T Numeric](data []T) []T {
	return Pad(data, MaxValue[T]())
}

// MaxValue returns the largest value of T: +Inf for floating-point types and
// the maximum representable value for integers.
func MaxValue[T Numeric]() T {
	var one T = 1
	if one/2 != 0 {
		inf := math.Inf(1)
		return T(inf)
	}
	var zero T
	bits := ^uint64(0) >> (64 - 8*unsafe.Sizeof(zero))
	if zero-one < zero {
		bits >>= 1 // signed
	}
	return T(bits)
}

// SortAny sorts data of any length in place. Lengths that are not a power of
// two are padded with sentinel (see Pad), sorted and copied back.
// workers == 0 selects DefaultWorkers of the padded length.
func SortAny[T cmp.Ordered](ctx context.Context, data []T, sentinel T, workers int) error {
	if len(data) <= 1 {
		return nil
	}
	if network.IsPowerOfTwo(len(data)) {
		return Sort(ctx, data, workers)
	}
	padded := Pad(data, sentinel)
	if err := Sort(ctx, padded, workers); err != nil {
		return err
	}
	copy(data, Unpad(padded, len(data)))
	return nil
}
