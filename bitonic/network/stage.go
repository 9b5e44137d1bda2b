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

package network

import (
	"cmp"
	"fmt"
	"iter"
	"math/bits"
)

// Phase tells whether a stage is still building bitonic segments or is the
// final merge of the whole sequence.
type Phase int

const (
	// Building stages sort alternate segments in opposite directions.
	Building Phase = iota

	// Merging is the last stage: one segment spanning the sequence, ascending.
	Merging
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Building:
		return "building"
	case Merging:
		return "merging"
	default:
		return "unknown"
	}
}

// Stage identifies one level of the network for a sequence of length N.
type Stage struct {
	N       int // sequence length
	Segment int // size of the segments being built, 2..N
	Span    int // size of the blocks split by this level, Segment..2
}

// Phase returns Merging for the stage whose segment covers the sequence.
func (s Stage) Phase() Phase {
	if s.Segment >= s.N {
		return Merging
	}
	return Building
}

// Ascending reports the direction of the segment containing index i.
func (s Stage) Ascending(i int) bool {
	if s.Phase() == Merging {
		return true
	}
	return (i/s.Segment)&1 == 0
}

func (s Stage) String() string {
	return fmt.Sprintf("stage{n=%d segment=%d span=%d %s}", s.N, s.Segment, s.Span, s.Phase())
}

// Pairs yields every compare-exchange of this level across the whole
// sequence, in index order.
func (s Stage) Pairs() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		half := s.Span >> 1
		for start := 0; start < s.N; start += s.Span {
			asc := s.Ascending(start)
			for i := start; i < start+half; i++ {
				if !yield(Pair{I: i, J: i + half, Ascending: asc}) {
					return
				}
			}
		}
	}
}

// Levels yields the stages of the network for length n in execution order.
// n must be a power of two.
func Levels(n int) iter.Seq[Stage] {
	mustPowerOfTwo(n)
	return func(yield func(Stage) bool) {
		for segment := 2; segment <= n; segment <<= 1 {
			for span := segment; span >= 2; span >>= 1 {
				if !yield(Stage{N: n, Segment: segment, Span: span}) {
					return
				}
			}
		}
	}
}

// Depth returns the number of levels of the network for length n:
// log2(n)*(log2(n)+1)/2.
func Depth(n int) int {
	mustPowerOfTwo(n)
	k := log2(n)
	return k * (k + 1) / 2
}

// Sort applies the whole network to data on the calling goroutine.
// len(data) must be a power of two.
func Sort[T cmp.Ordered](data []T) {
	for st := range Levels(len(data)) {
		for p := range st.Pairs() {
			CompareExchange(data, p.I, p.J, p.Ascending)
		}
	}
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func mustPowerOfTwo(n int) {
	if !IsPowerOfTwo(n) {
		panic(fmt.Sprintf("network: length %d is not a power of two", n))
	}
}

func log2(n int) int {
	return bits.Len(uint(n)) - 1
}
