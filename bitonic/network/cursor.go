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
	"fmt"
	"iter"
)

// Regime is the partitioning case of a round.
type Regime int

const (
	// Owned rounds give every block of the current span to a single worker.
	Owned Regime = iota

	// Shared rounds split the top level of each block across several workers.
	Shared
)

// String returns a human-readable name for the regime.
func (r Regime) String() string {
	switch r {
	case Owned:
		return "owned"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}

// Cursor is the private progress of one worker through the network.
//
// The zero value is not usable; create cursors with NewCursor. A Cursor is
// not safe for concurrent use, and each worker of a pool owns its own.
type Cursor struct {
	n       int
	workers int
	id      int

	// segment is the size of the segments built by the current stage. It
	// exceeds n once the network has been applied.
	segment int

	// span is the block size the next round starts splitting. It equals
	// segment at the start of a stage and halves with every shared round.
	span int

	// depth counts the shared rounds already spent on the current stage,
	// log2(segment/span).
	depth int

	// recursing is set while a stage is part way through its levels.
	recursing bool
}

// NewCursor returns the cursor of worker id in a pool of workers sorting a
// sequence of length n. It panics unless n and workers are powers of two,
// workers <= n and 0 <= id < workers.
func NewCursor(n, workers, id int) Cursor {
	mustPowerOfTwo(n)
	if !IsPowerOfTwo(workers) || workers > n {
		panic(fmt.Sprintf("network: invalid worker count %d for length %d", workers, n))
	}
	if id < 0 || id >= workers {
		panic(fmt.Sprintf("network: worker id %d out of range [0, %d)", id, workers))
	}
	return Cursor{n: n, workers: workers, id: id, segment: 2, span: 2}
}

// ID returns the worker id the cursor was created for.
func (c *Cursor) ID() int { return c.id }

// Done reports whether the whole network has been applied.
func (c *Cursor) Done() bool {
	return c.segment > c.n
}

// Stage returns the level the next round starts at.
func (c *Cursor) Stage() Stage {
	return Stage{N: c.n, Segment: c.segment, Span: c.span}
}

// Depth returns how many shared rounds of the current stage are behind the
// cursor.
func (c *Cursor) Depth() int { return c.depth }

// Recursing reports whether the cursor is part way through a stage.
func (c *Cursor) Recursing() bool { return c.recursing }

// Ascending returns the direction of the block this worker handles in a
// shared round, or of its first block in an owned round.
func (c *Cursor) Ascending() bool {
	if c.Regime() == Owned {
		return c.Stage().Ascending(c.id * c.span)
	}
	per := c.workers / (c.n / c.span)
	return c.Stage().Ascending((c.id / per) * c.span)
}

// Regime returns the partitioning case of the next round.
func (c *Cursor) Regime() Regime {
	if c.n/c.span >= c.workers {
		return Owned
	}
	return Shared
}

// Levels returns the number of network levels the next round covers.
func (c *Cursor) Levels() int {
	switch {
	case c.Done():
		return 0
	case c.Regime() == Owned:
		return log2(c.span)
	default:
		return 1
	}
}

// Pairs yields the compare-exchanges of this worker for the next round, in
// the order they must be applied. The sequence reflects the cursor state at
// the time Pairs is called.
func (c *Cursor) Pairs() iter.Seq[Pair] {
	if c.Done() {
		return func(func(Pair) bool) {}
	}
	st := c.Stage()
	if c.Regime() == Owned {
		return ownedPairs(st, c.workers, c.id)
	}
	return sharedPairs(st, c.workers, c.id)
}

// Advance moves the cursor past the round described by Pairs.
func (c *Cursor) Advance() {
	if c.Done() {
		return
	}
	if c.Regime() == Owned {
		c.nextStage()
		return
	}
	c.span >>= 1
	c.depth++
	c.recursing = true
	if c.span < 2 {
		c.nextStage()
	}
}

func (c *Cursor) nextStage() {
	c.segment <<= 1
	c.span = c.segment
	c.depth = 0
	c.recursing = false
}

// ownedPairs yields the full cascade st.Span, st.Span/2, ..., 2 of every
// block b with b%workers == id. Blocks are independent, so each one is
// finished before moving to the next.
func ownedPairs(st Stage, workers, id int) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		blocks := st.N / st.Span
		for b := id; b < blocks; b += workers {
			start := b * st.Span
			asc := st.Ascending(start)
			for span := st.Span; span >= 2; span >>= 1 {
				half := span >> 1
				for sub := start; sub < start+st.Span; sub += span {
					for i := sub; i < sub+half; i++ {
						if !yield(Pair{I: i, J: i + half, Ascending: asc}) {
							return
						}
					}
				}
			}
		}
	}
}

// sharedPairs yields this worker's slice of the top level of its block.
// Worker id belongs to block id/per and takes the slot id%per of the
// block's span/2 pairs. With more workers per block than pairs, slots past
// the last pair stay idle.
func sharedPairs(st Stage, workers, id int) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		blocks := st.N / st.Span
		per := workers / blocks
		half := st.Span >> 1
		slot := id % per

		chunk := half / per
		lo := slot * chunk
		if chunk == 0 {
			if slot >= half {
				return
			}
			chunk, lo = 1, slot
		}

		start := (id / per) * st.Span
		asc := st.Ascending(start)
		for i := start + lo; i < start+lo+chunk; i++ {
			if !yield(Pair{I: i, J: i + half, Ascending: asc}) {
				return
			}
		}
	}
}
