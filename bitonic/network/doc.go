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

// Package network describes the bitonic sorting network for a sequence of
// length N = 2^k and partitions it across a fixed number of workers.
//
// # Network shape
//
// The network is a list of levels. A level is identified by a Stage: the
// segment size (2, 4, ..., N) being built and the span (segment, segment/2,
// ..., 2) of the blocks it splits. Every level compare-exchanges index i with
// i+span/2 for each i in the first half of each block. Blocks inside the k-th
// segment sort ascending when k is even and descending when k is odd, which
// turns each pair of neighbouring segments into a bitonic sequence for the
// next stage. The last stage (segment == N) is the merge and sorts ascending.
// There are log2(N)*(log2(N)+1)/2 levels in total (see Depth).
//
// # Partitioning
//
// A Cursor follows one worker through the network. Each call to Pairs yields
// the compare-exchanges that worker performs in the current round, and
// Advance moves to the next round. All cursors of a pool advance in lockstep,
// so they agree on the stage and on the partitioning regime:
//
//   - Owned: there are at least as many blocks as workers. Worker id owns the
//     blocks b with b%workers == id and runs their whole half-cleaner cascade
//     locally, finishing the stage in one round.
//   - Shared: there are fewer blocks than workers. workers/blocks consecutive
//     workers split one block's top level into contiguous runs of pairs. The
//     next round handles the next level down, until the blocks are small and
//     numerous enough to switch back to Owned.
//
// Within a round no index is touched by two workers, which is what allows the
// workers to mutate the shared sequence without locks.
//
// # Example
//
//	c := network.NewCursor(len(data), workers, id)
//	for !c.Done() {
//	    for p := range c.Pairs() {
//	        network.CompareExchange(data, p.I, p.J, p.Ascending)
//	    }
//	    c.Advance()
//	    // wait for the other workers here
//	}
package network
