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

// Package bitonic sorts slices in place with a bitonic sorting network
// executed by a fixed pool of goroutines.
//
// A bitonic network's compare-exchanges are fixed by the sequence length
// alone, so they can be split across workers ahead of time without a shared
// work queue. Each worker follows its own network.Cursor; after every round
// all workers meet at a barrier.Barrier, and the last one to arrive checks
// whether every worker has finished the network.
//
// # Requirements
//
// The sequence length and the worker count must be powers of two, with no
// more workers than elements. Use SortAny (or Pad and Unpad) for other
// lengths.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-bitonic/bitonic"
//
//	func SortScores(ctx context.Context, scores []int64) error {
//	    return bitonic.Sort(ctx, scores, 4)
//	}
//
//	func SortAnyLength(ctx context.Context, data []float32) error {
//	    return bitonic.SortAny(ctx, data, bitonic.MaxValue[float32](), 0)
//	}
//
// # Configuration
//
// Passing workers == 0 uses DefaultWorkers: the BITONIC_WORKERS environment
// variable if set, otherwise GOMAXPROCS, rounded down to a power of two.
package bitonic
