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
	"fmt"

	"github.com/ajroetker/go-bitonic/bitonic/barrier"
	"github.com/ajroetker/go-bitonic/bitonic/workerpool"
)

// Stats describes a completed or aborted sort.
type Stats struct {
	Workers int

	// Rounds is the number of barrier generations the pool went through.
	Rounds int

	// Levels is the number of network levels applied, log2(n)*(log2(n)+1)/2
	// for a completed sort.
	Levels int

	// CompareExchanges and Swaps are totals over all workers. Swaps is zero
	// for input that is already sorted.
	CompareExchanges int
	Swaps            int
}

// Sort sorts data in place in ascending order using workers goroutines.
//
// len(data) and workers must be powers of two with workers <= len(data);
// otherwise Sort returns ErrInvalidLength or ErrInvalidWorkerCount without
// touching data. workers == 0 selects DefaultWorkers(len(data)).
//
// If ctx is cancelled before the sort completes, Sort returns an error
// wrapping ErrInterrupted and ctx.Err(), and data holds a permutation of its
// input. Floating-point NaNs are not ordered and leave the result unsorted.
func Sort[T cmp.Ordered](ctx context.Context, data []T, workers int) error {
	_, err := SortStats(ctx, data, workers)
	return err
}

// SortStats is like Sort and also reports what the pool did.
func SortStats[T cmp.Ordered](ctx context.Context, data []T, workers int) (Stats, error) {
	n := len(data)
	if workers == 0 {
		workers = DefaultWorkers(n)
	}
	if err := validate(n, workers); err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{Workers: workers}, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	coord := newCoordinator(workers)
	b := barrier.New(workers, coord.allDone)
	pool := make([]*worker[T], workers)
	for id := range pool {
		pool[id] = newWorker(id, workers, data, b, coord)
	}

	err := workerpool.Run(ctx, workers, func(ctx context.Context, id int) error {
		return pool[id].run(ctx)
	})

	stats := Stats{
		Workers: workers,
		Rounds:  int(b.Generation()),
		Levels:  pool[0].levels,
	}
	for _, w := range pool {
		stats.CompareExchanges += w.exchanges
		stats.Swaps += w.swaps
	}
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return stats, nil
}
