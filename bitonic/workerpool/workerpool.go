// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs the goroutines behind a parallel sort.
//
// It offers two shapes of parallelism:
//
//   - Run starts a gang: exactly n goroutines with ids 0..n-1 that live for
//     the whole call and may wait on each other (for example at a barrier).
//     The first failure cancels the context seen by the rest of the gang.
//   - Pool is a persistent set of goroutines for independent chunks of work,
//     such as verifying a sorted output, reused across many calls.
//
// Usage:
//
//	err := workerpool.Run(ctx, workers, func(ctx context.Context, id int) error {
//	    return sortWorker(ctx, id)
//	})
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//	pool.ParallelFor(len(data), func(start, end int) {
//	    checkRange(data[start:end])
//	})
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrPanic wraps a panic recovered from a gang member.
var ErrPanic = errors.New("workerpool: worker panicked")

// Run calls fn(ctx, id) for every id in [0, n) on its own goroutine and waits
// for all of them. Gang members may block on each other, so none of them is
// queued behind another.
//
// The context passed to fn is cancelled as soon as one member returns an
// error or panics; Run returns that first error. A panic is reported as an
// error wrapping ErrPanic.
func Run(ctx context.Context, n int, fn func(ctx context.Context, id int) error) error {
	if n <= 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for id := range n {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: worker %d: %v", ErrPanic, id, r)
				}
			}()
			return fn(gctx, id)
		})
	}
	return g.Wait()
}

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one chunk of a parallel operation.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers goroutines, which persist until Close.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes. Calling Close multiple
// times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. It blocks until all ranges are done. A closed pool
// runs fn(0, n) on the caller.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	p.dispatch(workers, func(i int) {
		start := i * chunkSize
		if start < n {
			fn(start, min(start+chunkSize, n))
		}
	})
}

// ParallelForBatched hands out [0, n) in batches of batchSize to whichever
// worker is free, calling fn(start, end) per batch. Use it when the cost of
// a range is uneven.
func (p *Pool) ParallelForBatched(n, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	var next atomic.Int64
	p.dispatch(workers, func(int) {
		for {
			start := int(next.Add(int64(batchSize))) - batchSize
			if start >= n {
				return
			}
			fn(start, min(start+batchSize, n))
		}
	})
}

// dispatch queues fn(i) for i in [0, workers) and waits for all of them.
func (p *Pool) dispatch(workers int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		p.workC <- workItem{
			fn:      func() { fn(i) },
			barrier: &wg,
		}
	}
	wg.Wait()
}
