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
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-bitonic/bitonic/barrier"
	"github.com/ajroetker/go-bitonic/bitonic/network"
)

// workerState is the position of a worker in its round loop.
type workerState int

const (
	stateActive workerState = iota
	stateWaiting
	stateDone
)

func (s workerState) String() string {
	switch s {
	case stateActive:
		return "active"
	case stateWaiting:
		return "waiting"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// doneFlag is padded so that workers publishing completion do not share a
// cache line.
type doneFlag struct {
	atomic.Bool
	_ cpu.CacheLinePad
}

// coordinator decides, once per barrier generation, whether every worker
// has finished the network.
type coordinator struct {
	done []doneFlag
}

func newCoordinator(workers int) *coordinator {
	return &coordinator{done: make([]doneFlag, workers)}
}

func (c *coordinator) markDone(id int) {
	c.done[id].Store(true)
}

// allDone is the barrier action.
func (c *coordinator) allDone() bool {
	for i := range c.done {
		if !c.done[i].Load() {
			return false
		}
	}
	return true
}

// worker applies one worker's share of the network to data, a round at a
// time, synchronizing with the rest of the pool at the barrier.
type worker[T cmp.Ordered] struct {
	id      int
	data    []T
	cursor  network.Cursor
	barrier *barrier.Barrier
	coord   *coordinator
	state   workerState

	levels    int
	exchanges int
	swaps     int
}

func newWorker[T cmp.Ordered](id, workers int, data []T, b *barrier.Barrier, coord *coordinator) *worker[T] {
	return &worker[T]{
		id:      id,
		data:    data,
		cursor:  network.NewCursor(len(data), workers, id),
		barrier: b,
		coord:   coord,
	}
}

// run drives the worker until the coordinator reports global completion or
// the barrier breaks. A panic breaks the barrier so that the rest of the
// pool is released instead of waiting for this worker forever.
func (w *worker[T]) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause := fmt.Errorf("worker %d: %v", w.id, r)
			w.barrier.Break(cause)
			err = fmt.Errorf("%w: %w", barrier.ErrBroken, cause)
		}
	}()

	w.state = stateActive
	if w.cursor.Done() {
		w.finish()
	}
	for {
		if w.state == stateActive {
			w.round()
		}
		stop, awaitErr := w.barrier.Await(ctx)
		if awaitErr != nil {
			return awaitErr
		}
		if stop {
			return nil
		}
		if w.state == stateWaiting {
			w.state = stateActive
		}
	}
}

// round applies this worker's pairs for the current round and advances the
// cursor. Completion is published before the worker reaches the barrier, so
// the barrier action of this generation sees it.
func (w *worker[T]) round() {
	w.levels += w.cursor.Levels()
	for p := range w.cursor.Pairs() {
		w.exchanges++
		if network.CompareExchange(w.data, p.I, p.J, p.Ascending) {
			w.swaps++
		}
	}
	w.cursor.Advance()
	if w.cursor.Done() {
		w.finish()
		return
	}
	w.state = stateWaiting
}

func (w *worker[T]) finish() {
	w.state = stateDone
	w.coord.markDone(w.id)
}
