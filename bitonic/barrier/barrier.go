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

// Package barrier provides a cyclic barrier for a fixed party of goroutines
// that advance in rounds.
//
// Every party calls Await once per round. The call returns after all parties
// have arrived for that round (a generation). The last party to arrive runs
// the barrier action before anyone is released; the action decides whether
// the party should stop after this generation.
//
// A barrier whose party can no longer complete a round is broken: a waiter's
// context is cancelled, Break is called, or the action panics. Breaking
// releases every waiter with an error wrapping ErrBroken, and all later calls
// to Await fail immediately. A broken barrier cannot be reset; create a new
// one.
//
// Usage:
//
//	b := barrier.New(workers, allDone)
//	for {
//	    doRound()
//	    stop, err := b.Await(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    if stop {
//	        return nil
//	    }
//	}
package barrier

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrBroken is returned by Await once the barrier can no longer release.
var ErrBroken = errors.New("barrier: broken")

// Barrier is a reusable rendezvous point for a fixed number of parties.
type Barrier struct {
	parties int
	action  func() bool

	mu      sync.Mutex
	arrived int
	gen     *generation
	seq     uint64
}

// generation is the state shared by the waiters of one round. release is
// closed exactly once, after stop and err are final.
type generation struct {
	release chan struct{}
	stop    bool
	err     error
}

func newGeneration() *generation {
	return &generation{release: make(chan struct{})}
}

// New creates a barrier for parties goroutines. action may be nil; otherwise
// it runs once per generation on the last arriving goroutine, after every
// party's writes preceding its Await are visible, and its result is returned
// as stop to every party of that generation.
//
// New panics if parties <= 0.
func New(parties int, action func() bool) *Barrier {
	if parties <= 0 {
		panic("barrier: parties must be positive")
	}
	return &Barrier{parties: parties, action: action, gen: newGeneration()}
}

// Parties returns the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}

// Generation returns the number of rounds released so far.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Broken reports whether the barrier has been broken.
func (b *Barrier) Broken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen.err != nil
}

// Await blocks until every party has called Await for the current
// generation, then returns the barrier action's verdict.
//
// If ctx is done first, the barrier is broken with ctx.Err() as the cause.
// The returned error wraps ErrBroken and the cause.
func (b *Barrier) Await(ctx context.Context) (stop bool, err error) {
	b.mu.Lock()
	g := b.gen
	if g.err != nil {
		b.mu.Unlock()
		return false, g.err
	}
	b.arrived++
	if b.arrived == b.parties {
		b.trip(g)
		b.mu.Unlock()
		return g.stop, g.err
	}
	b.mu.Unlock()

	select {
	case <-g.release:
	case <-ctx.Done():
		b.breakGeneration(g, ctx.Err())
		<-g.release
	}
	return g.stop, g.err
}

// Break breaks the barrier, releasing all current waiters with an error
// wrapping ErrBroken and cause. Breaking an already broken barrier is a
// no-op.
func (b *Barrier) Break(cause error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.breakLocked(b.gen, cause)
}

// breakGeneration breaks g unless it has already been released normally.
func (b *Barrier) breakGeneration(g *generation, cause error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gen != g {
		return
	}
	b.breakLocked(g, cause)
}

func (b *Barrier) breakLocked(g *generation, cause error) {
	if g.err != nil {
		return
	}
	if cause == nil {
		g.err = ErrBroken
	} else {
		g.err = fmt.Errorf("%w: %w", ErrBroken, cause)
	}
	close(g.release)
}

// trip runs the action and releases g. The caller holds b.mu.
func (b *Barrier) trip(g *generation) {
	stop, err := b.runAction()
	if err != nil {
		b.breakLocked(g, err)
		return
	}
	g.stop = stop
	close(g.release)
	b.seq++
	b.arrived = 0
	b.gen = newGeneration()
}

func (b *Barrier) runAction() (stop bool, err error) {
	if b.action == nil {
		return false, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("barrier action panicked: %v", r)
		}
	}()
	return b.action(), nil
}
