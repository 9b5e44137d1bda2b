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

package barrier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAwaitRounds(t *testing.T) {
	const parties = 8
	const rounds = 50

	// progress[id] is written only by worker id; after each release every
	// worker must see all others at the same round.
	progress := make([]int, parties)
	var actions atomic.Int32
	b := New(parties, func() bool {
		actions.Add(1)
		for _, p := range progress {
			if p != progress[0] {
				t.Errorf("action saw uneven progress %v", progress)
			}
		}
		return progress[0] == rounds
	})

	var wg sync.WaitGroup
	errs := make([]error, parties)
	for id := range parties {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := 1; ; round++ {
				progress[id] = round
				stop, err := b.Await(context.Background())
				if err != nil {
					errs[id] = err
					return
				}
				for other := range parties {
					if progress[other] != round {
						t.Errorf("worker %d round %d saw worker %d at %d", id, round, other, progress[other])
					}
				}
				// Everyone must have read the round before anyone moves on.
				if _, err := b.Await(context.Background()); err != nil {
					errs[id] = err
					return
				}
				if stop {
					return
				}
			}
		}()
	}
	wg.Wait()

	for id, err := range errs {
		if err != nil {
			t.Errorf("worker %d: %v", id, err)
		}
	}
	if got := b.Generation(); got != 2*rounds {
		t.Errorf("Generation() = %d, want %d", got, 2*rounds)
	}
	if got := actions.Load(); got != 2*rounds {
		t.Errorf("action ran %d times, want %d", got, 2*rounds)
	}
	if b.Broken() {
		t.Error("barrier should not be broken")
	}
}

func TestAwaitSingleParty(t *testing.T) {
	calls := 0
	b := New(1, func() bool {
		calls++
		return calls == 3
	})
	for i := 1; i <= 3; i++ {
		stop, err := b.Await(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if stop != (i == 3) {
			t.Errorf("round %d: stop = %v", i, stop)
		}
	}
	if b.Parties() != 1 {
		t.Errorf("Parties() = %d", b.Parties())
	}
}

func TestAwaitNilAction(t *testing.T) {
	b := New(2, nil)
	done := make(chan bool)
	go func() {
		stop, err := b.Await(context.Background())
		done <- stop || err != nil
	}()
	stop, err := b.Await(context.Background())
	if stop || err != nil {
		t.Errorf("Await() = %v, %v", stop, err)
	}
	if <-done {
		t.Error("second party got stop or error")
	}
}

func TestAwaitContextCancelBreaks(t *testing.T) {
	b := New(3, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		_, err := b.Await(context.Background())
		errc <- err
	}()

	// Give the first waiter time to park.
	time.Sleep(10 * time.Millisecond)
	cancel()
	_, err := b.Await(ctx)
	if !errors.Is(err, ErrBroken) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Await() error = %v, want ErrBroken wrapping context.Canceled", err)
	}

	select {
	case err := <-errc:
		if !errors.Is(err, ErrBroken) {
			t.Errorf("parked waiter error = %v, want ErrBroken", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("parked waiter was not released")
	}

	if !b.Broken() {
		t.Error("Broken() = false")
	}
	if _, err := b.Await(context.Background()); !errors.Is(err, ErrBroken) {
		t.Errorf("Await after break = %v, want ErrBroken", err)
	}
}

func TestBreakReleasesWaiters(t *testing.T) {
	const parties = 4
	b := New(parties, nil)
	cause := errors.New("worker failed")

	var wg sync.WaitGroup
	var broken atomic.Int32
	for range parties - 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.Await(context.Background()); errors.Is(err, cause) {
				broken.Add(1)
			}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	b.Break(cause)
	b.Break(errors.New("ignored"))
	wg.Wait()

	if got := broken.Load(); got != parties-1 {
		t.Errorf("%d waiters saw the cause, want %d", got, parties-1)
	}
}

func TestBreakNilCause(t *testing.T) {
	b := New(2, nil)
	b.Break(nil)
	if _, err := b.Await(context.Background()); err != ErrBroken {
		t.Errorf("Await() = %v, want ErrBroken", err)
	}
}

func TestActionPanicBreaks(t *testing.T) {
	b := New(2, func() bool { panic("boom") })
	errc := make(chan error, 1)
	go func() {
		_, err := b.Await(context.Background())
		errc <- err
	}()
	_, err := b.Await(context.Background())
	if !errors.Is(err, ErrBroken) {
		t.Errorf("Await() = %v, want ErrBroken", err)
	}
	if err := <-errc; !errors.Is(err, ErrBroken) {
		t.Errorf("other party = %v, want ErrBroken", err)
	}
	if b.Generation() != 0 {
		t.Errorf("Generation() = %d, want 0", b.Generation())
	}
}

func TestNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0) should panic")
		}
	}()
	New(0, nil)
}
