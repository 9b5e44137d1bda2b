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
	"fmt"
	"math/bits"
	"os"
	"runtime"
	"strconv"

	"github.com/ajroetker/go-bitonic/bitonic/network"
)

// WorkersEnv names the environment variable that overrides the default
// worker count.
const WorkersEnv = "BITONIC_WORKERS"

// WorkersFromEnv returns the worker count set in BITONIC_WORKERS, if it is a
// positive integer.
func WorkersFromEnv() (int, bool) {
	val := os.Getenv(WorkersEnv)
	if val == "" {
		return 0, false
	}
	w, err := strconv.Atoi(val)
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

// DefaultWorkers returns the worker count used when Sort is called with
// workers == 0: BITONIC_WORKERS if set, otherwise GOMAXPROCS, rounded down
// to a power of two and capped at the largest power of two <= n.
func DefaultWorkers(n int) int {
	w, ok := WorkersFromEnv()
	if !ok {
		w = runtime.GOMAXPROCS(0)
	}
	w = min(floorPowerOfTwo(w), floorPowerOfTwo(n))
	return max(w, 1)
}

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func floorPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

func validate(n, workers int) error {
	if !network.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: length %d", ErrInvalidLength, n)
	}
	if !network.IsPowerOfTwo(workers) {
		return fmt.Errorf("%w: %d workers", ErrInvalidWorkerCount, workers)
	}
	if workers > n {
		return fmt.Errorf("%w: %d workers for length %d", ErrInvalidWorkerCount, workers, n)
	}
	return nil
}
