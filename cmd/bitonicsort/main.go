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

// Command bitonicsort sorts int64 data with the parallel bitonic network and
// reports how long it took.
//
// Usage:
//
//	bitonicsort -n 1048576 -workers 8 -runs 5
//	bitonicsort -input data.bin -output sorted.bin -workers 4
//
// Input and output files hold raw little-endian int64 values. Inputs whose
// length is not a power of two are padded with the largest int64 and the
// padding is removed before writing.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/ajroetker/go-bitonic/bitonic"
	"github.com/ajroetker/go-bitonic/bitonic/check"
	"github.com/ajroetker/go-bitonic/bitonic/workerpool"
)

var (
	numValues  = flag.Int("n", 1<<20, "Number of random values to generate when -input is not set")
	seed       = flag.Int64("seed", 1, "Seed for generated values")
	inputFile  = flag.String("input", "", "File of little-endian int64 values to sort")
	outputFile = flag.String("output", "", "Write the sorted values to this file")
	workers    = flag.Int("workers", 0, "Worker count, a power of two (default: $"+bitonic.WorkersEnv+" or GOMAXPROCS)")
	runs       = flag.Int("runs", 1, "Number of timed runs")
	verify     = flag.Bool("verify", true, "Check the output is sorted and a permutation of the input")
	compare    = flag.Bool("compare", false, "Also time slices.Sort on the same data")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *runs <= 0 {
		return fmt.Errorf("-runs must be positive, got %d", *runs)
	}

	input, err := loadInput()
	if err != nil {
		return err
	}
	if len(input) == 0 {
		return fmt.Errorf("no values to sort")
	}

	pool := workerpool.New(0)
	defer pool.Close()

	var sorted []int64
	for i := range *runs {
		padded := bitonic.PadMax(input)
		start := time.Now()
		stats, err := bitonic.SortStats(ctx, padded, *workers)
		elapsed := time.Since(start)
		if err != nil {
			return err
		}
		sorted = bitonic.Unpad(padded, len(input))
		fmt.Printf("run %d: n=%d padded=%d workers=%d rounds=%d levels=%d swaps=%d elapsed=%v\n",
			i+1, len(input), len(padded), stats.Workers, stats.Rounds, stats.Levels, stats.Swaps, elapsed)
	}

	if *compare {
		data := slices.Clone(input)
		start := time.Now()
		slices.Sort(data)
		fmt.Printf("slices.Sort: n=%d elapsed=%v\n", len(data), time.Since(start))
	}

	if *verify {
		if !check.IsSorted(pool, sorted) {
			return fmt.Errorf("output is not sorted at index %d", check.FirstUnsorted(sorted))
		}
		if in, out := check.Fingerprint(pool, input), check.Fingerprint(pool, sorted); in != out {
			return fmt.Errorf("output is not a permutation of the input (fingerprint %016x != %016x)", out, in)
		}
		fmt.Println("verified: sorted, permutation of input")
	}

	if *outputFile != "" {
		if err := writeValues(*outputFile, sorted); err != nil {
			return err
		}
		fmt.Printf("wrote %d values to %s\n", len(sorted), *outputFile)
	}
	return nil
}

func loadInput() ([]int64, error) {
	if *inputFile != "" {
		return readValues(*inputFile)
	}
	if *numValues <= 0 {
		return nil, fmt.Errorf("-n must be positive, got %d", *numValues)
	}
	r := rand.New(rand.NewSource(*seed))
	data := make([]int64, *numValues)
	for i := range data {
		data[i] = r.Int63()
	}
	return data, nil
}
