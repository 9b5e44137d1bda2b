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
	"cmp"
	"fmt"
)

// Pair is a single compare-exchange of the network. I < J always holds.
type Pair struct {
	I, J int

	// Ascending orders the pair so that data[I] <= data[J]; otherwise the
	// pair is ordered so that data[I] >= data[J].
	Ascending bool
}

func (p Pair) String() string {
	dir := "asc"
	if !p.Ascending {
		dir = "desc"
	}
	return fmt.Sprintf("(%d,%d,%s)", p.I, p.J, dir)
}

// CompareExchange orders data[i] and data[j] according to ascending and
// reports whether it swapped them. Equal values are never swapped.
//
// It panics if i >= j: the network never produces such a pair, so one
// reaching this point means the partitioning is broken.
func CompareExchange[T cmp.Ordered](data []T, i, j int, ascending bool) bool {
	if i >= j {
		panic(fmt.Sprintf("network: compare-exchange of unordered pair (%d, %d)", i, j))
	}
	a, b := data[i], data[j]
	if (ascending && a > b) || (!ascending && a < b) {
		data[i], data[j] = b, a
		return true
	}
	return false
}
