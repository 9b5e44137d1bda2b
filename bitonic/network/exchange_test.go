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
	"testing"
)

func TestCompareExchange(t *testing.T) {
	tests := []struct {
		name      string
		in        []int
		ascending bool
		want      []int
		swapped   bool
	}{
		{"ascending out of order", []int{5, 3}, true, []int{3, 5}, true},
		{"ascending in order", []int{3, 5}, true, []int{3, 5}, false},
		{"descending out of order", []int{3, 5}, false, []int{5, 3}, true},
		{"descending in order", []int{5, 3}, false, []int{5, 3}, false},
		{"ascending equal", []int{2, 2}, true, []int{2, 2}, false},
		{"descending equal", []int{2, 2}, false, []int{2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]int(nil), tt.in...)
			got := CompareExchange(data, 0, 1, tt.ascending)
			if got != tt.swapped {
				t.Errorf("swapped = %v, want %v", got, tt.swapped)
			}
			if data[0] != tt.want[0] || data[1] != tt.want[1] {
				t.Errorf("data = %v, want %v", data, tt.want)
			}
		})
	}
}

// TestCompareExchangeEqualIndices checks that a degenerate pair is rejected
// instead of silently corrupting the slot.
func TestCompareExchangeEqualIndices(t *testing.T) {
	data := []int{7, 7, 7}
	defer func() {
		if recover() == nil {
			t.Error("CompareExchange(i == j) should panic")
		}
		if data[1] != 7 {
			t.Errorf("data[1] = %d, want 7", data[1])
		}
	}()
	CompareExchange(data, 1, 1, true)
}

func TestCompareExchangeReversedIndices(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("CompareExchange(i > j) should panic")
		}
	}()
	CompareExchange([]int{1, 2}, 1, 0, true)
}

func TestCompareExchangeStrings(t *testing.T) {
	data := []string{"pear", "apple"}
	if !CompareExchange(data, 0, 1, true) {
		t.Fatal("expected swap")
	}
	if data[0] != "apple" || data[1] != "pear" {
		t.Errorf("data = %v", data)
	}
}

func TestPairString(t *testing.T) {
	if got := (Pair{I: 1, J: 3, Ascending: true}).String(); got != "(1,3,asc)" {
		t.Errorf("String() = %q", got)
	}
	if got := (Pair{I: 0, J: 4}).String(); got != "(0,4,desc)" {
		t.Errorf("String() = %q", got)
	}
}
