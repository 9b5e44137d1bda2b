package bitonic

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/ajroetker/go-bitonic/bitonic/network"
)

func BenchmarkSort(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 14, 1 << 18} {
		ref := generateInt64(n, 1)
		data := make([]int64, n)
		for _, workers := range []int{1, 2, 4, 8} {
			b.Run(fmt.Sprintf("n=%d/workers=%d", n, workers), func(b *testing.B) {
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					copy(data, ref)
					if err := Sort(context.Background(), data, workers); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// Sequential network, for comparison with workers=1.
func BenchmarkNetworkSort(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 14, 1 << 18} {
		ref := generateInt64(n, 1)
		data := make([]int64, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				copy(data, ref)
				network.Sort(data)
			}
		})
	}
}

func BenchmarkStdlibSort(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 14, 1 << 18} {
		ref := generateInt64(n, 1)
		data := make([]int64, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				copy(data, ref)
				slices.Sort(data)
			}
		})
	}
}
