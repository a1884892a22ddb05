package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/utkarsh5026/devbench/cpu/matmul"
	"github.com/utkarsh5026/devbench/cpu/mergesort"
	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/pool"
)

func BenchmarkMultiply_Sizes(b *testing.B) {
	for _, n := range []int{32, 64, 128} {
		b.Run(fmt.Sprintf("n_%d", n), func(b *testing.B) {
			r := rng.New(1)
			x, y := randomInt8(r, n*n), randomInt8(r, n*n)
			out := make([]int32, n*n)

			for b.Loop() {
				clear(out)
				matmul.Multiply(x, y, out, n, nil)
			}

			b.ReportMetric(float64(n*n*n)*float64(b.N)/b.Elapsed().Seconds(), "mul/sec")
		})
	}
}

func BenchmarkMultiply_BlockedKernel(b *testing.B) {
	const n = 128
	r := rng.New(1)
	x, y := randomInt8(r, n*n), randomInt8(r, n*n)
	out := make([]int32, n*n)
	kernel := matmul.BlockedKernel{}

	for b.Loop() {
		clear(out)
		kernel.MultiplyInt8(x, y, out, n, time.Time{})
	}

	b.ReportMetric(float64(n*n*n)*float64(b.N)/b.Elapsed().Seconds(), "mul/sec")
}

func BenchmarkMultiplyParallel_WorkerScaling(b *testing.B) {
	const n = 128
	r := rng.New(2)
	x, y := randomFloat32(r, n*n), randomFloat32(r, n*n)

	runWorkerBenchmark(b, func(b *testing.B, c workerConfig) {
		out := make([]float32, n*n)
		for b.Loop() {
			clear(out)
			matmul.MultiplyParallel(c.fj, x, y, out, n, nil)
		}

		b.ReportMetric(float64(n*n*n)*float64(b.N)/b.Elapsed().Seconds(), "mul/sec")
	})
}

func BenchmarkSort_Strings(b *testing.B) {
	const count = 10000
	input := randomStrings(rng.New(3), count, 25)
	data := make([]string, count)
	scratch := make([]string, count)

	for b.Loop() {
		copy(data, input)
		mergesort.Sort(data, scratch, nil)
	}

	b.ReportMetric(float64(count)*float64(b.N)/b.Elapsed().Seconds(), "items/sec")
}

func BenchmarkSortParallel_WorkerScaling(b *testing.B) {
	const count = 100000
	input := randomStrings(rng.New(4), count, 25)

	runWorkerBenchmark(b, func(b *testing.B, c workerConfig) {
		data := make([]string, count)
		scratch := make([]string, count)

		for b.Loop() {
			copy(data, input)
			mergesort.SortParallel(c.fj, data, scratch, nil)
		}

		b.ReportMetric(float64(count)*float64(b.N)/b.Elapsed().Seconds(), "items/sec")
	})
}

func BenchmarkWorkerPool_ChunkedFill(b *testing.B) {
	const chunkLen = 64 << 10
	workerCounts := []int{1, 2, 4, 8}

	for _, workers := range workerCounts {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			chunks := make([][]byte, workers)
			for i := range chunks {
				chunks[i] = make([]byte, chunkLen)
			}
			wp := pool.NewWorkerPool[[]byte, struct{}](pool.WithWorkerCount(workers))

			for b.Loop() {
				_, err := wp.Process(context.Background(), chunks, func(_ context.Context, c []byte) (struct{}, error) {
					for i := range c {
						c[i] = byte(i)
					}
					return struct{}{}, nil
				})
				if err != nil {
					b.Fatal(err)
				}
			}

			b.SetBytes(int64(workers * chunkLen))
		})
	}
}
