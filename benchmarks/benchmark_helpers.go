package benchmarks

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"testing"

	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/pool"
)

// workerConfig defines a fork-join configuration to benchmark
type workerConfig struct {
	name string
	fj   *pool.ForkJoin
}

// getWorkerConfigs returns fork-join pools from a single worker up to every core
func getWorkerConfigs() []workerConfig {
	configs := []workerConfig{
		{name: "workers_1", fj: pool.NewForkJoin(pool.WithWorkerCount(1))},
	}
	seen := map[int]bool{1: true}
	for _, n := range []int{2, 4, runtime.NumCPU()} {
		if n > runtime.NumCPU() || seen[n] {
			continue
		}
		seen[n] = true
		configs = append(configs, workerConfig{
			name: fmt.Sprintf("workers_%d", n),
			fj:   pool.NewForkJoin(pool.WithWorkerCount(n)),
		})
	}
	return configs
}

// runWorkerBenchmark runs a benchmark function for all worker configurations
func runWorkerBenchmark(b *testing.B, benchFunc func(b *testing.B, c workerConfig)) {
	for _, c := range getWorkerConfigs() {
		b.Run(c.name, func(b *testing.B) {
			benchFunc(b, c)
		})
	}
}

// =============================================================================
// Input Generators
// =============================================================================

func randomInt8(r *rand.Rand, n int) []int8 {
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(r.IntN(256) - 128)
	}
	return out
}

func randomFloat32(r *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = r.Float32()
	}
	return out
}

func randomStrings(r *rand.Rand, n, itemLen int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = rng.Alphanumeric(r, itemLen)
	}
	return out
}
