package matmul

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/internal/budget"
	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/pool"
)

var (
	matrixA = []int8{
		80, 43, 16, 5,
		70, 41, 38, 62,
		31, 19, 97, 39,
		66, 6, 40, 28,
	}
	matrixB = []int8{
		24, 12, 24, 29,
		83, 59, 32, 44,
		97, 38, 67, 13,
		98, 64, 68, 29,
	}
	matrixR = []int32{
		7531, 4425, 4708, 4565,
		14845, 8671, 9754, 6126,
		15552, 7675, 10503, 4127,
		8706, 4458, 6360, 3510,
	}
)

func toFloat32[T Number](in []T) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// withParallelThreshold forks at every level for the duration of the test.
func withParallelThreshold(t *testing.T, n int) {
	t.Helper()
	prev := parallelThreshold
	parallelThreshold = n
	t.Cleanup(func() { parallelThreshold = prev })
}

func TestMultiply_KnownProduct(t *testing.T) {
	r := make([]int32, 16)

	got := Multiply(matrixA, matrixB, r, 4, nil)

	assert.Equal(t, budget.Completed(64), got)
	assert.Equal(t, matrixR, r)
}

func TestMultiplyParallel_KnownProduct(t *testing.T) {
	withParallelThreshold(t, 1)

	for _, workers := range []int{1, 2, 4, 8} {
		fj := pool.NewForkJoin(pool.WithWorkerCount(workers))

		r := make([]float32, 16)
		got := MultiplyParallel(fj, toFloat32(matrixA), toFloat32(matrixB), r, 4, nil)

		assert.Equal(t, budget.Completed(64), got, "workers=%d", workers)
		assert.Equal(t, toFloat32(matrixR), r, "workers=%d", workers)

		ri := make([]int32, 16)
		got = MultiplyParallel(fj, matrixA, matrixB, ri, 4, nil)
		assert.Equal(t, budget.Completed(64), got, "workers=%d", workers)
		assert.Equal(t, matrixR, ri, "workers=%d", workers)
	}
}

func TestMultiply_ZeroBudgetInterrupts(t *testing.T) {
	r := make([]int32, 16)
	assert.Equal(t, budget.Interrupted(0), Multiply(matrixA, matrixB, r, 4, budget.NewTimeout(0)))

	fj := pool.NewForkJoin(pool.WithWorkerCount(4))
	rf := make([]float32, 16)
	got := MultiplyParallel(fj, toFloat32(matrixA), toFloat32(matrixB), rf, 4, budget.NewTimeout(0))
	assert.Equal(t, budget.Interrupted(0), got)
}

func TestMultiply_InterruptedCountBelowFull(t *testing.T) {
	const n = 256
	a := make([]int8, n*n)
	b := make([]int8, n*n)
	r := make([]int32, n*n)

	got := Multiply(a, b, r, n, budget.NewTimeout(2*time.Millisecond))

	require.True(t, got.Interrupted)
	assert.Less(t, got.Units, uint64(n*n*n))
}

func TestMultiplyParallel_InterruptedCountBelowFull(t *testing.T) {
	withParallelThreshold(t, 8)

	const n = 256
	a := make([]float32, n*n)
	b := make([]float32, n*n)
	r := make([]float32, n*n)
	fj := pool.NewForkJoin(pool.WithWorkerCount(4))

	got := MultiplyParallel(fj, a, b, r, n, budget.NewTimeout(2*time.Millisecond))

	require.True(t, got.Interrupted)
	assert.Less(t, got.Units, uint64(n*n*n))
}

func TestMultiply_PanicsOnBadSide(t *testing.T) {
	assert.Panics(t, func() { Multiply(make([]int8, 9), make([]int8, 9), make([]int32, 9), 3, nil) })
	assert.Panics(t, func() { Multiply(make([]int8, 4), make([]int8, 4), make([]int32, 4), 4, nil) })
}

func TestQuadrants_PartitionBuffer(t *testing.T) {
	const n = 16
	seen := make([]int, n*n)

	var walk func(v view[int])
	walk = func(v view[int]) {
		if v.n == 1 {
			seen[v.index(0, 0)]++
			return
		}
		q11, q12, q21, q22 := v.quadrants()
		for _, q := range []view[int]{q11, q12, q21, q22} {
			walk(q)
		}
	}
	walk(newView(make([]int, n*n), n))

	for i, hits := range seen {
		assert.Equal(t, 1, hits, "index %d", i)
	}
}

func TestNearestPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 4},
		{6, 8},
		{47, 32},
		{48, 64},
		{4096, 4096},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nearestPowerOfTwo(tt.in), "nearestPowerOfTwo(%d)", tt.in)
	}
}

func TestBlockedKernel_MatchesRecursive(t *testing.T) {
	const n = 64
	r := rng.New(5)
	a := make([]int8, n*n)
	b := make([]int8, n*n)
	for i := range a {
		a[i] = randInt8(r)
		b[i] = randInt8(r)
	}

	want := make([]int32, n*n)
	Multiply(a, b, want, n, nil)

	got := make([]int32, n*n)
	c := BlockedKernel{Tile: 16}.MultiplyInt8(a, b, got, n, time.Time{})

	assert.Equal(t, budget.Completed(n*n*n), c)
	assert.Equal(t, want, got)
}

func TestBlockedKernel_PastDeadline(t *testing.T) {
	r := make([]int32, 16)
	c := BlockedKernel{}.MultiplyInt8(matrixA, matrixB, r, 4, time.Now().Add(-time.Second))
	assert.Equal(t, budget.Interrupted(0), c)
}

func TestSelectStrategy(t *testing.T) {
	assert.Equal(t, "portable", selectStrategy(capability.Record{SVE: true}, nil).name())
	assert.Equal(t, "portable", selectStrategy(capability.Record{}, BlockedKernel{}).name())

	s := selectStrategy(capability.Record{SVE: true, I8MM: true}, nil)
	require.Equal(t, "accelerated", s.name())
	assert.IsType(t, BlockedKernel{}, s.(accelerated).kernel)
}

// recordingKernel remembers the deadline it was given and does no work.
type recordingKernel struct {
	deadline time.Time
}

func (k *recordingKernel) MultiplyInt8(a, b []int8, r []int32, n int, deadline time.Time) budget.Count {
	k.deadline = deadline
	return budget.Completed(uint64(n * n * n))
}

func TestBench_AcceleratedKernelEmptyResult(t *testing.T) {
	k := &recordingKernel{}
	_, err := Bench(capability.Record{Cores: 1, SVE: true, I8MM: true}, Config{
		Duration: time.Second,
		N:        16,
		Kernel:   k,
	})

	assert.ErrorIs(t, err, ErrEmpty)
	assert.False(t, k.deadline.IsZero())
	assert.True(t, k.deadline.Before(time.Now().Add(time.Second)))
}

func TestDegenerate(t *testing.T) {
	assert.True(t, degenerate(make([]int32, 16), 4))
	assert.False(t, degenerate(matrixR, 4))

	r := make([]float32, 16)
	r[15] = 1
	assert.False(t, degenerate(r, 4))
}

func TestBench(t *testing.T) {
	duration := 300 * time.Millisecond
	start := time.Now()

	r, err := Bench(capability.Record{Cores: 1}, Config{Rand: rng.New(1), Duration: duration, N: 60})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Positive(t, r.Units)
	assert.Positive(t, r.PerSecond)
	assert.GreaterOrEqual(t, elapsed, duration)
	assert.Less(t, elapsed, duration+250*time.Millisecond)
}

func TestBench_Accelerated(t *testing.T) {
	r, err := Bench(capability.Record{Cores: 1, SVE: true, I8MM: true}, Config{Duration: 200 * time.Millisecond, N: 128})

	require.NoError(t, err)
	assert.Positive(t, r.Units)
}

func TestBenchMultithread(t *testing.T) {
	duration := 300 * time.Millisecond
	start := time.Now()

	r, err := BenchMultithread(capability.Record{Cores: 4}, Config{Duration: duration, N: 128})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Positive(t, r.Units)
	assert.GreaterOrEqual(t, elapsed, duration)
	assert.Less(t, elapsed, duration+250*time.Millisecond)
}
