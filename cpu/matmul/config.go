package matmul

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Config controls one math benchmark run. Zero fields take the defaults of
// DefaultConfig.
type Config struct {
	Rand *rand.Rand

	Duration time.Duration

	// N is the requested matrix side. It is rounded to the nearest power
	// of two, rounding up on ties.
	N int

	// Kernel replaces BlockedKernel on accelerated hosts. It is ignored
	// elsewhere and by the multithreaded run.
	Kernel Kernel

	Logger *slog.Logger
}

// DefaultConfig returns a 10 second run on 4096×4096 matrices.
func DefaultConfig() Config {
	return Config{
		Duration: 10 * time.Second,
		N:        4096,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Duration <= 0 {
		c.Duration = def.Duration
	}
	if c.N <= 0 {
		c.N = def.N
	}
	c.N = nearestPowerOfTwo(c.N)
	return c
}

// nearestPowerOfTwo rounds n to the closer of its neighbouring powers of
// two, preferring the larger one on a tie. Zero stays zero.
func nearestPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}

	upper := 1
	for upper < n {
		upper <<= 1
	}
	lower := upper >> 1

	if lower > 0 && n-lower < upper-n {
		return lower
	}
	return upper
}
