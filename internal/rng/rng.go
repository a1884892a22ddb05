// Package rng holds the random helpers the benchmarks share. Every benchmark
// takes an injectable *rand.Rand so tests can pin a seed.
package rng

import (
	"encoding/binary"
	"math/rand/v2"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// New returns a deterministic generator for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Default returns a generator seeded from the runtime's random source.
func Default() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// OrDefault returns r, or a freshly seeded generator when r is nil.
func OrDefault(r *rand.Rand) *rand.Rand {
	if r == nil {
		return Default()
	}
	return r
}

// Fill overwrites buf with random bytes.
func Fill(r *rand.Rand, buf []byte) {
	i := 0
	for ; i+8 <= len(buf); i += 8 {
		binary.LittleEndian.PutUint64(buf[i:], r.Uint64())
	}
	if i < len(buf) {
		v := r.Uint64()
		for ; i < len(buf); i++ {
			buf[i] = byte(v)
			v >>= 8
		}
	}
}

// Perm returns a random permutation of [0, n).
func Perm(r *rand.Rand, n int) []int {
	return r.Perm(n)
}

// Alphanumeric returns a random string of n characters from [A-Za-z0-9].
func Alphanumeric(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[r.IntN(len(alphanumeric))]
	}
	return string(b)
}
