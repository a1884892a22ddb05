// Package crypto benchmarks AES-256 block encryption and decryption followed
// by a 256-bit digest, verifying every round trip.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
	"hash"
	"math/rand/v2"
	"slices"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/internal/budget"
	"github.com/utkarsh5026/devbench/internal/progress"
	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/pool"
	"github.com/utkarsh5026/devbench/report"
)

// Bench runs the crypto benchmark on the calling goroutine.
func Bench(_ capability.Record, cfg Config) (report.Throughput, error) {
	c, err := newBenchContext(cfg, "crypto")
	if err != nil {
		return report.Throughput{}, err
	}

	return c.run(func() (budget.Count, error) {
		return encryptDecrypt(c.block, c.data, c.encrypted, c.decrypted, c.timeout), nil
	})
}

// BenchMultithread runs the crypto benchmark with the blocks of each buffer
// split across caps.Workers() workers.
func BenchMultithread(caps capability.Record, cfg Config) (report.Throughput, error) {
	c, err := newBenchContext(cfg, "crypto (multithread)")
	if err != nil {
		return report.Throughput{}, err
	}

	workers := caps.Workers()
	spans := blockSpans(len(c.data), workers)
	wp := pool.NewWorkerPool[span, budget.Count](
		pool.WithWorkerCount(workers),
		pool.WithTaskBuffer(len(spans)),
	)

	return c.run(func() (budget.Count, error) {
		return encryptDecryptParallel(wp, spans, c.block, c.data, c.encrypted, c.decrypted, c.timeout)
	})
}

type benchContext struct {
	name string
	rng  *rand.Rand
	log  *progress.Logger

	block  cipher.Block
	hasher hash.Hash

	data      []byte
	encrypted []byte
	decrypted []byte
	sum       []byte

	timeout *budget.Timeout
}

func newBenchContext(cfg Config, name string) (*benchContext, error) {
	cfg = cfg.withDefaults()
	r := rng.OrDefault(cfg.Rand)

	var key [KeySize]byte
	if cfg.Key != nil {
		key = *cfg.Key
	} else {
		rng.Fill(r, key[:])
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("crypto: init cipher: %w", err)
	}

	hasher, err := newHash(cfg.Hash)
	if err != nil {
		return nil, err
	}

	return &benchContext{
		name:      name,
		rng:       r,
		log:       progress.New(cfg.Logger, name),
		block:     block,
		hasher:    hasher,
		data:      make([]byte, cfg.DataLen),
		encrypted: make([]byte, cfg.DataLen),
		decrypted: make([]byte, cfg.DataLen),
		sum:       make([]byte, HashSize),
		timeout:   budget.NewTimeout(cfg.Duration),
	}, nil
}

func newHash(kind HashKind) (hash.Hash, error) {
	switch kind {
	case HashSHA256:
		return sha256.New(), nil
	case HashBLAKE2b256:
		h, err := blake2b.New256(nil)
		if err != nil {
			return nil, fmt.Errorf("crypto: init blake2b: %w", err)
		}
		return h, nil
	default:
		return nil, fmt.Errorf("crypto: unknown hash kind %d", kind)
	}
}

// run drives the outer loop until the budget is spent. Units are summed over
// the whole window and divided by its wall time.
func (c *benchContext) run(encrypt func() (budget.Count, error)) (report.Throughput, error) {
	b := report.NewThroughput(c.name, report.UnitBytes)
	start := time.Now()

	iter := 0
	last := budget.Completed(0)
	for ; !c.timeout.Reached(); iter++ {
		rng.Fill(c.rng, c.data)

		n, err := encrypt()
		if err != nil {
			return report.Throughput{}, fmt.Errorf("crypto: %w", err)
		}
		if n.Ok() && !bytes.Equal(c.data, c.decrypted) {
			return report.Throughput{}, &EncryptionMismatchError{
				Plaintext: slices.Clone(c.data),
				Decrypted: slices.Clone(c.decrypted),
			}
		}
		b.AddUnits(n)
		last = n

		if c.timeout.Reached() {
			break
		}

		n = digest(c.hasher, c.data, c.sum)
		if n.Ok() && isZero(c.sum) {
			return report.Throughput{}, ErrHashEmpty
		}
		b.AddUnits(n)

		c.log.Iteration(iter, b.Units())
	}

	elapsed := time.Since(start)
	c.log.Done(iter, budget.Count{Units: b.Units(), Interrupted: last.Interrupted}, elapsed)
	return b.BuildOver(elapsed), nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
