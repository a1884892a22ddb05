package crypto

import (
	"crypto/aes"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

const (
	// KeySize is the AES-256 key length.
	KeySize = 32
	// BlockSize is the cipher block length; DataLen is truncated to a
	// multiple of it.
	BlockSize = aes.BlockSize
	// HashSize is the digest length of every supported hash.
	HashSize = 32
)

// HashKind selects the digest run after each pass over the blocks.
type HashKind int

const (
	HashSHA256 HashKind = iota
	HashBLAKE2b256
)

func (h HashKind) String() string {
	switch h {
	case HashSHA256:
		return "sha256"
	case HashBLAKE2b256:
		return "blake2b-256"
	default:
		return "unknown"
	}
}

// ParseHash maps a HashKind name back to its value.
func ParseHash(name string) (HashKind, error) {
	for _, h := range []HashKind{HashSHA256, HashBLAKE2b256} {
		if h.String() == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("crypto: unknown hash %q", name)
}

// Config controls one crypto benchmark run. Zero fields take the defaults of
// DefaultConfig.
type Config struct {
	// Rand generates the key (when Key is nil) and every plaintext buffer.
	Rand *rand.Rand

	Duration time.Duration

	// Key fixes the AES-256 key. Nil draws a random key from Rand.
	Key *[KeySize]byte

	// DataLen is the plaintext length in bytes per iteration.
	DataLen int

	Hash HashKind

	Logger *slog.Logger
}

// DefaultConfig returns a 10 second run over 4 KiB buffers.
func DefaultConfig() Config {
	return Config{
		Duration: 10 * time.Second,
		DataLen:  4096,
		Hash:     HashSHA256,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Duration <= 0 {
		c.Duration = def.Duration
	}
	if c.DataLen <= 0 {
		c.DataLen = def.DataLen
	}
	c.DataLen -= c.DataLen % BlockSize
	return c
}
