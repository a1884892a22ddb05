// Package access benchmarks persistent storage with sequential and random
// chunked writes and reads on a temporary file opened with a cache bypass
// hint. Every write is followed by a durable sync.
//
// Sequential reads are verified byte for byte. Random phase reads are not
// verified: chunks land at overlapping random offsets, and tracking which
// write owns each offset would change what is timed.
package access

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/internal/progress"
	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/report"
)

// MB is the default chunk size.
const MB = 1024 * 1024

// Config controls one storage run. Zero fields take the defaults of
// DefaultConfig.
type Config struct {
	Rand *rand.Rand

	// Dir holds the temporary file. Empty means os.TempDir().
	Dir string

	SeqIters     int
	SeqDataLenMB int

	RandIters     int
	RandDataLenMB int

	// ChunkSize is the size of every write and read. The MB suffixed
	// lengths count chunks of this size.
	ChunkSize int

	Logger *slog.Logger
}

// DefaultConfig returns 10 iterations of 500 one-megabyte chunks per phase.
func DefaultConfig() Config {
	return Config{
		SeqIters:      10,
		SeqDataLenMB:  500,
		RandIters:     10,
		RandDataLenMB: 500,
		ChunkSize:     MB,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Dir == "" {
		c.Dir = os.TempDir()
	}
	if c.SeqIters <= 0 {
		c.SeqIters = def.SeqIters
	}
	if c.SeqDataLenMB <= 0 {
		c.SeqDataLenMB = def.SeqDataLenMB
	}
	if c.RandIters <= 0 {
		c.RandIters = def.RandIters
	}
	if c.RandDataLenMB <= 0 {
		c.RandDataLenMB = def.RandDataLenMB
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	return c
}

// Report holds the mean per-iteration latency of each phase.
type Report struct {
	Sequential report.Latency
	Random     report.Latency
}

func (r Report) String() string {
	return strings.Join([]string{r.Sequential.String(), r.Random.String()}, "\n")
}

type benchContext struct {
	cfg  Config
	rng  *rand.Rand
	log  *slog.Logger
	path string

	writeBuf []byte
	readBuf  []byte
}

// Bench runs the sequential phase and then the random phase. The temporary
// file is removed after every iteration and again on return, error or not.
func Bench(_ capability.Record, cfg Config) (_ Report, err error) {
	cfg = cfg.withDefaults()
	c := &benchContext{
		cfg:      cfg,
		rng:      rng.OrDefault(cfg.Rand),
		log:      progress.New(cfg.Logger, "storage access").Logger(),
		path:     filepath.Join(cfg.Dir, uuid.NewString()+".bench"),
		writeBuf: make([]byte, cfg.ChunkSize),
		readBuf:  make([]byte, cfg.ChunkSize),
	}
	defer func() {
		if rmErr := os.Remove(c.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = &IOError{Op: "remove", Path: c.path, Err: rmErr}
		}
	}()

	seq := report.NewLatency("sequential read/write", cfg.SeqIters)
	for range cfg.SeqIters {
		d, err := c.iteration(c.sequentialIteration)
		if err != nil {
			return Report{}, err
		}
		seq.Add(d)
	}
	c.log.Debug("storage access: phase done", slog.String("phase", "sequential"), slog.String("path", c.path))

	rnd := report.NewLatency("random read/write", cfg.RandIters)
	for range cfg.RandIters {
		d, err := c.iteration(c.randomIteration)
		if err != nil {
			return Report{}, err
		}
		rnd.Add(d)
	}
	c.log.Debug("storage access: phase done", slog.String("phase", "random"), slog.String("path", c.path))

	return Report{Sequential: seq.Build(), Random: rnd.Build()}, nil
}

// iteration opens a fresh file, runs one timed phase on it, then closes and
// removes it.
func (c *benchContext) iteration(phase func(*os.File) (time.Duration, error)) (time.Duration, error) {
	f, err := c.open()
	if err != nil {
		return 0, err
	}

	d, err := phase(f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = c.ioErr("close", closeErr)
	}
	if err != nil {
		return 0, err
	}

	if err := os.Remove(c.path); err != nil {
		return 0, c.ioErr("remove", err)
	}
	return d, nil
}

func (c *benchContext) open() (*os.File, error) {
	f, err := os.OpenFile(c.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, c.ioErr("open", err)
	}
	dropCache(f)
	return f, nil
}

func (c *benchContext) ioErr(op string, err error) error {
	return &IOError{Op: op, Path: c.path, Err: err}
}

func (c *benchContext) resetBuffers() {
	rng.Fill(c.rng, c.writeBuf)
	clear(c.readBuf)
}

func (c *benchContext) sequentialIteration(f *os.File) (time.Duration, error) {
	c.resetBuffers()

	start := time.Now()
	if err := c.sequential(f, c.cfg.SeqDataLenMB); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (c *benchContext) randomIteration(f *os.File) (time.Duration, error) {
	for range c.cfg.RandDataLenMB {
		if _, err := f.Write(c.writeBuf); err != nil {
			return 0, c.ioErr("write", err)
		}
	}

	c.resetBuffers()
	writeOffsets := c.randomOffsets()
	readOffsets := c.randomOffsets()

	start := time.Now()
	if err := c.random(f, writeOffsets, readOffsets); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// sequential writes chunks chunks with a sync after each, rewinds, and
// verifies each chunk reads back intact.
func (c *benchContext) sequential(f *os.File, chunks int) error {
	for range chunks {
		if _, err := f.Write(c.writeBuf); err != nil {
			return c.ioErr("write", err)
		}
		if err := f.Sync(); err != nil {
			return c.ioErr("sync", err)
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return c.ioErr("seek", err)
	}

	for i := range chunks {
		if _, err := io.ReadFull(f, c.readBuf); err != nil {
			return c.ioErr("read", err)
		}
		if err := verifyChunk(i, c.writeBuf, c.readBuf); err != nil {
			return err
		}
	}
	return nil
}

// random writes a chunk at every write offset with a sync after each, then
// reads a chunk at every read offset.
func (c *benchContext) random(f *os.File, writeOffsets, readOffsets []int64) error {
	for _, off := range writeOffsets {
		if _, err := f.Seek(off, io.SeekStart); err != nil {
			return c.ioErr("seek", err)
		}
		if _, err := f.Write(c.writeBuf); err != nil {
			return c.ioErr("write", err)
		}
		if err := f.Sync(); err != nil {
			return c.ioErr("sync", err)
		}
	}

	for _, off := range readOffsets {
		if _, err := f.Seek(off, io.SeekStart); err != nil {
			return c.ioErr("seek", err)
		}
		if _, err := io.ReadFull(f, c.readBuf); err != nil {
			return c.ioErr("read", err)
		}
	}
	return nil
}

// randomOffsets returns RandDataLenMB chunk-aligned offsets, each inside
// the prefilled region.
func (c *benchContext) randomOffsets() []int64 {
	chunks := c.cfg.RandDataLenMB
	offsets := make([]int64, chunks)
	for i := range offsets {
		offsets[i] = int64(c.rng.IntN(chunks)) * int64(c.cfg.ChunkSize)
	}
	return offsets
}

func verifyChunk(chunk int, expected, actual []byte) error {
	if bytes.Equal(expected, actual) {
		return nil
	}
	return &InvalidDataError{
		Chunk:    chunk,
		Expected: slices.Clone(expected),
		Actual:   slices.Clone(actual),
	}
}
