package crypto

import (
	"context"
	"crypto/cipher"
	"hash"

	"github.com/utkarsh5026/devbench/internal/budget"
	"github.com/utkarsh5026/devbench/pool"
)

// encryptDecrypt round-trips every block of data through enc and dec.
// The gate is polled before each block and again between its two halves.
func encryptDecrypt(b cipher.Block, data, enc, dec []byte, timeout *budget.Timeout) budget.Count {
	var units uint64
	for off := 0; off+BlockSize <= len(data); off += BlockSize {
		if c, stop := timeout.Check(units); stop {
			return c
		}

		end := off + BlockSize
		c := encryptDecryptBlock(b, data[off:end], enc[off:end], dec[off:end], timeout)
		units += c.Units
		if c.Interrupted {
			return budget.Interrupted(units)
		}
	}
	return budget.Completed(units)
}

func encryptDecryptBlock(b cipher.Block, data, enc, dec []byte, timeout *budget.Timeout) budget.Count {
	b.Encrypt(enc, data)
	units := uint64(len(enc))

	if c, stop := timeout.Check(units); stop {
		return c
	}

	b.Decrypt(dec, enc)
	return budget.Completed(units + uint64(len(dec)))
}

// span is a half-open byte range covering whole blocks.
type span struct {
	start, end int
}

// blockSpans splits dataLen bytes into at most parts contiguous ranges of
// whole blocks. The ranges never overlap and together cover every block.
func blockSpans(dataLen, parts int) []span {
	blocks := dataLen / BlockSize
	if blocks == 0 {
		return nil
	}
	parts = max(min(parts, blocks), 1)
	per := (blocks + parts - 1) / parts

	spans := make([]span, 0, parts)
	for first := 0; first < blocks; first += per {
		last := min(first+per, blocks)
		spans = append(spans, span{start: first * BlockSize, end: last * BlockSize})
	}
	return spans
}

// encryptDecryptParallel runs encryptDecrypt on each span concurrently and
// sums the partial counts, interrupted or not.
func encryptDecryptParallel(
	wp *pool.WorkerPool[span, budget.Count],
	spans []span,
	b cipher.Block,
	data, enc, dec []byte,
	timeout *budget.Timeout,
) (budget.Count, error) {
	counts, err := wp.Process(context.Background(), spans, func(_ context.Context, s span) (budget.Count, error) {
		return encryptDecrypt(b, data[s.start:s.end], enc[s.start:s.end], dec[s.start:s.end], timeout), nil
	})
	if err != nil {
		return budget.Count{}, err
	}
	return budget.Sum(counts...), nil
}

// digest hashes data into out and leaves h reset for the next call.
func digest(h hash.Hash, data, out []byte) budget.Count {
	h.Reset()
	h.Write(data)
	h.Sum(out[:0])
	h.Reset()
	return budget.Completed(uint64(len(out)))
}
