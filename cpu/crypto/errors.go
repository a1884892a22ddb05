package crypto

import (
	"errors"
	"fmt"
)

// ErrHashEmpty is returned when a digest comes out as all zero bytes.
var ErrHashEmpty = errors.New("crypto: hash output is empty")

// EncryptionMismatchError reports a decrypted buffer that differs from the
// plaintext it was encrypted from. Both buffers are copies.
type EncryptionMismatchError struct {
	Plaintext []byte
	Decrypted []byte
}

func (e *EncryptionMismatchError) Error() string {
	for i := range min(len(e.Plaintext), len(e.Decrypted)) {
		if e.Plaintext[i] != e.Decrypted[i] {
			return fmt.Sprintf("crypto: decrypted data differs from plaintext at byte %d (block %d)", i, i/BlockSize)
		}
	}
	return fmt.Sprintf("crypto: decrypted length %d differs from plaintext length %d", len(e.Decrypted), len(e.Plaintext))
}
