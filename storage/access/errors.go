package access

import "fmt"

// IOError wraps any file system failure of the benchmark: open, write,
// sync, seek, read, close or remove.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("storage access: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// InvalidDataError reports a chunk that read back different from what was
// written. Expected and Actual are copies.
type InvalidDataError struct {
	Chunk    int
	Expected []byte
	Actual   []byte
}

func (e *InvalidDataError) Error() string {
	for i := range min(len(e.Expected), len(e.Actual)) {
		if e.Expected[i] != e.Actual[i] {
			return fmt.Sprintf("storage access: chunk %d differs at byte %d", e.Chunk, i)
		}
	}
	return fmt.Sprintf("storage access: chunk %d read %d bytes, want %d", e.Chunk, len(e.Actual), len(e.Expected))
}
