package bench

import "fmt"

// Family identifies one benchmark.
type Family int

const (
	FamilyCrypto Family = iota
	FamilyMath
	FamilySort
	FamilyRAMAlloc
	FamilyRAMAccess
	FamilyStorageAccess
)

// Families lists every family in the order All runs them.
var Families = []Family{
	FamilyCrypto,
	FamilyMath,
	FamilySort,
	FamilyRAMAlloc,
	FamilyRAMAccess,
	FamilyStorageAccess,
}

func (f Family) String() string {
	switch f {
	case FamilyCrypto:
		return "crypto"
	case FamilyMath:
		return "math"
	case FamilySort:
		return "sort"
	case FamilyRAMAlloc:
		return "ram alloc"
	case FamilyRAMAccess:
		return "ram access"
	case FamilyStorageAccess:
		return "storage access"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// FamilyError tags a benchmark failure with the family that produced it.
// The family's own typed error is available through errors.As.
type FamilyError struct {
	Family      Family
	Multithread bool
	Err         error
}

func (e *FamilyError) Error() string {
	if e.Multithread {
		return fmt.Sprintf("bench: %s (multithread): %v", e.Family, e.Err)
	}
	return fmt.Sprintf("bench: %s: %v", e.Family, e.Err)
}

func (e *FamilyError) Unwrap() error {
	return e.Err
}
