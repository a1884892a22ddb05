// Package budget implements the time budget shared by every benchmark run and
// the dual-channel unit count that recursive algorithms thread through their
// calls so that an interrupted run still reports the work it completed.
package budget

import "time"

// Timeout is a read-only clock gate created once per benchmark invocation.
//
// A nil *Timeout is valid and is never reached, which lets correctness tests
// run the exact same code paths with cancellation disabled.
type Timeout struct {
	start    time.Time
	duration time.Duration
}

// NewTimeout starts a budget of d measured from now.
func NewTimeout(d time.Duration) *Timeout {
	return &Timeout{
		start:    time.Now(),
		duration: d,
	}
}

// Reached reports whether the budget has been spent. It costs one monotonic
// clock read, so it is safe to call from recursion leaves and inner loops.
// Once true it stays true.
func (t *Timeout) Reached() bool {
	if t == nil {
		return false
	}
	return time.Since(t.start) >= t.duration
}

// Check is the poll every recursive step runs before doing work. If the
// budget is spent it returns units as an interrupted count and true;
// otherwise it returns a zero Count and false.
//
//	if c, stop := timeout.Check(units); stop {
//	    return c
//	}
func (t *Timeout) Check(units uint64) (Count, bool) {
	if t.Reached() {
		return Interrupted(units), true
	}
	return Count{}, false
}

// Remaining returns how much of the budget is left, never negative.
func (t *Timeout) Remaining() time.Duration {
	if t == nil {
		return 0
	}
	return max(t.duration-time.Since(t.start), 0)
}

// Deadline projects the remaining budget onto the wall clock. External
// kernels that only understand absolute timestamps use it. A nil Timeout
// returns the zero time, meaning "no deadline".
func (t *Timeout) Deadline() time.Time {
	if t == nil {
		return time.Time{}
	}
	return time.Now().Add(t.Remaining()).Round(0)
}
