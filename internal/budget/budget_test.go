package budget

import (
	"testing"
	"time"
)

func TestTimeout_NilNeverReached(t *testing.T) {
	var timeout *Timeout

	if timeout.Reached() {
		t.Fatal("nil timeout must never be reached")
	}
	if c, stop := timeout.Check(42); stop || c != (Count{}) {
		t.Errorf("Check() = %v, %v; want zero count and false", c, stop)
	}
	if !timeout.Deadline().IsZero() {
		t.Errorf("Deadline() = %v, want zero time", timeout.Deadline())
	}
}

func TestTimeout_ReachedIsMonotonic(t *testing.T) {
	timeout := NewTimeout(5 * time.Millisecond)

	if timeout.Reached() {
		t.Fatal("fresh timeout reported reached")
	}

	time.Sleep(10 * time.Millisecond)

	for i := range 1000 {
		if !timeout.Reached() {
			t.Fatalf("call %d: timeout flipped back to not reached", i)
		}
	}
	if timeout.Remaining() != 0 {
		t.Errorf("Remaining() = %v, want 0", timeout.Remaining())
	}
}

func TestTimeout_CheckCarriesUnits(t *testing.T) {
	timeout := NewTimeout(0)

	c, stop := timeout.Check(17)
	if !stop {
		t.Fatal("zero budget must stop immediately")
	}
	if c != Interrupted(17) {
		t.Errorf("Check() = %v, want interrupted(17)", c)
	}
}

func TestTimeout_DeadlineInFuture(t *testing.T) {
	timeout := NewTimeout(time.Hour)

	deadline := timeout.Deadline()
	if !deadline.After(time.Now().Add(59 * time.Minute)) {
		t.Errorf("Deadline() = %v, want about an hour from now", deadline)
	}
}

func TestCount_Merge(t *testing.T) {
	tests := []struct {
		name string
		a, b Count
		want Count
	}{
		{"both completed", Completed(3), Completed(4), Completed(7)},
		{"left interrupted", Interrupted(3), Completed(4), Interrupted(7)},
		{"right interrupted", Completed(3), Interrupted(4), Interrupted(7)},
		{"both interrupted", Interrupted(1), Interrupted(1), Interrupted(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Merge(tt.b); got != tt.want {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCount_Sum(t *testing.T) {
	if got := Sum(); got != Completed(0) {
		t.Errorf("Sum() = %v, want completed(0)", got)
	}

	got := Sum(Completed(1), Completed(2), Interrupted(3), Completed(4))
	if got != Interrupted(10) {
		t.Errorf("Sum() = %v, want interrupted(10)", got)
	}
}

func TestCount_AddKeepsChannel(t *testing.T) {
	if got := Interrupted(2).Add(3); got != Interrupted(5) {
		t.Errorf("Add() = %v, want interrupted(5)", got)
	}
	if got := Completed(2).Add(3); !got.Ok() || got.Units != 5 {
		t.Errorf("Add() = %v, want completed(5)", got)
	}
}
