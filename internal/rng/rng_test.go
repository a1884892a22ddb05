package rng

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestNew_Deterministic(t *testing.T) {
	a := make([]byte, 37)
	b := make([]byte, 37)

	Fill(New(7), a)
	Fill(New(7), b)

	if !bytes.Equal(a, b) {
		t.Fatalf("same seed produced different bytes:\n%x\n%x", a, b)
	}
	if bytes.Equal(a, make([]byte, 37)) {
		t.Error("Fill left the buffer zeroed")
	}
}

func TestFill_OddLengths(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 9, 15, 16, 17} {
		buf := make([]byte, n)
		Fill(New(1), buf)
		if len(buf) != n {
			t.Errorf("len = %d, want %d", len(buf), n)
		}
	}
}

func TestAlphanumeric(t *testing.T) {
	r := New(3)
	s := Alphanumeric(r, 25)

	if len(s) != 25 {
		t.Fatalf("len = %d, want 25", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(alphanumeric, c) {
			t.Errorf("unexpected character %q", c)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if OrDefault(nil) == nil {
		t.Fatal("OrDefault(nil) returned nil")
	}
	r := New(1)
	if OrDefault(r) != r {
		t.Error("OrDefault replaced a non-nil generator")
	}
}

func TestPerm(t *testing.T) {
	p := Perm(New(5), 100)

	if len(p) != 100 {
		t.Fatalf("len = %d, want 100", len(p))
	}
	seen := make([]bool, 100)
	for _, v := range p {
		if v < 0 || v >= 100 || seen[v] {
			t.Fatalf("not a permutation: %v", p)
		}
		seen[v] = true
	}
	if !slices.Equal(p, Perm(New(5), 100)) {
		t.Error("same seed produced different permutations")
	}
}
