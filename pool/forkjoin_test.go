package pool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestForkJoin_JoinRunsBoth(t *testing.T) {
	fj := NewForkJoin(WithWorkerCount(2))

	var left, right bool
	fj.Join(func() { left = true }, func() { right = true })

	if !left || !right {
		t.Fatalf("expected both sides to run, got left=%v right=%v", left, right)
	}
}

func TestForkJoin_SingleWorkerRunsInline(t *testing.T) {
	fj := NewForkJoin(WithWorkerCount(1))

	var order []int
	fj.Invoke(
		func() { order = append(order, 0) },
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	)

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("expected inline order [0 1 2], got %v", order)
	}
}

// sum adds data up through nested joins.
func sum(fj *ForkJoin, data []int) int {
	if len(data) <= 4 {
		s := 0
		for _, v := range data {
			s += v
		}
		return s
	}

	mid := len(data) / 2
	var a, b int
	fj.Join(
		func() { a = sum(fj, data[:mid]) },
		func() { b = sum(fj, data[mid:]) },
	)
	return a + b
}

func TestForkJoin_NestedNoDeadlock(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		fj := NewForkJoin(WithWorkerCount(workers))

		data := make([]int, 10_000)
		want := 0
		for i := range data {
			data[i] = i
			want += i
		}

		done := make(chan int, 1)
		go func() { done <- sum(fj, data) }()

		select {
		case got := <-done:
			if got != want {
				t.Errorf("workers=%d: expected %d, got %d", workers, want, got)
			}
		case <-time.After(10 * time.Second):
			t.Fatalf("workers=%d: nested joins deadlocked", workers)
		}
	}
}

func TestForkJoin_BoundedConcurrency(t *testing.T) {
	const workers = 3
	fj := NewForkJoin(WithWorkerCount(workers))

	var running, peak atomic.Int64
	task := func() {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
	}

	fns := make([]func(), 10)
	for i := range fns {
		fns[i] = task
	}
	fj.Invoke(fns...)

	if got := peak.Load(); got > workers {
		t.Errorf("expected at most %d concurrent tasks, saw %d", workers, got)
	}
}

func TestForkJoin_PanicPropagates(t *testing.T) {
	fj := NewForkJoin(WithWorkerCount(4))

	defer func() {
		if r := recover(); r != "child" {
			t.Errorf("expected re-raised child panic, got %v", r)
		}
	}()

	fj.Join(func() {}, func() { panic("child") })
	t.Fatal("expected Join to panic")
}
