package pool

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Process_BasicFunctionality(t *testing.T) {
	pool := NewWorkerPool[int, int](WithWorkerCount(4))

	tasks := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	processFn := func(ctx context.Context, task int) (int, error) {
		return task * 2, nil
	}

	results, err := pool.Process(context.Background(), tasks, processFn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != len(tasks) {
		t.Fatalf("expected %d results, got %d", len(tasks), len(results))
	}

	for i, task := range tasks {
		expected := task * 2
		if results[i] != expected {
			t.Errorf("task %d: expected %d, got %d", i, expected, results[i])
		}
	}
}

func TestWorkerPool_Process_EmptyTasks(t *testing.T) {
	pool := NewWorkerPool[int, int]()

	results, err := pool.Process(context.Background(), nil, func(ctx context.Context, task int) (int, error) {
		return task, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestWorkerPool_Process_FailFast(t *testing.T) {
	pool := NewWorkerPool[int, int](WithWorkerCount(2), WithTaskBuffer(0))

	errBad := errors.New("bad value")
	var processed atomic.Int64

	tasks := make([]int, 1000)
	for i := range tasks {
		tasks[i] = i
	}

	_, err := pool.Process(context.Background(), tasks, func(ctx context.Context, task int) (int, error) {
		processed.Add(1)
		if task == 3 {
			return 0, errBad
		}
		return task, nil
	})

	if !errors.Is(err, errBad) {
		t.Fatalf("expected errBad, got %v", err)
	}
	if processed.Load() == int64(len(tasks)) {
		t.Error("expected the failure to stop the remaining tasks")
	}
}

func TestWorkerPool_Process_PanicRecovery(t *testing.T) {
	pool := NewWorkerPool[int, int](WithWorkerCount(2))

	_, err := pool.Process(context.Background(), []int{1, 2, 3}, func(ctx context.Context, task int) (int, error) {
		if task == 2 {
			panic("boom")
		}
		return task, nil
	})

	if err == nil {
		t.Fatal("expected panic to surface as an error")
	}
	if !strings.Contains(err.Error(), "worker panic: boom") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestWorkerPool_Process_ContextCancelled(t *testing.T) {
	pool := NewWorkerPool[int, int](WithWorkerCount(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.Process(ctx, []int{1, 2, 3, 4}, func(ctx context.Context, task int) (int, error) {
		return task, nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("expected nil or context.Canceled, got %v", err)
	}
}

func TestWorkerPool_Process_DisjointWrites(t *testing.T) {
	const chunks = 8
	buf := make([]byte, 8*1024)
	chunk := len(buf) / chunks

	spans := make([]int, chunks)
	for i := range spans {
		spans[i] = i * chunk
	}

	pool := NewWorkerPool[int, int](WithWorkerCount(4), WithAffinity())
	written, err := pool.Process(context.Background(), spans, func(ctx context.Context, start int) (int, error) {
		part := buf[start : start+chunk]
		for i := range part {
			part[i] = byte(start / chunk)
		}
		return len(part), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := 0
	for _, n := range written {
		total += n
	}
	if total != len(buf) {
		t.Errorf("expected %d bytes written, got %d", len(buf), total)
	}
	for i, b := range buf {
		if want := byte(i / chunk); b != want {
			t.Fatalf("byte %d: expected %d, got %d", i, want, b)
		}
	}
}

func TestWorkerPool_Workers(t *testing.T) {
	if got := NewWorkerPool[int, int](WithWorkerCount(5)).Workers(); got != 5 {
		t.Errorf("expected 5 workers, got %d", got)
	}
	if got := NewWorkerPool[int, int](WithWorkerCount(-1)).Workers(); got < 1 {
		t.Errorf("invalid count must keep the default, got %d", got)
	}
}
