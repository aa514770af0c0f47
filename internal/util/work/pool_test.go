package work

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolExecutesJobs(t *testing.T) {
	var count int64
	var wg sync.WaitGroup

	pool := NewWorkPool(4, 16, func(job Job) error {
		defer wg.Done()
		atomic.AddInt64(&count, 1)
		return nil
	})
	defer pool.Stop()

	for i := 0; i < 10; i++ {
		wg.Add(1)
		if err := pool.Submit(i); err != nil {
			wg.Done()
			t.Fatalf("submit: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("jobs did not finish in time")
	}

	if got := atomic.LoadInt64(&count); got != 10 {
		t.Errorf("executed %d jobs, want 10", got)
	}
}

func TestPoolSubmitAfterStop(t *testing.T) {
	pool := NewWorkPool(1, 1, func(job Job) error { return nil })
	pool.Stop()

	if err := pool.Submit("job"); err != ErrPoolClosed {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPoolQueueFull(t *testing.T) {
	block := make(chan struct{})
	pool := NewWorkPool(1, 1, func(job Job) error {
		<-block
		return nil
	})
	defer func() {
		close(block)
		pool.Stop()
	}()

	// First job occupies the worker, second fills the queue.
	if err := pool.Submit(1); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	// Give the worker a moment to pick up the first job.
	time.Sleep(50 * time.Millisecond)
	if err := pool.Submit(2); err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	if err := pool.Submit(3); err != ErrQueueFull {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}
