package tasks

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := NewPool(3, 8)

	var ran atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		ok := pool.Submit(func() {
			defer wg.Done()
			ran.Add(1)
		})
		if !ok {
			t.Fatalf("submit %d rejected", i)
		}
	}
	wg.Wait()
	pool.Close()

	if got := ran.Load(); got != 50 {
		t.Fatalf("expected 50 tasks to run, got %d", got)
	}
}

func TestPoolRejectsAfterClose(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Close()

	if pool.Submit(func() {}) {
		t.Fatal("expected submit on closed pool to be rejected")
	}
}

func TestSyncRunsInline(t *testing.T) {
	exec := &Sync{}
	ran := false
	if !exec.Submit(func() { ran = true }) {
		t.Fatal("submit rejected")
	}
	if !ran {
		t.Fatal("expected task to run inline")
	}
	if exec.Submitted != 1 {
		t.Fatalf("expected 1 submission, got %d", exec.Submitted)
	}
}

func TestSyncDeferHoldsUntilFlush(t *testing.T) {
	exec := &Sync{Defer: true}
	ran := false
	exec.Submit(func() { ran = true })
	if ran {
		t.Fatal("deferred task ran before flush")
	}
	exec.Flush()
	if !ran {
		t.Fatal("deferred task did not run on flush")
	}
}
