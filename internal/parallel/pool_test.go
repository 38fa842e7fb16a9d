package parallel

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolExecuteAll(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		p := NewWorkerPool(workers)
		if p.Workers() <= 0 {
			t.Fatalf("Workers() = %d", p.Workers())
		}

		var sum atomic.Int64
		jobs := make([]func(), 500)
		for i := range jobs {
			jobs[i] = func() { sum.Add(int64(i)) }
		}
		p.ExecuteAll(jobs)
		if got, want := sum.Load(), int64(499*500/2); got != want {
			t.Errorf("workers=%d: sum = %d, want %d", workers, got, want)
		}
		p.Close()
	}
}

func TestWorkerPoolClosed(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()
	if p.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}

	ran := 0
	p.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("closed pool ran %d jobs, want 2", ran)
	}
	p.ExecuteAll(nil)
}
