package game

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallelScheduler_ForEachCoversRange(t *testing.T) {
	tests := []struct {
		name      string
		workers   int
		threshold int
		n         int
	}{
		{"split", 4, 0, 103},
		{"fewer items than workers", 8, 0, 3},
		{"inline below threshold", 4, 64, 10},
		{"single worker", 1, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParallelScheduler(tt.workers, tt.threshold)
			defer p.stop()

			hits := make([]int32, tt.n)
			// Run twice to exercise the persistent pool
			for round := 0; round < 2; round++ {
				p.forEach(tt.n, func(start, end int) {
					for i := start; i < end; i++ {
						atomic.AddInt32(&hits[i], 1)
					}
				})
			}
			for i, h := range hits {
				if h != 2 {
					t.Fatalf("index %d visited %d times, expected 2", i, h)
				}
			}
		})
	}
}

func TestParallelScheduler_ForEachErr(t *testing.T) {
	p := newParallelScheduler(4, 0)
	defer p.stop()

	var visited atomic.Int32
	err := p.forEachErr(40, func(start, end int) error {
		visited.Add(int32(end - start))
		return nil
	})
	if err != nil || visited.Load() != 40 {
		t.Fatalf("expected 40 visits and no error, got %d, %v", visited.Load(), err)
	}

	boom := errors.New("boom")
	err = p.forEachErr(40, func(start, end int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestParallelScheduler_StopIsIdempotent(t *testing.T) {
	p := newParallelScheduler(2, 0)
	p.forEach(10, func(int, int) {})
	p.stop()
	p.stop()
	if p.running {
		t.Error("expected workers stopped")
	}
}

func TestSequentialScheduler(t *testing.T) {
	var s sequentialScheduler
	calls := 0
	s.forEach(5, func(start, end int) {
		calls++
		if start != 0 || end != 5 {
			t.Errorf("expected one range [0,5), got [%d,%d)", start, end)
		}
	})
	s.forEach(0, func(int, int) { calls++ })
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if s.concurrent(1000) {
		t.Error("sequential scheduler must never be concurrent")
	}
}
