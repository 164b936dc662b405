package lfucache

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatalf("Timed out waiting for condition")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSweeperStartStopIdempotent(t *testing.T) {
	var calls atomic.Int64
	s := newSweeper(time.Millisecond, discardLogger(), func() int {
		calls.Add(1)
		return 0
	})

	if !s.start() {
		t.Errorf("Expected first start to launch the loop")
	}
	if s.start() {
		t.Errorf("Expected second start to be a no-op")
	}
	waitFor(t, func() bool { return calls.Load() > 0 })

	if !s.halt() {
		t.Errorf("Expected first halt to stop the loop")
	}
	if s.halt() {
		t.Errorf("Expected second halt to be a no-op")
	}
	if s.running() {
		t.Errorf("Expected sweeper to be stopped")
	}

	stopped := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != stopped {
		t.Errorf("Expected no sweeps after halt, got %d more", calls.Load()-stopped)
	}

	if !s.start() {
		t.Errorf("Expected restart after halt")
	}
	waitFor(t, func() bool { return calls.Load() > stopped })
	s.halt()
}

func TestSweeperRecoversFromPanic(t *testing.T) {
	var calls atomic.Int64
	s := newSweeper(time.Millisecond, discardLogger(), func() int {
		if calls.Add(1) == 1 {
			panic("boom")
		}
		return 0
	})

	s.start()
	defer s.halt()

	waitFor(t, func() bool { return calls.Load() >= 3 })
}

func TestSweeperNeverOverlaps(t *testing.T) {
	var active, overlaps atomic.Int64
	s := newSweeper(time.Millisecond, discardLogger(), func() int {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(200 * time.Microsecond)
		active.Add(-1)
		return 0
	})

	for i := 0; i < 20; i++ {
		s.start()
		time.Sleep(time.Millisecond)
		s.halt()
	}

	if overlaps.Load() != 0 {
		t.Errorf("Expected no overlapping sweeps, got %d", overlaps.Load())
	}
}

func TestCacheSweepRemovesFromIndex(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0)}
	cfg := NewConfig()
	cfg.Capacity = 4
	cfg.TTL = time.Second
	cfg.ManualSweep = true
	cfg.Clock = clock.Now

	c, err := New[string, int](cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Put(k, 1); err != nil {
			t.Fatal(err)
		}
	}
	c.Get("c")

	clock.Advance(time.Second)
	if n := c.Sweep(); n != 3 {
		t.Errorf("Expected 3 expired entries, got %d", n)
	}
	if c.index.len() != 0 {
		t.Errorf("Expected no buckets left, got %d", c.index.len())
	}
	if c.free.len() != 3 {
		t.Errorf("Expected 3 recycled items, got %d", c.free.len())
	}
	checkInvariants(t, c)
}
