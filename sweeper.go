package lfucache

import (
	"log/slog"
	"sync"
	"time"
)

// sweeper owns the goroutine that periodically runs a sweep function.
//
// Each cache has its own sweeper; nothing is shared between caches. start
// and halt are idempotent, and halt waits for the goroutine to exit so a
// later start never runs alongside the previous one.
type sweeper struct {
	mu       sync.Mutex
	interval time.Duration
	logger   *slog.Logger
	sweep    func() int

	stop chan struct{}
	done chan struct{}
}

func newSweeper(interval time.Duration, logger *slog.Logger, sweep func() int) *sweeper {
	return &sweeper{
		interval: interval,
		logger:   logger,
		sweep:    sweep,
	}
}

// start launches the sweep loop and reports whether it was not already running.
func (s *sweeper) start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return false
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
	return true
}

// halt stops the sweep loop and reports whether it was running.
func (s *sweeper) halt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return false
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
	return true
}

func (s *sweeper) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *sweeper) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.runOnce()
		}
	}
}

// runOnce runs one sweep. A panic is logged and the loop carries on, so the
// next tick retries.
func (s *sweeper) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("expiration sweep failed, retrying next period", "panic", r, "interval", s.interval)
		}
	}()
	s.sweep()
}
