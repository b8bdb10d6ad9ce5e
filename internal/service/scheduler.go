package service

import (
	"sync"
	"time"
)

// TimeoutScheduler arms one-shot per-question timers keyed by token.
//
// Cancel is an idempotent no-op for tokens that already fired or were never
// armed. The scheduler only delivers the expiry callback; exactly-once
// semantics for the question itself are owned by the session's resolution
// cell, which the callback must go through.
type TimeoutScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewTimeoutScheduler creates an empty scheduler.
func NewTimeoutScheduler() *TimeoutScheduler {
	return &TimeoutScheduler{
		timers: make(map[string]*time.Timer),
	}
}

// Arm schedules onExpire to run once after d, correlated with token.
func (s *TimeoutScheduler) Arm(token string, d time.Duration, onExpire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers[token] = time.AfterFunc(d, func() {
		// Drop the map entry before running the callback so a concurrent
		// Cancel never stops a timer that is already past stopping.
		s.mu.Lock()
		delete(s.timers, token)
		s.mu.Unlock()

		onExpire()
	})
}

// Cancel stops the timer armed for token, if it is still armed.
func (s *TimeoutScheduler) Cancel(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[token]; ok {
		t.Stop()
		delete(s.timers, token)
	}
}
