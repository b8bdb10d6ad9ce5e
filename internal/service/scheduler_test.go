package service

import (
	"testing"
	"time"
)

func TestSchedulerFires(t *testing.T) {
	s := NewTimeoutScheduler()
	fired := make(chan struct{})

	s.Arm("t1", 10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	s := NewTimeoutScheduler()
	fired := make(chan struct{})

	s.Arm("t1", 20*time.Millisecond, func() { close(fired) })
	s.Cancel("t1")

	select {
	case <-fired:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelAfterExpiryIsNoop(t *testing.T) {
	s := NewTimeoutScheduler()
	fired := make(chan struct{})

	s.Arm("t1", time.Millisecond, func() { close(fired) })
	<-fired

	s.Cancel("t1") // must not panic or block
}

func TestCancelUnknownTokenIsNoop(t *testing.T) {
	s := NewTimeoutScheduler()
	s.Cancel("never-armed")
}
