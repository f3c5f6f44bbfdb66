package game

import (
	"sync"
	"time"
)

// Timer is a pending one-shot action.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the wall clock.
type RealScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Serialized returns a Scheduler whose callbacks run while holding l, so a
// deferred action observes the same serialisation as the tick loop.
func Serialized(l sync.Locker, inner Scheduler) Scheduler {
	return serialScheduler{l: l, inner: inner}
}

type serialScheduler struct {
	l     sync.Locker
	inner Scheduler
}

func (s serialScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return s.inner.AfterFunc(d, func() {
		s.l.Lock()
		defer s.l.Unlock()
		f()
	})
}
