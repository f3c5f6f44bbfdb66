package game

import "time"

// manualScheduler queues deferred actions until the test fires them.
type manualScheduler struct {
	pending []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{delay: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// FireAll runs every queued action, including stopped ones, the way a timer
// that lost the race with Stop would.
func (s *manualScheduler) FireAll() {
	queued := s.pending
	s.pending = nil
	for _, t := range queued {
		t.fired = true
		t.f()
	}
}

// FireLive runs only actions that were not stopped.
func (s *manualScheduler) FireLive() {
	queued := s.pending
	s.pending = nil
	for _, t := range queued {
		if !t.stopped {
			t.fired = true
			t.f()
		}
	}
}

func (s *manualScheduler) Live() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func newTestMatch(sched Scheduler) *Match {
	m, err := NewMatch(DefaultSettings(), WithScheduler(sched), WithCoin(func() bool { return true }))
	if err != nil {
		panic(err)
	}
	return m
}

func playingMatch(sched *manualScheduler) *Match {
	m := newTestMatch(sched)
	if err := m.MarkReady(); err != nil {
		panic(err)
	}
	if err := m.Start(); err != nil {
		panic(err)
	}
	return m
}
