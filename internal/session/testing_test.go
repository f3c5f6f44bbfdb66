package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ugaemi/facepong-server/internal/game"
)

// queueScheduler holds serves until the test fires them. It is safe to use
// from the tick goroutine.
type queueScheduler struct {
	mu      sync.Mutex
	pending []*queuedTimer
}

type queuedTimer struct {
	f       func()
	stopped atomic.Bool
}

func (t *queuedTimer) Stop() bool { return !t.stopped.Swap(true) }

func (s *queueScheduler) AfterFunc(_ time.Duration, f func()) game.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &queuedTimer{f: f}
	s.pending = append(s.pending, t)
	return t
}

// Fire runs every queued action that was not stopped.
func (s *queueScheduler) Fire() {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, t := range queued {
		if !t.stopped.Load() {
			t.f()
		}
	}
}

// recorder is a Viewer that keeps everything it is shown.
type recorder struct {
	mu     sync.Mutex
	frames []game.Frame
	phases []PhaseEvent
}

func (r *recorder) Render(f game.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recorder) PhaseChanged(ev PhaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, ev)
}

func (r *recorder) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recorder) LastPhase() (PhaseEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.phases) == 0 {
		return PhaseEvent{}, false
	}
	return r.phases[len(r.phases)-1], true
}

func fastSettings() game.Settings {
	s := game.DefaultSettings()
	s.TickRate = 500
	return s
}
