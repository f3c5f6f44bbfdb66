package session

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/tracking"
)

// Viewer receives everything a session displays. Implementations must not
// block: they are called with the session lock held.
type Viewer interface {
	Render(game.Frame)
	PhaseChanged(PhaseEvent)
}

// PhaseEvent is published on every lifecycle change.
type PhaseEvent struct {
	Phase  game.Phase `json:"phase"`
	Status string     `json:"status,omitempty"`
	Score  game.Score `json:"score"`
	Winner game.Side  `json:"winner,omitempty"`
}

// Snapshot is a point-in-time description of a session.
type Snapshot struct {
	ID          string        `json:"id"`
	Code        string        `json:"code"`
	Phase       game.Phase    `json:"phase"`
	Status      string        `json:"status,omitempty"`
	Score       game.Score    `json:"score"`
	Winner      game.Side     `json:"winner,omitempty"`
	Calibration Calibration   `json:"calibration"`
	Settings    game.Settings `json:"settings"`
}

// Calibration is the active control window.
type Calibration struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Option configures a Session.
type Option func(*options)

type options struct {
	sched game.Scheduler
	coin  func() bool
}

// WithScheduler replaces the wall-clock scheduler used for serves. Callbacks
// still run under the session lock.
func WithScheduler(s game.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithCoin fixes the serve direction source.
func WithCoin(coin func() bool) Option {
	return func(o *options) { o.coin = coin }
}

// Session hosts one player's match: the engine, its control slot and the tick
// loop, plus every viewer attached to it.
type Session struct {
	ID   string
	Code string

	settings game.Settings
	signal   game.ControlSignal
	mapper   atomic.Pointer[game.SignalMapper]

	// mu serialises ticks, serves and lifecycle calls.
	mu     sync.Mutex
	match  *game.Match
	driver *game.FrameDriver
	stopCh chan struct{}

	viewers map[string]Viewer
	vmu     sync.RWMutex
}

// New creates a session in the Loading phase.
func New(code string, s game.Settings, opts ...Option) (*Session, error) {
	o := options{sched: game.RealScheduler{}}
	for _, opt := range opts {
		opt(&o)
	}

	mapper, err := game.NewSignalMapper(s)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:       uuid.New().String(),
		Code:     code,
		settings: s,
		viewers:  make(map[string]Viewer),
	}
	sess.mapper.Store(mapper)

	matchOpts := []game.Option{game.WithScheduler(game.Serialized(&sess.mu, o.sched))}
	if o.coin != nil {
		matchOpts = append(matchOpts, game.WithCoin(o.coin))
	}
	sess.match, err = game.NewMatch(s, matchOpts...)
	if err != nil {
		return nil, err
	}
	sess.driver = game.NewFrameDriver(sess.match, &sess.signal, game.RendererFunc(sess.render))
	return sess, nil
}

// Attach adds a viewer under id, replacing any previous one.
func (s *Session) Attach(id string, v Viewer) {
	s.vmu.Lock()
	defer s.vmu.Unlock()
	s.viewers[id] = v
}

// Detach removes a viewer. Once it returns the viewer receives nothing more.
func (s *Session) Detach(id string) {
	s.vmu.Lock()
	defer s.vmu.Unlock()
	delete(s.viewers, id)
}

// ViewerCount returns the number of attached viewers.
func (s *Session) ViewerCount() int {
	s.vmu.RLock()
	defer s.vmu.RUnlock()
	return len(s.viewers)
}

// MarkReady records that camera and detector are available.
func (s *Session) MarkReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.match.MarkReady(); err != nil {
		return err
	}
	s.publishPhase()
	return nil
}

// ReportFailure shows msg to the player. A running match is paused.
func (s *Session) ReportFailure(msg string) game.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	phase := s.match.ReportFailure(msg)
	if phase != game.PhasePlaying {
		s.stopLoop()
	}
	slog.Warn("session input failure", "session", s.Code, "status", msg, "phase", phase.String())
	s.publishPhase()
	return phase
}

// Start begins a fresh match from Menu or GameOver.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.match.Start(); err != nil {
		return err
	}
	s.startLoop()
	slog.Info("match started", "session", s.Code)
	s.publishPhase()
	return nil
}

// TogglePause flips between Playing and Paused. Resuming starts a fresh
// tick schedule; missed ticks are not replayed.
func (s *Session) TogglePause() (game.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	phase, err := s.match.TogglePause()
	if err != nil {
		return phase, err
	}
	if phase == game.PhasePlaying {
		s.startLoop()
	} else {
		s.stopLoop()
	}
	s.publishPhase()
	return phase, nil
}

// ApplyDetection feeds one face observation into the control slot. It does
// not take the session lock.
func (s *Session) ApplyDetection(d tracking.Detection) bool {
	return tracking.Feed(s.mapper.Load(), &s.signal, d)
}

// Calibrate swaps in a new control window. An invalid window keeps the
// current one.
func (s *Session) Calibrate(lo, hi float64) error {
	mapper, err := game.NewSignalMapper(s.settings.WithDeadZone(lo, hi))
	if err != nil {
		return err
	}
	s.mapper.Store(mapper)
	slog.Info("session calibrated", "session", s.Code, "min", lo, "max", hi)
	return nil
}

// Calibration returns the active control window.
func (s *Session) Calibration() Calibration {
	lo, hi := s.mapper.Load().Bounds()
	return Calibration{Min: lo, Max: hi}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() game.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Phase()
}

// Frame renders the current state without advancing it.
func (s *Session) Frame() game.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Frame()
}

// Snapshot describes the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		Code:        s.Code,
		Phase:       s.match.Phase(),
		Status:      s.match.Status(),
		Score:       s.match.Score(),
		Winner:      s.match.Winner(),
		Calibration: s.Calibration(),
		Settings:    s.settings,
	}
}

// Close stops the loop and cancels any pending serve.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLoop()
	s.match.Close()
	s.publishPhase()
	slog.Info("session closed", "session", s.Code)
}

// startLoop launches the tick loop. Caller must hold s.mu.
func (s *Session) startLoop() {
	if s.stopCh != nil {
		return
	}
	s.stopCh = make(chan struct{})
	go s.tickLoop(s.stopCh, s.settings.TickInterval())
}

// stopLoop signals the tick loop to exit. Caller must hold s.mu.
func (s *Session) stopLoop() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.stopCh = nil
}

// tickLoop advances the match at a fixed rate until stop is closed.
func (s *Session) tickLoop(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.tick(stop) {
				return
			}
		}
	}
}

func (s *Session) tick(stop chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A pause can win the race for the lock against a ticker fire.
	select {
	case <-stop:
		return false
	default:
	}

	f, ok := s.driver.Tick()
	if !ok {
		s.stopLoop()
		return false
	}
	if f.Events.Scorer != game.SideNone {
		slog.Debug("point scored", "session", s.Code, "scorer", f.Events.Scorer.String(),
			"player", f.Score.Player, "ai", f.Score.AI)
	}
	if s.match.Phase() == game.PhaseGameOver {
		s.stopLoop()
		slog.Info("match over", "session", s.Code, "winner", s.match.Winner().String(),
			"player", s.match.Score().Player, "ai", s.match.Score().AI)
		s.publishPhase()
		return false
	}
	return true
}

// render fans a frame out to every viewer. Caller must hold s.mu.
func (s *Session) render(f game.Frame) {
	s.vmu.RLock()
	defer s.vmu.RUnlock()
	for _, v := range s.viewers {
		v.Render(f)
	}
}

// publishPhase announces the current phase. Caller must hold s.mu.
func (s *Session) publishPhase() {
	ev := PhaseEvent{
		Phase:  s.match.Phase(),
		Status: s.match.Status(),
		Score:  s.match.Score(),
		Winner: s.match.Winner(),
	}
	s.vmu.RLock()
	defer s.vmu.RUnlock()
	for _, v := range s.viewers {
		v.PhaseChanged(ev)
	}
}
