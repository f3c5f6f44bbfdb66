package game

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidTransition is returned for a lifecycle action the current phase does not allow.
	ErrInvalidTransition = errors.New("invalid phase transition")
	// ErrNotReady is returned when a match is started before its input is ready.
	ErrNotReady = errors.New("control input not ready")
	// ErrClosed is returned by a match that has been torn down.
	ErrClosed = errors.New("match closed")
)

// MatchContext is everything that belongs to one match. A new one is built on
// every start; nothing carries over from the previous match.
type MatchContext struct {
	World World  `json:"world"`
	Score Score  `json:"score"`
	Tick  uint64 `json:"tick"`
}

// Option configures a Match.
type Option func(*Match)

// WithScheduler sets the scheduler used for delayed serves.
func WithScheduler(s Scheduler) Option {
	return func(m *Match) { m.sched = s }
}

// WithCoin sets the coin used to pick serve directions. true means positive.
func WithCoin(coin func() bool) Option {
	return func(m *Match) { m.coin = coin }
}

// Match is the lifecycle state machine: Loading -> Menu -> Playing <-> Paused,
// Playing -> GameOver -> Playing. It is not safe for concurrent use; callers
// serialise access and deliver serve callbacks under the same serialisation
// (see Serialized).
type Match struct {
	settings Settings
	phase    Phase
	status   string
	winner   Side
	ctx      *MatchContext

	sched    Scheduler
	coin     func() bool
	serve    Timer
	serveGen uint64
	closed   bool

	// inputLost is set by ReportFailure and cleared by MarkReady. While set
	// the match cannot start or resume.
	inputLost bool
}

// NewMatch validates s and returns a match in the Loading phase.
func NewMatch(s Settings, opts ...Option) (*Match, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m := &Match{
		settings: s,
		phase:    PhaseLoading,
		sched:    RealScheduler{},
		coin:     func() bool { return rand.Intn(2) == 0 },
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx = m.newContext()
	return m, nil
}

// Settings returns the match configuration.
func (m *Match) Settings() Settings { return m.settings }

// Phase returns the current lifecycle phase.
func (m *Match) Phase() Phase { return m.phase }

// Status returns the last user-visible status message.
func (m *Match) Status() string { return m.status }

// Winner returns the winning side once the match is over.
func (m *Match) Winner() Side { return m.winner }

// Score returns the current score.
func (m *Match) Score() Score { return m.ctx.Score }

// Context returns the live match context.
func (m *Match) Context() *MatchContext { return m.ctx }

// Active reports whether the simulation should advance.
func (m *Match) Active() bool {
	return !m.closed && m.phase == PhasePlaying
}

// ServePending reports whether a delayed serve is scheduled.
func (m *Match) ServePending() bool { return m.serve != nil }

// MarkReady records that detector and camera are available. It moves Loading
// to Menu and, in any phase, clears an earlier ReportFailure. A match paused
// by a failure stays paused until resumed.
func (m *Match) MarkReady() error {
	if m.closed {
		return ErrClosed
	}
	if m.phase == PhaseLoading || m.inputLost {
		m.status = "Ready"
	}
	m.inputLost = false
	if m.phase == PhaseLoading {
		m.phase = PhaseMenu
	}
	return nil
}

// ReportFailure records an initialization or device failure. A match that
// loses its input while Playing is paused rather than left running blind,
// and no match starts or resumes until MarkReady is called again.
func (m *Match) ReportFailure(msg string) Phase {
	m.status = msg
	m.inputLost = true
	if m.phase == PhasePlaying {
		m.phase = PhasePaused
	}
	return m.phase
}

// InputLost reports whether a failure is outstanding.
func (m *Match) InputLost() bool { return m.inputLost }

// Start begins a fresh match from Menu or GameOver.
func (m *Match) Start() error {
	if m.closed {
		return ErrClosed
	}
	switch m.phase {
	case PhaseMenu, PhaseGameOver:
		if m.inputLost {
			return ErrNotReady
		}
	case PhaseLoading:
		return ErrNotReady
	default:
		return fmt.Errorf("%w: start in %s", ErrInvalidTransition, m.phase)
	}

	m.cancelServe()
	m.ctx = m.newContext()
	m.winner = SideNone
	m.status = ""
	m.phase = PhasePlaying
	m.scheduleServe()
	return nil
}

// Pause freezes a running match.
func (m *Match) Pause() error {
	if m.closed {
		return ErrClosed
	}
	if m.phase != PhasePlaying {
		return fmt.Errorf("%w: pause in %s", ErrInvalidTransition, m.phase)
	}
	m.phase = PhasePaused
	return nil
}

// Resume continues a paused match.
func (m *Match) Resume() error {
	if m.closed {
		return ErrClosed
	}
	if m.phase != PhasePaused {
		return fmt.Errorf("%w: resume in %s", ErrInvalidTransition, m.phase)
	}
	if m.inputLost {
		return ErrNotReady
	}
	m.phase = PhasePlaying
	m.status = ""
	return nil
}

// TogglePause flips between Playing and Paused.
func (m *Match) TogglePause() (Phase, error) {
	var err error
	switch m.phase {
	case PhasePlaying:
		err = m.Pause()
	case PhasePaused:
		err = m.Resume()
	default:
		err = fmt.Errorf("%w: toggle pause in %s", ErrInvalidTransition, m.phase)
	}
	return m.phase, err
}

// RecordPoint credits side with one point. It is a no-op outside Playing.
// Reaching the win score ends the match; otherwise the ball is reset and a
// delayed serve is scheduled.
func (m *Match) RecordPoint(side Side) bool {
	if !m.Active() || (side != SidePlayer && side != SideAI) {
		return false
	}

	switch side {
	case SidePlayer:
		m.ctx.Score.Player++
	case SideAI:
		m.ctx.Score.AI++
	}

	if m.ctx.Score.Of(side) >= m.settings.WinScore {
		m.cancelServe()
		m.winner = side
		m.phase = PhaseGameOver
		m.status = side.String() + " wins"
		return true
	}

	m.resetBall()
	m.scheduleServe()
	return true
}

// Close tears the match down. A pending serve is cancelled and every later
// lifecycle call fails with ErrClosed.
func (m *Match) Close() {
	if m.closed {
		return
	}
	m.cancelServe()
	m.closed = true
	if m.phase == PhasePlaying || m.phase == PhasePaused {
		m.phase = PhaseMenu
	}
}

func (m *Match) newContext() *MatchContext {
	s := m.settings
	center := (s.FieldWidth - s.PaddleWidth) / 2
	paddle := Paddle{X: center, Width: s.PaddleWidth, Height: s.PaddleHeight, Margin: s.PaddleMargin}
	ctx := &MatchContext{
		World: World{
			Player: paddle,
			AI:     paddle,
			Ball:   Ball{Radius: s.BallRadius},
		},
	}
	ctx.World.Ball.X = s.FieldWidth / 2
	ctx.World.Ball.Y = s.FieldHeight / 2
	return ctx
}

func (m *Match) resetBall() {
	b := &m.ctx.World.Ball
	b.X = m.settings.FieldWidth / 2
	b.Y = m.settings.FieldHeight / 2
	b.VX = 0
	b.VY = 0
}

func (m *Match) scheduleServe() {
	m.cancelServe()
	gen := m.serveGen
	ctx := m.ctx
	m.serve = m.sched.AfterFunc(m.settings.ServeDelay, func() {
		m.fireServe(gen, ctx)
	})
}

// fireServe applies the serve velocity unless the serve was cancelled or its
// match context replaced. A serve landing while Paused still applies; the
// ball stays put until the match resumes.
func (m *Match) fireServe(gen uint64, ctx *MatchContext) {
	if m.closed || gen != m.serveGen || ctx != m.ctx {
		return
	}
	m.serve = nil
	b := &ctx.World.Ball
	b.VX = m.direction() * m.settings.ServeSpeed
	b.VY = m.direction() * m.settings.ServeSpeed
}

func (m *Match) cancelServe() {
	if m.serve != nil {
		m.serve.Stop()
		m.serve = nil
	}
	m.serveGen++
}

func (m *Match) direction() float64 {
	if m.coin() {
		return 1
	}
	return -1
}
