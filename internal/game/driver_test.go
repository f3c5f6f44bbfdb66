package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) (*Match, *ControlSignal, *manualScheduler, *[]Frame, *FrameDriver) {
	t.Helper()
	sched := &manualScheduler{}
	m := playingMatch(sched)
	sig := &ControlSignal{}
	var frames []Frame
	d := NewFrameDriver(m, sig, RendererFunc(func(f Frame) { frames = append(frames, f) }))
	return m, sig, sched, &frames, d
}

func TestFrameDriver_PausedTickIsNoop(t *testing.T) {
	m, sig, sched, frames, d := newTestDriver(t)
	sched.FireLive()
	for i := 0; i < 10; i++ {
		d.Tick()
	}
	require.NoError(t, m.Pause())

	before := *m.Context()
	sig.Store(0)
	for i := 0; i < 100; i++ {
		_, ok := d.Tick()
		assert.False(t, ok)
	}

	assert.Equal(t, before, *m.Context(), "paused world must be bit-identical")
	assert.Len(t, *frames, 10)
}

func TestFrameDriver_NoTickOutsidePlay(t *testing.T) {
	m := newTestMatch(&manualScheduler{})
	d := NewFrameDriver(m, &ControlSignal{}, nil)

	_, ok := d.Tick()
	assert.False(t, ok, "loading")

	require.NoError(t, m.MarkReady())
	_, ok = d.Tick()
	assert.False(t, ok, "menu")
	assert.Zero(t, m.Context().Tick)
}

func TestFrameDriver_NilSignalHoldsPaddle(t *testing.T) {
	m := playingMatch(&manualScheduler{})
	d := NewFrameDriver(m, nil, nil)
	start := m.Context().World.Player.X

	var frame Frame
	var ok bool
	require.NotPanics(t, func() { frame, ok = d.Tick() })
	require.True(t, ok)
	assert.Equal(t, start, frame.Player.X)
}

func TestFrameDriver_SmoothsTowardSignal(t *testing.T) {
	m, sig, _, _, d := newTestDriver(t)
	start := m.Context().World.Player.X

	frame, ok := d.Tick()
	require.True(t, ok)
	assert.Equal(t, start, frame.Player.X, "no signal holds the paddle")

	sig.Store(start + 100)
	frame, ok = d.Tick()
	require.True(t, ok)
	assert.InDelta(t, start+20, frame.Player.X, 1e-9)
	assert.Equal(t, uint64(2), frame.Tick)
}

func TestFrameDriver_AIFollowsBall(t *testing.T) {
	m, _, _, _, d := newTestDriver(t)
	w := &m.Context().World
	w.AI.X = 100
	w.Ball.X = 400

	_, ok := d.Tick()
	require.True(t, ok)
	assert.InDelta(t, 102.8, w.AI.X, 1e-9)
}

func TestFrameDriver_ScoringResetsBall(t *testing.T) {
	m, _, sched, frames, d := newTestDriver(t)
	sched.FireLive()

	w := &m.Context().World
	w.Player.X = 450
	w.Ball.X, w.Ball.Y = 50, 810
	w.Ball.VX, w.Ball.VY = 0, 3

	frame, ok := d.Tick()
	require.True(t, ok)

	assert.Equal(t, SideAI, frame.Events.Scorer)
	assert.Equal(t, Score{AI: 1}, frame.Score)
	assert.Equal(t, float64(FieldWidth)/2, frame.Ball.X)
	assert.Equal(t, float64(FieldHeight)/2, frame.Ball.Y)
	assert.True(t, m.ServePending())
	assert.Len(t, *frames, 1)
}

func TestFrameDriver_FinalPointEndsMatch(t *testing.T) {
	m, _, sched, _, d := newTestDriver(t)
	sched.FireLive()

	ctx := m.Context()
	ctx.Score = Score{Player: 4, AI: 3}
	ctx.World.AI.X = 450
	ctx.World.Ball.X, ctx.World.Ball.Y = 50, -10
	ctx.World.Ball.VX, ctx.World.Ball.VY = 0, -3

	frame, ok := d.Tick()
	require.True(t, ok)
	assert.Equal(t, PhaseGameOver, frame.Phase)
	assert.Equal(t, SidePlayer, frame.Winner)
	assert.Equal(t, Score{Player: 5, AI: 3}, frame.Score)

	_, ok = d.Tick()
	assert.False(t, ok, "game over halts the simulation")
}

func TestFrameDriver_ReportsHits(t *testing.T) {
	m, _, sched, _, d := newTestDriver(t)
	sched.FireLive()

	w := &m.Context().World
	w.Player.X = 250
	w.Ball.X, w.Ball.Y = 300, 770
	w.Ball.VX, w.Ball.VY = 0, 3

	frame, ok := d.Tick()
	require.True(t, ok)
	assert.True(t, frame.Events.PlayerHit)
	assert.Less(t, w.Ball.VY, 0.0)
}

func TestFrame_Layout(t *testing.T) {
	m := playingMatch(&manualScheduler{})
	f := m.Frame()

	assert.Equal(t, ColorBackground, f.Background)
	assert.Equal(t, float64(FieldHeight)/2, f.Divider.Y)
	assert.Equal(t, float64(FieldHeight)-PaddleMargin-PaddleHeight, f.Player.Y)
	assert.Equal(t, PaddleMargin, f.AI.Y)
	assert.Equal(t, ColorPlayer, f.Player.Color)
	assert.Equal(t, ColorAI, f.AI.Color)
	assert.Equal(t, GlowBlur, f.Player.Glow)
	assert.Equal(t, PhasePlaying, f.Phase)
}
