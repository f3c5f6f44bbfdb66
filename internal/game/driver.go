package game

// Renderer consumes one draw instruction per tick. It never feeds back into
// the engine.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

// Render calls f.
func (f RendererFunc) Render(fr Frame) { f(fr) }

// FrameDriver advances one match by one tick at a time.
type FrameDriver struct {
	match    *Match
	signal   *ControlSignal
	smoother Smoother
	physics  Physics
	ai       AIController
	renderer Renderer
}

// NewFrameDriver wires the per-tick pipeline for m. r may be nil. A nil
// signal gets a private slot that is never written, so the player paddle
// holds still.
func NewFrameDriver(m *Match, signal *ControlSignal, r Renderer) *FrameDriver {
	if signal == nil {
		signal = &ControlSignal{}
	}
	s := m.Settings()
	return &FrameDriver{
		match:    m,
		signal:   signal,
		smoother: NewSmoother(s),
		physics:  NewPhysics(s),
		ai:       NewAIController(s),
		renderer: r,
	}
}

// Tick runs one frame: smooth the player paddle toward the latest control
// signal, step physics, move the AI, settle scoring and render. It returns
// false without touching any state when the match is not Playing.
func (d *FrameDriver) Tick() (Frame, bool) {
	if !d.match.Active() {
		return Frame{}, false
	}

	ctx := d.match.Context()
	w := ctx.World

	target := d.signal.Load(w.Player.X)
	w.Player.X = d.smoother.Advance(w.Player.X, target)

	w, res := d.physics.Step(w)
	w.AI.X = d.ai.Advance(w.AI.X, w.Ball.X)

	ctx.World = w
	ctx.Tick++

	if res.Scorer != SideNone {
		d.match.RecordPoint(res.Scorer)
	}

	frame := d.match.Frame()
	frame.Events = FrameEvents{PlayerHit: res.PlayerHit, AIHit: res.AIHit, Scorer: res.Scorer}
	if d.renderer != nil {
		d.renderer.Render(frame)
	}
	return frame, true
}
