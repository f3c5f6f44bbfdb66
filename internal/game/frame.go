package game

// Frame is the draw instruction for one tick: background, centre divider, two
// glowing paddles, the ball and the score overlay.
type Frame struct {
	Tick       uint64       `json:"tick"`
	Phase      Phase        `json:"phase"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Background string       `json:"background"`
	Divider    Divider      `json:"divider"`
	Player     PaddleSprite `json:"player"`
	AI         PaddleSprite `json:"ai"`
	Ball       BallSprite   `json:"ball"`
	Score      Score        `json:"score"`
	Winner     Side         `json:"winner"`
	Events     FrameEvents  `json:"events"`
}

// Divider is the dashed line across the middle of the field.
type Divider struct {
	Y     float64    `json:"y"`
	Color string     `json:"color"`
	Dash  [2]float64 `json:"dash"`
}

// PaddleSprite is a filled rectangle with a glow.
type PaddleSprite struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
	Glow   float64 `json:"glow"`
}

// BallSprite is a filled circle.
type BallSprite struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// FrameEvents carries one-shot cues (sound, flashes) for the tick.
type FrameEvents struct {
	PlayerHit bool `json:"player_hit,omitempty"`
	AIHit     bool `json:"ai_hit,omitempty"`
	Scorer    Side `json:"scorer,omitempty"`
}

// Frame renders the current match context without advancing it.
func (m *Match) Frame() Frame {
	s := m.settings
	w := m.ctx.World
	return Frame{
		Tick:       m.ctx.Tick,
		Phase:      m.phase,
		Width:      s.FieldWidth,
		Height:     s.FieldHeight,
		Background: ColorBackground,
		Divider:    Divider{Y: s.FieldHeight / 2, Color: ColorDivider, Dash: [2]float64{10, 15}},
		Player: PaddleSprite{
			X:      w.Player.X,
			Y:      s.FieldHeight - w.Player.Margin - w.Player.Height,
			Width:  w.Player.Width,
			Height: w.Player.Height,
			Color:  ColorPlayer,
			Glow:   GlowBlur,
		},
		AI: PaddleSprite{
			X:      w.AI.X,
			Y:      w.AI.Margin,
			Width:  w.AI.Width,
			Height: w.AI.Height,
			Color:  ColorAI,
			Glow:   GlowBlur,
		},
		Ball:   BallSprite{X: w.Ball.X, Y: w.Ball.Y, Radius: w.Ball.Radius, Color: ColorBall},
		Score:  m.ctx.Score,
		Winner: m.winner,
	}
}
