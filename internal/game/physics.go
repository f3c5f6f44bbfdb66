package game

import "math"

// Paddle is a horizontal bat anchored to one field edge.
type Paddle struct {
	X      float64 `json:"x"` // left edge
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"` // gap to its field edge
}

// Center returns the horizontal centre of the paddle.
func (p Paddle) Center() float64 {
	return p.X + p.Width/2
}

// Covers reports whether x lies on the paddle's face.
func (p Paddle) Covers(x float64) bool {
	return x >= p.X && x <= p.X+p.Width
}

// Ball is the single ball in play.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

// Moving reports whether the ball has been served.
func (b Ball) Moving() bool {
	return b.VX != 0 || b.VY != 0
}

// World is the mechanical state advanced by Physics.
type World struct {
	Ball   Ball   `json:"ball"`
	Player Paddle `json:"player"`
	AI     Paddle `json:"ai"`
}

// StepResult describes what happened during one physics step.
type StepResult struct {
	Scorer    Side
	PlayerHit bool
	AIHit     bool
}

// Physics advances a World by one tick. It holds no state of its own.
type Physics struct {
	Width        float64
	Height       float64
	Acceleration float64
	Deflection   float64
	MaxSpeed     float64
}

// NewPhysics builds the engine for s.
func NewPhysics(s Settings) Physics {
	return Physics{
		Width:        s.FieldWidth,
		Height:       s.FieldHeight,
		Acceleration: s.Acceleration,
		Deflection:   s.Deflection,
		MaxSpeed:     s.MaxBallSpeed,
	}
}

// Step integrates the ball, resolves wall and paddle contacts and reports at
// most one scoring edge. The input is not modified.
func (p Physics) Step(w World) (World, StepResult) {
	var res StepResult
	b := w.Ball

	b.X += b.VX
	b.Y += b.VY

	// Side walls reflect only an outward-moving ball so it cannot stick.
	if b.X-b.Radius < 0 && b.VX < 0 {
		b.VX = -b.VX
	} else if b.X+b.Radius > p.Width && b.VX > 0 {
		b.VX = -b.VX
	}

	// Player paddle guards the bottom edge: from its face down to the goal
	// line. A ball whose centre is past the line is out, not a hit.
	playerFace := p.Height - w.Player.Margin - w.Player.Height
	if b.VY > 0 && b.Y+b.Radius >= playerFace && b.Y <= p.Height && w.Player.Covers(b.X) {
		b.VY = -p.accelerate(b.VY)
		b.VX = p.limit(b.VX + (b.X-w.Player.Center())*p.Deflection)
		res.PlayerHit = true
	}

	aiFace := w.AI.Margin + w.AI.Height
	if b.VY < 0 && b.Y-b.Radius <= aiFace && b.Y >= 0 && w.AI.Covers(b.X) {
		b.VY = p.accelerate(b.VY)
		res.AIHit = true
	}

	switch {
	case b.Y > p.Height:
		res.Scorer = SideAI
	case b.Y < 0:
		res.Scorer = SidePlayer
	}

	w.Ball = b
	return w, res
}

// accelerate returns the new vertical speed magnitude after a paddle bounce.
func (p Physics) accelerate(vy float64) float64 {
	return math.Min(math.Abs(vy)*p.Acceleration, p.MaxSpeed)
}

func (p Physics) limit(v float64) float64 {
	return clamp(v, -p.MaxSpeed, p.MaxSpeed)
}
