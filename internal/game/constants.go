package game

import "time"

// Field dimensions (logical units)
const (
	FieldWidth  = 600
	FieldHeight = 800
)

// Paddle geometry
const (
	PaddleWidth  = 100.0
	PaddleHeight = 20.0
	PaddleMargin = 10.0 // gap between a paddle and its field edge
)

// Ball
const (
	BallRadius   = 8.0
	ServeSpeed   = 3.0  // units per tick on each axis
	MaxBallSpeed = 16.0 // per-axis cap, keeps the ball from skipping a paddle band
)

// Rally physics
const (
	PaddleAcceleration = 1.05
	DeflectionFactor   = 0.1
)

// Control signal
const (
	DeadZoneMin = 0.25
	DeadZoneMax = 0.75
	LerpFactor  = 0.2
)

// AI
const (
	AISpeed = 2.8 // units per tick
)

// Match timing
const (
	WinScore   = 5
	ServeDelay = time.Second
	TickRate   = 60 // ticks per second, one per display refresh
	SampleRate = 30 // face samples per second
)

// Draw palette (must match the web client)
const (
	ColorBackground = "#1a1a1a"
	ColorDivider    = "#333"
	ColorPlayer     = "#4ade80"
	ColorAI         = "#f87171"
	ColorBall       = "#fff"
	GlowBlur        = 15.0
)
