package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSettings is returned when a Settings value cannot drive a match.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds every tunable of the engine. The zero value is not usable;
// start from DefaultSettings.
type Settings struct {
	FieldWidth   float64 `yaml:"field_width" json:"field_width"`
	FieldHeight  float64 `yaml:"field_height" json:"field_height"`
	PaddleWidth  float64 `yaml:"paddle_width" json:"paddle_width"`
	PaddleHeight float64 `yaml:"paddle_height" json:"paddle_height"`
	PaddleMargin float64 `yaml:"paddle_margin" json:"paddle_margin"`

	BallRadius   float64 `yaml:"ball_radius" json:"ball_radius"`
	ServeSpeed   float64 `yaml:"serve_speed" json:"serve_speed"`
	MaxBallSpeed float64 `yaml:"max_ball_speed" json:"max_ball_speed"`

	Acceleration float64 `yaml:"acceleration" json:"acceleration"`
	Deflection   float64 `yaml:"deflection" json:"deflection"`

	DeadZoneMin float64 `yaml:"dead_zone_min" json:"dead_zone_min"`
	DeadZoneMax float64 `yaml:"dead_zone_max" json:"dead_zone_max"`
	Lerp        float64 `yaml:"lerp" json:"lerp"`

	AISpeed float64 `yaml:"ai_speed" json:"ai_speed"`

	WinScore   int           `yaml:"win_score" json:"win_score"`
	ServeDelay time.Duration `yaml:"serve_delay" json:"serve_delay"`
	TickRate   int           `yaml:"tick_rate" json:"tick_rate"`
	SampleRate int           `yaml:"sample_rate" json:"sample_rate"`
}

// DefaultSettings returns the stock single-player profile.
func DefaultSettings() Settings {
	return Settings{
		FieldWidth:   FieldWidth,
		FieldHeight:  FieldHeight,
		PaddleWidth:  PaddleWidth,
		PaddleHeight: PaddleHeight,
		PaddleMargin: PaddleMargin,
		BallRadius:   BallRadius,
		ServeSpeed:   ServeSpeed,
		MaxBallSpeed: MaxBallSpeed,
		Acceleration: PaddleAcceleration,
		Deflection:   DeflectionFactor,
		DeadZoneMin:  DeadZoneMin,
		DeadZoneMax:  DeadZoneMax,
		Lerp:         LerpFactor,
		AISpeed:      AISpeed,
		WinScore:     WinScore,
		ServeDelay:   ServeDelay,
		TickRate:     TickRate,
		SampleRate:   SampleRate,
	}
}

// Validate reports the first setting that would break an engine invariant.
func (s Settings) Validate() error {
	for name, v := range map[string]float64{
		"field_width": s.FieldWidth, "field_height": s.FieldHeight,
		"paddle_width": s.PaddleWidth, "paddle_height": s.PaddleHeight,
		"paddle_margin": s.PaddleMargin, "ball_radius": s.BallRadius,
		"serve_speed": s.ServeSpeed, "max_ball_speed": s.MaxBallSpeed,
		"acceleration": s.Acceleration, "deflection": s.Deflection,
		"dead_zone_min": s.DeadZoneMin, "dead_zone_max": s.DeadZoneMax,
		"lerp": s.Lerp, "ai_speed": s.AISpeed,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidSettings, name)
		}
	}

	if s.FieldWidth <= 0 || s.FieldHeight <= 0 {
		return fmt.Errorf("%w: field must be positive, got %.1fx%.1f", ErrInvalidSettings, s.FieldWidth, s.FieldHeight)
	}
	if s.PaddleWidth <= 0 || s.PaddleWidth > s.FieldWidth {
		return fmt.Errorf("%w: paddle width %.1f must be in (0, %.1f]", ErrInvalidSettings, s.PaddleWidth, s.FieldWidth)
	}
	if s.PaddleHeight <= 0 || s.PaddleMargin < 0 {
		return fmt.Errorf("%w: paddle height must be positive and margin non-negative", ErrInvalidSettings)
	}
	if 2*(s.PaddleMargin+s.PaddleHeight) >= s.FieldHeight {
		return fmt.Errorf("%w: paddles overlap in a %.1f tall field", ErrInvalidSettings, s.FieldHeight)
	}
	if s.BallRadius <= 0 {
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalidSettings)
	}
	if s.ServeSpeed <= 0 || s.MaxBallSpeed < s.ServeSpeed {
		return fmt.Errorf("%w: need 0 < serve_speed <= max_ball_speed", ErrInvalidSettings)
	}
	// One tick of travel must not carry the ball centre across a paddle band,
	// which runs from the paddle face to the goal line.
	if s.MaxBallSpeed >= s.PaddleHeight+s.PaddleMargin+s.BallRadius {
		return fmt.Errorf("%w: max_ball_speed %.1f would tunnel through a %.1f paddle",
			ErrInvalidSettings, s.MaxBallSpeed, s.PaddleHeight)
	}
	if s.Acceleration < 1 {
		return fmt.Errorf("%w: acceleration %.2f must be >= 1", ErrInvalidSettings, s.Acceleration)
	}
	if s.Deflection < 0 {
		return fmt.Errorf("%w: deflection must be non-negative", ErrInvalidSettings)
	}
	if err := ValidateDeadZone(s.DeadZoneMin, s.DeadZoneMax); err != nil {
		return err
	}
	if s.Lerp <= 0 || s.Lerp > 1 {
		return fmt.Errorf("%w: lerp %.2f must be in (0, 1]", ErrInvalidSettings, s.Lerp)
	}
	if s.AISpeed <= 0 {
		return fmt.Errorf("%w: ai_speed must be positive", ErrInvalidSettings)
	}
	if s.WinScore < 1 {
		return fmt.Errorf("%w: win_score must be at least 1", ErrInvalidSettings)
	}
	if s.ServeDelay < 0 {
		return fmt.Errorf("%w: serve_delay must be non-negative", ErrInvalidSettings)
	}
	if s.TickRate <= 0 || s.SampleRate <= 0 {
		return fmt.Errorf("%w: tick_rate and sample_rate must be positive", ErrInvalidSettings)
	}
	return nil
}

// WithDeadZone returns a copy of s using the given window.
func (s Settings) WithDeadZone(lo, hi float64) Settings {
	s.DeadZoneMin = lo
	s.DeadZoneMax = hi
	return s
}

// TickInterval is the wall-clock time between frames.
func (s Settings) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

// SampleInterval is the wall-clock time between face samples.
func (s Settings) SampleInterval() time.Duration {
	return time.Second / time.Duration(s.SampleRate)
}

// PaddleTravel is the largest legal paddle X.
func (s Settings) PaddleTravel() float64 {
	return s.FieldWidth - s.PaddleWidth
}

// ValidateDeadZone checks a normalized [lo, hi] control window.
func ValidateDeadZone(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return fmt.Errorf("%w: dead zone bounds must be numbers", ErrInvalidSettings)
	}
	if lo < 0 || hi > 1 {
		return fmt.Errorf("%w: dead zone [%.2f, %.2f] must lie within [0, 1]", ErrInvalidSettings, lo, hi)
	}
	if lo >= hi {
		return fmt.Errorf("%w: dead zone min %.2f must be below max %.2f", ErrInvalidSettings, lo, hi)
	}
	return nil
}
