package game

import (
	"math"
	"sync/atomic"
)

// FaceBox is one detection in source pixel coordinates.
type FaceBox struct {
	TopLeft     [2]float64 `json:"top_left"`
	BottomRight [2]float64 `json:"bottom_right"`
}

// CenterX returns the horizontal midpoint of the box.
func (b FaceBox) CenterX() float64 {
	return b.TopLeft[0] + (b.BottomRight[0]-b.TopLeft[0])/2
}

// SignalMapper turns a normalized face coordinate into a paddle target.
// The window [min, max] covers the full paddle travel; the camera image is
// mirrored, so the mapping is inverted.
type SignalMapper struct {
	min    float64
	max    float64
	travel float64
}

// NewSignalMapper validates the dead zone and field geometry of s.
func NewSignalMapper(s Settings) (*SignalMapper, error) {
	if err := ValidateDeadZone(s.DeadZoneMin, s.DeadZoneMax); err != nil {
		return nil, err
	}
	if s.FieldWidth <= 0 || s.PaddleWidth <= 0 || s.PaddleWidth > s.FieldWidth {
		return nil, ErrInvalidSettings
	}
	return &SignalMapper{
		min:    s.DeadZoneMin,
		max:    s.DeadZoneMax,
		travel: s.PaddleTravel(),
	}, nil
}

// Bounds returns the dead-zone window.
func (m *SignalMapper) Bounds() (float64, float64) {
	return m.min, m.max
}

// Map converts raw (nominally in [0,1]) into a paddle X in [0, W - paddleWidth].
func (m *SignalMapper) Map(raw float64) float64 {
	clamped := clamp(raw, m.min, m.max)
	remapped := (clamped - m.min) / (m.max - m.min)
	return (1 - remapped) * m.travel
}

// MapBox maps the centre of a detection. ok is false when the sample carries
// no usable position, in which case the caller keeps its previous target.
func (m *SignalMapper) MapBox(box FaceBox, frameWidth float64) (target float64, ok bool) {
	if frameWidth <= 0 || math.IsNaN(frameWidth) || math.IsInf(frameWidth, 0) {
		return 0, false
	}
	raw := box.CenterX() / frameWidth
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false
	}
	return m.Map(raw), true
}

// ControlSignal is the single-slot hand-off between the face sampling loop and
// the frame driver. Writes overwrite; reads see the freshest value.
type ControlSignal struct {
	bits atomic.Uint64
	set  atomic.Bool
}

// Store publishes a new target.
func (c *ControlSignal) Store(targetX float64) {
	c.bits.Store(math.Float64bits(targetX))
	c.set.Store(true)
}

// Load returns the latest target, or fallback if nothing was ever stored.
func (c *ControlSignal) Load(fallback float64) float64 {
	if !c.set.Load() {
		return fallback
	}
	return math.Float64frombits(c.bits.Load())
}

// Reset forgets the stored target.
func (c *ControlSignal) Reset() {
	c.set.Store(false)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
