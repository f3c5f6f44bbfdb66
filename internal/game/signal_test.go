package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMapper(t *testing.T) *SignalMapper {
	t.Helper()
	m, err := NewSignalMapper(DefaultSettings())
	require.NoError(t, err)
	return m
}

func TestSignalMapper_Map(t *testing.T) {
	m := defaultMapper(t)
	travel := float64(FieldWidth) - PaddleWidth

	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"left bound maps to right edge", 0.25, travel},
		{"right bound maps to left edge", 0.75, 0},
		{"centre maps to centre", 0.5, travel / 2},
		{"quarter into window", 0.375, travel * 0.75},
		{"below window clamps", 0.0, travel},
		{"above window clamps", 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Map(tt.raw), 1e-9)
		})
	}
}

func TestSignalMapper_ClampingIdempotence(t *testing.T) {
	m := defaultMapper(t)

	atMin := m.Map(DeadZoneMin)
	atMax := m.Map(DeadZoneMax)
	for _, raw := range []float64{0, 0.05, 0.1, 0.2, 0.2499} {
		assert.Equal(t, atMin, m.Map(raw), "raw %.4f should clamp to min bound", raw)
	}
	for _, raw := range []float64{0.7501, 0.8, 0.9, 1.0} {
		assert.Equal(t, atMax, m.Map(raw), "raw %.4f should clamp to max bound", raw)
	}
}

func TestSignalMapper_ClampsAboveWindow(t *testing.T) {
	m := defaultMapper(t)
	assert.Equal(t, m.Map(0.75), m.Map(0.9))
}

func TestSignalMapper_OutputInRange(t *testing.T) {
	m := defaultMapper(t)
	for raw := -0.5; raw <= 1.5; raw += 0.01 {
		out := m.Map(raw)
		assert.GreaterOrEqual(t, out, 0.0)
		assert.LessOrEqual(t, out, float64(FieldWidth)-PaddleWidth)
	}
}

func TestNewSignalMapper_RejectsBadWindow(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"equal bounds", 0.5, 0.5},
		{"inverted bounds", 0.8, 0.2},
		{"below zero", -0.1, 0.5},
		{"above one", 0.5, 1.2},
		{"nan", math.NaN(), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSignalMapper(DefaultSettings().WithDeadZone(tt.min, tt.max))
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestSignalMapper_MapBox(t *testing.T) {
	m := defaultMapper(t)

	t.Run("uses horizontal centre", func(t *testing.T) {
		box := FaceBox{TopLeft: [2]float64{280, 100}, BottomRight: [2]float64{360, 200}}
		target, ok := m.MapBox(box, 640)
		require.True(t, ok)
		assert.InDelta(t, m.Map(320.0/640), target, 1e-9)
	})

	t.Run("zero frame width is a miss", func(t *testing.T) {
		_, ok := m.MapBox(FaceBox{}, 0)
		assert.False(t, ok)
	})

	t.Run("infinite centre is a miss", func(t *testing.T) {
		box := FaceBox{TopLeft: [2]float64{math.Inf(1), 0}, BottomRight: [2]float64{math.Inf(1), 0}}
		_, ok := m.MapBox(box, 640)
		assert.False(t, ok)
	})
}

func TestControlSignal(t *testing.T) {
	var sig ControlSignal

	assert.Equal(t, 42.0, sig.Load(42), "unset slot returns fallback")

	sig.Store(10)
	sig.Store(20)
	assert.Equal(t, 20.0, sig.Load(42), "last writer wins")

	sig.Reset()
	assert.Equal(t, 42.0, sig.Load(42))
}
