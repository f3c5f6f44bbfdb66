package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/tracking"
)

func TestKeyboardOracle_Detect(t *testing.T) {
	o := newKeyboardOracle()

	d, err := o.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, virtualFrameWidth, d.FrameWidth)
	assert.InDelta(t, 0.5, d.Box.CenterX()/d.FrameWidth, 1e-9)
}

func TestKeyboardOracle_MovePaddleIsMirrored(t *testing.T) {
	o := newKeyboardOracle()
	mapper, err := game.NewSignalMapper(game.DefaultSettings())
	require.NoError(t, err)

	var sig game.ControlSignal
	d, _ := o.Detect(context.Background())
	require.True(t, tracking.Feed(mapper, &sig, d))
	centre := sig.Load(0)

	for range 5 {
		o.MovePaddle(1)
	}
	d, _ = o.Detect(context.Background())
	require.True(t, tracking.Feed(mapper, &sig, d))
	assert.Greater(t, sig.Load(0), centre, "right arrow moves the paddle right")
}

func TestKeyboardOracle_MovePaddleClamps(t *testing.T) {
	o := newKeyboardOracle()
	for range 100 {
		o.MovePaddle(-1)
	}
	d, err := o.Detect(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, virtualFrameWidth, d.Box.CenterX(), 1e-9)
}

func TestKeyboardOracle_ToggleCamera(t *testing.T) {
	o := newKeyboardOracle()

	assert.False(t, o.ToggleCamera())
	_, err := o.Detect(context.Background())
	assert.ErrorIs(t, err, tracking.ErrCameraUnavailable)
	assert.True(t, tracking.Fatal(err))

	restored := o.Restored()
	select {
	case <-restored:
		t.Fatal("restored while camera is off")
	default:
	}

	assert.True(t, o.ToggleCamera())
	select {
	case <-restored:
	case <-time.After(time.Second):
		t.Fatal("restore not signalled")
	}
	_, err = o.Detect(context.Background())
	assert.NoError(t, err)
}

func TestAdjustWindow(t *testing.T) {
	tests := []struct {
		name           string
		lo, hi, delta  float64
		wantLo, wantHi float64
	}{
		{"narrow", 0.2, 0.8, 0.1, 0.3, 0.7},
		{"widen", 0.2, 0.8, -0.1, 0.1, 0.9},
		{"widen clamps", 0.05, 0.95, -0.1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := adjustWindow(tt.lo, tt.hi, tt.delta)
			assert.InDelta(t, tt.wantLo, lo, 1e-9)
			assert.InDelta(t, tt.wantHi, hi, 1e-9)
		})
	}
}

func TestTone(t *testing.T) {
	s := tone(440, 10*time.Millisecond)
	want := sampleRate.N(10 * time.Millisecond)

	buf := make([][2]float64, 128)
	got := 0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			assert.LessOrEqual(t, smp[0], 0.2)
			assert.GreaterOrEqual(t, smp[0], -0.2)
		}
		got += n
		if !ok || n == 0 {
			break
		}
	}
	assert.Equal(t, want, got)
}

func TestToneBank_SilentWhenDisabled(t *testing.T) {
	var b *toneBank
	assert.NotPanics(t, func() {
		b.Play(toneScore)
		b.Close()
		(&toneBank{}).Play(tonePlayerHit)
	})
}
