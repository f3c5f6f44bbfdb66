package tracking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ugaemi/facepong-server/internal/game"
)

var (
	// ErrNoFace means the frame was read but nobody was in it. The previous
	// control target stays in effect.
	ErrNoFace = errors.New("no face detected")
	// ErrCameraUnavailable means the video source is gone. It stops sampling.
	ErrCameraUnavailable = errors.New("camera unavailable")
	// ErrModelUnavailable means the detector could not be loaded. It stops sampling.
	ErrModelUnavailable = errors.New("face model unavailable")
)

// Detection is one face observation in source-frame pixels.
type Detection struct {
	Box        game.FaceBox `json:"box"`
	FrameWidth float64      `json:"frame_width"`
}

// Oracle produces the next face observation.
type Oracle interface {
	Detect(ctx context.Context) (Detection, error)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context) (Detection, error)

// Detect calls f.
func (f OracleFunc) Detect(ctx context.Context) (Detection, error) { return f(ctx) }

// Fatal reports whether err ends a sampling run.
func Fatal(err error) bool {
	return errors.Is(err, ErrCameraUnavailable) || errors.Is(err, ErrModelUnavailable)
}

// Feed maps d through mapper and publishes the paddle target. It returns
// false, leaving the slot untouched, when the detection cannot be mapped.
func Feed(mapper *game.SignalMapper, signal *game.ControlSignal, d Detection) bool {
	target, ok := mapper.MapBox(d.Box, d.FrameWidth)
	if !ok {
		return false
	}
	signal.Store(target)
	return true
}

// Sampler polls an Oracle at its own pace, independent of the frame rate.
type Sampler struct {
	oracle   Oracle
	interval time.Duration
	sink     func(Detection)
}

// NewSampler creates a sampler that hands every usable detection to sink.
func NewSampler(oracle Oracle, interval time.Duration, sink func(Detection)) *Sampler {
	return &Sampler{oracle: oracle, interval: interval, sink: sink}
}

// Run samples until ctx is cancelled or the oracle reports a fatal error,
// which is returned. A missed or failed sample is skipped.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d, err := s.oracle.Detect(ctx)
			switch {
			case err == nil:
				s.sink(d)
			case Fatal(err):
				slog.Warn("face sampling stopped", "error", err)
				return err
			case errors.Is(err, ErrNoFace), errors.Is(err, context.Canceled):
			default:
				slog.Debug("face sample failed", "error", err)
			}
		}
	}
}
