package main

import (
	"context"
	"sync"

	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/tracking"
)

const (
	virtualFrameWidth = 640.0
	virtualFaceWidth  = 80.0
	faceStep          = 0.02
)

// keyboardOracle stands in for a webcam and face detector: the arrow keys
// move a virtual face across a mirrored camera image.
type keyboardOracle struct {
	mu       sync.Mutex
	faceX    float64 // normalized horizontal face centre
	cameraOn bool
	restored chan struct{}
}

func newKeyboardOracle() *keyboardOracle {
	return &keyboardOracle{faceX: 0.5, cameraOn: true, restored: make(chan struct{})}
}

// Detect reports the virtual face, or ErrCameraUnavailable while the camera
// is switched off.
func (o *keyboardOracle) Detect(context.Context) (tracking.Detection, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.cameraOn {
		return tracking.Detection{}, tracking.ErrCameraUnavailable
	}
	cx := o.faceX * virtualFrameWidth
	return tracking.Detection{
		Box: game.FaceBox{
			TopLeft:     [2]float64{cx - virtualFaceWidth/2, 120},
			BottomRight: [2]float64{cx + virtualFaceWidth/2, 240},
		},
		FrameWidth: virtualFrameWidth,
	}, nil
}

// MovePaddle nudges the face so the paddle moves by dir (-1 left, +1 right).
// The camera image is mirrored, so the face goes the other way.
func (o *keyboardOracle) MovePaddle(dir float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.faceX -= dir * faceStep
	if o.faceX < 0 {
		o.faceX = 0
	}
	if o.faceX > 1 {
		o.faceX = 1
	}
}

// ToggleCamera simulates unplugging or replugging the camera and returns the
// new state.
func (o *keyboardOracle) ToggleCamera() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cameraOn = !o.cameraOn
	if o.cameraOn {
		close(o.restored)
	} else {
		o.restored = make(chan struct{})
	}
	return o.cameraOn
}

// Restored returns a channel closed when the camera comes back.
func (o *keyboardOracle) Restored() <-chan struct{} {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.restored
}

// adjustWindow narrows (delta > 0) or widens (delta < 0) a control window
// symmetrically, staying inside [0, 1].
func adjustWindow(lo, hi, delta float64) (float64, float64) {
	lo += delta
	hi -= delta
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	return lo, hi
}
