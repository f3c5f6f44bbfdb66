package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/store"
	"github.com/ugaemi/facepong-server/internal/tracking"
	"github.com/ugaemi/facepong-server/internal/ws"
)

const cameraHint = "Please enable camera access"

// ControlHandler handles the controller's in-match messages.
type ControlHandler struct {
	profiles store.ProfileStore
	router   *Router
}

// NewControlHandler creates a new control handler.
func NewControlHandler(profiles store.ProfileStore, router *Router) *ControlHandler {
	return &ControlHandler{profiles: profiles, router: router}
}

type deviceStatusRequest struct {
	CameraReady bool   `json:"camera_ready"`
	ModelReady  bool   `json:"model_ready"`
	Error       string `json:"error"`
}

// HandleDeviceStatus moves the match out of Loading once camera and detector
// are both up, or surfaces the failure as a status message.
func (h *ControlHandler) HandleDeviceStatus(client *ws.Client, msg ws.Message) {
	var req deviceStatusRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid device status"))
		return
	}

	s, _ := h.router.controller(client)
	if s == nil {
		return
	}

	if !req.CameraReady || !req.ModelReady || req.Error != "" {
		status := req.Error
		if status == "" {
			status = cameraHint
		}
		s.ReportFailure(status)
		return
	}

	if err := s.MarkReady(); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}

// HandleStartGame starts or restarts the match.
func (h *ControlHandler) HandleStartGame(client *ws.Client, _ ws.Message) {
	s, _ := h.router.controller(client)
	if s == nil {
		return
	}

	if err := s.Start(); err != nil {
		if errors.Is(err, game.ErrNotReady) {
			client.SendMessage(ws.NewErrorMessage(cameraHint))
			return
		}
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}

// HandleTogglePause pauses or resumes the match.
func (h *ControlHandler) HandleTogglePause(client *ws.Client, _ ws.Message) {
	s, _ := h.router.controller(client)
	if s == nil {
		return
	}

	if _, err := s.TogglePause(); err != nil {
		if errors.Is(err, game.ErrNotReady) {
			client.SendMessage(ws.NewErrorMessage(cameraHint))
			return
		}
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}

type faceSampleRequest struct {
	Box        *game.FaceBox `json:"box"`
	FrameWidth float64       `json:"frame_width"`
}

// HandleFaceSample feeds one detection into the control slot. A sample
// without a face keeps the previous target.
func (h *ControlHandler) HandleFaceSample(client *ws.Client, msg ws.Message) {
	var req faceSampleRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid face sample"))
		return
	}

	s, _ := h.router.controller(client)
	if s == nil || req.Box == nil {
		return
	}

	if !s.ApplyDetection(tracking.Detection{Box: *req.Box, FrameWidth: req.FrameWidth}) {
		slog.Debug("face sample ignored", "client", client.ID, "frame_width", req.FrameWidth)
	}
}

type calibrateRequest struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HandleCalibrate swaps the control window and persists it to the profile.
func (h *ControlHandler) HandleCalibrate(client *ws.Client, msg ws.Message) {
	var req calibrateRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid calibration"))
		return
	}

	s, b := h.router.controller(client)
	if s == nil {
		return
	}

	if err := s.Calibrate(req.Min, req.Max); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	if b.profileID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := h.profiles.UpdateCalibration(ctx, b.profileID, req.Min, req.Max); err != nil {
			slog.Error("calibration not saved", "profile", b.profileID, "error", err)
		}
	}

	client.SendMessage(ws.NewMessage(ws.TypeCalibration, s.Calibration()))
}
