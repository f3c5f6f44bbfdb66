package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ugaemi/facepong-server/internal/profile"
	"github.com/ugaemi/facepong-server/internal/session"
	"github.com/ugaemi/facepong-server/internal/store"
	"github.com/ugaemi/facepong-server/internal/ws"
)

const defaultNickname = "player"

// SessionHandler handles joining and leaving sessions.
type SessionHandler struct {
	sm       *session.Manager
	profiles store.ProfileStore
	router   *Router
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sm *session.Manager, profiles store.ProfileStore, router *Router) *SessionHandler {
	return &SessionHandler{
		sm:       sm,
		profiles: profiles,
		router:   router,
	}
}

type helloRequest struct {
	ProfileID string `json:"profile_id"`
	Nickname  string `json:"nickname"`
}

type sessionResponse struct {
	Session   session.Snapshot `json:"session"`
	Role      string           `json:"role"`
	ProfileID string           `json:"profile_id,omitempty"`
	Nickname  string           `json:"nickname,omitempty"`
}

// HandleHello opens a new session controlled by client. The player's stored
// calibration is restored when a known profile id is given; otherwise a new
// profile is created.
func (h *SessionHandler) HandleHello(client *ws.Client, msg ws.Message) {
	var req helloRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid hello"))
			return
		}
	}

	// A second hello replaces the client's current session.
	h.leave(client)

	p := h.loadProfile(req)
	s, err := h.sm.Create(p.DeadZoneMin, p.DeadZoneMax)
	if err != nil {
		slog.Warn("stored calibration rejected, using defaults", "profile", p.ID, "error", err)
		s, err = h.sm.Create(h.sm.Settings().DeadZoneMin, h.sm.Settings().DeadZoneMax)
		if err != nil {
			client.SendMessage(ws.NewErrorMessage("could not create session"))
			return
		}
	}

	s.Attach(client.ID, clientViewer{client: client})
	h.router.bind(client.ID, &binding{session: s, role: RoleController, profileID: p.ID})

	client.SendMessage(ws.NewMessage(ws.TypeSession, sessionResponse{
		Session:   s.Snapshot(),
		Role:      RoleController.String(),
		ProfileID: p.ID,
		Nickname:  p.Nickname,
	}))

	slog.Info("player opened session", "client", client.ID, "profile", p.ID, "session", s.Code)
}

// loadProfile returns the requested profile or a freshly created one. Store
// failures degrade to an unsaved profile.
func (h *SessionHandler) loadProfile(req helloRequest) *profile.Profile {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if req.ProfileID != "" {
		p, err := h.profiles.FindByID(ctx, req.ProfileID)
		if err != nil {
			slog.Error("profile lookup failed", "profile", req.ProfileID, "error", err)
		}
		if p != nil {
			if req.Nickname != "" && req.Nickname != p.Nickname {
				if err := h.profiles.UpdateNickname(ctx, p.ID, req.Nickname); err != nil {
					slog.Error("nickname update failed", "profile", p.ID, "error", err)
				} else {
					p.Nickname = req.Nickname
				}
			}
			return p
		}
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = defaultNickname
	}
	p := profile.New(nickname)
	if err := h.profiles.Create(ctx, p); err != nil {
		slog.Error("profile create failed", "profile", p.ID, "error", err)
	}
	return p
}

type watchRequest struct {
	Code string `json:"code"`
}

// HandleWatch attaches client as a display of an existing session.
func (h *SessionHandler) HandleWatch(client *ws.Client, msg ws.Message) {
	var req watchRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" {
		client.SendMessage(ws.NewErrorMessage("code is required"))
		return
	}

	s := h.sm.Get(req.Code)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("session not found"))
		return
	}

	h.leave(client)
	s.Attach(client.ID, clientViewer{client: client})
	h.router.bind(client.ID, &binding{session: s, role: RoleWatcher})

	client.SendMessage(ws.NewMessage(ws.TypeSession, sessionResponse{
		Session: s.Snapshot(),
		Role:    RoleWatcher.String(),
	}))
	client.SendMessage(ws.NewMessage(ws.TypeFrame, s.Frame()))

	slog.Info("display attached", "client", client.ID, "session", s.Code, "viewers", s.ViewerCount())
}

// HandleLeave handles a client leaving its session.
func (h *SessionHandler) HandleLeave(client *ws.Client, _ ws.Message) {
	h.leave(client)
}

// HandleDisconnect handles client disconnection.
func (h *SessionHandler) HandleDisconnect(client *ws.Client) {
	h.leave(client)
}

// leave detaches client. A controller leaving tears its session down; the
// remaining displays see it return to the menu.
func (h *SessionHandler) leave(client *ws.Client) {
	b := h.router.unbind(client.ID)
	if b == nil {
		return
	}

	b.session.Detach(client.ID)
	if b.role == RoleController {
		h.sm.Remove(b.session.Code)
	}
	slog.Info("client left session", "client", client.ID, "session", b.session.Code, "role", b.role.String())
}
