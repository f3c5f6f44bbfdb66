package handler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ugaemi/facepong-server/internal/session"
	"github.com/ugaemi/facepong-server/internal/store"
	"github.com/ugaemi/facepong-server/internal/ws"
)

// storeTimeout bounds every profile store call made while handling a message.
const storeTimeout = 3 * time.Second

// Role is how a client takes part in a session.
type Role int

const (
	RoleController Role = iota + 1 // owns the match and sends face samples
	RoleWatcher                    // display attached by session code
)

func (r Role) String() string {
	switch r {
	case RoleController:
		return "controller"
	case RoleWatcher:
		return "watcher"
	default:
		return "none"
	}
}

// binding ties a connected client to the session it drives or watches.
type binding struct {
	session   *session.Session
	role      Role
	profileID string
}

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	sessions *SessionHandler
	control  *ControlHandler

	// bindings tracks client ID -> session binding, shared across handlers.
	bindings map[string]*binding
	mu       sync.RWMutex
}

// NewRouter creates a new message router.
func NewRouter(sm *session.Manager, profiles store.ProfileStore) *Router {
	r := &Router{
		bindings: make(map[string]*binding),
	}
	r.sessions = NewSessionHandler(sm, profiles, r)
	r.control = NewControlHandler(profiles, r)
	return r
}

// bind maps a client ID to a session.
func (r *Router) bind(clientID string, b *binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[clientID] = b
}

// unbind removes a client's session mapping and returns it.
func (r *Router) unbind(clientID string) *binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bindings[clientID]
	delete(r.bindings, clientID)
	return b
}

// lookup returns the session binding for a client, or nil.
func (r *Router) lookup(clientID string) *binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bindings[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	msg, err := ws.ParseMessage(cm.Data)
	if err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Session messages
	case ws.TypeHello:
		r.sessions.HandleHello(cm.Client, msg)
	case ws.TypeWatch:
		r.sessions.HandleWatch(cm.Client, msg)
	case ws.TypeLeaveSession:
		r.sessions.HandleLeave(cm.Client, msg)

	// Control messages
	case ws.TypeDeviceStatus:
		r.control.HandleDeviceStatus(cm.Client, msg)
	case ws.TypeStartGame:
		r.control.HandleStartGame(cm.Client, msg)
	case ws.TypeTogglePause:
		r.control.HandleTogglePause(cm.Client, msg)
	case ws.TypeFaceSample:
		r.control.HandleFaceSample(cm.Client, msg)
	case ws.TypeCalibrate:
		r.control.HandleCalibrate(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.sessions.HandleDisconnect(client)
}

// controller returns the session client drives, or sends an error and
// returns nil.
func (r *Router) controller(client *ws.Client) (*session.Session, *binding) {
	b := r.lookup(client.ID)
	switch {
	case b == nil:
		client.SendMessage(ws.NewErrorMessage("not in a session"))
		return nil, nil
	case b.role != RoleController:
		client.SendMessage(ws.NewErrorMessage("watchers cannot control the match"))
		return nil, nil
	}
	return b.session, b
}
