package session

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/ugaemi/facepong-server/internal/game"
)

// Manager manages all active sessions.
type Manager struct {
	settings game.Settings
	opts     []Option

	sessions map[string]*Session // code -> session
	mu       sync.RWMutex
}

// NewManager creates a manager whose sessions start from settings.
func NewManager(settings game.Settings, opts ...Option) *Manager {
	return &Manager{
		settings: settings,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Settings returns the base settings for new sessions.
func (m *Manager) Settings() game.Settings { return m.settings }

// Create creates a new session using the base settings with the given
// control window.
func (m *Manager) Create(lo, hi float64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool, len(m.sessions))
	for code := range m.sessions {
		existing[code] = true
	}

	code := GenerateCode(existing)
	s, err := New(code, m.settings.WithDeadZone(lo, hi), m.opts...)
	if err != nil {
		return nil, err
	}
	m.sessions[code] = s

	slog.Info("session created", "code", code, "id", s.ID)
	return s, nil
}

// Get returns a session by its code. Codes are case-insensitive.
func (m *Manager) Get(code string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[strings.ToUpper(code)]
}

// Remove closes and removes a session by its code.
func (m *Manager) Remove(code string) {
	code = strings.ToUpper(code)
	m.mu.Lock()
	s, ok := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()

	if ok {
		s.Close()
		slog.Info("session removed", "code", code)
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	slog.Info("sessions closed", "count", len(sessions))
}
