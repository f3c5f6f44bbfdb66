package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ugaemi/facepong-server/internal/profile"
)

// MemoryStore keeps profiles in process memory. It is used when no database
// is configured.
type MemoryStore struct {
	profiles map[string]profile.Profile
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]profile.Profile)}
}

// FindByID looks up a profile by ID.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Create inserts a new profile.
func (s *MemoryStore) Create(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[p.ID]; exists {
		return fmt.Errorf("profile %s already exists", p.ID)
	}
	s.profiles[p.ID] = *p
	return nil
}

// UpdateCalibration stores a new control window.
func (s *MemoryStore) UpdateCalibration(_ context.Context, id string, lo, hi float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil
	}
	p.DeadZoneMin, p.DeadZoneMax = lo, hi
	p.UpdatedAt = time.Now()
	s.profiles[id] = p
	return nil
}

// UpdateNickname updates the profile nickname.
func (s *MemoryStore) UpdateNickname(_ context.Context, id string, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil
	}
	p.Nickname = nickname
	p.UpdatedAt = time.Now()
	s.profiles[id] = p
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
