package store

import (
	"context"

	"github.com/ugaemi/facepong-server/internal/profile"
)

// ProfileStore defines the interface for persistent calibration profiles.
// Lookups return (nil, nil) when nothing matches.
type ProfileStore interface {
	// FindByID looks up a profile by ID.
	FindByID(ctx context.Context, id string) (*profile.Profile, error)
	// Create inserts a new profile.
	Create(ctx context.Context, p *profile.Profile) error
	// UpdateCalibration stores a new control window.
	UpdateCalibration(ctx context.Context, id string, lo, hi float64) error
	// UpdateNickname updates the profile nickname.
	UpdateNickname(ctx context.Context, id string, nickname string) error
	// Close releases storage resources.
	Close() error
}
