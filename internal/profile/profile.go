package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/facepong-server/internal/game"
)

// Profile is a persistent player calibration. Scores are never stored.
type Profile struct {
	ID          string    `json:"id"`
	Nickname    string    `json:"nickname"`
	DeadZoneMin float64   `json:"dead_zone_min"`
	DeadZoneMax float64   `json:"dead_zone_max"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a profile using the default control window.
func New(nickname string) *Profile {
	now := time.Now()
	return &Profile{
		ID:          uuid.New().String(),
		Nickname:    nickname,
		DeadZoneMin: game.DeadZoneMin,
		DeadZoneMax: game.DeadZoneMax,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Calibrate replaces the control window. An invalid window leaves the
// profile unchanged.
func (p *Profile) Calibrate(lo, hi float64) error {
	if err := game.ValidateDeadZone(lo, hi); err != nil {
		return err
	}
	p.DeadZoneMin = lo
	p.DeadZoneMax = hi
	p.UpdatedAt = time.Now()
	return nil
}

// Apply returns s with this profile's control window.
func (p *Profile) Apply(s game.Settings) game.Settings {
	return s.WithDeadZone(p.DeadZoneMin, p.DeadZoneMax)
}
