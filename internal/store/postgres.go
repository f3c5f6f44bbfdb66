package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugaemi/facepong-server/internal/profile"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL DEFAULT '',
    dead_zone_min DOUBLE PRECISION NOT NULL,
    dead_zone_max DOUBLE PRECISION NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (dead_zone_min >= 0 AND dead_zone_max <= 1 AND dead_zone_min < dead_zone_max)
);
`

// PostgresStore implements ProfileStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// FindByID looks up a profile by ID.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, nickname, dead_zone_min, dead_zone_max, created_at, updated_at
		 FROM profiles WHERE id = $1`, id)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// Create inserts a new profile.
func (s *PostgresStore) Create(ctx context.Context, p *profile.Profile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, nickname, dead_zone_min, dead_zone_max, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Nickname, p.DeadZoneMin, p.DeadZoneMax, p.CreatedAt, p.UpdatedAt)
	return err
}

// UpdateCalibration stores a new control window.
func (s *PostgresStore) UpdateCalibration(ctx context.Context, id string, lo, hi float64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET dead_zone_min = $1, dead_zone_max = $2, updated_at = $3 WHERE id = $4`,
		lo, hi, time.Now(), id)
	return err
}

// UpdateNickname updates the profile nickname.
func (s *PostgresStore) UpdateNickname(ctx context.Context, id string, nickname string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET nickname = $1, updated_at = $2 WHERE id = $3`, nickname, time.Now(), id)
	return err
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(&p.ID, &p.Nickname, &p.DeadZoneMin, &p.DeadZoneMax, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
