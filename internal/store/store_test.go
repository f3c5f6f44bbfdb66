package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/facepong-server/internal/profile"
)

func newTestProfile(t *testing.T, s ProfileStore) *profile.Profile {
	t.Helper()
	p := profile.New("tester")
	require.NoError(t, s.Create(context.Background(), p))
	return p
}

// runStoreContract exercises behaviour every ProfileStore must share.
func runStoreContract(t *testing.T, open func(t *testing.T) ProfileStore) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		s := open(t)
		p := newTestProfile(t, s)

		found, err := s.FindByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, p.ID, found.ID)
		assert.Equal(t, "tester", found.Nickname)
		assert.Equal(t, p.DeadZoneMin, found.DeadZoneMin)
		assert.Equal(t, p.DeadZoneMax, found.DeadZoneMax)
	})

	t.Run("not found", func(t *testing.T) {
		s := open(t)
		found, err := s.FindByID(ctx, "nonexistent-id")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update calibration", func(t *testing.T) {
		s := open(t)
		p := newTestProfile(t, s)

		require.NoError(t, s.UpdateCalibration(ctx, p.ID, 0.3, 0.6))

		found, err := s.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0.3, found.DeadZoneMin)
		assert.Equal(t, 0.6, found.DeadZoneMax)
		assert.False(t, found.UpdatedAt.Before(p.UpdatedAt))
	})

	t.Run("update nickname", func(t *testing.T) {
		s := open(t)
		p := newTestProfile(t, s)

		require.NoError(t, s.UpdateNickname(ctx, p.ID, "renamed"))

		found, err := s.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", found.Nickname)
	})

	t.Run("duplicate id", func(t *testing.T) {
		s := open(t)
		p := newTestProfile(t, s)
		assert.Error(t, s.Create(ctx, p))
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) ProfileStore { return NewMemoryStore() })
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := newTestProfile(t, s)

	found, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	found.Nickname = "mutated"

	again, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "tester", again.Nickname)
}
