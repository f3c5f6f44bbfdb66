package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/facepong-server/internal/game"
)

func TestManager_CreateGetRemove(t *testing.T) {
	m := NewManager(fastSettings(), WithScheduler(&queueScheduler{}))

	s, err := m.Create(0.3, 0.7)
	require.NoError(t, err)
	assert.Len(t, s.Code, codeLength)
	assert.Equal(t, Calibration{Min: 0.3, Max: 0.7}, s.Calibration())
	assert.Equal(t, 1, m.Count())

	assert.Same(t, s, m.Get(s.Code))
	assert.Same(t, s, m.Get(strings.ToLower(s.Code)), "codes are case-insensitive")
	assert.Nil(t, m.Get("ZZZZZ"))

	require.NoError(t, s.MarkReady())
	require.NoError(t, s.Start())

	m.Remove(s.Code)
	assert.Equal(t, 0, m.Count())
	assert.Nil(t, m.Get(s.Code))
	assert.ErrorIs(t, s.Start(), game.ErrClosed, "removed session is closed")
}

func TestManager_CreateRejectsBadWindow(t *testing.T) {
	m := NewManager(fastSettings())
	_, err := m.Create(0.9, 0.1)
	assert.ErrorIs(t, err, game.ErrInvalidSettings)
	assert.Equal(t, 0, m.Count())
}

func TestManager_CloseAll(t *testing.T) {
	m := NewManager(fastSettings(), WithScheduler(&queueScheduler{}))
	var sessions []*Session
	for i := 0; i < 3; i++ {
		s, err := m.Create(game.DeadZoneMin, game.DeadZoneMax)
		require.NoError(t, err)
		sessions = append(sessions, s)
	}

	m.CloseAll()
	assert.Equal(t, 0, m.Count())
	for _, s := range sessions {
		assert.ErrorIs(t, s.MarkReady(), game.ErrClosed)
	}
}

func TestGenerateCode(t *testing.T) {
	code := GenerateCode(map[string]bool{})
	assert.Len(t, code, codeLength)
	for _, r := range code {
		assert.Contains(t, string(letters), string(r))
	}
	assert.NotContains(t, code, "I")
	assert.NotContains(t, code, "O")
}

func TestGenerateCode_AvoidsExisting(t *testing.T) {
	existing := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := GenerateCode(existing)
		assert.False(t, existing[code], "duplicate code %s", code)
		existing[code] = true
	}
}
