package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/profile"
	"github.com/ugaemi/facepong-server/internal/session"
	"github.com/ugaemi/facepong-server/internal/store"
	"github.com/ugaemi/facepong-server/internal/ws"
)

// idleScheduler never fires, so the ball stays on its spot until a test moves it.
type idleScheduler struct{}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (idleScheduler) AfterFunc(time.Duration, func()) game.Timer { return idleTimer{} }

// failingStore implements store.ProfileStore with every call failing.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) FindByID(context.Context, string) (*profile.Profile, error) {
	return nil, errStoreDown
}
func (failingStore) Create(context.Context, *profile.Profile) error { return errStoreDown }
func (failingStore) UpdateCalibration(context.Context, string, float64, float64) error {
	return errStoreDown
}
func (failingStore) UpdateNickname(context.Context, string, string) error { return errStoreDown }
func (failingStore) Close() error                                         { return nil }

type sentMessage struct {
	Type string
	Data json.RawMessage
}

func newTestClient(id string) (*ws.Client, chan sentMessage) {
	ch := make(chan sentMessage, 1024)
	client := &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}

	// Read sent messages in background
	go func() {
		for data := range client.Send {
			var msg sentMessage
			json.Unmarshal(data, &msg)
			ch <- msg
		}
	}()

	return client, ch
}

func setupRouter(t *testing.T, profiles store.ProfileStore) (*Router, *session.Manager) {
	t.Helper()
	s := game.DefaultSettings()
	s.TickRate = 500
	sm := session.NewManager(s, session.WithScheduler(idleScheduler{}))
	t.Cleanup(sm.CloseAll)
	return NewRouter(sm, profiles), sm
}

func send(t *testing.T, r *Router, client *ws.Client, msgType string, payload any) {
	t.Helper()
	env := map[string]any{"type": msgType}
	if payload != nil {
		env["data"] = payload
	}
	data, err := json.Marshal(env)
	require.NoError(t, err)
	r.HandleMessage(&ws.ClientMessage{Client: client, Data: data})
}

// readType returns the next message of msgType, skipping frames and anything
// else sent in between.
func readType(t *testing.T, ch chan sentMessage, msgType string) sentMessage {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s", msgType)
			return sentMessage{}
		}
	}
}

func decode[T any](t *testing.T, msg sentMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Data, &v))
	return v
}

type sessionReply struct {
	Session struct {
		Code        string              `json:"code"`
		Phase       string              `json:"phase"`
		Calibration session.Calibration `json:"calibration"`
	} `json:"session"`
	Role      string `json:"role"`
	ProfileID string `json:"profile_id"`
	Nickname  string `json:"nickname"`
}

type phaseReply struct {
	Phase  string     `json:"phase"`
	Status string     `json:"status"`
	Score  game.Score `json:"score"`
	Winner string     `json:"winner"`
}

type errorReply struct {
	Message string `json:"message"`
}

// hello opens a controller session and drains the reply.
func hello(t *testing.T, r *Router, client *ws.Client, ch chan sentMessage, payload any) sessionReply {
	t.Helper()
	send(t, r, client, ws.TypeHello, payload)
	return decode[sessionReply](t, readType(t, ch, ws.TypeSession))
}

// playing brings a controller session to Playing.
func playing(t *testing.T, r *Router, client *ws.Client, ch chan sentMessage) sessionReply {
	t.Helper()
	reply := hello(t, r, client, ch, nil)
	send(t, r, client, ws.TypeDeviceStatus, map[string]any{"camera_ready": true, "model_ready": true})
	require.Equal(t, "menu", decode[phaseReply](t, readType(t, ch, ws.TypePhase)).Phase)
	send(t, r, client, ws.TypeStartGame, nil)
	require.Equal(t, "playing", decode[phaseReply](t, readType(t, ch, ws.TypePhase)).Phase)
	return reply
}
