package handler

import (
	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/session"
	"github.com/ugaemi/facepong-server/internal/ws"
)

// clientViewer forwards session output to one websocket client.
type clientViewer struct {
	client *ws.Client
}

type gameOverMessage struct {
	Winner game.Side  `json:"winner"`
	Score  game.Score `json:"score"`
}

func (v clientViewer) Render(f game.Frame) {
	v.client.SendMessage(ws.NewMessage(ws.TypeFrame, f))
}

func (v clientViewer) PhaseChanged(ev session.PhaseEvent) {
	v.client.SendMessage(ws.NewMessage(ws.TypePhase, ev))
	if ev.Phase == game.PhaseGameOver {
		v.client.SendMessage(ws.NewMessage(ws.TypeGameOver, gameOverMessage{
			Winner: ev.Winner,
			Score:  ev.Score,
		}))
	}
}
