package game

import "encoding/json"

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseMenu
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes Phase as a string.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// MarshalText lets non-JSON codecs write Phase as a string too.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON deserializes Phase from a string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "menu":
		*p = PhaseMenu
	case "playing":
		*p = PhasePlaying
	case "paused":
		*p = PhasePaused
	case "gameover":
		*p = PhaseGameOver
	default:
		*p = PhaseLoading
	}
	return nil
}

// Side identifies a paddle owner. It doubles as the scorer and the winner.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideAI
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "Player"
	case SideAI:
		return "AI"
	default:
		return "none"
	}
}

// MarshalJSON serializes Side as a string.
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes Side from a string.
func (s *Side) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v {
	case "Player":
		*s = SidePlayer
	case "AI":
		*s = SideAI
	default:
		*s = SideNone
	}
	return nil
}

// MarshalText serializes Side as a string.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Score is the running tally of a match.
type Score struct {
	Player int `json:"player"`
	AI     int `json:"ai"`
}

// Of returns the points held by side.
func (s Score) Of(side Side) int {
	switch side {
	case SidePlayer:
		return s.Player
	case SideAI:
		return s.AI
	}
	return 0
}
