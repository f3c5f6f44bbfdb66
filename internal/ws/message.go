package ws

import "encoding/json"

// Message is an inbound client message with type-based routing. Clients
// always send JSON text frames.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Envelope is an outbound message. Its payload is encoded by the
// connection's Codec.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Message types - Session
const (
	TypeHello        = "hello"
	TypeWatch        = "watch"
	TypeLeaveSession = "leave_session"
	TypeSession      = "session"
)

// Message types - Control
const (
	TypeDeviceStatus = "device_status"
	TypeStartGame    = "start_game"
	TypeTogglePause  = "toggle_pause"
	TypeFaceSample   = "face_sample"
	TypeCalibrate    = "calibrate"
)

// Message types - Match
const (
	TypePhase       = "phase"
	TypeFrame       = "frame"
	TypeGameOver    = "game_over"
	TypeCalibration = "calibration"
)

// Message types - System
const (
	TypeError = "error"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates an Envelope with an error payload.
func NewErrorMessage(msg string) Envelope {
	return Envelope{Type: TypeError, Data: ErrorMessage{Message: msg}}
}

// NewMessage creates an Envelope with a typed payload.
func NewMessage(msgType string, payload any) Envelope {
	return Envelope{Type: msgType, Data: payload}
}

// ParseMessage decodes an inbound text frame.
func ParseMessage(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}
