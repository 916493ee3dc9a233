package ws

import "rewards_wheel/internal/wheel"

// Envelope wraps every server message
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// client → server
type CommandPayload struct {
	Type string `json:"type"` // spin | reset | ping
}

// server → client
type ReadyPayload struct {
	SessionID string  `json:"session_id"`
	Wheel     string  `json:"wheel"`
	Angle     float64 `json:"angle"`
	State     string  `json:"state"`
}

type SpinStartedPayload struct {
	Plan wheel.SpinPlan `json:"plan"`
	Cue  string         `json:"cue"`
}

type TickPayload struct {
	Count int     `json:"count"`
	Angle float64 `json:"angle"`
	Cue   string  `json:"cue"`
}

type SpinSettledPayload struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"`
	Angle float64 `json:"angle"`
	Cue   string  `json:"cue"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
