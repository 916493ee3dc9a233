package ws

const (
	// client - server
	MsgSpin  = "spin"
	MsgReset = "reset"
	MsgPing  = "ping"

	// server - client
	MsgReady       = "ready"
	MsgSpinStarted = "spin_started"
	MsgTick        = "tick"
	MsgSpinSettled = "spin_settled"
	MsgPong        = "pong"
	MsgError       = "error"
)
