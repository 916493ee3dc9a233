package wheel

import "errors"

var (
	// ErrConfiguration is returned for an unusable outcome table or spin setting.
	ErrConfiguration = errors.New("invalid wheel configuration")
	// ErrInvalidDraw is returned when the random source yields a value outside [0,1).
	ErrInvalidDraw = errors.New("random draw out of range")
	// ErrAlreadySpinning rejects a transition that is not allowed while a spin is in flight.
	ErrAlreadySpinning = errors.New("wheel is already spinning")
)
