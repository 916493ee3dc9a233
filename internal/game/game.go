package game

import (
	"time"

	"rewards_wheel/internal/wheel"
)

// Settings are the presentation constants shared by every wheel.
type Settings struct {
	SpinDuration    time.Duration
	ExtraTurns      int
	TickIntervalDeg float64
}

// DefaultSettings returns the stock spin feel: 4 s, 5 extra turns, a tick every 36 degrees.
func DefaultSettings() Settings {
	return Settings{
		SpinDuration:    wheel.DefaultSpinDuration,
		ExtraTurns:      wheel.DefaultExtraTurns,
		TickIntervalDeg: wheel.DefaultTickIntervalDeg,
	}
}

func (s Settings) options() []wheel.Option {
	return []wheel.Option{
		wheel.WithDuration(s.SpinDuration),
		wheel.WithExtraTurns(s.ExtraTurns),
		wheel.WithTickInterval(s.TickIntervalDeg),
	}
}
