package feedback

import (
	"log/slog"

	"rewards_wheel/internal/wheel"
)

// Log writes debug lines for spin start and settle. Ticks are too chatty to log.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) SpinStarted(plan wheel.SpinPlan) {
	l.log.Debug("spin started",
		"selected_index", plan.SelectedIndex,
		"start_angle", plan.StartAngleDeg,
		"final_angle", plan.FinalAngleDeg,
		"duration_ms", plan.Duration.Milliseconds(),
	)
}

func (l *Log) Tick() {}

func (l *Log) SpinSettled(index int) {
	l.log.Debug("spin settled", "selected_index", index)
}
