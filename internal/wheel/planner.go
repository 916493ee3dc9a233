package wheel

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// DefaultSpinDuration is the animation length of a single spin.
const DefaultSpinDuration = 4000 * time.Millisecond

// SpinPlan is the immutable result of resolving one spin.
type SpinPlan struct {
	SelectedIndex int           `json:"selected_index"`
	StartAngleDeg float64       `json:"start_angle_deg"`
	TargetDeg     float64       `json:"target_deg"`
	FinalAngleDeg float64       `json:"final_angle_deg"`
	ExtraTurns    int           `json:"extra_turns"`
	Duration      time.Duration `json:"-"`
	Easing        CubicBezier   `json:"easing"`
}

// Delta returns the total rotation of the spin in degrees.
func (p SpinPlan) Delta() float64 {
	return p.FinalAngleDeg - p.StartAngleDeg
}

// MarshalJSON adds the duration in milliseconds, which is what animation code consumes.
func (p SpinPlan) MarshalJSON() ([]byte, error) {
	type plan SpinPlan
	return json.Marshal(struct {
		plan
		DurationMs int64 `json:"duration_ms"`
	}{plan: plan(p), DurationMs: p.Duration.Milliseconds()})
}

// Planner turns a selected segment into a rotation target.
type Planner struct {
	Duration time.Duration
}

// Plan computes the rotation that brings the wheel from previousAngleDeg to
// the midpoint of the selected segment after extraTurns full revolutions.
// The result depends only on its inputs.
func (p Planner) Plan(t *Table, index int, previousAngleDeg float64, extraTurns int) (SpinPlan, error) {
	if extraTurns < 1 {
		return SpinPlan{}, fmt.Errorf("%w: extra turns must be >= 1, got %d", ErrConfiguration, extraTurns)
	}
	if math.IsNaN(previousAngleDeg) || math.IsInf(previousAngleDeg, 0) {
		return SpinPlan{}, fmt.Errorf("%w: previous angle %v", ErrConfiguration, previousAngleDeg)
	}

	start, end, err := t.RangeOf(index)
	if err != nil {
		return SpinPlan{}, err
	}
	target := (start + end) / 2

	delta := math.Mod(math.Mod(target-previousAngleDeg, FullTurn)+FullTurn, FullTurn)
	delta += float64(extraTurns) * FullTurn

	duration := p.Duration
	if duration <= 0 {
		duration = DefaultSpinDuration
	}

	return SpinPlan{
		SelectedIndex: index,
		StartAngleDeg: previousAngleDeg,
		TargetDeg:     target,
		FinalAngleDeg: previousAngleDeg + delta,
		ExtraTurns:    extraTurns,
		Duration:      duration,
		Easing:        SpinEasing,
	}, nil
}
