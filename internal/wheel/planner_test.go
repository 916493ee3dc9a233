package wheel

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestPlanLandsOnSegmentMidpoint(t *testing.T) {
	table, _ := NewTable([]Segment{{Label: "A", Weight: 1}, {Label: "B", Weight: 3}})

	idx, err := Select(table, 0.1)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if idx != 0 {
		t.Fatalf("expected A (0), got %d", idx)
	}

	plan, err := Planner{Duration: 4 * time.Second}.Plan(table, idx, 0, 1)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.TargetDeg != 45 {
		t.Fatalf("target = %v; want 45", plan.TargetDeg)
	}
	if plan.FinalAngleDeg != 405 {
		t.Fatalf("final angle = %v; want 405", plan.FinalAngleDeg)
	}
	if plan.Easing != SpinEasing {
		t.Fatalf("unexpected easing %+v", plan.Easing)
	}
}

func TestPlanFromPreviousAngle(t *testing.T) {
	table, _ := NewTable(Uniform("a", "b", "c", "d"))

	cases := []struct {
		name       string
		index      int
		previous   float64
		extraTurns int
		wantFinal  float64
	}{
		{"ahead of target", 0, 10, 1, 10 + 35 + 360},
		{"behind target", 0, 100, 2, 100 + 305 + 720},
		{"already on target", 2, 225, 1, 225 + 360},
		{"many turns in", 3, 3600 + 315, 3, 3600 + 315 + 1080},
		{"negative start", 1, -45, 1, -45 + 180 + 360},
	}

	for _, tc := range cases {
		plan, err := Planner{}.Plan(table, tc.index, tc.previous, tc.extraTurns)
		if err != nil {
			t.Fatalf("%s: Plan: %v", tc.name, err)
		}
		if math.Abs(plan.FinalAngleDeg-tc.wantFinal) > 1e-9 {
			t.Errorf("%s: final = %v; want %v", tc.name, plan.FinalAngleDeg, tc.wantFinal)
		}
		landed := math.Mod(plan.FinalAngleDeg, FullTurn)
		if landed < 0 {
			landed += FullTurn
		}
		if math.Abs(landed-plan.TargetDeg) > 1e-9 {
			t.Errorf("%s: landed at %v; want %v", tc.name, landed, plan.TargetDeg)
		}
		if plan.Duration != DefaultSpinDuration {
			t.Errorf("%s: duration = %v; want default", tc.name, plan.Duration)
		}
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	table, _ := NewTable([]Segment{{Label: "x", Weight: 0.3}, {Label: "y", Weight: 1.7}, {Label: "z", Weight: 2}})
	planner := Planner{Duration: 3500 * time.Millisecond}

	first, err := planner.Plan(table, 1, 1234.5678, 4)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, _ := planner.Plan(table, 1, 1234.5678, 4)
		if math.Float64bits(again.FinalAngleDeg) != math.Float64bits(first.FinalAngleDeg) || again.Duration != first.Duration {
			t.Fatalf("replay %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestPlanRejectsBadInput(t *testing.T) {
	table, _ := NewTable(Uniform("a", "b"))

	if _, err := (Planner{}).Plan(table, 0, 0, 0); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero extra turns: expected ErrConfiguration, got %v", err)
	}
	if _, err := (Planner{}).Plan(table, 5, 0, 1); !errors.Is(err, ErrConfiguration) {
		t.Errorf("bad index: expected ErrConfiguration, got %v", err)
	}
	if _, err := (Planner{}).Plan(table, 0, math.NaN(), 1); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nan angle: expected ErrConfiguration, got %v", err)
	}
}

func TestSpinPlanJSON(t *testing.T) {
	table, _ := NewTable(Uniform("a", "b"))
	plan, _ := Planner{Duration: 4 * time.Second}.Plan(table, 1, 0, 1)

	b, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["duration_ms"] != float64(4000) {
		t.Errorf("duration_ms = %v; want 4000", got["duration_ms"])
	}
	if got["selected_index"] != float64(1) {
		t.Errorf("selected_index = %v; want 1", got["selected_index"])
	}
	if _, ok := got["easing"].(map[string]any); !ok {
		t.Errorf("expected easing object, got %T", got["easing"])
	}
}
