package wheel

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

type recorder struct {
	started []SpinPlan
	ticks   int
	settled []int
}

func (r *recorder) SpinStarted(plan SpinPlan) { r.started = append(r.started, plan) }
func (r *recorder) Tick()                     { r.ticks++ }
func (r *recorder) SpinSettled(index int)     { r.settled = append(r.settled, index) }

type panicky struct{}

func (panicky) SpinStarted(SpinPlan) { panic("start") }
func (panicky) Tick()                { panic("tick") }
func (panicky) SpinSettled(int)      { panic("settle") }

func fixedDraw(v float64) RandomSource {
	return RandomFunc(func() float64 { return v })
}

func newTestSession(t *testing.T, draw RandomSource, em Emitter, opts ...Option) *Session {
	t.Helper()
	table, err := NewTable([]Segment{{Label: "A", Weight: 1}, {Label: "B", Weight: 3}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	opts = append([]Option{WithRandom(draw), WithEmitter(em), WithDuration(4 * time.Second)}, opts...)
	s, err := NewSession(table, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionLifecycle(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, fixedDraw(0.1), rec, WithExtraTurns(1))

	if s.State() != Idle {
		t.Fatalf("new session state = %v; want idle", s.State())
	}
	if _, ok := s.Plan(); ok {
		t.Fatalf("idle session should have no plan")
	}

	plan, err := s.RequestSpin()
	if err != nil {
		t.Fatalf("RequestSpin: %v", err)
	}
	if plan.SelectedIndex != 0 || plan.TargetDeg != 45 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if s.State() != Spinning || len(rec.started) != 1 {
		t.Fatalf("expected spinning with one start event, got %v / %d", s.State(), len(rec.started))
	}

	if st := s.Advance(2 * time.Second); st != Spinning {
		t.Fatalf("state after half the duration = %v", st)
	}
	if len(rec.settled) != 0 {
		t.Fatalf("settled too early")
	}

	if st := s.Advance(2 * time.Second); st != Settled {
		t.Fatalf("state after full duration = %v", st)
	}
	if len(rec.settled) != 1 || rec.settled[0] != 0 {
		t.Fatalf("settle events = %v; want [0]", rec.settled)
	}
	if s.Progress() != 1 {
		t.Fatalf("progress = %v; want 1", s.Progress())
	}
	if s.CurrentAngle() != plan.FinalAngleDeg {
		t.Fatalf("resting angle %v; want %v", s.CurrentAngle(), plan.FinalAngleDeg)
	}

	// further advances are no-ops
	s.Advance(time.Second)
	if len(rec.settled) != 1 {
		t.Fatalf("settle emitted more than once")
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.State() != Idle {
		t.Fatalf("state after reset = %v", s.State())
	}
	if s.RestingAngle() != plan.FinalAngleDeg {
		t.Fatalf("reset lost the resting angle: %v", s.RestingAngle())
	}
}

func TestSessionRejectsReentrantSpin(t *testing.T) {
	s := newTestSession(t, fixedDraw(0.9), &recorder{})

	first, err := s.RequestSpin()
	if err != nil {
		t.Fatalf("RequestSpin: %v", err)
	}
	s.Advance(500 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if _, err := s.RequestSpin(); !errors.Is(err, ErrAlreadySpinning) {
			t.Fatalf("expected ErrAlreadySpinning, got %v", err)
		}
	}
	if err := s.Reset(); !errors.Is(err, ErrAlreadySpinning) {
		t.Fatalf("Reset while spinning: expected ErrAlreadySpinning, got %v", err)
	}

	current, ok := s.Plan()
	if !ok || current != first {
		t.Fatalf("plan changed: %+v vs %+v", current, first)
	}
	if s.Elapsed() != 500*time.Millisecond {
		t.Fatalf("elapsed changed: %v", s.Elapsed())
	}
}

func TestSessionTickCompleteness(t *testing.T) {
	coarse := &recorder{}
	s1 := newTestSession(t, fixedDraw(0.6), coarse)
	plan, _ := s1.RequestSpin()
	s1.Advance(plan.Duration)

	fine := &recorder{}
	s2 := newTestSession(t, fixedDraw(0.6), fine)
	s2.RequestSpin()
	for s2.State() == Spinning {
		s2.Advance(16 * time.Millisecond)
	}

	want := int(plan.Delta() / DefaultTickIntervalDeg)
	if coarse.ticks != want {
		t.Fatalf("single step emitted %d ticks; want %d", coarse.ticks, want)
	}
	if fine.ticks != coarse.ticks {
		t.Fatalf("small steps emitted %d ticks, single step %d", fine.ticks, coarse.ticks)
	}
	if s1.Ticks() != want || s2.Ticks() != want {
		t.Fatalf("Ticks() = %d/%d; want %d", s1.Ticks(), s2.Ticks(), want)
	}
}

func TestSessionTickInterval(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, fixedDraw(0.1), rec, WithTickInterval(90), WithExtraTurns(2))

	plan, _ := s.RequestSpin()
	// 45 + 720 degrees of travel
	if plan.Delta() != 765 {
		t.Fatalf("delta = %v; want 765", plan.Delta())
	}
	s.FastForward()
	if rec.ticks != 8 {
		t.Fatalf("ticks = %d; want 8", rec.ticks)
	}
}

func TestSessionAngleIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := newTestSession(t, rng, &recorder{})

	last := s.CurrentAngle()
	prevFinal := last
	for spin := 0; spin < 50; spin++ {
		plan, err := s.RequestSpin()
		if err != nil {
			t.Fatalf("spin %d: %v", spin, err)
		}
		if plan.FinalAngleDeg <= prevFinal {
			t.Fatalf("spin %d final angle %v not above previous %v", spin, plan.FinalAngleDeg, prevFinal)
		}
		prevFinal = plan.FinalAngleDeg

		for s.State() == Spinning {
			s.Advance(33 * time.Millisecond)
			angle := s.CurrentAngle()
			if angle < last {
				t.Fatalf("spin %d rotated backwards: %v -> %v", spin, last, angle)
			}
			last = angle
		}
		if spin%2 == 0 {
			if err := s.Reset(); err != nil {
				t.Fatalf("Reset: %v", err)
			}
		}
	}
}

func TestSessionDeterministicReplay(t *testing.T) {
	run := func() []SpinPlan {
		s := newTestSession(t, NewSeededSource("server", "client", 7), &recorder{})
		var plans []SpinPlan
		for i := 0; i < 10; i++ {
			plan, err := s.RequestSpin()
			if err != nil {
				t.Fatalf("RequestSpin: %v", err)
			}
			plans = append(plans, plan)
			s.FastForward()
		}
		return plans
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("spin %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSessionInvalidDrawLeavesStateUntouched(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, fixedDraw(1.0), rec)

	if _, err := s.RequestSpin(); !errors.Is(err, ErrInvalidDraw) {
		t.Fatalf("expected ErrInvalidDraw, got %v", err)
	}
	if s.State() != Idle || len(rec.started) != 0 {
		t.Fatalf("state changed on invalid draw: %v", s.State())
	}
}

func TestSessionSurvivesPanickingEmitter(t *testing.T) {
	s := newTestSession(t, fixedDraw(0.3), panicky{})

	if _, err := s.RequestSpin(); err != nil {
		t.Fatalf("RequestSpin: %v", err)
	}
	if st := s.FastForward(); st != Settled {
		t.Fatalf("state = %v; want settled", st)
	}
	if s.Ticks() == 0 {
		t.Fatalf("ticks were not counted")
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
}

func TestSessionSpinFromSettled(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, fixedDraw(0.5), rec)

	first, _ := s.RequestSpin()
	s.FastForward()

	second, err := s.RequestSpin()
	if err != nil {
		t.Fatalf("RequestSpin from settled: %v", err)
	}
	if second.StartAngleDeg != first.FinalAngleDeg {
		t.Fatalf("second spin starts at %v; want %v", second.StartAngleDeg, first.FinalAngleDeg)
	}
	if s.Ticks() != 0 || s.Elapsed() != 0 {
		t.Fatalf("counters not reset for new spin")
	}
}

func TestNewSessionValidatesOptions(t *testing.T) {
	table, _ := NewTable(Uniform("a", "b"))

	cases := []struct {
		name string
		opt  Option
	}{
		{"zero extra turns", WithExtraTurns(0)},
		{"zero tick interval", WithTickInterval(0)},
		{"negative duration", WithDuration(-time.Second)},
		{"nil random", WithRandom(nil)},
	}
	for _, tc := range cases {
		if _, err := NewSession(table, tc.opt); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration, got %v", tc.name, err)
		}
	}

	if _, err := NewSession(nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nil table: expected ErrConfiguration, got %v", err)
	}
}
