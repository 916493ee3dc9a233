package wheel

import (
	"fmt"
	"math"
	"time"
)

// State is the lifecycle phase of a session.
type State int

const (
	Idle State = iota
	Spinning
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	DefaultExtraTurns      = 5
	DefaultTickIntervalDeg = 36.0
)

// Option configures a Session.
type Option func(*Session)

// WithRandom sets the random source used for draws.
func WithRandom(r RandomSource) Option {
	return func(s *Session) { s.random = r }
}

// WithEmitter sets the event sink.
func WithEmitter(e Emitter) Option {
	return func(s *Session) { s.emitter = e }
}

// WithExtraTurns sets the number of full revolutions added to every spin.
func WithExtraTurns(n int) Option {
	return func(s *Session) { s.extraTurns = n }
}

// WithDuration sets the animation length of every spin.
func WithDuration(d time.Duration) Option {
	return func(s *Session) { s.planner.Duration = d }
}

// WithTickInterval sets the arc, in degrees, between two tick events.
func WithTickInterval(deg float64) Option {
	return func(s *Session) { s.tickInterval = deg }
}

// WithStartAngle sets the resting angle the first spin starts from.
func WithStartAngle(deg float64) Option {
	return func(s *Session) { s.resting = deg }
}

// Session drives one wheel through idle -> spinning -> settled. It is not safe
// for concurrent use; all calls are expected from a single control goroutine.
type Session struct {
	table        *Table
	planner      Planner
	random       RandomSource
	emitter      Emitter
	extraTurns   int
	tickInterval float64

	state   State
	plan    SpinPlan
	elapsed time.Duration
	resting float64
	ticks   int
}

// NewSession creates an idle session for the table.
func NewSession(t *Table, opts ...Option) (*Session, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil table", ErrConfiguration)
	}

	s := &Session{
		table:        t,
		planner:      Planner{Duration: DefaultSpinDuration},
		random:       CryptoSource{},
		emitter:      NopEmitter{},
		extraTurns:   DefaultExtraTurns,
		tickInterval: DefaultTickIntervalDeg,
	}
	for _, opt := range opts {
		opt(s)
	}

	switch {
	case s.random == nil:
		return nil, fmt.Errorf("%w: nil random source", ErrConfiguration)
	case s.emitter == nil:
		s.emitter = NopEmitter{}
	}
	if s.extraTurns < 1 {
		return nil, fmt.Errorf("%w: extra turns must be >= 1, got %d", ErrConfiguration, s.extraTurns)
	}
	if !(s.tickInterval > 0) || math.IsInf(s.tickInterval, 1) {
		return nil, fmt.Errorf("%w: tick interval %v", ErrConfiguration, s.tickInterval)
	}
	if s.planner.Duration <= 0 {
		return nil, fmt.Errorf("%w: spin duration %v", ErrConfiguration, s.planner.Duration)
	}
	if math.IsNaN(s.resting) || math.IsInf(s.resting, 0) {
		return nil, fmt.Errorf("%w: start angle %v", ErrConfiguration, s.resting)
	}

	return s, nil
}

// RequestSpin draws an outcome and starts spinning towards it.
func (s *Session) RequestSpin() (SpinPlan, error) {
	if s.state == Spinning {
		return SpinPlan{}, ErrAlreadySpinning
	}

	index, err := Select(s.table, s.random.Float64())
	if err != nil {
		return SpinPlan{}, err
	}

	plan, err := s.planner.Plan(s.table, index, s.resting, s.extraTurns)
	if err != nil {
		return SpinPlan{}, err
	}

	s.plan = plan
	s.state = Spinning
	s.elapsed = 0
	s.ticks = 0

	s.emit(func(e Emitter) { e.SpinStarted(plan) })
	return plan, nil
}

// Advance moves the spin forward by dt, emitting every tick crossed on the way
// and the settle event once the animation completes. It does nothing unless
// the session is spinning, and returns the resulting state.
func (s *Session) Advance(dt time.Duration) State {
	if s.state != Spinning {
		return s.state
	}

	if dt > 0 {
		s.elapsed += dt
	}
	if s.elapsed > s.plan.Duration {
		s.elapsed = s.plan.Duration
	}

	travelled := s.travelled()
	for float64(s.ticks+1)*s.tickInterval <= travelled {
		s.ticks++
		s.emit(func(e Emitter) { e.Tick() })
	}

	if s.elapsed >= s.plan.Duration {
		s.state = Settled
		s.resting = s.plan.FinalAngleDeg
		index := s.plan.SelectedIndex
		s.emit(func(e Emitter) { e.SpinSettled(index) })
	}

	return s.state
}

// FastForward settles an in-flight spin immediately, emitting any remaining ticks.
func (s *Session) FastForward() State {
	if s.state != Spinning {
		return s.state
	}
	return s.Advance(s.plan.Duration - s.elapsed)
}

// Reset returns a settled session to idle. The resting angle is kept so the
// next spin continues from where the wheel stopped.
func (s *Session) Reset() error {
	switch s.state {
	case Spinning:
		return ErrAlreadySpinning
	case Settled:
		s.state = Idle
		s.plan = SpinPlan{}
		s.elapsed = 0
		s.ticks = 0
	}
	return nil
}

func (s *Session) State() State {
	return s.state
}

// Plan returns the active plan; false when idle.
func (s *Session) Plan() (SpinPlan, bool) {
	if s.state == Idle {
		return SpinPlan{}, false
	}
	return s.plan, true
}

func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// Progress returns normalized animation time in [0,1].
func (s *Session) Progress() float64 {
	switch s.state {
	case Idle:
		return 0
	case Settled:
		return 1
	}
	return math.Min(float64(s.elapsed)/float64(s.plan.Duration), 1)
}

// CurrentAngle returns the visual rotation of the wheel right now.
func (s *Session) CurrentAngle() float64 {
	if s.state != Spinning {
		return s.resting
	}
	return s.plan.StartAngleDeg + s.travelled()
}

// RestingAngle returns the angle the next spin will start from.
func (s *Session) RestingAngle() float64 {
	return s.resting
}

// Ticks returns the number of tick events emitted by the current spin.
func (s *Session) Ticks() int {
	return s.ticks
}

func (s *Session) Table() *Table {
	return s.table
}

// TickInterval returns the arc, in degrees, between two tick events.
func (s *Session) TickInterval() float64 {
	return s.tickInterval
}

func (s *Session) travelled() float64 {
	return s.plan.Easing.Ease(s.Progress()) * s.plan.Delta()
}

// emit shields the state machine from subscriber panics.
func (s *Session) emit(fn func(Emitter)) {
	defer func() {
		_ = recover()
	}()
	fn(s.emitter)
}
