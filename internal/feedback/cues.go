package feedback

// Ramp is how an audio parameter moves to a step's value.
type Ramp string

const (
	RampSet         Ramp = "set"
	RampLinear      Ramp = "linear"
	RampExponential Ramp = "exponential"
)

// Step schedules a parameter value At seconds after the cue starts.
type Step struct {
	At    float64 `json:"at"`
	Value float64 `json:"value"`
	Ramp  Ramp    `json:"ramp"`
}

// Cue is a short synthesized tone the browser plays with an oscillator and a
// gain node. Nothing is rendered server side.
type Cue struct {
	Name      string  `json:"name"`
	Wave      string  `json:"wave"`
	Frequency []Step  `json:"frequency"`
	Gain      []Step  `json:"gain"`
	Duration  float64 `json:"duration"`
}

var (
	// StartCue is a short falling thump played when the wheel is released.
	StartCue = Cue{
		Name: "spin_start",
		Wave: "sine",
		Frequency: []Step{
			{At: 0, Value: 180, Ramp: RampSet},
			{At: 0.15, Value: 120, Ramp: RampExponential},
		},
		Gain: []Step{
			{At: 0, Value: 0.15, Ramp: RampSet},
			{At: 0.2, Value: 0.01, Ramp: RampExponential},
		},
		Duration: 0.2,
	}

	// TickCue is the click of the pointer passing a peg.
	TickCue = Cue{
		Name: "tick",
		Wave: "sine",
		Frequency: []Step{
			{At: 0, Value: 220, Ramp: RampSet},
		},
		Gain: []Step{
			{At: 0, Value: 0.06, Ramp: RampSet},
			{At: 0.06, Value: 0.001, Ramp: RampExponential},
		},
		Duration: 0.06,
	}

	// SettleCue is the rising chime played when the prize is decided.
	SettleCue = Cue{
		Name: "spin_settle",
		Wave: "sine",
		Frequency: []Step{
			{At: 0, Value: 400, Ramp: RampSet},
			{At: 0.1, Value: 800, Ramp: RampExponential},
			{At: 0.15, Value: 800, Ramp: RampSet},
			{At: 0.35, Value: 600, Ramp: RampExponential},
		},
		Gain: []Step{
			{At: 0, Value: 0, Ramp: RampSet},
			{At: 0.05, Value: 0.2, Ramp: RampLinear},
			{At: 0.4, Value: 0.01, Ramp: RampExponential},
		},
		Duration: 0.4,
	}
)

// Cues returns every cue keyed by name, for clients that preload them.
func Cues() map[string]Cue {
	return map[string]Cue{
		StartCue.Name:  StartCue,
		TickCue.Name:   TickCue,
		SettleCue.Name: SettleCue,
	}
}
