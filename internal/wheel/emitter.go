package wheel

// Emitter receives spin lifecycle notifications. Calls are fire-and-forget:
// the session never waits on or inspects a subscriber.
type Emitter interface {
	SpinStarted(plan SpinPlan)
	Tick()
	SpinSettled(index int)
}

// NopEmitter discards every event.
type NopEmitter struct{}

func (NopEmitter) SpinStarted(SpinPlan) {}
func (NopEmitter) Tick()                {}
func (NopEmitter) SpinSettled(int)      {}
