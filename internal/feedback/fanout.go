package feedback

import (
	"log/slog"
	"sync"

	"rewards_wheel/internal/logger"
	"rewards_wheel/internal/wheel"
)

// Fanout forwards every event to all subscribers. A subscriber that panics is
// logged and skipped; the rest still receive the event.
type Fanout struct {
	mu          sync.RWMutex
	subscribers []wheel.Emitter
	log         *slog.Logger
}

// NewFanout creates a fan-out emitter. A nil logger uses the default one.
func NewFanout(log *slog.Logger, subscribers ...wheel.Emitter) *Fanout {
	if log == nil {
		log = logger.Get()
	}
	return &Fanout{subscribers: subscribers, log: log}
}

// Add registers another subscriber.
func (f *Fanout) Add(e wheel.Emitter) {
	f.mu.Lock()
	f.subscribers = append(f.subscribers, e)
	f.mu.Unlock()
}

func (f *Fanout) SpinStarted(plan wheel.SpinPlan) {
	f.each("spin_started", func(e wheel.Emitter) { e.SpinStarted(plan) })
}

func (f *Fanout) Tick() {
	f.each("tick", func(e wheel.Emitter) { e.Tick() })
}

func (f *Fanout) SpinSettled(index int) {
	f.each("spin_settled", func(e wheel.Emitter) { e.SpinSettled(index) })
}

func (f *Fanout) each(event string, fn func(wheel.Emitter)) {
	f.mu.RLock()
	subs := f.subscribers
	f.mu.RUnlock()

	for i, e := range subs {
		f.call(event, i, e, fn)
	}
}

func (f *Fanout) call(event string, i int, e wheel.Emitter, fn func(wheel.Emitter)) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Warn("feedback subscriber failed", "event", event, "subscriber", i, "panic", r)
		}
	}()
	fn(e)
}
