package ws

import (
	"rewards_wheel/internal/feedback"
	"rewards_wheel/internal/wheel"
)

// clientEmitter turns session events into messages for one connection. It
// runs on the client's loop goroutine, inside Session calls.
type clientEmitter struct {
	c *Client
}

func (e clientEmitter) SpinStarted(plan wheel.SpinPlan) {
	e.c.send(MsgSpinStarted, SpinStartedPayload{Plan: plan, Cue: feedback.StartCue.Name})
}

func (e clientEmitter) Tick() {
	s := e.c.session
	plan, _ := s.Plan()
	count := s.Ticks()
	e.c.send(MsgTick, TickPayload{
		Count: count,
		Angle: plan.StartAngleDeg + float64(count)*s.TickInterval(),
		Cue:   feedback.TickCue.Name,
	})
}

func (e clientEmitter) SpinSettled(index int) {
	payload := SpinSettledPayload{
		Index: index,
		Angle: e.c.session.RestingAngle(),
		Cue:   feedback.SettleCue.Name,
	}
	if p, ok := e.c.catalog.Prize(index); ok {
		payload.Label = p.Label
		payload.Color = p.Color
	}
	e.c.send(MsgSpinSettled, payload)
}
