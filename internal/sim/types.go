package sim

import "github.com/ewerall/gravsim/internal/engine"

// Metric accumulates a scalar over the course of a run.
type Metric interface {
	Name() string
	Observe(bodies []*engine.Body, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(bodies []*engine.Body, t float64)
}

// BodyState is a value snapshot of one body at one instant.
type BodyState struct {
	ID     uint64
	X, Y   float64
	VX, VY float64
	Mass   float64
	Radius float64
	Active bool
}

// Frame is the recorded state of the whole simulation at one time.
type Frame struct {
	Time   float64
	Bodies []BodyState
}

// Snapshot captures the current body states in iteration order.
func Snapshot(bodies []*engine.Body, t float64) Frame {
	f := Frame{Time: t, Bodies: make([]BodyState, len(bodies))}
	for i, b := range bodies {
		f.Bodies[i] = BodyState{
			ID:     b.ID,
			X:      b.Pos.X,
			Y:      b.Pos.Y,
			VX:     b.Vel.X,
			VY:     b.Vel.Y,
			Mass:   b.Mass,
			Radius: b.Radius,
			Active: b.Active,
		}
	}
	return f
}

// Result holds everything a finished run produced.
type Result struct {
	Frames      []Frame
	Metrics     map[string]float64
	StepsTaken  int
	EnergyDrift float64
}
