package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/ewerall/gravsim/internal/engine"
)

// Runner drives an engine for a fixed number of steps, recording one
// frame per step and feeding metrics and observers. The engine is
// stepped synchronously; cancellation is only checked between steps.
type Runner struct {
	eng       *engine.Engine
	metrics   []Metric
	observers []Observer
}

func New(eng *engine.Engine) *Runner {
	return &Runner{eng: eng}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Engine exposes the driven engine, e.g. for parameter changes between
// steps.
func (r *Runner) Engine() *engine.Engine { return r.eng }

func (r *Runner) Run(ctx context.Context, steps int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}

	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Snapshot(r.eng.Bodies(), t))
	initialEnergy := r.eng.TotalEnergy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		bodies := r.eng.Bodies()
		for _, m := range r.metrics {
			m.Observe(bodies, t)
		}
		for _, o := range r.observers {
			o.OnStep(bodies, t)
		}

		r.eng.Step()
		t += r.eng.Dt()
		result.StepsTaken++

		result.Frames = append(result.Frames, Snapshot(r.eng.Bodies(), t))
	}

	finalEnergy := r.eng.TotalEnergy()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
