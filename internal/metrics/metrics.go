package metrics

import (
	"math"

	"github.com/ewerall/gravsim/internal/engine"
)

// system diagnostics shared by the metrics below.

func totalEnergy(bodies []*engine.Body, g, softening float64) float64 {
	ke := 0.0
	pe := 0.0
	eps2 := softening * softening

	for i, a := range bodies {
		if !a.Active {
			continue
		}
		ke += a.KineticEnergy()
		for _, b := range bodies[i+1:] {
			if !b.Active {
				continue
			}
			r := math.Sqrt(b.Pos.Sub(a.Pos).LengthSq() + eps2)
			pe -= g * a.Mass * b.Mass / r
		}
	}
	return ke + pe
}

// Energy reports the mean total energy observed over a run.
type Energy struct {
	g         float64
	softening float64
	samples   int
	total     float64
}

func NewEnergy(g, softening float64) *Energy {
	return &Energy{g: g, softening: softening}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(bodies []*engine.Body, t float64) {
	e.total += totalEnergy(bodies, e.g, e.softening)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift reports the maximum relative deviation from the first
// observed total energy. Merges discard kinetic energy, so a run with
// collisions legitimately shows drift.
type EnergyDrift struct {
	g         float64
	softening float64
	initial   float64
	maxDrift  float64
	samples   int
}

func NewEnergyDrift(g, softening float64) *EnergyDrift {
	return &EnergyDrift{g: g, softening: softening}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(bodies []*engine.Body, t float64) {
	energy := totalEnergy(bodies, e.g, e.softening)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Momentum reports the magnitude of the most recently observed total
// linear momentum.
type Momentum struct {
	last float64
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(bodies []*engine.Body, t float64) {
	var px, py float64
	for _, b := range bodies {
		if b.Active {
			px += b.Mass * b.Vel.X
			py += b.Mass * b.Vel.Y
		}
	}
	m.last = math.Sqrt(px*px + py*py)
}

func (m *Momentum) Value() float64 { return m.last }
func (m *Momentum) Reset()         { m.last = 0 }

// ActiveBodies reports the most recently observed active body count.
type ActiveBodies struct {
	last int
}

func NewActiveBodies() *ActiveBodies { return &ActiveBodies{} }

func (a *ActiveBodies) Name() string { return "active_bodies" }

func (a *ActiveBodies) Observe(bodies []*engine.Body, t float64) {
	n := 0
	for _, b := range bodies {
		if b.Active {
			n++
		}
	}
	a.last = n
}

func (a *ActiveBodies) Value() float64 { return float64(a.last) }
func (a *ActiveBodies) Reset()         { a.last = 0 }
