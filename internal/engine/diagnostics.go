package engine

import "math"

// ActiveCount returns the number of bodies participating in physics.
func (e *Engine) ActiveCount() int {
	n := 0
	for _, b := range e.bodies {
		if b.Active {
			n++
		}
	}
	return n
}

// TotalEnergy returns kinetic plus softened pairwise potential energy
// over the active bodies.
func (e *Engine) TotalEnergy() float64 {
	ke := 0.0
	pe := 0.0
	eps2 := e.Softening * e.Softening

	for i, a := range e.bodies {
		if !a.Active {
			continue
		}
		ke += a.KineticEnergy()

		for _, b := range e.bodies[i+1:] {
			if !b.Active {
				continue
			}
			r := math.Sqrt(b.Pos.Sub(a.Pos).LengthSq() + eps2)
			pe -= e.g * a.Mass * b.Mass / r
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum of the active bodies.
func (e *Engine) Momentum() Vec2 {
	var p Vec2
	for _, b := range e.bodies {
		if b.Active {
			p = p.Add(b.Vel.Scale(b.Mass))
		}
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (e *Engine) AngularMomentum() float64 {
	l := 0.0
	for _, b := range e.bodies {
		if b.Active {
			l += b.Mass * b.Pos.Cross(b.Vel)
		}
	}
	return l
}
