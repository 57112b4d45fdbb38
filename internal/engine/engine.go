package engine

import "math"

const (
	// DefaultSoftening is the Plummer softening length applied to the
	// pairwise force denominator.
	DefaultSoftening = 0.1

	// boundaryDamping is the speed retained after a boundary bounce.
	boundaryDamping = 0.8
)

// Engine owns the body collection and the tunable simulation constants.
// It is single-threaded: Step runs to completion synchronously and must
// not race with Add/Remove/SetG/SetDt on the same instance.
type Engine struct {
	// Softening bounds the force magnitude at small separations. Fixed
	// at construction time; not meant to change between steps.
	Softening float64

	// Width and Height are the extent of the reflective boundary.
	Width, Height float64

	g      float64
	dt     float64
	bodies []*Body
	nextID uint64
	forces []Vec2
}

// New returns an empty engine. G must be positive, dt non-negative
// (dt == 0 pauses motion but collision resolution still runs), and the
// bounds positive.
func New(g, dt, width, height float64) *Engine {
	return &Engine{
		Softening: DefaultSoftening,
		Width:     width,
		Height:    height,
		g:         g,
		dt:        dt,
	}
}

func (e *Engine) G() float64  { return e.g }
func (e *Engine) Dt() float64 { return e.dt }

// SetG changes the force scale; takes effect on the next step.
func (e *Engine) SetG(g float64) { e.g = g }

// SetDt changes the integration time step; takes effect on the next step.
func (e *Engine) SetDt(dt float64) { e.dt = dt }

// Add appends a body to the collection and assigns its identity.
// Bodies with non-positive mass or radius are rejected.
func (e *Engine) Add(b *Body) error {
	if b.Mass <= 0 {
		return ErrNonPositiveMass
	}
	if b.Radius <= 0 {
		return ErrNonPositiveRadius
	}
	e.nextID++
	b.ID = e.nextID
	e.bodies = append(e.bodies, b)
	return nil
}

// Remove deletes the first body with the given id. Absent ids are a
// silent no-op.
func (e *Engine) Remove(id uint64) {
	for i, b := range e.bodies {
		if b.ID == id {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return
		}
	}
}

// Bodies returns a snapshot slice of the collection in insertion order.
// Callers must treat the bodies as read-only.
func (e *Engine) Bodies() []*Body {
	out := make([]*Body, len(e.bodies))
	copy(out, e.bodies)
	return out
}

// Step advances the simulation by one tick: force accumulation,
// symplectic Euler integration, boundary handling, trail update, and
// collision resolution, in that fixed order.
func (e *Engine) Step() {
	e.accumulateForces()

	for i, b := range e.bodies {
		if !b.Active {
			continue
		}
		// Velocity first, then position with the updated velocity.
		acc := e.forces[i].Scale(1.0 / b.Mass)
		b.Vel = b.Vel.Add(acc.Scale(e.dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(e.dt))

		e.bounce(b)
		b.recordTrail()
	}

	e.resolveCollisions()
}

// accumulateForces computes the net gravitational force on every active
// body by direct O(n²) summation. Each unordered pair is evaluated once
// and its contribution applied with opposite signs, so the two force
// vectors of a pair are exact negatives.
func (e *Engine) accumulateForces() {
	n := len(e.bodies)
	if cap(e.forces) < n {
		e.forces = make([]Vec2, n)
	}
	e.forces = e.forces[:n]
	for i := range e.forces {
		e.forces[i] = Vec2{}
	}

	eps2 := e.Softening * e.Softening

	for i := 0; i < n; i++ {
		bi := e.bodies[i]
		if !bi.Active {
			continue
		}
		for j := i + 1; j < n; j++ {
			bj := e.bodies[j]
			if !bj.Active {
				continue
			}

			d := bj.Pos.Sub(bi.Pos)
			r2 := d.LengthSq() + eps2

			rInv := 1.0 / math.Sqrt(r2)
			f := e.g * bi.Mass * bj.Mass * rInv * rInv * rInv

			e.forces[i].X += f * d.X
			e.forces[i].Y += f * d.Y
			e.forces[j].X -= f * d.X
			e.forces[j].Y -= f * d.Y
		}
	}
}

// bounce clamps the body's rendered extent back inside the boundary and
// reflects the offending velocity component with damping. The axes are
// corrected independently so a corner hit adjusts both in one step.
func (e *Engine) bounce(b *Body) {
	if b.Pos.X-b.Radius < 0 {
		b.Pos.X = b.Radius
		b.Vel.X = -b.Vel.X * boundaryDamping
	} else if b.Pos.X+b.Radius > e.Width {
		b.Pos.X = e.Width - b.Radius
		b.Vel.X = -b.Vel.X * boundaryDamping
	}

	if b.Pos.Y-b.Radius < 0 {
		b.Pos.Y = b.Radius
		b.Vel.Y = -b.Vel.Y * boundaryDamping
	} else if b.Pos.Y+b.Radius > e.Height {
		b.Pos.Y = e.Height - b.Radius
		b.Vel.Y = -b.Vel.Y * boundaryDamping
	}
}

// resolveCollisions scans all unordered pairs of the bodies that were
// active when the scan started and merges overlapping ones. A pair set
// keyed by canonical (min,max) ids guarantees each pair is processed at
// most once per step; bodies deactivated by an earlier merge in the
// same scan are skipped by the Active checks.
func (e *Engine) resolveCollisions() {
	active := make([]*Body, 0, len(e.bodies))
	for _, b := range e.bodies {
		if b.Active {
			active = append(active, b)
		}
	}

	processed := make(map[[2]uint64]struct{})

	for i := 0; i < len(active); i++ {
		a := active[i]
		if !a.Active {
			continue
		}
		for j := i + 1; j < len(active); j++ {
			b := active[j]
			if !b.Active {
				continue
			}

			d := b.Pos.Sub(a.Pos)
			minDist := a.Radius + b.Radius
			if d.LengthSq() >= minDist*minDist {
				continue
			}

			key := pairKey(a.ID, b.ID)
			if _, seen := processed[key]; seen {
				continue
			}
			processed[key] = struct{}{}

			merge(a, b)
		}
	}
}

func pairKey(a, b uint64) [2]uint64 {
	if a > b {
		a, b = b, a
	}
	return [2]uint64{a, b}
}

// merge combines b into a inelastically: mass adds, velocity conserves
// momentum, position moves to the center of mass, and the new radius
// conserves volume under a spherical assumption. b is deactivated but
// stays in storage until explicitly removed. No-op unless both bodies
// are active.
func merge(a, b *Body) {
	if !a.Active || !b.Active {
		return
	}

	m := a.Mass + b.Mass

	a.Vel = a.Vel.Scale(a.Mass).Add(b.Vel.Scale(b.Mass)).Scale(1.0 / m)
	a.Pos = a.Pos.Scale(a.Mass).Add(b.Pos.Scale(b.Mass)).Scale(1.0 / m)
	a.Radius = math.Cbrt(a.Radius*a.Radius*a.Radius + b.Radius*b.Radius*b.Radius)
	a.Mass = m

	b.Active = false
}
