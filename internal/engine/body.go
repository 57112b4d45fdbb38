package engine

import "math"

// Vec2 is a point or direction in simulation space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSq() float64    { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64      { return math.Sqrt(v.LengthSq()) }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// DefaultMaxTrail is the trail capacity used when a body is created
// without an explicit cap.
const DefaultMaxTrail = 100

// Body is a point mass in the simulation. Position and velocity are in
// simulation-space units; radius only affects collision and boundary
// geometry, never the force magnitude. An inactive body stays in the
// engine's storage as a tombstone until explicitly removed.
type Body struct {
	ID       uint64
	Pos      Vec2
	Vel      Vec2
	Mass     float64
	Radius   float64
	Active   bool
	Trail    []Vec2
	MaxTrail int
}

// NewBody returns an active body with the default trail cap. The ID is
// zero until the body is added to an engine.
func NewBody(pos, vel Vec2, mass, radius float64) *Body {
	return &Body{
		Pos:      pos,
		Vel:      vel,
		Mass:     mass,
		Radius:   radius,
		Active:   true,
		Trail:    make([]Vec2, 0, DefaultMaxTrail),
		MaxTrail: DefaultMaxTrail,
	}
}

// recordTrail appends the current position, evicting the oldest sample
// once the cap is reached.
func (b *Body) recordTrail() {
	if b.MaxTrail <= 0 {
		return
	}
	if len(b.Trail) >= b.MaxTrail {
		copy(b.Trail, b.Trail[1:])
		b.Trail = b.Trail[:len(b.Trail)-1]
	}
	b.Trail = append(b.Trail, b.Pos)
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 { return b.Vel.Length() }

// KineticEnergy returns 0.5·m·v².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.LengthSq()
}
