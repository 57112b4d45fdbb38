package engine

import (
	"math"
	"testing"
)

func TestAddAssignsUniqueIDs(t *testing.T) {
	e := New(1.0, 0.1, 1000, 1000)

	a := NewBody(Vec2{100, 100}, Vec2{}, 1, 1)
	b := NewBody(Vec2{200, 200}, Vec2{}, 1, 1)

	if err := e.Add(a); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := e.Add(b); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if a.ID == 0 || b.ID == 0 {
		t.Error("expected non-zero ids after add")
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both got %d", a.ID)
	}
	if len(e.Bodies()) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(e.Bodies()))
	}
}

func TestAddRejectsInvalidBodies(t *testing.T) {
	tests := []struct {
		name   string
		mass   float64
		radius float64
		want   error
	}{
		{"zero mass", 0, 1, ErrNonPositiveMass},
		{"negative mass", -1, 1, ErrNonPositiveMass},
		{"zero radius", 1, 0, ErrNonPositiveRadius},
		{"negative radius", 1, -2, ErrNonPositiveRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(1.0, 0.1, 1000, 1000)
			err := e.Add(NewBody(Vec2{100, 100}, Vec2{}, tt.mass, tt.radius))
			if err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(e.Bodies()) != 0 {
				t.Error("invalid body must not enter the collection")
			}
		})
	}
}

func TestRemove(t *testing.T) {
	e := New(1.0, 0.1, 1000, 1000)
	a := NewBody(Vec2{100, 100}, Vec2{}, 1, 1)
	b := NewBody(Vec2{200, 200}, Vec2{}, 1, 1)
	_ = e.Add(a)
	_ = e.Add(b)

	e.Remove(a.ID)
	bodies := e.Bodies()
	if len(bodies) != 1 || bodies[0].ID != b.ID {
		t.Fatalf("expected only body %d to remain", b.ID)
	}

	// Absent id is a silent no-op.
	e.Remove(9999)
	if len(e.Bodies()) != 1 {
		t.Error("remove of absent id changed the collection")
	}
}

func TestPairwiseForceSymmetry(t *testing.T) {
	e := New(1.0, 0.1, 1000, 1000)
	e.Softening = 0.0
	_ = e.Add(NewBody(Vec2{300, 400}, Vec2{}, 2, 1))
	_ = e.Add(NewBody(Vec2{450, 380}, Vec2{}, 7, 1))

	e.accumulateForces()

	if e.forces[0].X != -e.forces[1].X || e.forces[0].Y != -e.forces[1].Y {
		t.Errorf("forces not exact negatives: %+v vs %+v", e.forces[0], e.forces[1])
	}
	if e.forces[0].X == 0 && e.forces[0].Y == 0 {
		t.Error("expected non-zero pairwise force")
	}
}

func TestInactiveBodyContributesNoForce(t *testing.T) {
	e := New(1.0, 0.1, 1000, 1000)
	active := NewBody(Vec2{300, 300}, Vec2{}, 1, 1)
	ghost := NewBody(Vec2{310, 300}, Vec2{}, 1000, 1)
	_ = e.Add(active)
	_ = e.Add(ghost)
	ghost.Active = false

	e.accumulateForces()

	if e.forces[0].X != 0 || e.forces[0].Y != 0 {
		t.Errorf("inactive body exerted force %+v", e.forces[0])
	}
}

func TestSingleBodyUniformMotion(t *testing.T) {
	e := New(1.0, 0.1, 1000, 1000)
	b := NewBody(Vec2{500, 500}, Vec2{1.5, -2.0}, 1, 1)
	_ = e.Add(b)

	want := b.Pos
	for i := 0; i < 10; i++ {
		e.Step()

		want = want.Add(b.Vel.Scale(e.Dt()))
		if math.Abs(b.Pos.X-want.X) > 1e-12 || math.Abs(b.Pos.Y-want.Y) > 1e-12 {
			t.Fatalf("step %d: expected %+v, got %+v", i, want, b.Pos)
		}
		if b.Vel.X != 1.5 || b.Vel.Y != -2.0 {
			t.Fatalf("step %d: velocity changed with no other bodies: %+v", i, b.Vel)
		}
	}
}

func TestTwoBodiesAttract(t *testing.T) {
	e := New(1.0, 0.1, 1000, 1000)
	e.Softening = 0.0
	left := NewBody(Vec2{400, 500}, Vec2{}, 1, 1)
	right := NewBody(Vec2{410, 500}, Vec2{}, 1, 1)
	_ = e.Add(left)
	_ = e.Add(right)

	for i := 0; i < 10; i++ {
		e.Step()
	}

	if left.Pos.X <= 400 {
		t.Errorf("left body should have moved in +x, at %.6f", left.Pos.X)
	}
	if right.Pos.X >= 410 {
		t.Errorf("right body should have moved in -x, at %.6f", right.Pos.X)
	}
	if left.Pos.Y != 500 || right.Pos.Y != 500 {
		t.Error("no y force expected for bodies on the same horizontal")
	}
}

func TestBoundaryBounceDamping(t *testing.T) {
	tests := []struct {
		name   string
		pos    Vec2
		vel    Vec2
		wantX  float64
		wantVX float64
	}{
		{"left wall", Vec2{0.5, 100}, Vec2{-1, 0}, 1, 0.8},
		{"right wall", Vec2{1279.5, 100}, Vec2{1, 0}, 1279, -0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(1.0, 0.1, 1280, 720)
			b := NewBody(tt.pos, tt.vel, 1, 1)
			_ = e.Add(b)

			e.Step()

			if math.Abs(b.Pos.X-tt.wantX) > 1e-9 {
				t.Errorf("expected x %.4f, got %.4f", tt.wantX, b.Pos.X)
			}
			if math.Abs(b.Vel.X-tt.wantVX) > 1e-9 {
				t.Errorf("expected vx %.4f, got %.4f", tt.wantVX, b.Vel.X)
			}
		})
	}
}

func TestBoundaryContainment(t *testing.T) {
	e := New(1.0, 0.5, 200, 200)
	// Fast bodies aimed at walls and a corner.
	_ = e.Add(NewBody(Vec2{20, 100}, Vec2{-400, 0}, 1, 5))
	_ = e.Add(NewBody(Vec2{180, 100}, Vec2{400, 0}, 1, 5))
	_ = e.Add(NewBody(Vec2{100, 20}, Vec2{0, -400}, 1, 5))
	_ = e.Add(NewBody(Vec2{30, 30}, Vec2{-400, -400}, 1, 5))

	const tol = 1e-9
	for i := 0; i < 20; i++ {
		e.Step()
		for _, b := range e.Bodies() {
			if !b.Active {
				continue
			}
			if b.Pos.X-b.Radius < -tol || b.Pos.X+b.Radius > e.Width+tol {
				t.Fatalf("step %d: body %d escaped in x: %.4f", i, b.ID, b.Pos.X)
			}
			if b.Pos.Y-b.Radius < -tol || b.Pos.Y+b.Radius > e.Height+tol {
				t.Fatalf("step %d: body %d escaped in y: %.4f", i, b.ID, b.Pos.Y)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *Engine {
		e := New(10.0, 0.05, 1280, 720)
		_ = e.Add(NewBody(Vec2{300, 300}, Vec2{2, -1}, 50, 6))
		_ = e.Add(NewBody(Vec2{700, 400}, Vec2{-3, 0.5}, 120, 9))
		_ = e.Add(NewBody(Vec2{500, 600}, Vec2{0, 1}, 80, 7))
		_ = e.Add(NewBody(Vec2{900, 200}, Vec2{-1, 2}, 30, 4))
		return e
	}

	e1, e2 := build(), build()
	for i := 0; i < 200; i++ {
		e1.Step()
		e2.Step()
	}

	b1, b2 := e1.Bodies(), e2.Bodies()
	for i := range b1 {
		if b1[i].Pos != b2[i].Pos || b1[i].Vel != b2[i].Vel ||
			b1[i].Mass != b2[i].Mass || b1[i].Active != b2[i].Active {
			t.Fatalf("body %d diverged: %+v vs %+v", i, b1[i], b2[i])
		}
	}
}

func TestTrailBound(t *testing.T) {
	e := New(1.0, 0.1, 1000, 1000)
	b := NewBody(Vec2{500, 500}, Vec2{0.1, 0.1}, 1, 1)
	_ = e.Add(b)

	for i := 0; i < DefaultMaxTrail+50; i++ {
		e.Step()
		if len(b.Trail) > DefaultMaxTrail {
			t.Fatalf("trail exceeded cap at step %d: %d", i, len(b.Trail))
		}
	}

	if len(b.Trail) != DefaultMaxTrail {
		t.Errorf("expected full trail of %d samples, got %d", DefaultMaxTrail, len(b.Trail))
	}
	last := b.Trail[len(b.Trail)-1]
	if last != b.Pos {
		t.Errorf("newest trail sample %+v should match position %+v", last, b.Pos)
	}
}

func TestPausedEngineStillMerges(t *testing.T) {
	e := New(1.0, 0.0, 1000, 1000)
	a := NewBody(Vec2{500, 500}, Vec2{1, 0}, 1, 5)
	b := NewBody(Vec2{503, 500}, Vec2{-1, 0}, 1, 5)
	_ = e.Add(a)
	_ = e.Add(b)

	e.Step()

	if !a.Active || b.Active {
		t.Error("overlapping bodies should merge even at dt == 0")
	}
	if a.Mass != 2 {
		t.Errorf("expected merged mass 2, got %f", a.Mass)
	}
}
