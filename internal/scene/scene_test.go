package scene

import (
	"testing"

	"github.com/ewerall/gravsim/internal/config"
)

func clusterConfig() *config.Config {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Spawn.Count = 10
	return cfg
}

func TestNewEngineExplicitBodies(t *testing.T) {
	cfg := config.Default()
	cfg.Bodies = []config.BodyConfig{
		{X: 100, Y: 200, VX: 1, VY: -1, Mass: 50, Radius: 5},
		{X: 300, Y: 400, Mass: 80, Radius: 8},
	}

	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	bodies := e.Bodies()
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if bodies[0].Pos.X != 100 || bodies[0].Vel.Y != -1 {
		t.Errorf("first body misplaced: %+v", bodies[0])
	}
	if e.G() != cfg.G || e.Dt() != cfg.Dt {
		t.Error("engine parameters not taken from config")
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.G = 0

	if _, err := NewEngine(cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestSpawnDeterminism(t *testing.T) {
	e1, err := NewEngine(clusterConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	e2, err := NewEngine(clusterConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	b1, b2 := e1.Bodies(), e2.Bodies()
	if len(b1) != 10 {
		t.Fatalf("expected 10 spawned bodies, got %d", len(b1))
	}
	for i := range b1 {
		if b1[i].Pos != b2[i].Pos || b1[i].Vel != b2[i].Vel || b1[i].Mass != b2[i].Mass {
			t.Fatalf("body %d differs across identical seeds", i)
		}
	}
}

func TestSpawnedBodiesInsideBounds(t *testing.T) {
	cfg := clusterConfig()
	cfg.Spawn.Count = 50

	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for _, b := range e.Bodies() {
		if b.Pos.X-b.Radius < 0 || b.Pos.X+b.Radius > cfg.Width ||
			b.Pos.Y-b.Radius < 0 || b.Pos.Y+b.Radius > cfg.Height {
			t.Errorf("body %d spawned outside bounds: %+v r=%v", b.ID, b.Pos, b.Radius)
		}
		if b.Mass < cfg.Spawn.MassMin || b.Mass > cfg.Spawn.MassMax {
			t.Errorf("body %d mass %v outside spawn range", b.ID, b.Mass)
		}
	}
}
