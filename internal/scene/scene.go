// Package scene builds engines from configuration: explicit bodies
// first, then seeded-random spawns, so the same config and seed always
// produce the same initial state.
package scene

import (
	"fmt"
	"math/rand"

	"github.com/ewerall/gravsim/internal/config"
	"github.com/ewerall/gravsim/internal/engine"
)

// NewEngine validates cfg and returns a populated engine.
func NewEngine(cfg *config.Config) (*engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := engine.New(cfg.G, cfg.Dt, cfg.Width, cfg.Height)
	e.Softening = cfg.Softening

	for i, bc := range cfg.Bodies {
		b := engine.NewBody(
			engine.Vec2{X: bc.X, Y: bc.Y},
			engine.Vec2{X: bc.VX, Y: bc.VY},
			bc.Mass, bc.Radius,
		)
		b.MaxTrail = cfg.MaxTrail
		if err := e.Add(b); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Spawn.Count; i++ {
		if err := e.Add(RandomBody(rng, cfg)); err != nil {
			return nil, fmt.Errorf("spawn %d: %w", i, err)
		}
	}

	return e, nil
}

// RandomBody draws a body from the config's spawn ranges, placed fully
// inside the bounds with a uniform velocity in ±MaxSpeed per axis.
func RandomBody(rng *rand.Rand, cfg *config.Config) *engine.Body {
	radius := uniform(rng, cfg.Spawn.RadiusMin, cfg.Spawn.RadiusMax)

	b := engine.NewBody(
		engine.Vec2{
			X: uniform(rng, radius, cfg.Width-radius),
			Y: uniform(rng, radius, cfg.Height-radius),
		},
		engine.Vec2{
			X: uniform(rng, -cfg.Spawn.MaxSpeed, cfg.Spawn.MaxSpeed),
			Y: uniform(rng, -cfg.Spawn.MaxSpeed, cfg.Spawn.MaxSpeed),
		},
		uniform(rng, cfg.Spawn.MassMin, cfg.Spawn.MassMax),
		radius,
	)
	b.MaxTrail = cfg.MaxTrail
	return b
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
