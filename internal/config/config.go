package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultG         = 10.0
	DefaultDt        = 0.05
	DefaultSoftening = 0.1
	DefaultWidth     = 1280.0
	DefaultHeight    = 720.0
	DefaultMaxTrail  = 100
	DefaultSteps     = 1000
	DefaultMass      = 100.0
	DefaultRadius    = 10.0
)

type Config struct {
	G         float64      `yaml:"g"`
	Dt        float64      `yaml:"dt"`
	Softening float64      `yaml:"softening"`
	Width     float64      `yaml:"width"`
	Height    float64      `yaml:"height"`
	MaxTrail  int          `yaml:"max_trail"`
	Seed      int64        `yaml:"seed"`
	Steps     int          `yaml:"steps"`
	Bodies    []BodyConfig `yaml:"bodies"`
	Spawn     SpawnConfig  `yaml:"spawn"`
}

// BodyConfig places one explicit body.
type BodyConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

// SpawnConfig adds seeded-random bodies on top of the explicit list.
type SpawnConfig struct {
	Count     int     `yaml:"count"`
	MassMin   float64 `yaml:"mass_min"`
	MassMax   float64 `yaml:"mass_max"`
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

func Default() *Config {
	return &Config{
		G:         DefaultG,
		Dt:        DefaultDt,
		Softening: DefaultSoftening,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		MaxTrail:  DefaultMaxTrail,
		Steps:     DefaultSteps,
		Spawn: SpawnConfig{
			MassMin:   1,
			MassMax:   DefaultMass,
			RadiusMin: 2,
			RadiusMax: DefaultRadius,
			MaxSpeed:  10,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.G <= 0 {
		return fmt.Errorf("g must be positive, got %g", c.G)
	}
	if c.Dt < 0 {
		return fmt.Errorf("dt must be non-negative, got %g", c.Dt)
	}
	if c.Softening < 0 {
		return fmt.Errorf("softening must be non-negative, got %g", c.Softening)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("bounds must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.MaxTrail < 0 {
		return fmt.Errorf("max_trail must be non-negative, got %d", c.MaxTrail)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("body %d: mass must be positive, got %g", i, b.Mass)
		}
		if b.Radius <= 0 {
			return fmt.Errorf("body %d: radius must be positive, got %g", i, b.Radius)
		}
	}
	if c.Spawn.Count < 0 {
		return fmt.Errorf("spawn count must be non-negative, got %d", c.Spawn.Count)
	}
	if c.Spawn.Count > 0 {
		if c.Spawn.MassMin <= 0 || c.Spawn.MassMax < c.Spawn.MassMin {
			return fmt.Errorf("spawn mass range invalid: [%g, %g]", c.Spawn.MassMin, c.Spawn.MassMax)
		}
		if c.Spawn.RadiusMin <= 0 || c.Spawn.RadiusMax < c.Spawn.RadiusMin {
			return fmt.Errorf("spawn radius range invalid: [%g, %g]", c.Spawn.RadiusMin, c.Spawn.RadiusMax)
		}
	}
	return nil
}
