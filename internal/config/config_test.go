package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.G <= 0 {
		t.Error("g should be positive")
	}
	if cfg.Dt < 0 {
		t.Error("dt should be non-negative")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Error("bounds should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero g", func(c *Config) { c.G = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"negative softening", func(c *Config) { c.Softening = -1 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero-mass body", func(c *Config) {
			c.Bodies = []BodyConfig{{X: 1, Y: 1, Mass: 0, Radius: 1}}
		}},
		{"zero-radius body", func(c *Config) {
			c.Bodies = []BodyConfig{{X: 1, Y: 1, Mass: 1, Radius: 0}}
		}},
		{"inverted spawn mass range", func(c *Config) {
			c.Spawn.Count = 5
			c.Spawn.MassMin = 10
			c.Spawn.MassMax = 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	cfg := Default()
	cfg.G = 25.0
	cfg.Seed = 7
	cfg.Bodies = []BodyConfig{{X: 100, Y: 200, VX: 1, VY: -2, Mass: 50, Radius: 5}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.G != 25.0 || loaded.Seed != 7 {
		t.Errorf("roundtrip lost values: %+v", loaded)
	}
	if len(loaded.Bodies) != 1 || loaded.Bodies[0].Mass != 50 {
		t.Errorf("roundtrip lost bodies: %+v", loaded.Bodies)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary")
	if cfg == nil {
		t.Fatal("expected binary preset")
	}
	if len(cfg.Bodies) != 2 {
		t.Errorf("binary preset should have 2 bodies, got %d", len(cfg.Bodies))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if GetPreset(name) == nil {
			t.Errorf("listed preset %q not retrievable", name)
		}
	}
}
