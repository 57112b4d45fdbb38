package config

var presets = map[string]*Config{
	"binary": {
		G: 50.0, Dt: 0.01, Softening: 0.1,
		Width: 1280, Height: 720, MaxTrail: 100, Steps: 5000,
		Bodies: []BodyConfig{
			{X: 540, Y: 360, VY: 8, Mass: 500, Radius: 12},
			{X: 740, Y: 360, VY: -8, Mass: 500, Radius: 12},
		},
	},
	"three_body": {
		G: 100.0, Dt: 0.005, Softening: 0.1,
		Width: 1280, Height: 720, MaxTrail: 100, Steps: 10000,
		Bodies: []BodyConfig{
			{X: 640, Y: 260, VX: 6, Mass: 300, Radius: 10},
			{X: 553, Y: 410, VX: -3, VY: -5.2, Mass: 300, Radius: 10},
			{X: 727, Y: 410, VX: -3, VY: 5.2, Mass: 300, Radius: 10},
		},
	},
	"cluster": {
		G: 10.0, Dt: 0.05, Softening: 0.5,
		Width: 1280, Height: 720, MaxTrail: 50, Steps: 2000,
		Seed: 42,
		Spawn: SpawnConfig{
			Count: 30, MassMin: 5, MassMax: 80,
			RadiusMin: 3, RadiusMax: 8, MaxSpeed: 10,
		},
	},
	"collision": {
		G: 1.0, Dt: 0.05, Softening: 0.1,
		Width: 1280, Height: 720, MaxTrail: 100, Steps: 1500,
		Bodies: []BodyConfig{
			{X: 400, Y: 360, VX: 15, Mass: 200, Radius: 15},
			{X: 880, Y: 360, VX: -15, Mass: 200, Radius: 15},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
// Callers may mutate the copy freely.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = append([]BodyConfig(nil), p.Bodies...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
