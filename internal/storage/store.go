package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ewerall/gravsim/internal/config"
	"github.com/ewerall/gravsim/internal/sim"
)

// fieldsPerBody is the number of CSV columns written per body slot.
const fieldsPerBody = 7

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	G           float64            `json:"g"`
	Dt          float64            `json:"dt"`
	Softening   float64            `json:"softening"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Steps       int                `json:"steps"`
	Bodies      int                `json:"bodies"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory containing metadata.json and states.csv
// and returns the generated run id.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	bodies := 0
	if len(result.Frames) > 0 {
		bodies = len(result.Frames[0].Bodies)
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		G:           cfg.G,
		Dt:          cfg.Dt,
		Softening:   cfg.Softening,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Steps:       result.StepsTaken,
		Bodies:      bodies,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < bodies; i++ {
		header = append(header,
			fmt.Sprintf("b%d_x", i), fmt.Sprintf("b%d_y", i),
			fmt.Sprintf("b%d_vx", i), fmt.Sprintf("b%d_vy", i),
			fmt.Sprintf("b%d_mass", i), fmt.Sprintf("b%d_radius", i),
			fmt.Sprintf("b%d_active", i),
		)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, frame := range result.Frames {
		row := []string{strconv.FormatFloat(frame.Time, 'f', 6, 64)}
		for _, b := range frame.Bodies {
			active := "0"
			if b.Active {
				active = "1"
			}
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64),
				strconv.FormatFloat(b.VX, 'f', 6, 64),
				strconv.FormatFloat(b.VY, 'f', 6, 64),
				strconv.FormatFloat(b.Mass, 'f', 6, 64),
				strconv.FormatFloat(b.Radius, 'f', 6, 64),
				active,
			)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads states.csv back into frames. Body ids are not stored
// in the CSV; slots are numbered by column position.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	bodies := (len(records[0]) - 1) / fieldsPerBody
	frames := make([]sim.Frame, 0, len(records)-1)

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		frame := sim.Frame{Time: t, Bodies: make([]sim.BodyState, bodies)}
		for i := 0; i < bodies; i++ {
			base := 1 + i*fieldsPerBody
			vals := make([]float64, fieldsPerBody)
			for j := 0; j < fieldsPerBody; j++ {
				vals[j], _ = strconv.ParseFloat(record[base+j], 64)
			}
			frame.Bodies[i] = sim.BodyState{
				ID:     uint64(i + 1),
				X:      vals[0],
				Y:      vals[1],
				VX:     vals[2],
				VY:     vals[3],
				Mass:   vals[4],
				Radius: vals[5],
				Active: vals[6] != 0,
			}
		}
		frames = append(frames, frame)
	}

	return frames, nil
}
