package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ewerall/gravsim/internal/sim"
)

type ExportData struct {
	ID      string             `json:"id"`
	G       float64            `json:"g"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Frames  []sim.Frame        `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

func exportJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		ID:      meta.ID,
		G:       meta.G,
		Dt:      meta.Dt,
		Steps:   meta.Steps,
		Frames:  frames,
		Metrics: meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSON writes a run as a single JSON document to path.
func ExportJSON(path string, meta *RunMetadata, frames []sim.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, meta, frames)
}

// ExportJSONStdout writes a run as a single JSON document to stdout.
func ExportJSONStdout(meta *RunMetadata, frames []sim.Frame) error {
	return exportJSON(os.Stdout, meta, frames)
}
