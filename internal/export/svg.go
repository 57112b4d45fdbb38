package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/ewerall/gravsim/internal/sim"
)

// RunToSVG renders recorded frames as a static SVG: one polyline per body
// tracing its trajectory, plus a filled circle at its final position.
// Bodies inactive in the last frame are drawn as trajectory only.
// Coordinates are mapped 1:1 onto the simulation bounds.
func RunToSVG(frames []sim.Frame, width, height float64) string {
	if len(frames) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	last := frames[len(frames)-1]
	for i := range last.Bodies {
		writeTrajectory(&sb, frames, i)
	}
	for _, b := range last.Bodies {
		if !b.Active {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#b4b4b4"/>
`, b.X, b.Y, b.Radius))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// writeTrajectory emits one polyline path following body idx across all
// frames, stopping at the frame where the body went inactive.
func writeTrajectory(sb *strings.Builder, frames []sim.Frame, idx int) {
	sb.WriteString(`<path fill="none" stroke="#505050" stroke-width="1" d="`)

	started := false
	for _, f := range frames {
		if idx >= len(f.Bodies) || !f.Bodies[idx].Active {
			break
		}
		b := f.Bodies[idx]
		if !started {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", b.X, b.Y))
			started = true
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", b.X, b.Y))
		}
	}

	sb.WriteString("\"/>\n")
}

// WriteSVG renders frames and writes the result to path.
func WriteSVG(path string, frames []sim.Frame, width, height float64) error {
	svg := RunToSVG(frames, width, height)
	if svg == "" {
		return fmt.Errorf("no frames to render")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
