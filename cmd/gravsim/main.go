package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ewerall/gravsim/internal/config"
	"github.com/ewerall/gravsim/internal/export"
	"github.com/ewerall/gravsim/internal/gui"
	"github.com/ewerall/gravsim/internal/metrics"
	"github.com/ewerall/gravsim/internal/scene"
	"github.com/ewerall/gravsim/internal/sim"
	"github.com/ewerall/gravsim/internal/storage"
	"github.com/ewerall/gravsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	gConst     float64
	softening  float64
	steps      int
	width      float64
	height     float64
	numBodies  int
	seed       int64
	configFile string
	preset     string
	runName    string
	// Frame rate for live view
	frameRate int
	// Plot selection
	bodyIndex int
	column    string
)

// main is the entry point for the gravsim CLI; it registers commands and
// flags, launches the interactive GUI when no subcommand is provided, and
// executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "deterministic 2d n-body gravity sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to interactive GUI mode when no command given
			return gui.Run(config.Default())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().StringVar(&runName, "name", "sim", "run name prefix")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run simulation with high-performance GUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	addSimFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")
	plotCmd.Flags().StringVar(&column, "column", "x", "series to plot (x, y, vx, vy, speed, count)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "trajectory plot in the x-y plane",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [output.svg]",
		Short: "render run trajectories to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scene presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping throughput",
		RunE:  benchEngine,
	}
	benchCmd.Flags().IntVar(&steps, "steps", 1000, "steps per measurement")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportSVGCmd, exportJSONCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&gConst, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "force softening length")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "world width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "world height")
	cmd.Flags().IntVar(&numBodies, "bodies", 0, "number of random bodies to spawn")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scene")
}

// buildConfig resolves the effective configuration: preset first, then
// config file, then CLI flags override whatever they explicitly set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gConst
	}
	if cmd.Flags().Changed("softening") {
		cfg.Softening = softening
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("bodies") {
		cfg.Spawn.Count = numBodies
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Steps = steps

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := scene.NewEngine(cfg)
	if err != nil {
		return err
	}

	runner := sim.New(eng)
	runner.AddMetric(metrics.NewEnergy(cfg.G, cfg.Softening))
	runner.AddMetric(metrics.NewEnergyDrift(cfg.G, cfg.Softening))
	runner.AddMetric(metrics.NewMomentum())
	runner.AddMetric(metrics.NewActiveBodies())

	fmt.Printf("running %d bodies for %d steps...\n", eng.ActiveCount(), cfg.Steps)
	start := time.Now()

	result, err := runner.Run(context.Background(), cfg.Steps)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(runName, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg, frameRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tSTEPS\tDT\tG\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%.1f\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Dt,
			run.G,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

// series extracts one per-frame scalar from the recorded frames.
func series(frames []sim.Frame, body int, col string) ([]float64, error) {
	data := make([]float64, len(frames))
	for i, f := range frames {
		if col == "count" {
			n := 0
			for _, b := range f.Bodies {
				if b.Active {
					n++
				}
			}
			data[i] = float64(n)
			continue
		}
		if body < 0 || body >= len(f.Bodies) {
			return nil, fmt.Errorf("body index %d out of range (%d bodies)", body, len(f.Bodies))
		}
		b := f.Bodies[body]
		switch col {
		case "x":
			data[i] = b.X
		case "y":
			data[i] = b.Y
		case "vx":
			data[i] = b.VX
		case "vy":
			data[i] = b.VY
		case "speed":
			data[i] = math.Hypot(b.VX, b.VY)
		default:
			return nil, fmt.Errorf("unknown column: %s", col)
		}
	}
	return data, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data, err := series(frames, bodyIndex, column)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(frames))

	caption := fmt.Sprintf("%s (body %d) vs time", column, bodyIndex)
	if column == "count" {
		caption = "active bodies vs time"
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if bodyIndex < 0 || bodyIndex >= len(frames[0].Bodies) {
		return fmt.Errorf("body index %d out of range (%d bodies)", bodyIndex, len(frames[0].Bodies))
	}

	fmt.Printf("trajectory plot: %s\n", meta.ID)
	fmt.Printf("body: %d\n\n", bodyIndex)

	xData := make([]float64, len(frames))
	yData := make([]float64, len(frames))
	for i, f := range frames {
		xData[i] = f.Bodies[bodyIndex].X
		yData[i] = f.Bodies[bodyIndex].Y
	}

	// Find bounds
	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		if xData[i] < xMin {
			xMin = xData[i]
		}
		if xData[i] > xMax {
			xMax = xData[i]
		}
		if yData[i] < yMin {
			yMin = yData[i]
		}
		if yData[i] > yMax {
			yMax = yData[i]
		}
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	// ASCII scatter plot
	width := 70
	height := 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py // Flip y-axis
		if px >= 0 && px < width && py >= 0 && py < height {
			// Character encodes simulation time
			if i < len(xData)/3 {
				canvas[py][px] = '.'
			} else if i < 2*len(xData)/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2f ┌", yMax)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")

	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}

	fmt.Printf("  %.2f └", yMin)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")

	fmt.Printf("       %.2f", xMin)
	padding := width - 20
	for i := 0; i < padding; i++ {
		fmt.Print(" ")
	}
	fmt.Printf("%.2f\n", xMax)

	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0].Bodies {
		header = append(header,
			fmt.Sprintf("b%d_x", i), fmt.Sprintf("b%d_y", i),
			fmt.Sprintf("b%d_vx", i), fmt.Sprintf("b%d_vy", i),
			fmt.Sprintf("b%d_mass", i), fmt.Sprintf("b%d_radius", i),
			fmt.Sprintf("b%d_active", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{strconv.FormatFloat(f.Time, 'f', 6, 64)}
		for _, b := range f.Bodies {
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
				active)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if err := export.WriteSVG(args[1], frames, meta.Width, meta.Height); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, frames)
}

func benchEngine(cmd *cobra.Command, args []string) error {
	counts := []int{10, 50, 100, 200}

	fmt.Println("benchmarking engine stepping")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		cfg := config.Default()
		cfg.Seed = 42
		cfg.Spawn.Count = n

		eng, err := scene.NewEngine(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < steps; i++ {
			eng.Step()
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(steps) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, steps, elapsed, stepsPerSec)
	}

	return w.Flush()
}
