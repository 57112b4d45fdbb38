package gui

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ewerall/gravsim/internal/config"
	"github.com/ewerall/gravsim/internal/engine"
	"github.com/ewerall/gravsim/internal/scene"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColTrail   = rl.NewColor(80, 80, 80, 200)    // Trail segments
)

const (
	gConstStep = 10.0
	dtStep     = 0.01
	minG       = 0.1
)

type App struct {
	Cfg     *config.Config
	Eng     *engine.Engine
	Rng     *rand.Rand
	Time    float64
	Running bool
	savedDt float64
}

// initWindow initializes the Raylib window sized to the simulation bounds,
// sets the target FPS to 60, and disables the default exit key.
func initWindow(width, height float64) {
	rl.InitWindow(int32(width), int32(height), "gravsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp builds an App around a fresh engine constructed from cfg.
// It returns an error when cfg fails validation.
func NewApp(cfg *config.Config) (*App, error) {
	eng, err := scene.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg:     cfg,
		Eng:     eng,
		Rng:     rand.New(rand.NewSource(cfg.Seed + 1)),
		Running: true,
	}, nil
}

// Run opens the window, enters the main update-draw loop, and blocks
// until the window is closed.
func Run(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	initWindow(cfg.Width, cfg.Height)
	defer rl.CloseWindow()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	a.handleInput()
	a.Eng.Step()
	a.Time += a.Eng.Dt()
}

func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyKpMultiply) {
		a.Eng.SetG(a.Eng.G() + gConstStep)
	}
	if rl.IsKeyPressed(rl.KeyKpDivide) {
		g := a.Eng.G() - gConstStep
		if g < minG {
			g = minG
		}
		a.Eng.SetG(g)
	}
	if rl.IsKeyPressed(rl.KeyKpAdd) && a.Running {
		a.Eng.SetDt(a.Eng.Dt() + dtStep)
	}
	if rl.IsKeyPressed(rl.KeyKpSubtract) && a.Running {
		dt := a.Eng.Dt() - dtStep
		if dt < 0 {
			dt = 0
		}
		a.Eng.SetDt(dt)
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.spawnAtCursor()
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		a.deleteHovered()
	}
}

// togglePause stops integration by zeroing dt while keeping the
// collision scan alive, and restores the previous dt on resume.
func (a *App) togglePause() {
	if a.Running {
		a.savedDt = a.Eng.Dt()
		a.Eng.SetDt(0)
	} else {
		a.Eng.SetDt(a.savedDt)
	}
	a.Running = !a.Running
}

func (a *App) reset() {
	eng, err := scene.NewEngine(a.Cfg)
	if err != nil {
		return
	}
	a.Eng = eng
	a.Time = 0
	a.Running = true
}

func (a *App) spawnAtCursor() {
	mouse := rl.GetMousePosition()
	vx := (a.Rng.Float64()*2 - 1) * a.Cfg.Spawn.MaxSpeed
	vy := (a.Rng.Float64()*2 - 1) * a.Cfg.Spawn.MaxSpeed
	b := engine.NewBody(
		engine.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)},
		engine.Vec2{X: vx, Y: vy},
		config.DefaultMass,
		config.DefaultRadius,
	)
	b.MaxTrail = a.Cfg.MaxTrail
	a.Eng.Add(b)
}

func (a *App) deleteHovered() {
	mouse := rl.GetMousePosition()
	for _, b := range a.Eng.Bodies() {
		if !b.Active {
			continue
		}
		d := b.Pos.Sub(engine.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)})
		if d.LengthSq() <= b.Radius*b.Radius {
			a.Eng.Remove(b.ID)
			return
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawBodies()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawBodies() {
	for _, b := range a.Eng.Bodies() {
		if !b.Active {
			continue
		}
		for i := 1; i < len(b.Trail); i++ {
			p0 := rl.NewVector2(float32(b.Trail[i-1].X), float32(b.Trail[i-1].Y))
			p1 := rl.NewVector2(float32(b.Trail[i].X), float32(b.Trail[i].Y))
			rl.DrawLineV(p0, p1, ColTrail)
		}
		center := rl.NewVector2(float32(b.Pos.X), float32(b.Pos.Y))
		rl.DrawCircleV(center, float32(b.Radius), ColAccent)
	}
}

func (a *App) drawHUD() {
	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText("gravsim", 20, 20, 20, ColSelect)
	rl.DrawText(status, int32(a.Cfg.Width)-120, 20, 16, col)

	info := fmt.Sprintf("t=%.2f  bodies=%d  G=%.1f  dt=%.3f",
		a.Time, a.Eng.ActiveCount(), a.Eng.G(), a.Eng.Dt())
	rl.DrawText(info, 20, 46, 14, ColText)

	help := "[LMB] SPAWN  [DEL] REMOVE  [KP*/KP/] G  [KP+/KP-] DT  [SPACE] PAUSE  [R] RESET"
	rl.DrawText(help, 20, int32(a.Cfg.Height)-30, 12, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), int32(a.Cfg.Width)-80, int32(a.Cfg.Height)-30, 12, ColTextDim)
}
