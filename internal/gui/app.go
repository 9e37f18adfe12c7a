// Package gui is the raylib window front-end of the orb.
package gui

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbsim/internal/orb"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const telemetryCapacity = 200

type App struct {
	Ctrl      *orb.Controller
	Surface   *Surface
	Settings  orb.Settings
	Width     int32
	Height    int32
	Font      rl.Font
	GlowTex   rl.Texture2D
	Telemetry []float64

	start   time.Time
	lastPos rl.Vector2
	logger  *slog.Logger
}

type Config struct {
	Width  int32
	Height int32
	FPS    int32
	Logger *slog.Logger
}

func initWindow(cfg Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(cfg.Width, cfg.Height, "orbsim")
	rl.SetTargetFPS(cfg.FPS)
	rl.SetExitKey(0)
}

func NewApp(ctrl *orb.Controller, surface *Surface, cfg Config) *App {
	app := &App{
		Ctrl:      ctrl,
		Surface:   surface,
		Settings:  ctrl.Settings(),
		Width:     int32(rl.GetScreenWidth()),
		Height:    int32(rl.GetScreenHeight()),
		Font:      rl.GetFontDefault(),
		Telemetry: make([]float64, 0, telemetryCapacity),
		start:     time.Now(),
		lastPos:   rl.GetMousePosition(),
		logger:    cfg.Logger,
	}

	img := rl.GenImageGradientRadial(64, 64, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	app.GlowTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return app
}

// Run opens the window and drives ctrl until it is closed, then saves the
// position. Only a failed save is returned.
func Run(ctrl *orb.Controller, surface *Surface, cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(ctrl, surface, cfg)
	defer rl.UnloadTexture(app.GlowTex)
	app.RunLoop()

	if err := ctrl.Persist(); err != nil {
		cfg.Logger.Warn("position not saved", "err", err)
		return err
	}
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyQ) {
		a.Update()
		a.Draw()
	}
}

// Update turns this frame's mouse input into pointer events and ticks the
// controller.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.Width, a.Height = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	}
	now := time.Since(a.start)

	mouse := rl.GetMousePosition()
	if mouse != a.lastPos {
		a.lastPos = mouse
		p := orb.NormalizePointer(float64(mouse.X), float64(mouse.Y), float64(a.Width), float64(a.Height), a.Settings)
		a.Ctrl.PointerMove(now, p)
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Ctrl.PointerDown(now)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Ctrl.PointerUp(now)
	}

	st := a.Ctrl.Tick(now)
	a.Telemetry = append(a.Telemetry, st.Opacity)
	if len(a.Telemetry) > telemetryCapacity {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawOrb()
	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int32, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), size, 1, color)
}
