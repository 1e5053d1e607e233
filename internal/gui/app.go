// Package gui is the raylib front end. Unlike the terminal, raylib reports
// real key-down and key-up edges, so the putt follows the physical key.
package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/battleputt/internal/metrics"
	"github.com/san-kum/battleputt/internal/scene"
	"github.com/san-kum/battleputt/internal/sim"
	"github.com/san-kum/battleputt/internal/tunables"
)

var (
	ColBg      = rl.NewColor(10, 14, 10, 255)
	ColAccent  = rl.NewColor(120, 200, 120, 255)
	ColSelect  = rl.NewColor(255, 215, 95, 255)
	ColText    = rl.NewColor(160, 170, 160, 255)
	ColTextDim = rl.NewColor(70, 80, 70, 255)
)

const telemetrySize = 200

type App struct {
	Loop  *sim.Loop
	Scene *scene.Scene
	Sync  *tunables.Sync
	Panel *tunables.Panel
	Speed *metrics.History

	status string
}

func NewApp(loop *sim.Loop, sync *tunables.Sync) *App {
	a := &App{
		Loop:  loop,
		Scene: loop.Scene,
		Sync:  sync,
		Speed: metrics.SpeedHistory(telemetrySize),
	}
	a.Panel = tunables.NewPanel(loop.Scene.Params, a.onEdit)
	loop.AddObserver(a.Speed)
	return a
}

func (a *App) onEdit(c tunables.Change) {
	if err := a.Sync.OnEdit(c); err != nil {
		a.status = "save failed"
		return
	}
	a.status = fmt.Sprintf("%s = %s", c.Name, c.Params.Format(c.Field))
}

func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(1280, 720, "battleputt")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(loop *sim.Loop, sync *tunables.Sync, fps int) error {
	initWindow(fps)
	defer rl.CloseWindow()

	app := NewApp(loop, sync)
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return nil
		}
		a.Update()
		if err := a.Draw(); err != nil {
			return err
		}
	}
	return nil
}

// Update turns key edges into loop events and panel edits.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Loop.Post(a.Scene.KeyDown)
	}
	if rl.IsKeyReleased(rl.KeySpace) {
		a.Loop.Post(a.Scene.KeyUp)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsKeyDown(rl.KeyLeftShift) {
			a.Panel.Prev()
		} else {
			a.Panel.Next()
		}
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressedRepeat(rl.KeyUp) {
		a.Panel.Nudge(1)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressedRepeat(rl.KeyDown) {
		a.Panel.Nudge(-1)
	}
	if rl.IsKeyPressed(rl.KeyD) {
		a.Panel.Toggle(tunables.DebugRender)
	}
}

func (a *App) Draw() error {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(ColBg)

	if err := a.Loop.Frame(); err != nil {
		log.Printf("gui: frame: %v", err)
		return err
	}
	a.DrawHUD()
	return nil
}

func (a *App) DrawHUD() {
	rl.DrawText("battleputt", 30, 24, 24, ColSelect)

	pos, vel := a.Scene.BallPosition(), a.Scene.BallVelocity()
	rl.DrawText(fmt.Sprintf("%s  pos (%.0f, %.0f)  speed %.1f", a.Scene.State(), pos.X, pos.Y, vel.Length()), 30, 56, 16, ColText)

	y := int32(90)
	params := a.Scene.Params
	for _, f := range a.Panel.Fields() {
		col := ColText
		prefix := "  "
		if f == a.Panel.Selected() {
			col, prefix = ColSelect, "> "
		}
		rl.DrawText(fmt.Sprintf("%s%-16s %s", prefix, f, params.Format(f)), 30, y, 14, col)
		y += 18
	}
	if a.status != "" {
		rl.DrawText(a.status, 30, y+8, 14, ColAccent)
	}

	a.DrawTelemetry()

	h := int32(rl.GetScreenHeight())
	rl.DrawText("[SPACE] PUTT  [TAB] SELECT  [UP/DOWN] TUNE  [D] DEBUG  [Q] QUIT", 30, h-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(rl.GetScreenWidth())-90, h-30, 14, ColTextDim)
}

func (a *App) DrawTelemetry() {
	values := a.Speed.Values()
	if len(values) < 2 {
		return
	}

	rectX, rectY := float32(30), float32(rl.GetScreenHeight()-110)
	width, height := float32(400), float32(60)

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, v := range values {
		px := rectX + float32(i)/float32(len(values))*width
		norm := float32((v - lo) / (hi - lo))
		points[i] = rl.NewVector2(px, rectY+height-norm*height)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("v: %.1f", values[len(values)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
