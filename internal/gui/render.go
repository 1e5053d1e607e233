package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/render"
)

const strokeWidth = 2

// Renderer draws a stage with raylib. It must be called between
// rl.BeginDrawing and rl.EndDrawing.
type Renderer struct {
	WorldWidth  float64
	WorldHeight float64
	Margin      float64
}

func NewRenderer(worldW, worldH float64) *Renderer {
	return &Renderer{WorldWidth: worldW, WorldHeight: worldH, Margin: 20}
}

// viewport fits the world into the window, keeping its aspect ratio, with
// y flipped so world up is screen up.
type viewport struct {
	scale, offX, offY, worldH float64
}

func (r *Renderer) viewport(screenW, screenH int) viewport {
	availW := float64(screenW) - 2*r.Margin
	availH := float64(screenH) - 2*r.Margin
	scale := math.Min(availW/r.WorldWidth, availH/r.WorldHeight)
	return viewport{
		scale:  scale,
		offX:   (float64(screenW) - r.WorldWidth*scale) / 2,
		offY:   (float64(screenH) - r.WorldHeight*scale) / 2,
		worldH: r.WorldHeight,
	}
}

func (v viewport) project(p physics.Vec2) rl.Vector2 {
	return rl.NewVector2(
		float32(v.offX+p.X*v.scale),
		float32(v.offY+(v.worldH-p.Y)*v.scale),
	)
}

func (r *Renderer) Render(stage *render.Container) error {
	v := r.viewport(rl.GetScreenWidth(), rl.GetScreenHeight())
	for _, g := range stage.Children() {
		if !g.Visible {
			continue
		}
		for _, cmd := range g.Commands() {
			drawCommand(v, g, cmd)
		}
	}
	return nil
}

func drawCommand(v viewport, g *render.Graphics, cmd render.Command) {
	col := toColor(cmd.Color)
	switch cmd.Kind {
	case render.CmdLine:
		a, b := v.project(g.ToWorld(cmd.From)), v.project(g.ToWorld(cmd.To))
		if cmd.PixelLine {
			rl.DrawLineV(a, b, col)
		} else {
			rl.DrawLineEx(a, b, strokeWidth, col)
		}

	case render.CmdRect:
		local := []physics.Vec2{
			cmd.From,
			{X: cmd.From.X + cmd.Size.X, Y: cmd.From.Y},
			cmd.From.Add(cmd.Size),
			{X: cmd.From.X, Y: cmd.From.Y + cmd.Size.Y},
		}
		drawPolygon(v, g, local, cmd.Filled, col)

	case render.CmdCircle:
		center := v.project(g.ToWorld(cmd.From))
		radius := float32(cmd.Radius * v.scale)
		if cmd.Filled {
			rl.DrawCircleV(center, radius, col)
		} else {
			rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, col)
		}
	}
}

func drawPolygon(v viewport, g *render.Graphics, local []physics.Vec2, filled bool, col rl.Color) {
	pts := make([]rl.Vector2, len(local))
	for i, p := range local {
		pts[i] = v.project(g.ToWorld(p))
	}

	if !filled {
		for i := range pts {
			rl.DrawLineV(pts[i], pts[(i+1)%len(pts)], col)
		}
		return
	}

	// raylib culls clockwise triangles; the y flip reverses winding
	if signedArea(pts) > 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	for i := 1; i+1 < len(pts); i++ {
		rl.DrawTriangle(pts[0], pts[i], pts[i+1], col)
	}
}

func signedArea(pts []rl.Vector2) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

func toColor(c render.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.NewColor(r, g, b, 255)
}
