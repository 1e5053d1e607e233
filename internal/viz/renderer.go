package viz

import (
	"math"

	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/render"
)

const circleSegments = 12

// CanvasRenderer rasterizes a stage onto a braille canvas. World space is
// y-up and spans WorldWidth x WorldHeight; the canvas is y-down.
type CanvasRenderer struct {
	Canvas      *Canvas
	WorldWidth  float64
	WorldHeight float64
	frames      int
}

func NewCanvasRenderer(cols, rows int, worldW, worldH float64) *CanvasRenderer {
	return &CanvasRenderer{
		Canvas:      NewCanvas(cols, rows),
		WorldWidth:  worldW,
		WorldHeight: worldH,
	}
}

func (r *CanvasRenderer) Frames() int { return r.frames }

// Resize replaces the canvas with one of the given cell size.
func (r *CanvasRenderer) Resize(cols, rows int) {
	if cols == r.Canvas.Width && rows == r.Canvas.Height {
		return
	}
	r.Canvas = NewCanvas(cols, rows)
}

func (r *CanvasRenderer) Render(stage *render.Container) error {
	r.Canvas.Clear()
	for _, g := range stage.Children() {
		if !g.Visible {
			continue
		}
		for _, cmd := range g.Commands() {
			r.draw(g, cmd)
		}
	}
	r.frames++
	return nil
}

// Project maps a world point to canvas dots.
func (r *CanvasRenderer) Project(p physics.Vec2) (int, int) {
	sx := float64(r.Canvas.DotsWide()-1) / r.WorldWidth
	sy := float64(r.Canvas.DotsHigh()-1) / r.WorldHeight
	x := int(math.Round(p.X * sx))
	y := int(math.Round((r.WorldHeight - p.Y) * sy))
	return x, y
}

func (r *CanvasRenderer) scale() float64 {
	return float64(r.Canvas.DotsWide()-1) / r.WorldWidth
}

func (r *CanvasRenderer) draw(g *render.Graphics, cmd render.Command) {
	switch cmd.Kind {
	case render.CmdLine:
		x0, y0 := r.Project(g.ToWorld(cmd.From))
		x1, y1 := r.Project(g.ToWorld(cmd.To))
		r.Canvas.DrawLine(x0, y0, x1, y1, cmd.Color)

	case render.CmdRect:
		corners := []physics.Vec2{
			cmd.From,
			{X: cmd.From.X + cmd.Size.X, Y: cmd.From.Y},
			cmd.From.Add(cmd.Size),
			{X: cmd.From.X, Y: cmd.From.Y + cmd.Size.Y},
		}
		r.polygon(g, corners, cmd)

	case render.CmdCircle:
		if cmd.Filled {
			cx, cy := r.Project(g.ToWorld(cmd.From))
			rad := int(math.Round(cmd.Radius * r.scale()))
			r.Canvas.FillCircle(cx, cy, rad, cmd.Color)
			return
		}
		pts := make([]physics.Vec2, circleSegments)
		for i := range pts {
			theta := 2 * math.Pi * float64(i) / circleSegments
			pts[i] = cmd.From.Add(physics.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}.Scale(cmd.Radius))
		}
		r.polygon(g, pts, cmd)
	}
}

func (r *CanvasRenderer) polygon(g *render.Graphics, local []physics.Vec2, cmd render.Command) {
	xs := make([]int, len(local))
	ys := make([]int, len(local))
	for i, p := range local {
		xs[i], ys[i] = r.Project(g.ToWorld(p))
	}
	if cmd.Filled {
		r.Canvas.FillConvex(xs, ys, cmd.Color)
		return
	}
	for i := range xs {
		j := (i + 1) % len(xs)
		r.Canvas.DrawLine(xs[i], ys[i], xs[j], ys[j], cmd.Color)
	}
}
