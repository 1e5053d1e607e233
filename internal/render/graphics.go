package render

import "github.com/san-kum/battleputt/internal/physics"

type Color uint32

const (
	White Color = 0xffffff
	Black Color = 0x000000
)

func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// FloatRGB builds a color from components in [0, 1].
func FloatRGB(r, g, b float32) Color {
	return Color(channel(r))<<16 | Color(channel(g))<<8 | Color(channel(b))
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

type CommandKind int

const (
	CmdLine CommandKind = iota
	CmdRect
	CmdCircle
)

// Command is one recorded drawing operation. Lines use From/To; rectangles
// use From as the lower-left corner and Size; circles use From as center and
// Radius. PixelLine strokes keep a one pixel width regardless of zoom.
type Command struct {
	Kind      CommandKind
	From, To  physics.Vec2
	Size      physics.Vec2
	Radius    float64
	Color     Color
	Filled    bool
	PixelLine bool
}

type StrokeStyle struct {
	Color     Color
	PixelLine bool
}

// Graphics is a drawable primitive. Path and shape calls stay pending until
// Stroke or Fill commits them with a style.
type Graphics struct {
	Position physics.Vec2
	Rotation float64
	Visible  bool

	cmds    []Command
	pen     physics.Vec2
	path    [][2]physics.Vec2
	pending []Command
}

func NewGraphics() *Graphics {
	return &Graphics{Visible: true}
}

func (g *Graphics) Clear() *Graphics {
	g.cmds = g.cmds[:0]
	g.path = g.path[:0]
	g.pending = g.pending[:0]
	return g
}

func (g *Graphics) MoveTo(x, y float64) *Graphics {
	g.pen = physics.Vec2{X: x, Y: y}
	return g
}

func (g *Graphics) LineTo(x, y float64) *Graphics {
	to := physics.Vec2{X: x, Y: y}
	g.path = append(g.path, [2]physics.Vec2{g.pen, to})
	g.pen = to
	return g
}

func (g *Graphics) Rect(x, y, w, h float64) *Graphics {
	g.pending = append(g.pending, Command{
		Kind: CmdRect,
		From: physics.Vec2{X: x, Y: y},
		Size: physics.Vec2{X: w, Y: h},
	})
	return g
}

func (g *Graphics) Circle(cx, cy, r float64) *Graphics {
	g.pending = append(g.pending, Command{
		Kind:   CmdCircle,
		From:   physics.Vec2{X: cx, Y: cy},
		Radius: r,
	})
	return g
}

// Stroke commits the pending path as line segments and the pending shapes as
// outlines.
func (g *Graphics) Stroke(s StrokeStyle) *Graphics {
	for _, seg := range g.path {
		g.cmds = append(g.cmds, Command{
			Kind:      CmdLine,
			From:      seg[0],
			To:        seg[1],
			Color:     s.Color,
			PixelLine: s.PixelLine,
		})
	}
	for _, c := range g.pending {
		c.Color = s.Color
		c.PixelLine = s.PixelLine
		g.cmds = append(g.cmds, c)
	}
	g.path = g.path[:0]
	g.pending = g.pending[:0]
	return g
}

// Fill commits the pending shapes as filled.
func (g *Graphics) Fill(c Color) *Graphics {
	for _, p := range g.pending {
		p.Color = c
		p.Filled = true
		g.cmds = append(g.cmds, p)
	}
	g.pending = g.pending[:0]
	return g
}

func (g *Graphics) SetPosition(x, y float64) {
	g.Position = physics.Vec2{X: x, Y: y}
}

func (g *Graphics) Commands() []Command { return g.cmds }

// Count returns the number of committed commands of the given kind.
func (g *Graphics) Count(kind CommandKind) int {
	n := 0
	for _, c := range g.cmds {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// ToWorld maps a point from the graphic's local frame to world space.
func (g *Graphics) ToWorld(p physics.Vec2) physics.Vec2 {
	return p.Rotate(g.Rotation).Add(g.Position)
}
