// Package tracer records a bounded history of positions and draws it as a
// connected polyline.
package tracer

import (
	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/render"
)

// MaxPoints is the default trail capacity.
const MaxPoints = 1000

type Position = physics.Vec2

var trailStroke = render.StrokeStyle{Color: render.White, PixelLine: true}

// Tracer is a fixed-capacity FIFO of positions. When full, recording a new
// position drops the oldest one.
type Tracer struct {
	buf   []Position
	head  int
	count int
	gfx   *render.Graphics
}

func New(capacity int) *Tracer {
	if capacity <= 0 {
		capacity = MaxPoints
	}
	return &Tracer{
		buf: make([]Position, capacity),
		gfx: render.NewGraphics(),
	}
}

func (t *Tracer) Capacity() int              { return len(t.buf) }
func (t *Tracer) Len() int                   { return t.count }
func (t *Tracer) Graphics() *render.Graphics { return t.gfx }

func (t *Tracer) Record(p Position) {
	idx := (t.head + t.count) % len(t.buf)
	t.buf[idx] = p
	if t.count < len(t.buf) {
		t.count++
		return
	}
	t.head = (t.head + 1) % len(t.buf)
}

func (t *Tracer) Reset() {
	t.head = 0
	t.count = 0
}

// At returns the i-th oldest recorded position.
func (t *Tracer) At(i int) Position {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Points returns a copy of the trail, oldest first.
func (t *Tracer) Points() []Position {
	out := make([]Position, t.count)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// Last returns the most recent position.
func (t *Tracer) Last() (Position, bool) {
	if t.count == 0 {
		return Position{}, false
	}
	return t.At(t.count - 1), true
}

// Render redraws the trail into its graphic, one segment per consecutive
// pair of points.
func (t *Tracer) Render() {
	t.gfx.Clear()
	for i := 0; i+1 < t.count; i++ {
		a, b := t.At(i), t.At(i+1)
		t.gfx.MoveTo(a.X, a.Y).LineTo(b.X, b.Y)
	}
	t.gfx.Stroke(trailStroke)
}
