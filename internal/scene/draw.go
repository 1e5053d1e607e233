package scene

import (
	"log"

	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/render"
)

// Step advances the engine once and records the ball into the trail.
func (s *Scene) Step() {
	s.World.Step()
	s.Trail.Record(s.BallPosition())
}

// SyncGraphics copies every collider pose onto its bound graphic. Colliders
// without a graphic are logged and skipped; the count of those is returned.
func (s *Scene) SyncGraphics() int {
	missing := 0
	s.World.ForEachCollider(func(h physics.ColliderHandle) {
		gfx, ok := s.bodies[h]
		if !ok {
			log.Printf("scene: no graphics for collider %d", h)
			missing++
			return
		}
		t := s.World.Translation(h)
		gfx.SetPosition(t.X, t.Y)
		gfx.Rotation = s.World.Rotation(h)
	})
	return missing
}

// DebugLines redraws the engine's debug outlines into the overlay graphic.
// The overlay is empty while debugRender is off.
func (s *Scene) DebugLines() {
	s.Debug.Clear()
	if !s.Params.DebugRender {
		return
	}

	buf := s.World.DebugRender()
	for i := 0; i < buf.Lines(); i++ {
		v := buf.Vertices[i*4 : i*4+4]
		c := buf.Colors[i*8 : i*8+3]
		s.Debug.MoveTo(v[0], v[1]).LineTo(v[2], v[3])
		s.Debug.Stroke(render.StrokeStyle{Color: render.FloatRGB(c[0], c[1], c[2]), PixelLine: true})
	}
}

// Draw refreshes every graphic on the stage for the current engine state.
func (s *Scene) Draw() {
	s.SyncGraphics()
	s.Trail.Render()
	s.DebugLines()
}
