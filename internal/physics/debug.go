package physics

import "math"

const circleSegments = 16

var (
	colorFixed    = [4]float32{0.55, 0.6, 0.75, 1}
	colorDynamic  = [4]float32{1, 0.65, 0.2, 1}
	colorSleeping = [4]float32{0.45, 0.45, 0.45, 1}
)

// DebugRender returns outline geometry for every collider in creation order.
// Balls get a radius line so their rotation is visible.
func (w *World) DebugRender() DebugBuffers {
	var out DebugBuffers
	w.ForEachCollider(func(h ColliderHandle) {
		c := w.colliders[h]
		pos := fromCP(c.body.Position())
		angle := c.body.Angle()

		color := colorFixed
		if c.kind == Dynamic {
			color = colorDynamic
			if c.body.IsSleeping() {
				color = colorSleeping
			}
		}

		for _, seg := range outline(c.geom) {
			a := seg[0].Rotate(angle).Add(pos)
			b := seg[1].Rotate(angle).Add(pos)
			out.Vertices = append(out.Vertices, a.X, a.Y, b.X, b.Y)
			out.Colors = append(out.Colors, color[:]...)
			out.Colors = append(out.Colors, color[:]...)
		}
	})
	return out
}

func outline(s Shape) [][2]Vec2 {
	switch s.Kind {
	case ShapeBall:
		segs := make([][2]Vec2, 0, circleSegments+1)
		prev := Vec2{s.Radius, 0}
		for i := 1; i <= circleSegments; i++ {
			theta := 2 * math.Pi * float64(i) / circleSegments
			next := Vec2{s.Radius * math.Cos(theta), s.Radius * math.Sin(theta)}
			segs = append(segs, [2]Vec2{prev, next})
			prev = next
		}
		return append(segs, [2]Vec2{{}, {s.Radius, 0}})
	default:
		hw, hh := s.Width/2+s.Radius, s.Height/2+s.Radius
		corners := []Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
		segs := make([][2]Vec2, 0, 4)
		for i := range corners {
			segs = append(segs, [2]Vec2{corners[i], corners[(i+1)%4]})
		}
		return segs
	}
}
