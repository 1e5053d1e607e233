package physics

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }
func (v Vec2) String() string       { return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y) }

func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

type BodyHandle uint32

type ColliderHandle uint32

type BodyKind int

const (
	Dynamic BodyKind = iota
	Fixed
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

type ShapeKind int

const (
	ShapeBall ShapeKind = iota
	ShapeCuboid
)

// Shape describes collider geometry. Width and Height are full extents;
// Radius is the ball radius or, for cuboids, the corner rounding.
type Shape struct {
	Kind          ShapeKind
	Width, Height float64
	Radius        float64
}

func Ball(radius float64) Shape {
	return Shape{Kind: ShapeBall, Radius: radius}
}

func Cuboid(w, h float64) Shape {
	return Shape{Kind: ShapeCuboid, Width: w, Height: h}
}

func RoundCuboid(w, h, radius float64) Shape {
	return Shape{Kind: ShapeCuboid, Width: w, Height: h, Radius: radius}
}

type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

// InteractionGroups packs collision memberships in the upper 16 bits and the
// filter in the lower 16 bits. Two colliders interact only when each one's
// memberships intersect the other's filter.
type InteractionGroups uint32

const AllGroups InteractionGroups = 0xffffffff

func NewInteractionGroups(memberships, filter uint16) InteractionGroups {
	return InteractionGroups(uint32(memberships)<<16 | uint32(filter))
}

func (g InteractionGroups) Memberships() uint16 { return uint16(g >> 16) }
func (g InteractionGroups) Filter() uint16      { return uint16(g) }

func (g InteractionGroups) Interacts(o InteractionGroups) bool {
	return g.Memberships()&o.Filter() != 0 && o.Memberships()&g.Filter() != 0
}

type RigidBodyDesc struct {
	Kind        BodyKind
	Translation Vec2
	Rotation    float64
}

// ColliderDesc describes a collider. Translation and Rotation only apply to
// colliders without a parent body; attached colliders follow their body.
// A positive Mass overrides the mass derived from Material.Density.
type ColliderDesc struct {
	Shape       Shape
	Material    Material
	Mass        float64
	Translation Vec2
	Rotation    float64
	Groups      InteractionGroups
}

func NewColliderDesc(shape Shape) ColliderDesc {
	return ColliderDesc{
		Shape:    shape,
		Material: Material{Density: 1.0, Friction: 0.5},
		Groups:   AllGroups,
	}
}

// DebugBuffers holds line geometry for debug drawing: four vertex components
// (x1, y1, x2, y2) and eight RGBA color components per line.
type DebugBuffers struct {
	Vertices []float64
	Colors   []float32
}

func (d DebugBuffers) Lines() int { return len(d.Vertices) / 4 }
