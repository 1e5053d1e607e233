package physics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jakecoffman/cp"
)

const (
	// DefaultTimestep is the fixed internal step advanced by every Step call.
	DefaultTimestep = 1.0 / 60.0

	defaultIterations = 10
	sleepThreshold    = 0.5
)

// cp numbers bodies from an unsynchronized package counter, so bodies are
// only created while holding newMu.
var newMu sync.Mutex

type body struct {
	cp   *cp.Body
	kind BodyKind
}

type collider struct {
	shape   *cp.Shape
	body    *cp.Body
	parent  *BodyHandle
	kind    BodyKind
	geom    Shape
	groups  InteractionGroups
	density float64
	mass    float64
}

// World is a 2D rigid-body world addressed through handles.
type World struct {
	space        *cp.Space
	gravity      Vec2
	timestep     float64
	bodies       map[BodyHandle]*body
	colliders    map[ColliderHandle]*collider
	nextBody     BodyHandle
	nextCollider ColliderHandle
	steps        int
}

func NewWorld(gravity Vec2) *World {
	newMu.Lock()
	space := cp.NewSpace()
	newMu.Unlock()

	space.SetGravity(toCP(gravity))
	space.Iterations = defaultIterations
	space.SleepTimeThreshold = sleepThreshold

	return &World{
		space:     space,
		gravity:   gravity,
		timestep:  DefaultTimestep,
		bodies:    make(map[BodyHandle]*body),
		colliders: make(map[ColliderHandle]*collider),
	}
}

func (w *World) Timestep() float64 { return w.timestep }
func (w *World) Steps() int         { return w.steps }

func (w *World) Gravity() Vec2 { return w.gravity }

// Step advances the simulation by one fixed timestep.
func (w *World) Step() {
	w.space.Step(w.timestep)
	w.steps++
}

func (w *World) CreateRigidBody(desc RigidBodyDesc) BodyHandle {
	newMu.Lock()
	defer newMu.Unlock()

	var b *cp.Body
	switch desc.Kind {
	case Fixed:
		b = cp.NewStaticBody()
	default:
		// mass and moment are accumulated from attached colliders
		b = cp.NewBody(0, 0)
	}
	b.SetPosition(toCP(desc.Translation))
	b.SetAngle(desc.Rotation)
	w.space.AddBody(b)

	h := w.nextBody
	w.nextBody++
	w.bodies[h] = &body{cp: b, kind: desc.Kind}
	return h
}

// CreateCollider attaches a collider to parent, or fixes it in world space
// when parent is nil.
func (w *World) CreateCollider(desc ColliderDesc, parent *BodyHandle) ColliderHandle {
	newMu.Lock()
	defer newMu.Unlock()

	c := &collider{
		geom:    desc.Shape,
		groups:  desc.Groups,
		density: desc.Material.Density,
		mass:    desc.Mass,
		kind:    Fixed,
	}

	if parent != nil {
		if pb, ok := w.bodies[*parent]; ok {
			p := *parent
			c.body = pb.cp
			c.parent = &p
			c.kind = pb.kind
		}
	}
	if c.body == nil {
		c.body = cp.NewStaticBody()
		c.body.SetPosition(toCP(desc.Translation))
		c.body.SetAngle(desc.Rotation)
		w.space.AddBody(c.body)
	}

	switch desc.Shape.Kind {
	case ShapeBall:
		c.shape = cp.NewCircle(c.body, desc.Shape.Radius, cp.Vector{})
	default:
		c.shape = cp.NewBox(c.body, desc.Shape.Width, desc.Shape.Height, desc.Shape.Radius)
	}
	c.shape.SetFriction(desc.Material.Friction)
	c.shape.SetElasticity(desc.Material.Restitution)
	c.shape.SetFilter(toFilter(desc.Groups))
	w.space.AddShape(c.shape)
	w.applyMass(c)

	h := w.nextCollider
	w.nextCollider++
	w.colliders[h] = c
	return h
}

func (w *World) applyMass(c *collider) {
	if c.kind != Dynamic {
		return
	}
	if c.mass > 0 {
		c.shape.SetMass(c.mass)
		return
	}
	if c.density > 0 {
		c.shape.SetDensity(c.density)
	}
}

func (w *World) lookupCollider(h ColliderHandle) (*collider, error) {
	c, ok := w.colliders[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCollider, h)
	}
	return c, nil
}

func (w *World) lookupBody(h BodyHandle) (*body, error) {
	b, ok := w.bodies[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, h)
	}
	return b, nil
}

// ForEachCollider visits colliders in creation order.
func (w *World) ForEachCollider(fn func(ColliderHandle)) {
	handles := make([]ColliderHandle, 0, len(w.colliders))
	for h := range w.colliders {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		fn(h)
	}
}

func (w *World) NumColliders() int { return len(w.colliders) }

func (w *World) ColliderShape(h ColliderHandle) (Shape, error) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return Shape{}, err
	}
	return c.geom, nil
}

func (w *World) ColliderParent(h ColliderHandle) (BodyHandle, bool) {
	c, ok := w.colliders[h]
	if !ok || c.parent == nil {
		return 0, false
	}
	return *c.parent, true
}

// Translation returns the world-space position of a collider.
func (w *World) Translation(h ColliderHandle) Vec2 {
	c, err := w.lookupCollider(h)
	if err != nil {
		return Vec2{}
	}
	return fromCP(c.body.Position())
}

func (w *World) Rotation(h ColliderHandle) float64 {
	c, err := w.lookupCollider(h)
	if err != nil {
		return 0
	}
	return c.body.Angle()
}

// SetTranslation moves a collider in place. Attached colliders move their
// parent body.
func (w *World) SetTranslation(h ColliderHandle, v Vec2) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return
	}
	c.body.SetPosition(toCP(v))
	w.reindex(c)
}

func (w *World) SetRotation(h ColliderHandle, angle float64) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return
	}
	c.body.SetAngle(angle)
	w.reindex(c)
}

func (w *World) reindex(c *collider) {
	if c.kind == Dynamic {
		c.body.Activate()
		return
	}
	w.reinsert(c.shape)
}

// reinsert moves a static shape to its body's current pose in the static
// index. Re-adding also wakes bodies resting on it.
func (w *World) reinsert(shape *cp.Shape) {
	w.space.RemoveShape(shape)
	w.space.AddShape(shape)
}

func (w *World) SetDensity(h ColliderHandle, density float64) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return
	}
	c.density = density
	c.mass = 0
	w.applyMass(c)
}

func (w *World) Density(h ColliderHandle) float64 {
	c, err := w.lookupCollider(h)
	if err != nil {
		return 0
	}
	return c.density
}

// SetMass overrides the density-derived mass of a collider.
func (w *World) SetMass(h ColliderHandle, mass float64) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return
	}
	c.mass = mass
	w.applyMass(c)
}

func (w *World) Mass(h ColliderHandle) float64 {
	c, err := w.lookupCollider(h)
	if err != nil {
		return 0
	}
	if c.kind != Dynamic {
		return 0
	}
	return c.body.Mass()
}

func (w *World) SetFriction(h ColliderHandle, friction float64) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return
	}
	c.shape.SetFriction(friction)
}

func (w *World) Friction(h ColliderHandle) float64 {
	c, err := w.lookupCollider(h)
	if err != nil {
		return 0
	}
	return c.shape.Friction()
}

func (w *World) SetRestitution(h ColliderHandle, restitution float64) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return
	}
	c.shape.SetElasticity(restitution)
}

func (w *World) Restitution(h ColliderHandle) float64 {
	c, err := w.lookupCollider(h)
	if err != nil {
		return 0
	}
	return c.shape.Elasticity()
}

func (w *World) SetInteractionGroups(h ColliderHandle, groups InteractionGroups) {
	c, err := w.lookupCollider(h)
	if err != nil {
		return
	}
	c.groups = groups
	c.shape.SetFilter(toFilter(groups))
}

func (w *World) InteractionGroups(h ColliderHandle) InteractionGroups {
	c, err := w.lookupCollider(h)
	if err != nil {
		return 0
	}
	return c.groups
}

// ApplyImpulse applies an instantaneous impulse at the body's center.
func (w *World) ApplyImpulse(h BodyHandle, impulse Vec2, wake bool) {
	b, err := w.lookupBody(h)
	if err != nil || b.kind != Dynamic {
		return
	}
	if wake {
		b.cp.Activate()
	}
	b.cp.ApplyImpulseAtWorldPoint(toCP(impulse), b.cp.Position())
}

func (w *World) ResetForces(h BodyHandle, wake bool) {
	b, err := w.lookupBody(h)
	if err != nil || b.kind != Dynamic {
		return
	}
	b.cp.SetForce(cp.Vector{})
	if wake {
		b.cp.Activate()
	}
}

func (w *World) ResetTorques(h BodyHandle, wake bool) {
	b, err := w.lookupBody(h)
	if err != nil || b.kind != Dynamic {
		return
	}
	b.cp.SetTorque(0)
	if wake {
		b.cp.Activate()
	}
}

func (w *World) SetLinvel(h BodyHandle, v Vec2, wake bool) {
	b, err := w.lookupBody(h)
	if err != nil || b.kind != Dynamic {
		return
	}
	b.cp.SetVelocity(v.X, v.Y)
	if wake {
		b.cp.Activate()
	}
}

func (w *World) Linvel(h BodyHandle) Vec2 {
	b, err := w.lookupBody(h)
	if err != nil {
		return Vec2{}
	}
	return fromCP(b.cp.Velocity())
}

func (w *World) SetAngvel(h BodyHandle, omega float64, wake bool) {
	b, err := w.lookupBody(h)
	if err != nil || b.kind != Dynamic {
		return
	}
	b.cp.SetAngularVelocity(omega)
	if wake {
		b.cp.Activate()
	}
}

func (w *World) Angvel(h BodyHandle) float64 {
	b, err := w.lookupBody(h)
	if err != nil {
		return 0
	}
	return b.cp.AngularVelocity()
}

func (w *World) SetBodyTranslation(h BodyHandle, v Vec2, wake bool) {
	b, err := w.lookupBody(h)
	if err != nil {
		return
	}
	b.cp.SetPosition(toCP(v))
	if b.kind != Dynamic {
		for _, c := range w.colliders {
			if c.body == b.cp {
				w.reinsert(c.shape)
			}
		}
		return
	}
	if wake {
		b.cp.Activate()
	}
}

func (w *World) BodyTranslation(h BodyHandle) Vec2 {
	b, err := w.lookupBody(h)
	if err != nil {
		return Vec2{}
	}
	return fromCP(b.cp.Position())
}

func (w *World) IsSleeping(h BodyHandle) bool {
	b, err := w.lookupBody(h)
	if err != nil || b.kind != Dynamic {
		return false
	}
	return b.cp.IsSleeping()
}

func toCP(v Vec2) cp.Vector   { return cp.Vector{X: v.X, Y: v.Y} }
func fromCP(v cp.Vector) Vec2 { return Vec2{X: v.X, Y: v.Y} }

func toFilter(g InteractionGroups) cp.ShapeFilter {
	return cp.NewShapeFilter(0, uint(g.Memberships()), uint(g.Filter()))
}
