// Package scene assembles the minigolf course in a physics world, binds the
// tunable parameters to the engine objects they control, and runs the putt
// state machine.
package scene

import (
	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/render"
	"github.com/san-kum/battleputt/internal/tracer"
	"github.com/san-kum/battleputt/internal/tunables"
)

const (
	WorldWidth     = 1000.0
	WorldHeight    = 1000.0
	BallSize       = 4.0
	WoodWidth      = 5.0
	WoodRounding   = 0.5
	RampLength     = 100.0
	PlatformLength = 100.0
	RampXOffset    = 75.0
	WallThickness  = 0.2

	// PuttScale converts forceOfPutt into an impulse magnitude.
	PuttScale = 10.0

	groundRestitution = 0.9
)

const (
	WoodColor  render.Color = 0x8b4513
	BallColor  render.Color = 0xffff00
	ArenaColor render.Color = 0x3a5f3a
)

// Gravity points down the y axis.
var Gravity = physics.Vec2{X: 0, Y: -90.81}

// WoodGroups are the interaction groups of every plank. The planks collide
// with the ball.
var WoodGroups = physics.InteractionGroups(0x000d0004)

// World is the subset of the physics engine the scene drives.
type World interface {
	CreateRigidBody(desc physics.RigidBodyDesc) physics.BodyHandle
	CreateCollider(desc physics.ColliderDesc, parent *physics.BodyHandle) physics.ColliderHandle
	ForEachCollider(fn func(physics.ColliderHandle))
	Step()

	Translation(h physics.ColliderHandle) physics.Vec2
	Rotation(h physics.ColliderHandle) float64
	SetTranslation(h physics.ColliderHandle, v physics.Vec2)
	SetRotation(h physics.ColliderHandle, angle float64)
	SetDensity(h physics.ColliderHandle, density float64)
	SetFriction(h physics.ColliderHandle, friction float64)
	SetRestitution(h physics.ColliderHandle, restitution float64)
	SetMass(h physics.ColliderHandle, mass float64)

	ApplyImpulse(h physics.BodyHandle, impulse physics.Vec2, wake bool)
	ResetForces(h physics.BodyHandle, wake bool)
	ResetTorques(h physics.BodyHandle, wake bool)
	SetLinvel(h physics.BodyHandle, v physics.Vec2, wake bool)
	SetAngvel(h physics.BodyHandle, omega float64, wake bool)
	SetBodyTranslation(h physics.BodyHandle, v physics.Vec2, wake bool)
	BodyTranslation(h physics.BodyHandle) physics.Vec2
	Linvel(h physics.BodyHandle) physics.Vec2

	DebugRender() physics.DebugBuffers
}

var _ World = (*physics.World)(nil)

// NewWorld creates an engine world with the course gravity.
func NewWorld() *physics.World {
	return physics.NewWorld(Gravity)
}

type Options struct {
	// TrailPoints bounds the trail; zero means tracer.MaxPoints.
	TrailPoints int

	// PuttScale multiplies forceOfPutt; zero means PuttScale.
	PuttScale float64

	// ResetOnRelease sends the ball back to the launch point on key-up.
	ResetOnRelease bool
}

func DefaultOptions() Options {
	return Options{
		TrailPoints:    tracer.MaxPoints,
		PuttScale:      PuttScale,
		ResetOnRelease: true,
	}
}

// Scene owns every engine object of the course and the graphics bound to
// them.
type Scene struct {
	World  World
	Params *tunables.Params
	Trail  *tracer.Tracer
	Stage  *render.Container
	Woods  *WoodRegistry
	Debug  *render.Graphics

	Ground    physics.ColliderHandle
	LeftWall  physics.ColliderHandle
	RightWall physics.ColliderHandle
	Ceiling   physics.ColliderHandle
	Platform  physics.ColliderHandle
	Ramp      physics.ColliderHandle

	Ball         physics.BodyHandle
	BallCollider physics.ColliderHandle

	opts   Options
	bodies map[physics.ColliderHandle]*render.Graphics
	putt   PuttState
	held   bool
}

// Build creates the arena, the platform and ramp, and the ball, plus one
// graphic per collider. params is read live by every later edit and reset.
func Build(world World, params *tunables.Params, opts Options) *Scene {
	if opts.PuttScale == 0 {
		opts.PuttScale = PuttScale
	}
	s := &Scene{
		World:  world,
		Params: params,
		Trail:  tracer.New(opts.TrailPoints),
		Stage:  render.NewContainer(),
		Woods:  NewWoodRegistry(),
		Debug:  render.NewGraphics(),
		opts:   opts,
		bodies: make(map[physics.ColliderHandle]*render.Graphics),
	}

	s.buildArena()
	s.buildPlatformRamp()
	s.buildBall()

	s.Stage.AddChild(s.Trail.Graphics())
	s.Stage.AddChild(s.Debug)
	s.SyncGraphics()
	return s
}

func (s *Scene) buildArena() {
	ground := physics.NewColliderDesc(physics.Cuboid(WorldWidth, WallThickness))
	ground.Translation = physics.Vec2{X: WorldWidth / 2, Y: 0}
	ground.Material.Restitution = groundRestitution
	s.Ground = s.addFixed(ground, ArenaColor)

	wall := physics.NewColliderDesc(physics.Cuboid(WallThickness, WorldHeight))
	wall.Translation = physics.Vec2{X: 0, Y: WorldHeight / 2}
	s.LeftWall = s.addFixed(wall, ArenaColor)

	wall.Translation = physics.Vec2{X: WorldWidth, Y: WorldHeight / 2}
	s.RightWall = s.addFixed(wall, ArenaColor)

	ceiling := physics.NewColliderDesc(physics.Cuboid(WorldWidth, WallThickness))
	ceiling.Translation = physics.Vec2{X: WorldWidth / 2, Y: WorldHeight}
	s.Ceiling = s.addFixed(ceiling, ArenaColor)
}

func (s *Scene) buildPlatformRamp() {
	p := s.Params
	s.Platform = s.createWood(PlatformLength, WoodWidth, 0, s.PlatformPosition())
	s.Ramp = s.createWood(RampLength, WoodWidth, p.RampAngle, s.RampPosition())
}

// createWood adds a fixed wood plank and registers it for material edits.
func (s *Scene) createWood(length, width, angle float64, at physics.Vec2) physics.ColliderHandle {
	p := s.Params
	desc := physics.NewColliderDesc(physics.RoundCuboid(length, width, WoodRounding))
	desc.Material = physics.Material{
		Density:     p.WoodDensity,
		Friction:    p.WoodFriction,
		Restitution: p.WoodRestitution,
	}
	desc.Translation = at
	desc.Rotation = angle
	desc.Groups = WoodGroups

	h := s.addFixed(desc, WoodColor)
	s.Woods.Add(h)
	return h
}

func (s *Scene) addFixed(desc physics.ColliderDesc, color render.Color) physics.ColliderHandle {
	h := s.World.CreateCollider(desc, nil)
	w, hh := desc.Shape.Width, desc.Shape.Height
	gfx := render.NewGraphics().Rect(-w/2, -hh/2, w, hh).Fill(color)
	s.bind(h, gfx)
	return h
}

func (s *Scene) buildBall() {
	s.Ball = s.World.CreateRigidBody(physics.RigidBodyDesc{
		Kind:        physics.Dynamic,
		Translation: s.Launch(),
	})

	desc := physics.NewColliderDesc(physics.Ball(BallSize))
	desc.Material.Restitution = s.Params.BallRestitution
	desc.Mass = s.Params.BallMass
	s.BallCollider = s.World.CreateCollider(desc, &s.Ball)

	gfx := render.NewGraphics().Circle(0, 0, BallSize).Fill(BallColor)
	s.bind(s.BallCollider, gfx)
}

func (s *Scene) bind(h physics.ColliderHandle, gfx *render.Graphics) {
	s.bodies[h] = gfx
	s.Stage.AddChild(gfx)
}

// Graphic returns the graphic bound to a collider.
func (s *Scene) Graphic(h physics.ColliderHandle) (*render.Graphics, bool) {
	gfx, ok := s.bodies[h]
	return gfx, ok
}

func (s *Scene) PlatformPosition() physics.Vec2 {
	return physics.Vec2{X: s.Params.RampLocation, Y: s.Params.RampHeight}
}

func (s *Scene) RampPosition() physics.Vec2 {
	p := s.Params
	return physics.Vec2{X: p.RampLocation - RampXOffset, Y: p.RampHeight + p.RampOffset}
}

// Launch is the resting point of the ball on the platform.
func (s *Scene) Launch() physics.Vec2 {
	p := s.Params
	return physics.Vec2{
		X: p.RampLocation + PlatformLength/4,
		Y: p.RampHeight + WoodWidth/2 + BallSize,
	}
}

func (s *Scene) BallPosition() physics.Vec2 {
	return s.World.BodyTranslation(s.Ball)
}

func (s *Scene) BallVelocity() physics.Vec2 {
	return s.World.Linvel(s.Ball)
}
