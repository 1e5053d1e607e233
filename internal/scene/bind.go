package scene

import "github.com/san-kum/battleputt/internal/tunables"

// Bind registers the scene's handlers for every engine-backed field. Each
// handler mutates live engine objects in place.
func (s *Scene) Bind(sync *tunables.Sync) {
	sync.Bind(tunables.WoodDensity, func(c tunables.Change) {
		v := c.Value
		s.Woods.Apply(s.World, WoodUpdate{Density: &v})
	})
	sync.Bind(tunables.WoodFriction, func(c tunables.Change) {
		v := c.Value
		s.Woods.Apply(s.World, WoodUpdate{Friction: &v})
	})
	sync.Bind(tunables.WoodRestitution, func(c tunables.Change) {
		v := c.Value
		s.Woods.Apply(s.World, WoodUpdate{Restitution: &v})
	})

	sync.Bind(tunables.RampAngle, func(c tunables.Change) {
		s.World.SetRotation(s.Ramp, c.Value)
	})

	position := func(tunables.Change) { s.placePlatformRamp() }
	sync.Bind(tunables.RampHeight, position)
	sync.Bind(tunables.RampOffset, position)
	sync.Bind(tunables.RampLocation, position)

	sync.Bind(tunables.BallRestitution, func(c tunables.Change) {
		s.World.SetRestitution(s.BallCollider, c.Value)
	})
	sync.Bind(tunables.BallMass, func(c tunables.Change) {
		s.World.SetMass(s.BallCollider, c.Value)
	})
}

// placePlatformRamp re-derives both translations from the current values of
// all three positional parameters.
func (s *Scene) placePlatformRamp() {
	s.World.SetTranslation(s.Platform, s.PlatformPosition())
	s.World.SetTranslation(s.Ramp, s.RampPosition())
}
