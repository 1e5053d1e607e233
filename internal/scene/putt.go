package scene

import "github.com/san-kum/battleputt/internal/physics"

type PuttState int

const (
	AtRest PuttState = iota
	InFlight
)

func (p PuttState) String() string {
	switch p {
	case AtRest:
		return "at rest"
	case InFlight:
		return "in flight"
	default:
		return "unknown"
	}
}

func (s *Scene) State() PuttState { return s.putt }

// Held reports whether the putt key is currently down.
func (s *Scene) Held() bool { return s.held }

// KeyDown applies one impulse per press. Repeated key-down events while the
// key is held are ignored.
func (s *Scene) KeyDown() {
	if s.held {
		return
	}
	s.held = true

	impulse := physics.Vec2{X: -s.Params.ForceOfPutt * s.opts.PuttScale}
	s.World.ApplyImpulse(s.Ball, impulse, true)
	s.putt = InFlight
}

// KeyUp ends a press. With reset-on-release the ball is stopped and moved
// back to the launch point, and the trail is cleared.
func (s *Scene) KeyUp() {
	if !s.held {
		return
	}
	s.held = false
	if s.opts.ResetOnRelease {
		s.ResetBall()
	}
}

// ResetBall stops the ball and returns it to the launch point derived from
// the current ramp parameters.
func (s *Scene) ResetBall() {
	w := s.World
	w.ResetForces(s.Ball, true)
	w.ResetTorques(s.Ball, true)
	w.SetAngvel(s.Ball, 0, true)
	w.SetLinvel(s.Ball, physics.Vec2{}, true)
	w.SetBodyTranslation(s.Ball, s.Launch(), true)
	s.Trail.Reset()
	s.putt = AtRest
}
