package scene

import "github.com/san-kum/battleputt/internal/physics"

// WoodRegistry tracks every wood collider of a scene so material edits reach
// planks created after startup too.
type WoodRegistry struct {
	handles []physics.ColliderHandle
}

func NewWoodRegistry() *WoodRegistry {
	return &WoodRegistry{}
}

func (r *WoodRegistry) Add(h physics.ColliderHandle) {
	r.handles = append(r.handles, h)
}

func (r *WoodRegistry) Len() int { return len(r.handles) }

func (r *WoodRegistry) Handles() []physics.ColliderHandle {
	out := make([]physics.ColliderHandle, len(r.handles))
	copy(out, r.handles)
	return out
}

// WoodUpdate carries the material properties to change. Nil fields are left
// alone.
type WoodUpdate struct {
	Density     *float64
	Friction    *float64
	Restitution *float64
}

// Apply pushes the update to every registered wood collider.
func (r *WoodRegistry) Apply(w World, u WoodUpdate) {
	for _, h := range r.handles {
		if u.Restitution != nil {
			w.SetRestitution(h, *u.Restitution)
		}
		if u.Friction != nil {
			w.SetFriction(h, *u.Friction)
		}
		if u.Density != nil {
			w.SetDensity(h, *u.Density)
		}
	}
}

// AddWood creates an extra plank with the current wood material.
func (s *Scene) AddWood(length, angle float64, at physics.Vec2) physics.ColliderHandle {
	return s.createWood(length, WoodWidth, angle, at)
}
