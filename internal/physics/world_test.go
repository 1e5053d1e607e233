package physics

import (
	"errors"
	"math"
	"testing"
)

func newTestWorld() *World {
	return NewWorld(Vec2{0, -90.81})
}

func addBall(w *World, at Vec2, mass float64) (BodyHandle, ColliderHandle) {
	b := w.CreateRigidBody(RigidBodyDesc{Kind: Dynamic, Translation: at})
	desc := NewColliderDesc(Ball(4))
	desc.Mass = mass
	return b, w.CreateCollider(desc, &b)
}

func TestHandlesAreSequential(t *testing.T) {
	w := newTestWorld()

	ground := w.CreateCollider(NewColliderDesc(Cuboid(1000, 0.2)), nil)
	_, ball := addBall(w, Vec2{0, 100}, 1)

	if ground != 0 || ball != 1 {
		t.Errorf("expected handles 0 and 1, got %d and %d", ground, ball)
	}
	if w.NumColliders() != 2 {
		t.Errorf("expected 2 colliders, got %d", w.NumColliders())
	}
}

func TestBallFallsUnderGravity(t *testing.T) {
	w := newTestWorld()
	_, ball := addBall(w, Vec2{0, 100}, 1)

	for i := 0; i < 30; i++ {
		w.Step()
	}

	if y := w.Translation(ball).Y; y >= 100 {
		t.Errorf("expected ball to fall below 100, got %.3f", y)
	}
	if w.Steps() != 30 {
		t.Errorf("expected 30 steps, got %d", w.Steps())
	}
}

func TestApplyImpulseChangesVelocity(t *testing.T) {
	w := NewWorld(Vec2{})
	b, _ := addBall(w, Vec2{0, 0}, 10)

	w.ApplyImpulse(b, Vec2{-50, 0}, true)

	v := w.Linvel(b)
	if math.Abs(v.X-(-5)) > 1e-9 {
		t.Errorf("expected vx -5 after impulse on mass 10, got %.6f", v.X)
	}
	if v.Y != 0 {
		t.Errorf("expected vy 0, got %.6f", v.Y)
	}
}

func TestSetMassInPlace(t *testing.T) {
	w := newTestWorld()
	_, ball := addBall(w, Vec2{}, 2)

	if m := w.Mass(ball); math.Abs(m-2) > 1e-9 {
		t.Fatalf("expected mass 2, got %f", m)
	}

	w.SetMass(ball, 7)
	if m := w.Mass(ball); math.Abs(m-7) > 1e-9 {
		t.Errorf("expected mass 7, got %f", m)
	}
}

func TestFixedColliderMovesInPlace(t *testing.T) {
	w := newTestWorld()
	h := w.CreateCollider(NewColliderDesc(RoundCuboid(100, 5, 5)), nil)

	w.SetTranslation(h, Vec2{10, 20})
	w.SetRotation(h, 0.5)

	if got := w.Translation(h); got != (Vec2{10, 20}) {
		t.Errorf("expected translation (10, 20), got %v", got)
	}
	if got := w.Rotation(h); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected rotation 0.5, got %f", got)
	}
	if w.NumColliders() != 1 {
		t.Errorf("moving a collider must not create new ones, got %d", w.NumColliders())
	}
}

func TestFixedColliderMoveCarriesCollision(t *testing.T) {
	tests := []struct {
		name string
		move func(w *World, h ColliderHandle)
	}{
		{name: "raised", move: func(w *World, h ColliderHandle) {
			w.SetTranslation(h, Vec2{0, 200})
		}},
		{name: "rotated then raised", move: func(w *World, h ColliderHandle) {
			w.SetRotation(h, 0.01)
			w.SetTranslation(h, Vec2{0, 200})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			plank := w.CreateCollider(NewColliderDesc(RoundCuboid(100, 5, 0.5)), nil)
			tt.move(w, plank)

			_, ball := addBall(w, Vec2{0, 215}, 1)
			for i := 0; i < 120; i++ {
				w.Step()
			}

			if y := w.Translation(ball).Y; y < 195 {
				t.Errorf("ball fell through the moved plank: y=%.2f", y)
			}
		})
	}
}

func TestFixedColliderMoveWakesRestingBall(t *testing.T) {
	w := newTestWorld()
	plank := w.CreateCollider(NewColliderDesc(RoundCuboid(100, 5, 0.5)), nil)
	w.SetTranslation(plank, Vec2{0, 200})
	_, ball := addBall(w, Vec2{0, 207}, 1)

	for i := 0; i < 240; i++ {
		w.Step()
	}
	rest := w.Translation(ball).Y

	w.SetTranslation(plank, Vec2{0, 100})
	for i := 0; i < 240; i++ {
		w.Step()
	}

	if y := w.Translation(ball).Y; y > 120 || y < 95 {
		t.Errorf("expected ball to follow the plank down from %.2f to about 107, got %.2f", rest, y)
	}
}

func TestConcurrentWorldConstruction(t *testing.T) {
	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			w := newTestWorld()
			w.CreateCollider(NewColliderDesc(Cuboid(1000, 0.2)), nil)
			addBall(w, Vec2{0, 50}, 1)
			for j := 0; j < 10; j++ {
				w.Step()
			}
			done <- w.NumColliders()
		}()
	}
	for i := 0; i < 8; i++ {
		if n := <-done; n != 2 {
			t.Errorf("expected 2 colliders, got %d", n)
		}
	}
}

func TestMaterialSetters(t *testing.T) {
	w := newTestWorld()
	h := w.CreateCollider(NewColliderDesc(Cuboid(10, 10)), nil)

	w.SetFriction(h, 0.8)
	w.SetRestitution(h, 0.3)
	w.SetDensity(h, 4)

	if w.Friction(h) != 0.8 {
		t.Errorf("friction = %f, want 0.8", w.Friction(h))
	}
	if w.Restitution(h) != 0.3 {
		t.Errorf("restitution = %f, want 0.3", w.Restitution(h))
	}
	if w.Density(h) != 4 {
		t.Errorf("density = %f, want 4", w.Density(h))
	}
}

func TestResetBodyState(t *testing.T) {
	w := newTestWorld()
	b, _ := addBall(w, Vec2{0, 50}, 1)

	w.SetLinvel(b, Vec2{30, 40}, true)
	w.SetAngvel(b, 3, true)
	w.Step()

	w.ResetForces(b, true)
	w.ResetTorques(b, true)
	w.SetLinvel(b, Vec2{}, true)
	w.SetAngvel(b, 0, true)
	w.SetBodyTranslation(b, Vec2{5, 5}, true)

	if v := w.Linvel(b); v != (Vec2{}) {
		t.Errorf("expected zero velocity, got %v", v)
	}
	if w.Angvel(b) != 0 {
		t.Errorf("expected zero angular velocity, got %f", w.Angvel(b))
	}
	if p := w.BodyTranslation(b); p != (Vec2{5, 5}) {
		t.Errorf("expected (5, 5), got %v", p)
	}
}

func TestUnknownHandles(t *testing.T) {
	w := newTestWorld()

	if _, err := w.ColliderShape(42); !errors.Is(err, ErrUnknownCollider) {
		t.Errorf("expected ErrUnknownCollider, got %v", err)
	}
	if _, err := w.lookupBody(7); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}

	// setters on unknown handles are no-ops
	w.SetFriction(42, 1)
	w.ApplyImpulse(7, Vec2{1, 0}, true)
}

func TestInteractionGroups(t *testing.T) {
	wood := NewInteractionGroups(0x000d, 0x0004)

	if wood != 0x000d0004 {
		t.Fatalf("expected 0x000d0004, got %#x", uint32(wood))
	}
	if wood.Memberships() != 0x000d || wood.Filter() != 0x0004 {
		t.Errorf("unexpected split: %#x / %#x", wood.Memberships(), wood.Filter())
	}
	if !wood.Interacts(AllGroups) {
		t.Error("wood should interact with the default groups")
	}

	loner := NewInteractionGroups(0x0002, 0x0002)
	if wood.Interacts(loner) {
		t.Error("wood should not interact with a group outside its filter")
	}
}

func TestForEachColliderOrder(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 5; i++ {
		w.CreateCollider(NewColliderDesc(Cuboid(1, 1)), nil)
	}

	var seen []ColliderHandle
	w.ForEachCollider(func(h ColliderHandle) { seen = append(seen, h) })

	for i, h := range seen {
		if h != ColliderHandle(i) {
			t.Fatalf("expected creation order, got %v", seen)
		}
	}
}

func TestDebugRender(t *testing.T) {
	w := newTestWorld()
	w.CreateCollider(NewColliderDesc(Cuboid(10, 2)), nil)
	addBall(w, Vec2{0, 20}, 1)

	buf := w.DebugRender()

	want := 4 + circleSegments + 1
	if buf.Lines() != want {
		t.Errorf("expected %d lines, got %d", want, buf.Lines())
	}
	if len(buf.Colors) != buf.Lines()*8 {
		t.Errorf("expected 8 color components per line, got %d for %d lines", len(buf.Colors), buf.Lines())
	}
}
