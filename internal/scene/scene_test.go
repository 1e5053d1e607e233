package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/battleputt/internal/kv"
	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/render"
	"github.com/san-kum/battleputt/internal/scene"
	"github.com/san-kum/battleputt/internal/tunables"
)

// recordingWorld counts impulses on top of a real engine world.
type recordingWorld struct {
	*physics.World
	impulses []physics.Vec2
}

func (r *recordingWorld) ApplyImpulse(h physics.BodyHandle, v physics.Vec2, wake bool) {
	r.impulses = append(r.impulses, v)
	r.World.ApplyImpulse(h, v, wake)
}

var _ = Describe("Scene", func() {
	var (
		world  *recordingWorld
		params tunables.Params
		store  *kv.MemoryStore
		sync   *tunables.Sync
		s      *scene.Scene
	)

	edit := func(f tunables.Field, v float64) {
		Expect(params.Set(f, v)).To(Succeed())
		Expect(sync.OnEdit(tunables.NewChange(f, &params))).To(Succeed())
	}

	BeforeEach(func() {
		world = &recordingWorld{World: scene.NewWorld()}
		params = tunables.Defaults()
		store = kv.NewMemoryStore()
		sync = tunables.NewSync(store)
		s = scene.Build(world, &params, scene.DefaultOptions())
		s.Bind(sync)
	})

	Describe("Build", func() {
		It("registers the platform and ramp as wood", func() {
			Expect(s.Woods.Handles()).To(Equal([]physics.ColliderHandle{s.Platform, s.Ramp}))
		})

		It("binds a graphic to every collider", func() {
			Expect(s.SyncGraphics()).To(BeZero())
			Expect(world.NumColliders()).To(Equal(7))
		})

		It("places the ramp pieces from the parameters", func() {
			Expect(world.Translation(s.Platform)).To(Equal(physics.Vec2{X: 600, Y: 200}))
			Expect(world.Translation(s.Ramp)).To(Equal(physics.Vec2{X: 525, Y: 175}))
			Expect(world.Rotation(s.Ramp)).To(BeNumerically("~", 0.5, 1e-9))
			Expect(world.InteractionGroups(s.Ramp)).To(Equal(physics.InteractionGroups(0x000d0004)))
		})

		It("rests the ball on the launch point", func() {
			Expect(s.BallPosition()).To(Equal(physics.Vec2{X: 625, Y: 206.5}))
			Expect(s.State()).To(Equal(scene.AtRest))
		})
	})

	Describe("putt", func() {
		It("applies exactly one impulse while the key is held", func() {
			s.KeyDown()
			for i := 0; i < 10; i++ {
				s.Step()
				s.KeyDown()
			}

			Expect(world.impulses).To(HaveLen(1))
			Expect(world.impulses[0]).To(Equal(physics.Vec2{X: -50000, Y: 0}))
			Expect(s.State()).To(Equal(scene.InFlight))
		})

		It("scales the impulse by forceOfPutt", func() {
			edit(tunables.ForceOfPutt, 1000)
			s.KeyDown()
			Expect(world.impulses).To(ConsistOf(physics.Vec2{X: -10000}))
		})

		It("resets the ball and trail on release", func() {
			s.KeyDown()
			for i := 0; i < 20; i++ {
				s.Step()
			}
			Expect(s.Trail.Len()).To(Equal(20))
			Expect(s.BallPosition().X).To(BeNumerically("<", 625))

			s.KeyUp()

			Expect(s.BallPosition()).To(Equal(s.Launch()))
			Expect(s.BallVelocity()).To(Equal(physics.Vec2{}))
			Expect(world.Angvel(s.Ball)).To(BeZero())
			Expect(s.Trail.Len()).To(BeZero())
			Expect(s.State()).To(Equal(scene.AtRest))
		})

		It("fires again on the next press", func() {
			s.KeyDown()
			s.KeyUp()
			s.KeyDown()
			Expect(world.impulses).To(HaveLen(2))
		})

		It("ignores a release without a press", func() {
			s.Step()
			s.KeyUp()
			Expect(s.Trail.Len()).To(Equal(1))
		})

		It("keeps the ball moving when reset on release is off", func() {
			opts := scene.DefaultOptions()
			opts.ResetOnRelease = false
			w := &recordingWorld{World: scene.NewWorld()}
			free := scene.Build(w, &params, opts)

			free.KeyDown()
			free.Step()
			free.KeyUp()

			Expect(free.BallVelocity().X).To(BeNumerically("<", 0))
			Expect(free.State()).To(Equal(scene.InFlight))
		})
	})

	Describe("parameter binding", func() {
		It("moves platform and ramp height from the current offset", func() {
			edit(tunables.RampHeight, 350)

			Expect(world.Translation(s.Platform)).To(Equal(physics.Vec2{X: 600, Y: 350}))
			Expect(world.Translation(s.Ramp)).To(Equal(physics.Vec2{X: 525, Y: 325}))
		})

		It("re-derives the ramp from the latest height on offset edits", func() {
			edit(tunables.RampHeight, 300)
			edit(tunables.RampOffset, 40)

			Expect(world.Translation(s.Ramp)).To(Equal(physics.Vec2{X: 525, Y: 340}))
			Expect(world.Translation(s.Platform).Y).To(Equal(300.0))
		})

		It("moves both pieces along x on location edits", func() {
			edit(tunables.RampLocation, 400)

			Expect(world.Translation(s.Platform).X).To(Equal(400.0))
			Expect(world.Translation(s.Ramp).X).To(Equal(325.0))
		})

		It("rotates the ramp in place", func() {
			edit(tunables.RampAngle, 0.2)
			Expect(world.Rotation(s.Ramp)).To(BeNumerically("~", 0.2, 1e-9))
		})

		It("broadcasts wood material to every registered plank", func() {
			extra := s.AddWood(50, 0, physics.Vec2{X: 200, Y: 100})

			edit(tunables.WoodFriction, 0.9)
			edit(tunables.WoodRestitution, 0.1)
			edit(tunables.WoodDensity, 3)

			for _, h := range []physics.ColliderHandle{s.Platform, s.Ramp, extra} {
				Expect(world.Friction(h)).To(BeNumerically("~", 0.9, 1e-9))
				Expect(world.Restitution(h)).To(BeNumerically("~", 0.1, 1e-9))
				Expect(world.Density(h)).To(Equal(3.0))
			}
			Expect(world.Friction(s.Ground)).To(BeNumerically("~", 0.5, 1e-9))
		})

		It("updates the ball collider", func() {
			edit(tunables.BallRestitution, 0.8)
			edit(tunables.BallMass, 250)

			Expect(world.Restitution(s.BallCollider)).To(BeNumerically("~", 0.8, 1e-9))
			Expect(world.Mass(s.BallCollider)).To(BeNumerically("~", 250, 1e-6))
		})

		It("keeps handles and graphics across edits", func() {
			platformGfx, ok := s.Graphic(s.Platform)
			Expect(ok).To(BeTrue())
			before := world.NumColliders()
			platform, ramp, ball := s.Platform, s.Ramp, s.BallCollider

			for _, f := range tunables.Fields() {
				v, _ := params.Get(f)
				edit(f, v)
			}
			edit(tunables.RampHeight, 500)

			Expect(world.NumColliders()).To(Equal(before))
			Expect([]physics.ColliderHandle{s.Platform, s.Ramp, s.BallCollider}).
				To(Equal([]physics.ColliderHandle{platform, ramp, ball}))

			after, ok := s.Graphic(s.Platform)
			Expect(ok).To(BeTrue())
			Expect(after).To(BeIdenticalTo(platformGfx))

			Expect(s.SyncGraphics()).To(BeZero())
			Expect(after.Position).To(Equal(physics.Vec2{X: 600, Y: 500}))
		})

		It("persists every edit", func() {
			edit(tunables.RampHeight, 250)
			edit(tunables.ForceOfPutt, 9000)
			Expect(store.Writes()).To(Equal(2))
			Expect(tunables.Load(store).ForceOfPutt).To(Equal(9000.0))
		})

		It("uses the edited launch point on reset", func() {
			edit(tunables.RampHeight, 400)
			s.KeyDown()
			s.KeyUp()
			Expect(s.BallPosition()).To(Equal(physics.Vec2{X: 625, Y: 406.5}))
		})

		It("keeps the ball on a raised platform", func() {
			edit(tunables.RampHeight, 400)
			s.ResetBall()
			for i := 0; i < 120; i++ {
				s.Step()
			}
			Expect(s.BallPosition().Y).To(BeNumerically("~", 406.5, 1))
		})

		It("lets a resting ball follow a lowered platform", func() {
			for i := 0; i < 120; i++ {
				s.Step()
			}
			edit(tunables.RampHeight, 100)
			for i := 0; i < 240; i++ {
				s.Step()
			}
			Expect(s.BallPosition().Y).To(BeNumerically("~", 106.5, 2))
		})
	})

	Describe("drawing", func() {
		It("skips colliders without a graphic", func() {
			world.CreateCollider(physics.NewColliderDesc(physics.Ball(2)), nil)
			Expect(s.SyncGraphics()).To(Equal(1))
		})

		It("leaves the debug overlay empty while debugRender is off", func() {
			s.Draw()
			Expect(s.Debug.Commands()).To(BeEmpty())
		})

		It("draws one line per debug segment when debugRender is on", func() {
			edit(tunables.DebugRender, 1)
			s.Draw()

			lines := world.DebugRender().Lines()
			Expect(lines).To(BeNumerically(">", 0))
			Expect(s.Debug.Count(render.CmdLine)).To(Equal(lines))
		})

		It("draws the trail", func() {
			s.KeyDown()
			for i := 0; i < 5; i++ {
				s.Step()
			}
			s.Draw()
			Expect(s.Trail.Graphics().Count(render.CmdLine)).To(Equal(4))
		})
	})
})
