// Package metrics measures the ball's flight from loop samples.
package metrics

import (
	"math"

	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/sim"
)

type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(s sim.Sample) {
	m.max = math.Max(m.max, s.Speed())
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Apex tracks the highest y the ball reached.
type Apex struct {
	y       float64
	samples int
}

func NewApex() *Apex { return &Apex{} }

func (a *Apex) Name() string { return "apex" }

func (a *Apex) Observe(s sim.Sample) {
	if a.samples == 0 || s.Position.Y > a.y {
		a.y = s.Position.Y
	}
	a.samples++
}

func (a *Apex) Value() float64 { return a.y }

func (a *Apex) Reset() {
	a.y = 0
	a.samples = 0
}

// Distance sums the path length between consecutive samples.
type Distance struct {
	total float64
	prev  physics.Vec2
	seen  bool
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(s sim.Sample) {
	if d.seen {
		d.total += s.Position.Sub(d.prev).Length()
	}
	d.prev = s.Position
	d.seen = true
}

func (d *Distance) Value() float64 { return d.total }

func (d *Distance) Reset() {
	d.total = 0
	d.seen = false
}

// KineticEnergy reports the latest translational kinetic energy of a ball
// of the given mass.
type KineticEnergy struct {
	mass   func() float64
	energy float64
}

func NewKineticEnergy(mass func() float64) *KineticEnergy {
	return &KineticEnergy{mass: mass}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(s sim.Sample) {
	v := s.Speed()
	k.energy = 0.5 * k.mass() * v * v
}

func (k *KineticEnergy) Value() float64 { return k.energy }
func (k *KineticEnergy) Reset()         { k.energy = 0 }

// Standard returns the metric set reported by the headless run.
func Standard(mass func() float64) []sim.Metric {
	return []sim.Metric{NewMaxSpeed(), NewApex(), NewDistance(), NewKineticEnergy(mass)}
}
