package metrics

import "github.com/san-kum/battleputt/internal/sim"

// History keeps the most recent values of one sampled quantity for
// sparklines. It implements sim.Observer.
type History struct {
	values []float64
	size   int
	pick   func(sim.Sample) float64
}

func NewHistory(size int, pick func(sim.Sample) float64) *History {
	return &History{size: size, pick: pick}
}

func SpeedHistory(size int) *History {
	return NewHistory(size, sim.Sample.Speed)
}

func HeightHistory(size int) *History {
	return NewHistory(size, func(s sim.Sample) float64 { return s.Position.Y })
}

func (h *History) OnFrame(s sim.Sample) {
	h.Add(h.pick(s))
}

func (h *History) Add(v float64) {
	h.values = append(h.values, v)
	if len(h.values) > h.size {
		h.values = h.values[len(h.values)-h.size:]
	}
}

func (h *History) Values() []float64 { return h.values }
func (h *History) Len() int          { return len(h.values) }

func (h *History) Reset() { h.values = h.values[:0] }
