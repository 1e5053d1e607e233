// Package sim drives a scene frame by frame.
package sim

import (
	"context"
	"time"

	"github.com/san-kum/battleputt/internal/physics"
	"github.com/san-kum/battleputt/internal/render"
	"github.com/san-kum/battleputt/internal/scene"
)

const eventBuffer = 64

// Loop advances the engine, refreshes graphics and hands the stage to the
// renderer. Scene state is only touched from the goroutine calling Frame or
// Run; other goroutines go through Post.
type Loop struct {
	Scene    *scene.Scene
	Renderer render.Renderer

	cfg       Config
	events    chan func()
	metrics   []Metric
	observers []Observer
	samples   []Sample
	last      Sample
	frames    int
	steps     int
}

// New returns a loop over sc. A nil renderer runs headless.
func New(sc *scene.Scene, r render.Renderer, cfg Config) (*Loop, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Loop{
		Scene:    sc,
		Renderer: r,
		cfg:      cfg,
		events:   make(chan func(), eventBuffer),
	}, nil
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Config() Config { return l.cfg }
func (l *Loop) Frames() int    { return l.frames }
func (l *Loop) Steps() int     { return l.steps }
func (l *Loop) Last() Sample   { return l.last }

// Post queues fn to run on the loop goroutine before the next frame.
func (l *Loop) Post(fn func()) {
	l.events <- fn
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.events:
			fn()
		default:
			return
		}
	}
}

// Frame runs queued events, steps the engine StepsPerFrame times recording
// the ball after each step, redraws, and renders the stage.
func (l *Loop) Frame() error {
	l.drain()

	for i := 0; i < l.cfg.StepsPerFrame; i++ {
		l.Scene.Step()
		l.steps++
		l.observe()
	}

	l.Scene.Draw()
	l.frames++
	for _, o := range l.observers {
		o.OnFrame(l.last)
	}

	if l.Renderer == nil {
		return nil
	}
	return l.Renderer.Render(l.Scene.Stage)
}

func (l *Loop) observe() {
	s := Sample{
		Frame:    l.frames,
		Step:     l.steps,
		Time:     float64(l.steps) * physics.DefaultTimestep,
		Position: l.Scene.BallPosition(),
		Velocity: l.Scene.BallVelocity(),
	}
	l.last = s
	for _, m := range l.metrics {
		m.Observe(s)
	}
	if l.cfg.KeepSamples {
		l.samples = append(l.samples, s)
	}
}

// Run renders a frame every Interval until ctx is done or MaxFrames is
// reached. Posted events are executed between frames.
func (l *Loop) Run(ctx context.Context) (*Result, error) {
	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	for !l.done() {
		select {
		case <-ctx.Done():
			return l.Result(), ctx.Err()
		case fn := <-l.events:
			fn()
		case <-ticker.C:
			if err := l.Frame(); err != nil {
				return l.Result(), err
			}
		}
	}
	return l.Result(), nil
}

// RunFrames renders n frames back to back without waiting for the ticker.
func (l *Loop) RunFrames(ctx context.Context, n int) (*Result, error) {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return l.Result(), ctx.Err()
		default:
		}
		if err := l.Frame(); err != nil {
			return l.Result(), err
		}
	}
	return l.Result(), nil
}

func (l *Loop) done() bool {
	return l.cfg.MaxFrames > 0 && l.frames >= l.cfg.MaxFrames
}

func (l *Loop) Result() *Result {
	r := &Result{
		Frames:  l.frames,
		Steps:   l.steps,
		Samples: l.samples,
		Metrics: make(map[string]float64, len(l.metrics)),
	}
	for _, m := range l.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}
