package sim

import (
	"context"
	"sync"

	"github.com/san-kum/battleputt/internal/scene"
	"github.com/san-kum/battleputt/internal/tunables"
)

// Sweep putts once in an independent scene per value of field and runs each
// for frames frames. Results are in the order of values.
type Sweep struct {
	Base    tunables.Params
	Field   tunables.Field
	Values  []float64
	Frames  int
	Config  Config
	Options scene.Options

	// Metrics builds a fresh metric set for each run's parameters.
	Metrics func(p tunables.Params) []Metric
}

func (s *Sweep) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(s.Values))
	errs := make([]error, len(s.Values))

	var wg sync.WaitGroup
	for i, v := range s.Values {
		wg.Add(1)
		go func(idx int, value float64) {
			defer wg.Done()
			results[idx], errs[idx] = s.runOne(ctx, value)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (s *Sweep) runOne(ctx context.Context, value float64) (*Result, error) {
	params := s.Base
	if err := params.Set(s.Field, value); err != nil {
		return nil, err
	}

	var metrics []Metric
	if s.Metrics != nil {
		metrics = s.Metrics(params)
	}
	return Putt(ctx, params, s.Frames, s.Config, s.Options, metrics...)
}

// Putt builds a fresh headless scene from params, putts once and runs it for
// frames frames.
func Putt(ctx context.Context, params tunables.Params, frames int, cfg Config, opts scene.Options, metrics ...Metric) (*Result, error) {
	sc := scene.Build(scene.NewWorld(), &params, opts)
	loop, err := New(sc, nil, cfg)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics {
		loop.AddMetric(m)
	}

	sc.KeyDown()
	return loop.RunFrames(ctx, frames)
}
