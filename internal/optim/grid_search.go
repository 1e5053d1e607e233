// Package optim searches tunable grids for the putt that scores best on a
// run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/battleputt/internal/sim"
	"github.com/san-kum/battleputt/internal/tunables"
)

var ErrEmptyGrid = errors.New("optim: empty grid")

// RunFunc runs one putt with the given parameters.
type RunFunc func(ctx context.Context, p tunables.Params) (*sim.Result, error)

type GridSearch struct {
	fields []tunables.Field
	ranges [][]float64

	// Maximize flips the search to prefer larger metric values.
	Maximize bool
}

func NewGridSearch(fields []tunables.Field, ranges [][]float64) *GridSearch {
	return &GridSearch{fields: fields, ranges: ranges}
}

// Span returns count evenly spaced values across the field's tunable range.
func Span(f tunables.Field, count int) []float64 {
	r := f.Range()
	if count <= 1 {
		return []float64{r.Min}
	}
	values := make([]float64, count)
	step := (r.Max - r.Min) / float64(count-1)
	for i := range values {
		values[i] = r.Min + step*float64(i)
	}
	return values
}

// Search evaluates every grid point on top of base and returns the best
// parameters with their metric value. Points whose run fails are skipped.
func (g *GridSearch) Search(ctx context.Context, base tunables.Params, run RunFunc, metric string) (tunables.Params, float64, error) {
	if len(g.fields) == 0 || len(g.fields) != len(g.ranges) {
		return base, 0, ErrEmptyGrid
	}

	s := &search{
		grid:   g,
		run:    run,
		metric: metric,
		best:   math.Inf(1),
	}
	if g.Maximize {
		s.best = math.Inf(-1)
	}

	if err := s.walk(ctx, 0, base); err != nil {
		return base, 0, err
	}
	if !s.found {
		return base, 0, fmt.Errorf("optim: no run reported %q", metric)
	}
	return s.bestParams, s.best, nil
}

type search struct {
	grid       *GridSearch
	run        RunFunc
	metric     string
	found      bool
	best       float64
	bestParams tunables.Params
}

func (s *search) walk(ctx context.Context, depth int, current tunables.Params) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(s.grid.fields) {
		result, err := s.run(ctx, current)
		if err != nil {
			return nil
		}
		val, ok := result.Metrics[s.metric]
		if !ok {
			return nil
		}
		if s.better(val) {
			s.best = val
			s.bestParams = current
			s.found = true
		}
		return nil
	}

	field := s.grid.fields[depth]
	for _, v := range s.grid.ranges[depth] {
		next := current
		if err := next.Set(field, v); err != nil {
			return err
		}
		if err := s.walk(ctx, depth+1, next); err != nil {
			return err
		}
	}
	return nil
}

func (s *search) better(v float64) bool {
	if s.grid.Maximize {
		return v > s.best
	}
	return v < s.best
}
