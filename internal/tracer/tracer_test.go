package tracer

import (
	"testing"

	"github.com/san-kum/battleputt/internal/render"
)

func TestRecordKeepsLastPoints(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		n        int
	}{
		{"empty", 5, 0},
		{"partial", 5, 3},
		{"exactly full", 5, 5},
		{"one over", 5, 6},
		{"wrapped several times", 5, 23},
		{"default capacity overflow", 0, MaxPoints + 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.capacity)
			for i := 0; i < tt.n; i++ {
				tr.Record(Position{X: float64(i), Y: float64(-i)})
			}

			want := tt.n
			if want > tr.Capacity() {
				want = tr.Capacity()
			}
			if tr.Len() != want {
				t.Fatalf("Len() = %d, want %d", tr.Len(), want)
			}

			pts := tr.Points()
			first := tt.n - want
			for i, p := range pts {
				if p.X != float64(first+i) {
					t.Fatalf("point %d = %v, want x=%d", i, p, first+i)
				}
			}
		})
	}
}

func TestResetEmptiesTrail(t *testing.T) {
	tr := New(4)
	for i := 0; i < 9; i++ {
		tr.Record(Position{X: float64(i)})
	}

	tr.Reset()

	if tr.Len() != 0 || len(tr.Points()) != 0 {
		t.Errorf("expected empty trail, got %d points", tr.Len())
	}
	if _, ok := tr.Last(); ok {
		t.Error("Last() should report no point after Reset")
	}

	tr.Record(Position{X: 42})
	if p, _ := tr.Last(); p.X != 42 || tr.Len() != 1 {
		t.Errorf("recording after reset failed: %v", tr.Points())
	}
}

func TestRenderAfterResetDrawsNothing(t *testing.T) {
	tr := New(10)
	tr.Record(Position{X: 1, Y: 1})
	tr.Record(Position{X: 2, Y: 2})
	tr.Render()
	tr.Reset()
	tr.Render()

	if n := tr.Graphics().Count(render.CmdLine); n != 0 {
		t.Errorf("expected 0 segments, got %d", n)
	}
}

func TestRenderSinglePoint(t *testing.T) {
	tr := New(10)
	tr.Record(Position{X: 1, Y: 1})
	tr.Render()

	if n := tr.Graphics().Count(render.CmdLine); n != 0 {
		t.Errorf("expected 0 segments for one point, got %d", n)
	}
}

func TestRenderThreePoints(t *testing.T) {
	tr := New(10)
	tr.Record(Position{X: 1, Y: 1})
	tr.Record(Position{X: 2, Y: 2})
	tr.Record(Position{X: 3, Y: 3})
	tr.Render()

	cmds := tr.Graphics().Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(cmds))
	}
	want := [][2]Position{
		{{X: 1, Y: 1}, {X: 2, Y: 2}},
		{{X: 2, Y: 2}, {X: 3, Y: 3}},
	}
	for i, c := range cmds {
		if c.From != want[i][0] || c.To != want[i][1] {
			t.Errorf("segment %d = %v-%v, want %v-%v", i, c.From, c.To, want[i][0], want[i][1])
		}
		if c.Color != render.White || !c.PixelLine {
			t.Errorf("segment %d has style %v/%v, want white pixel line", i, c.Color, c.PixelLine)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	tr := New(10)
	for i := 0; i < 6; i++ {
		tr.Record(Position{X: float64(i)})
	}

	tr.Render()
	first := append([]render.Command(nil), tr.Graphics().Commands()...)
	tr.Render()
	second := tr.Graphics().Commands()

	if len(first) != len(second) {
		t.Fatalf("render not idempotent: %d vs %d commands", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("command %d differs between renders", i)
		}
	}
}
