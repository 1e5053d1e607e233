package main

import (
	"errors"
	"testing"

	"github.com/san-kum/battleputt/internal/tunables"
)

func TestParseSweep(t *testing.T) {
	tests := []struct {
		expr    string
		field   tunables.Field
		values  []float64
		wantErr error
	}{
		{expr: "rampAngle=0.2,0.5, 0.8", field: tunables.RampAngle, values: []float64{0.2, 0.5, 0.8}},
		{expr: "forceOfPutt=1000", field: tunables.ForceOfPutt, values: []float64{1000}},
		{expr: "wobble=1", wantErr: tunables.ErrUnknownField},
		{expr: "ballMass=heavy", wantErr: tunables.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, values, err := parseSweep(tt.expr)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f != tt.field || len(values) != len(tt.values) {
				t.Fatalf("got %s %v", f, values)
			}
			for i := range values {
				if values[i] != tt.values[i] {
					t.Errorf("value %d: expected %v, got %v", i, tt.values[i], values[i])
				}
			}
		})
	}

	if _, _, err := parseSweep("rampAngle"); err == nil {
		t.Error("expected error without values")
	}
}
