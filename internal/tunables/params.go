package tunables

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownField = errors.New("tunables: unknown field")
	ErrInvalidValue = errors.New("tunables: invalid value")
	ErrOutOfRange   = errors.New("tunables: value out of range")
	ErrNoParams     = errors.New("tunables: change has no params")
)

type Params struct {
	WoodDensity     float64 `json:"woodDensity" yaml:"woodDensity"`
	WoodFriction    float64 `json:"woodFriction" yaml:"woodFriction"`
	WoodRestitution float64 `json:"woodRestitution" yaml:"woodRestitution"`
	RampAngle       float64 `json:"rampAngle" yaml:"rampAngle"`
	RampHeight      float64 `json:"rampHeight" yaml:"rampHeight"`
	RampOffset      float64 `json:"rampOffset" yaml:"rampOffset"`
	RampLocation    float64 `json:"rampLocation" yaml:"rampLocation"`
	BallRestitution float64 `json:"ballRestitution" yaml:"ballRestitution"`
	BallMass        float64 `json:"ballMass" yaml:"ballMass"`
	ForceOfPutt     float64 `json:"forceOfPutt" yaml:"forceOfPutt"`
	DebugRender     bool    `json:"debugRender" yaml:"debugRender"`
}

func Defaults() Params {
	return Params{
		WoodDensity:     1.0,
		WoodFriction:    0.5,
		WoodRestitution: 0.5,
		RampAngle:       0.5,
		RampHeight:      200,
		RampOffset:      -25,
		RampLocation:    600,
		BallRestitution: 0.5,
		BallMass:        100,
		ForceOfPutt:     5000,
		DebugRender:     false,
	}
}

func (p *Params) number(f Field) *float64 {
	switch f {
	case WoodDensity:
		return &p.WoodDensity
	case WoodFriction:
		return &p.WoodFriction
	case WoodRestitution:
		return &p.WoodRestitution
	case RampAngle:
		return &p.RampAngle
	case RampHeight:
		return &p.RampHeight
	case RampOffset:
		return &p.RampOffset
	case RampLocation:
		return &p.RampLocation
	case BallRestitution:
		return &p.BallRestitution
	case BallMass:
		return &p.BallMass
	case ForceOfPutt:
		return &p.ForceOfPutt
	}
	return nil
}

// Get returns the value of f. Booleans are reported as 0 or 1.
func (p Params) Get(f Field) (float64, error) {
	if f == DebugRender {
		if p.DebugRender {
			return 1, nil
		}
		return 0, nil
	}
	v := p.number(f)
	if v == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return *v, nil
}

// Set assigns f without range checks. A non-zero value turns a boolean on.
func (p *Params) Set(f Field, value float64) error {
	if f == DebugRender {
		p.DebugRender = value != 0
		return nil
	}
	v := p.number(f)
	if v == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	*v = value
	return nil
}

// SetString parses raw for f and assigns it, rejecting values outside the
// field's editor range.
func (p *Params) SetString(f Field, raw string) error {
	if !f.Known() {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	if f.Kind() == Bool {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, f, raw)
		}
		p.DebugRender = b
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, f, raw)
	}
	r := f.Range()
	if v < r.Min || v > r.Max {
		return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrOutOfRange, f, v, r.Min, r.Max)
	}
	return p.Set(f, v)
}

func (p Params) Format(f Field) string {
	if f == DebugRender {
		return strconv.FormatBool(p.DebugRender)
	}
	v, err := p.Get(f)
	if err != nil {
		return "?"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
