// Package tunables holds the user-adjustable simulation parameters, their
// persistence, and the protocol that pushes edits into the running scene.
package tunables

import "fmt"

// Field identifies one tunable parameter.
type Field int

const (
	FieldUnknown Field = iota
	WoodDensity
	WoodFriction
	WoodRestitution
	RampAngle
	RampHeight
	RampOffset
	RampLocation
	BallRestitution
	BallMass
	ForceOfPutt
	DebugRender
)

type Kind int

const (
	Number Kind = iota
	Bool
)

// Range bounds a numeric field in editors.
type Range struct {
	Min, Max, Step float64
}

func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

type fieldInfo struct {
	name string
	kind Kind
	rng  Range
}

var fieldTable = map[Field]fieldInfo{
	WoodDensity:     {"woodDensity", Number, Range{0.1, 10, 0.1}},
	WoodFriction:    {"woodFriction", Number, Range{0, 1, 0.05}},
	WoodRestitution: {"woodRestitution", Number, Range{0, 1, 0.05}},
	RampAngle:       {"rampAngle", Number, Range{0, 1, 0.05}},
	RampHeight:      {"rampHeight", Number, Range{20, 800, 10}},
	RampOffset:      {"rampOffset", Number, Range{-100, 100, 5}},
	RampLocation:    {"rampLocation", Number, Range{100, 900, 10}},
	BallRestitution: {"ballRestitution", Number, Range{0, 1, 0.05}},
	BallMass:        {"ballMass", Number, Range{1, 1000, 10}},
	ForceOfPutt:     {"forceOfPutt", Number, Range{0, 20000, 250}},
	DebugRender:     {"debugRender", Bool, Range{}},
}

var byName = func() map[string]Field {
	m := make(map[string]Field, len(fieldTable))
	for f, info := range fieldTable {
		m[info.name] = f
	}
	return m
}()

// Fields lists every recognized field in editor order.
func Fields() []Field {
	return []Field{
		WoodDensity, WoodFriction, WoodRestitution,
		RampAngle, RampHeight, RampOffset, RampLocation,
		BallRestitution, BallMass, ForceOfPutt, DebugRender,
	}
}

// ParseField maps a persisted or user-supplied name to its Field. Unrecognized
// names yield FieldUnknown.
func ParseField(name string) Field {
	if f, ok := byName[name]; ok {
		return f
	}
	return FieldUnknown
}

func (f Field) String() string {
	if info, ok := fieldTable[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

func (f Field) Known() bool {
	_, ok := fieldTable[f]
	return ok
}

func (f Field) Kind() Kind {
	return fieldTable[f].kind
}

func (f Field) Range() Range {
	return fieldTable[f].rng
}
