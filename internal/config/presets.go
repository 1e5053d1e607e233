package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/battleputt/internal/tunables"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Presets are named parameter overrides. Fields not listed keep their
// current value.
var Presets = map[string]map[tunables.Field]float64{
	"bouncy": {
		tunables.WoodRestitution: 0.95,
		tunables.BallRestitution: 0.95,
		tunables.WoodFriction:    0.1,
	},
	"sticky": {
		tunables.WoodRestitution: 0.05,
		tunables.BallRestitution: 0.1,
		tunables.WoodFriction:    1.0,
	},
	"steep": {
		tunables.RampAngle:  0.95,
		tunables.RampHeight: 500,
		tunables.RampOffset: -60,
	},
	"feather": {
		tunables.BallMass:    10,
		tunables.ForceOfPutt: 750,
	},
}

func GetPreset(name string) map[tunables.Field]float64 {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset assigns each override in field order and reports each one to
// edit as its own change.
func ApplyPreset(name string, p *tunables.Params, edit func(tunables.Change) error) error {
	preset, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}

	for _, f := range tunables.Fields() {
		v, ok := preset[f]
		if !ok {
			continue
		}
		if err := p.Set(f, v); err != nil {
			return err
		}
		if edit == nil {
			continue
		}
		if err := edit(tunables.NewChange(f, p)); err != nil {
			return err
		}
	}
	return nil
}
