package tunables

import (
	"fmt"
	"math"
)

// Panel is a property editor over a Params record. Every edit goes through
// OnChange exactly once.
type Panel struct {
	Params   *Params
	OnChange func(Change)

	selected int
	fields   []Field
}

func NewPanel(p *Params, onChange func(Change)) *Panel {
	return &Panel{Params: p, OnChange: onChange, fields: Fields()}
}

func (p *Panel) Fields() []Field { return p.fields }
func (p *Panel) Selected() Field { return p.fields[p.selected] }

func (p *Panel) Next() {
	p.selected = (p.selected + 1) % len(p.fields)
}

func (p *Panel) Prev() {
	p.selected = (p.selected - 1 + len(p.fields)) % len(p.fields)
}

func (p *Panel) Select(f Field) bool {
	for i, candidate := range p.fields {
		if candidate == f {
			p.selected = i
			return true
		}
	}
	return false
}

// Nudge moves the selected field by steps increments, clamped to its range.
// Booleans are toggled. It returns false when the value did not change.
func (p *Panel) Nudge(steps int) bool {
	f := p.Selected()
	if f.Kind() == Bool {
		return p.Toggle(f)
	}

	r := f.Range()
	cur, _ := p.Params.Get(f)
	next := r.Clamp(cur + float64(steps)*r.Step)
	// keep values on the step grid so repeated nudges do not drift
	next = math.Round(next/r.Step) * r.Step
	next = r.Clamp(next)
	if next == cur {
		return false
	}
	if err := p.Params.Set(f, next); err != nil {
		return false
	}
	p.emit(f)
	return true
}

func (p *Panel) Toggle(f Field) bool {
	if f.Kind() != Bool {
		return false
	}
	p.Params.DebugRender = !p.Params.DebugRender
	p.emit(f)
	return true
}

// Set parses and assigns a value by field name.
func (p *Panel) Set(name, raw string) error {
	f := ParseField(name)
	if f == FieldUnknown {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if err := p.Params.SetString(f, raw); err != nil {
		return err
	}
	p.emit(f)
	return nil
}

func (p *Panel) emit(f Field) {
	if p.OnChange != nil {
		p.OnChange(NewChange(f, p.Params))
	}
}
