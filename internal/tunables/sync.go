package tunables

import (
	"fmt"
	"log"
)

// Change describes a single-field edit. Params is the whole record after
// the edit was applied.
type Change struct {
	Name   string
	Field  Field
	Value  float64
	Params *Params
}

// NewChange builds a Change for f from the current record.
func NewChange(f Field, p *Params) Change {
	v, _ := p.Get(f)
	return Change{Name: f.String(), Field: f, Value: v, Params: p}
}

// Handler applies an edit to live engine state.
type Handler func(Change)

// Sync dispatches edits to bound handlers and keeps the persisted record in
// lock-step with every edit.
type Sync struct {
	kv       KV
	handlers map[Field][]Handler
	stores   int
}

func NewSync(kv KV) *Sync {
	return &Sync{kv: kv, handlers: make(map[Field][]Handler)}
}

func (s *Sync) Bind(f Field, h Handler) {
	s.handlers[f] = append(s.handlers[f], h)
}

// Bound reports whether any handler is registered for f.
func (s *Sync) Bound(f Field) bool {
	return len(s.handlers[f]) > 0
}

// OnEdit runs the handlers bound to the edited field and then persists the
// whole record. Edits to unbound or unknown fields are still persisted.
func (s *Sync) OnEdit(c Change) error {
	if c.Field == FieldUnknown {
		c.Field = ParseField(c.Name)
	}
	for _, h := range s.handlers[c.Field] {
		h(c)
	}

	if c.Params == nil {
		log.Printf("tunables: %s edit not stored: %v", c.Name, ErrNoParams)
		return fmt.Errorf("%w: %s", ErrNoParams, c.Name)
	}
	s.stores++
	if err := Store(s.kv, *c.Params); err != nil {
		log.Printf("tunables: store after %s edit: %v", c.Name, err)
		return err
	}
	return nil
}

// Stores counts persistence attempts made by OnEdit.
func (s *Sync) Stores() int { return s.stores }
