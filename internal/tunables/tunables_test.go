package tunables

import (
	"errors"
	"testing"

	"github.com/san-kum/battleputt/internal/kv"
)

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		if got := ParseField(f.String()); got != f {
			t.Errorf("ParseField(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if ParseField("wheelSize") != FieldUnknown {
		t.Error("expected FieldUnknown for unrecognized name")
	}
	if len(Fields()) != 11 {
		t.Errorf("expected 11 fields, got %d", len(Fields()))
	}
}

func TestDefaultsWithinRange(t *testing.T) {
	p := Defaults()
	for _, f := range Fields() {
		if f.Kind() == Bool {
			continue
		}
		v, err := p.Get(f)
		if err != nil {
			t.Fatalf("get %s: %v", f, err)
		}
		r := f.Range()
		if v < r.Min || v > r.Max {
			t.Errorf("default %s=%g outside [%g, %g]", f, v, r.Min, r.Max)
		}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   func(p *Params)
	}{
		{"absent", "", func(p *Params) {}},
		{"malformed", `{"rampHeight":`, func(p *Params) {}},
		{"wrong type", `{"rampHeight":"tall"}`, func(p *Params) {}},
		{"partial", `{"rampHeight":350,"debugRender":true}`, func(p *Params) {
			p.RampHeight = 350
			p.DebugRender = true
		}},
		{"unknown keys", `{"wheelSize":3,"ballMass":40}`, func(p *Params) {
			p.BallMass = 40
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore()
			if tt.stored != "" {
				store.Set(StorageKey, tt.stored)
			}

			want := Defaults()
			tt.want(&want)

			if got := Load(store); got != want {
				t.Errorf("Load() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	store := kv.NewFileStore(t.TempDir())

	p := Defaults()
	p.WoodFriction = 0.8
	p.RampOffset = 40
	p.DebugRender = true

	if err := Store(store, p); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	loaded := Load(store)
	if loaded != p {
		t.Fatalf("round trip mismatch: %+v vs %+v", loaded, p)
	}

	if err := Store(store, loaded); err != nil {
		t.Fatalf("second store failed: %v", err)
	}
	if again := Load(store); again != p {
		t.Errorf("second round trip mismatch: %+v", again)
	}
}

func TestSetString(t *testing.T) {
	tests := []struct {
		field Field
		raw   string
		err   error
	}{
		{RampHeight, "300", nil},
		{RampHeight, "5", ErrOutOfRange},
		{RampHeight, "high", ErrInvalidValue},
		{DebugRender, "true", nil},
		{DebugRender, "maybe", ErrInvalidValue},
		{FieldUnknown, "1", ErrUnknownField},
	}

	for _, tt := range tests {
		p := Defaults()
		err := p.SetString(tt.field, tt.raw)
		if !errors.Is(err, tt.err) {
			t.Errorf("SetString(%s, %q) error = %v, want %v", tt.field, tt.raw, err, tt.err)
		}
	}
}

func TestSyncDispatchesAndStores(t *testing.T) {
	store := kv.NewMemoryStore()
	s := NewSync(store)

	var got []Change
	s.Bind(RampHeight, func(c Change) { got = append(got, c) })

	p := Defaults()
	p.RampHeight = 420
	if err := s.OnEdit(NewChange(RampHeight, &p)); err != nil {
		t.Fatalf("OnEdit failed: %v", err)
	}

	if len(got) != 1 || got[0].Value != 420 || got[0].Name != "rampHeight" {
		t.Fatalf("unexpected dispatch: %+v", got)
	}
	if Load(store).RampHeight != 420 {
		t.Error("expected edit to be persisted")
	}
}

func TestSyncPersistsUnboundAndUnknownEdits(t *testing.T) {
	store := kv.NewMemoryStore()
	s := NewSync(store)
	called := false
	s.Bind(RampHeight, func(Change) { called = true })

	p := Defaults()
	p.ForceOfPutt = 7500
	s.OnEdit(NewChange(ForceOfPutt, &p))
	s.OnEdit(Change{Name: "wheelSize", Value: 3, Params: &p})

	if called {
		t.Error("handler for another field should not run")
	}
	if store.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", store.Writes())
	}
	if Load(store).ForceOfPutt != 7500 {
		t.Error("expected unbound edit to be persisted")
	}
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("offline") }
func (failingKV) Set(string, string) error         { return errors.New("offline") }

func TestSyncReturnsStoreErrors(t *testing.T) {
	s := NewSync(failingKV{})
	p := Defaults()
	if err := s.OnEdit(NewChange(BallMass, &p)); err == nil {
		t.Error("expected store error")
	}
	if Load(failingKV{}) != Defaults() {
		t.Error("read failure should yield defaults")
	}
}

func TestSyncRejectsChangeWithoutParams(t *testing.T) {
	store := kv.NewMemoryStore()
	s := NewSync(store)

	handled := 0
	s.Bind(BallMass, func(Change) { handled++ })

	err := s.OnEdit(Change{Name: "ballMass", Field: BallMass, Value: 50})
	if !errors.Is(err, ErrNoParams) {
		t.Fatalf("expected ErrNoParams, got %v", err)
	}
	if handled != 1 {
		t.Errorf("expected handler to run once, ran %d times", handled)
	}
	if store.Writes() != 0 {
		t.Errorf("expected no writes, got %d", store.Writes())
	}
}

func TestPanelNudgeIgnoresUnknownField(t *testing.T) {
	p := Defaults()
	changes := 0
	panel := NewPanel(&p, func(Change) { changes++ })
	panel.fields = []Field{FieldUnknown}

	if panel.Nudge(1) {
		t.Error("nudging an unknown field should report no change")
	}
	if changes != 0 {
		t.Errorf("expected no change events, got %d", changes)
	}
}

func TestPanel(t *testing.T) {
	p := Defaults()
	var changes []Change
	panel := NewPanel(&p, func(c Change) { changes = append(changes, c) })

	panel.Select(RampHeight)
	panel.Nudge(1)
	if p.RampHeight != 210 {
		t.Errorf("expected 210 after nudge, got %g", p.RampHeight)
	}

	panel.Nudge(-1000)
	if p.RampHeight != 20 {
		t.Errorf("expected clamp to 20, got %g", p.RampHeight)
	}
	if panel.Nudge(-1) {
		t.Error("nudge at the bound should not report a change")
	}

	panel.Select(DebugRender)
	panel.Nudge(1)
	if !p.DebugRender {
		t.Error("expected nudge to toggle debugRender")
	}

	if err := panel.Set("ballMass", "250"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := panel.Set("wheelSize", "1"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}

	if len(changes) != 4 {
		t.Fatalf("expected 4 changes, got %d", len(changes))
	}
	if changes[3].Field != BallMass || changes[3].Value != 250 {
		t.Errorf("unexpected last change: %+v", changes[3])
	}
}

func TestPanelWrapsSelection(t *testing.T) {
	p := Defaults()
	panel := NewPanel(&p, nil)

	panel.Prev()
	if panel.Selected() != DebugRender {
		t.Errorf("expected wrap to last field, got %s", panel.Selected())
	}
	panel.Next()
	if panel.Selected() != WoodDensity {
		t.Errorf("expected wrap to first field, got %s", panel.Selected())
	}
}
