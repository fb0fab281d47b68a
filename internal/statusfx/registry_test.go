package statusfx

import "testing"

func TestBuiltinBlockers(t *testing.T) {
	r := NewRegistry()
	if !r.IsBlocked(FlagFreeze, FlagParalyze) {
		t.Fatalf("expected freeze to block paralyze")
	}
	if !r.IsBlocked(FlagParalyze, FlagFreeze) {
		t.Fatalf("expected paralyze to block freeze")
	}
	if !r.IsBlocked(FlagConfuse, FlagFreeze) {
		t.Fatalf("expected confuse to block freeze")
	}
	if r.IsBlocked(FlagRoot, FlagFreeze) {
		t.Fatalf("root should not block freeze")
	}
}

func TestInitSkipsNameConflict(t *testing.T) {
	r := NewRegistry()
	res := r.Init([]Dependency{{PackageID: "p", Namespace: "a", Name: "freeze"}})
	if len(res.Registered) != 0 || len(res.Skipped) != 1 {
		t.Fatalf("expected the built-in name conflict to be skipped: %+v", res)
	}
}

func TestInitExhaustsAtLimit(t *testing.T) {
	r := NewRegistry()
	var deps []Dependency
	for i := 0; i < Limit; i++ {
		deps = append(deps, Dependency{PackageID: "p", Namespace: "z", Name: string(rune('a' + i))})
	}
	res := r.Init(deps)
	if len(res.Exhausted) == 0 {
		t.Fatalf("expected some registrations to be exhausted at the 32-flag limit")
	}
}

func TestDirectorApplyTickExpire(t *testing.T) {
	r := NewRegistry()
	d := NewDirector()
	fired := false
	d.Apply(r, FlagRoot, 2, func() { fired = true })
	if !d.Has(FlagRoot) {
		t.Fatalf("expected root active")
	}
	d.Tick()
	if !d.Has(FlagRoot) {
		t.Fatalf("expected root still active after first tick")
	}
	d.Tick()
	if d.Has(FlagRoot) {
		t.Fatalf("expected root expired after second tick")
	}
	if !fired {
		t.Fatalf("expected destructor to fire on expiry")
	}
}

func TestDirectorApplyBlockedByActive(t *testing.T) {
	r := NewRegistry()
	d := NewDirector()
	d.Apply(r, FlagFreeze, 10, nil)
	if d.Apply(r, FlagParalyze, 10, nil) {
		t.Fatalf("expected paralyze application to be blocked while frozen")
	}
	if d.Has(FlagParalyze) {
		t.Fatalf("blocked status must not apply")
	}
}

func TestDrainDirtyDeterministicOrder(t *testing.T) {
	d := NewDirector()
	d.Apply(nil, FlagRoot, -1, nil)
	d.Apply(nil, FlagConfuse, -1, nil)
	got := d.DrainDirty()
	if len(got) != 2 || got[0] > got[1] {
		t.Fatalf("expected ascending flag order, got %v", got)
	}
	if more := d.DrainDirty(); more != nil {
		t.Fatalf("expected nil on second drain with nothing new dirty")
	}
}
