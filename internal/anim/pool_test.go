package anim

import "testing"

func TestPoolAllocFreeInvalidatesHandle(t *testing.T) {
	p := NewPool()
	h := p.Alloc()
	if _, ok := p.Get(h); !ok {
		t.Fatalf("expected fresh handle valid")
	}
	p.Free(h)
	if _, ok := p.Get(h); ok {
		t.Fatalf("expected freed handle invalid")
	}
}

func TestPoolUpdateOrdersByIndex(t *testing.T) {
	p := NewPool()
	h1 := p.Alloc()
	h2 := p.Alloc()

	frames := []Frame{{Duration: 1, OnceCallbackID: "a"}, {Duration: 1}}
	a1, _ := p.Get(h1)
	a1.Load(map[string][]Frame{"s": frames})
	a1.SetState("s")
	a2, _ := p.Get(h2)
	a2.Load(map[string][]Frame{"s": frames})
	a2.SetState("s")

	fired := p.Update()
	if len(fired) != 2 {
		t.Fatalf("expected 2 handles firing, got %d", len(fired))
	}
	if fired[0].Handle != h1 || fired[1].Handle != h2 {
		t.Fatalf("expected handles in pool index order")
	}
}

func TestPoolCloneIndependent(t *testing.T) {
	p := NewPool()
	h := p.Alloc()
	a, _ := p.Get(h)
	a.Load(map[string][]Frame{"s": {{Duration: 5}}})
	a.SetState("s")

	clone := p.Clone()
	ca, _ := clone.Get(h)
	ca.SetState("other")

	orig, _ := p.Get(h)
	if orig.state != "s" {
		t.Fatalf("expected original state unaffected by clone mutation, got %s", orig.state)
	}
}
