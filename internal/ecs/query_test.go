package ecs

import "testing"

func TestQueryIntersectsStores(t *testing.T) {
	alloc := NewStore()
	hp := NewStore[int]()
	pos := NewStore[string]()

	a := alloc.Spawn()
	b := alloc.Spawn()
	c := alloc.Spawn()

	hp.Add(a, 10)
	hp.Add(b, 20)
	hp.Add(c, 30)

	pos.Add(a, "0,0")
	pos.Add(c, "1,1")

	got := NewQuery().With(hp).With(pos).Execute()
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(got), got)
	}
	seen := map[Entity]bool{}
	for _, e := range got {
		seen[e] = true
	}
	if !seen[a] || !seen[c] || seen[b] {
		t.Fatalf("expected {a,c}, got %+v", got)
	}
}

func TestQueryEmptyWhenNoStores(t *testing.T) {
	if got := NewQuery().Execute(); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
