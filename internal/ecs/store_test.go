package ecs

import "testing"

func TestStoreAddGetMutateRemove(t *testing.T) {
	s := NewStore[int]()
	es := NewStore()
	e := es.Spawn()

	s.Add(e, 1)
	if v, ok := s.Get(e); !ok || v != 1 {
		t.Fatalf("expected 1, got %v ok=%v", v, ok)
	}
	s.Mutate(e, func(v *int) { *v += 10 })
	if v, _ := s.Get(e); v != 11 {
		t.Fatalf("expected 11 after mutate, got %v", v)
	}
	s.Remove(e)
	if s.Has(e) {
		t.Fatalf("expected removed entity absent")
	}
}

func TestStoreCloneIndependent(t *testing.T) {
	s := NewStore[int]()
	es := NewStore()
	e := es.Spawn()
	s.Add(e, 5)

	clone := s.Clone()
	clone.Mutate(e, func(v *int) { *v = 99 })

	if v, _ := s.Get(e); v != 5 {
		t.Fatalf("expected original unaffected by clone mutation, got %d", v)
	}
}

func TestStoreCloneWithDeepCopiesPointerComponents(t *testing.T) {
	type box struct{ n int }
	s := NewStore[*box]()
	es := NewStore()
	e := es.Spawn()
	s.Add(e, &box{n: 1})

	clone := s.CloneWith(func(b *box) *box {
		cp := *b
		return &cp
	})
	cv, _ := clone.Get(e)
	cv.n = 42

	ov, _ := s.Get(e)
	if ov.n != 1 {
		t.Fatalf("expected original box unaffected by clone mutation, got %d", ov.n)
	}
}
