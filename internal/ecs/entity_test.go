package ecs

import "testing"

func TestSpawnAssignsIncreasingIndices(t *testing.T) {
	s := NewStore()
	a := s.Spawn()
	b := s.Spawn()
	if a.Index == b.Index {
		t.Fatalf("expected distinct indices, got %d and %d", a.Index, b.Index)
	}
	if !s.Contains(a) || !s.Contains(b) {
		t.Fatalf("expected both entities live")
	}
}

func TestDespawnInvalidatesOldHandle(t *testing.T) {
	s := NewStore()
	a := s.Spawn()
	s.MarkErased(a)
	s.Sweep(nil)

	if s.Contains(a) {
		t.Fatalf("expected stale handle to fail Contains after sweep")
	}

	b := s.Spawn()
	if b.Index != a.Index {
		t.Fatalf("expected slot reuse, got new index %d want %d", b.Index, a.Index)
	}
	if b.Generation == a.Generation {
		t.Fatalf("expected generation bump on reuse")
	}
	if s.Contains(a) {
		t.Fatalf("old generation handle must not validate against reused slot")
	}
	if !s.Contains(b) {
		t.Fatalf("expected new handle to be live")
	}
}

func TestSweepDefersUntilCalled(t *testing.T) {
	s := NewStore()
	a := s.Spawn()
	s.MarkErased(a)
	if !s.Contains(a) {
		t.Fatalf("erased-but-unswept entity should still satisfy Contains within the tick")
	}
	if !s.IsErased(a) {
		t.Fatalf("expected IsErased true before sweep")
	}
}

func TestLiveIsDeterministicOrder(t *testing.T) {
	s := NewStore()
	var want []Entity
	for i := 0; i < 5; i++ {
		want = append(want, s.Spawn())
	}
	got := s.Live()
	if len(got) != len(want) {
		t.Fatalf("len mismatch")
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}
