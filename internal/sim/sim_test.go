package sim

import (
	"testing"

	"github.com/hubnet/battlecore/internal/spatial"
)

func newTestSim() *Simulation {
	return New(8, 8, 1, 2, 7, nil)
}

func TestSpawnAllocatesHandles(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()

	if !s.Entities.Contains(e) {
		t.Fatalf("expected entity live after spawn")
	}
	h, ok := s.Handles.Get(e)
	if !ok || h.Animator.IsNil() || h.SpriteTree.IsNil() {
		t.Fatalf("expected non-nil animator/sprite-tree handles, got %+v ok=%v", h, ok)
	}
	if _, ok := s.ActionQueues.Get(e); !ok {
		t.Fatalf("expected action queue allocated on spawn")
	}
}

func TestDespawnDeferredUntilSweep(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	h, _ := s.Handles.Get(e)

	s.Despawn(e)
	if !s.Entities.Contains(e) {
		t.Fatalf("expected entity still queryable before sweep")
	}
	s.EndTick()
	if s.Entities.Contains(e) {
		t.Fatalf("expected entity gone after sweep")
	}
	if _, ok := s.Animators.Get(h.Animator); ok {
		t.Fatalf("expected animator pool slot freed after sweep")
	}
}

func TestEncodeDecodeEntityRoundTrip(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	id := EncodeEntity(e)
	if DecodeEntity(id) != e {
		t.Fatalf("expected round trip, got %+v", DecodeEntity(id))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	s.Livings.Add(e, Living{HP: 10})

	clone := s.Clone()
	clone.Livings.Mutate(e, func(l *Living) { l.HP = 1 })

	orig, _ := s.Livings.Get(e)
	if orig.HP != 10 {
		t.Fatalf("expected original unaffected by clone mutation, got %d", orig.HP)
	}
}

func TestTickAdvancesFrame(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	s.Positions.Add(e, Position{Tile: spatial.Tile{X: 0, Y: 0}})

	frameBefore := s.Frame
	s.Tick()
	if s.Frame != frameBefore+1 {
		t.Fatalf("expected frame incremented, got %d", s.Frame)
	}
}

func TestAdvanceStateWaitsForIntroCompletion(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	if s.BattleState.Kind.String() != "Intro" {
		t.Fatalf("expected initial state Intro, got %s", s.BattleState.Kind)
	}

	s.AdvanceState()
	if s.BattleState.Kind.String() != "Intro" {
		t.Fatalf("expected to remain Intro with an incomplete intro pending, got %s", s.BattleState.Kind)
	}

	s.MarkIntroComplete(EncodeEntity(e))
	s.AdvanceState()
	if s.BattleState.Kind.String() != "CardSelect" {
		t.Fatalf("expected transition to CardSelect once intro completed, got %s", s.BattleState.Kind)
	}
}
