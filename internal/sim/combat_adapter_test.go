package sim

import (
	"testing"

	"github.com/hubnet/battlecore/internal/combat"
	"github.com/hubnet/battlecore/internal/spatial"
)

func TestResolveTargetAppliesDamageAndDrag(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	s.Livings.Add(e, Living{HP: 100})
	s.Positions.Add(e, Position{Tile: spatial.Tile{X: 2, Y: 2}})

	target := s.ResolveTarget(EncodeEntity(e), nil, nil, nil)
	if target == nil {
		t.Fatalf("expected target resolved")
	}

	combat.Process(func(uint64) *combat.Target { return target }, EncodeEntity(e), combat.Hit{
		Damage: 10,
		Drag:   combat.Drag{DX: 1, DY: 0, Count: 2},
	})

	living, _ := s.Livings.Get(e)
	if living.HP != 90 {
		t.Fatalf("expected HP 90, got %d", living.HP)
	}
	if _, ok := s.Movements.Get(e); !ok {
		t.Fatalf("expected drag movement installed")
	}
}

func TestResolveTargetMissingEntityReturnsNil(t *testing.T) {
	s := newTestSim()
	if s.ResolveTarget(9999, nil, nil, nil) != nil {
		t.Fatalf("expected nil for unresolved entity")
	}
}
