package sim

import (
	"github.com/hubnet/battlecore/internal/combat"
	"github.com/hubnet/battlecore/internal/ecs"
	"github.com/hubnet/battlecore/internal/movement"
)

// livingAdapter satisfies combat.Living against one entity's component
// rows, so the hit/defense pipeline can mutate HP/element without
// depending on internal/ecs directly.
type livingAdapter struct {
	s *Simulation
	e ecs.Entity
}

func (l *livingAdapter) HP() int {
	v, _ := l.s.Livings.Get(l.e)
	return v.HP
}

func (l *livingAdapter) SetHP(hp int) {
	var delta int
	l.s.Livings.Mutate(l.e, func(v *Living) {
		delta = hp - v.HP
		v.HP = hp
	})
	if delta == 0 {
		return
	}
	log, ok := l.s.HpChangeLogs.Get(l.e)
	if !ok {
		return
	}
	source := HpSourceHeal
	if delta < 0 {
		source = HpSourceHit
	}
	x, y := float64(0), float64(0)
	if pos, ok := l.s.Positions.Get(l.e); ok {
		x, y = float64(pos.Tile.X)+pos.Offset.X, float64(pos.Tile.Y)+pos.Offset.Y
	}
	log.Record(l.s.Frame, source, delta, x, y)
}

func (l *livingAdapter) Element() int {
	v, _ := l.s.Livings.Get(l.e)
	return v.Element
}

func (l *livingAdapter) HasActiveMovement() bool {
	_, ok := l.s.Movements.Get(l.e)
	return ok
}

// ResolveTarget builds a combat.Target for targetID, wiring its defense
// rules, drag installer, and position/CanMoveTo callbacks against live
// simulation state. Returns nil if the entity cannot be resolved — the
// hit pipeline treats that as a silent miss (§4.5 step 1).
func (s *Simulation) ResolveTarget(targetID uint64, defenseRules []combat.DefenseRule, onDefenseError func(error), hitCallbacks []func(combat.Hit)) *combat.Target {
	e := DecodeEntity(targetID)
	if !s.Entities.Contains(e) {
		return nil
	}
	frozen := s.TimeFreeze.Phase() != 0 // Thawed == 0

	rules := defenseRules
	callbacks := hitCallbacks
	if profile, ok := s.CombatProfiles.Get(e); ok {
		if len(profile.DefenseRules) > 0 {
			rules = append(append([]combat.DefenseRule(nil), profile.DefenseRules...), defenseRules...)
		}
		if len(profile.HitCallbacks) > 0 {
			callbacks = append(append([]func(combat.Hit)(nil), profile.HitCallbacks...), hitCallbacks...)
		}
	}

	return &combat.Target{
		Living:       &livingAdapter{s: s, e: e},
		TimeFrozen:   frozen,
		DefenseRules: rules,
		TileBonusDamage: func() int {
			return 0 // tile bonus rules are script-registered; core has none built in
		},
		ApplyStatusFlags: func(flags uint32) {
			dir, ok := s.StatusFX.Get(e)
			if !ok {
				return
			}
			for bit := uint32(1); bit != 0; bit <<= 1 {
				if flags&bit != 0 {
					dir.Apply(s.StatusRegistry, bit, -1, nil)
				}
				if bit == 1<<31 {
					break
				}
			}
		},
		InstallDragMovement: func(steps int, dx, dy int) {
			pos, ok := s.Positions.Get(e)
			if !ok {
				return
			}
			destX, destY := pos.Tile.X+dx*steps, pos.Tile.Y+dy*steps
			mv := movement.New(movement.Tile{X: pos.Tile.X, Y: pos.Tile.Y}, movement.Tile{X: destX, Y: destY}, 0, steps*combat.DragPerTileDuration, 0, 0)
			s.Movements.Add(e, mv)
		},
		CanMoveTo: func(x, y int) bool {
			t := s.Field.At(x, y)
			return t != nil && t.Walkable()
		},
		Position: func() (int, int) {
			pos, _ := s.Positions.Get(e)
			return pos.Tile.X, pos.Tile.Y
		},
		HitCallbacks:   callbacks,
		OnDefenseError: onDefenseError,
	}
}
