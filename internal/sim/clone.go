package sim

import (
	"github.com/hubnet/battlecore/internal/action"
	"github.com/hubnet/battlecore/internal/movement"
	"github.com/hubnet/battlecore/internal/script"
	"github.com/hubnet/battlecore/internal/statusfx"
)

// Clone returns a deep, independent copy of the entire simulation —
// entity store, animators, sprite trees, actions, field, status
// director, time-freeze, RNG seed+state, pending callback queue,
// statistics, and progress (§4.10's snapshot list).
func (s *Simulation) Clone() *Simulation {
	out := &Simulation{
		Entities: s.Entities.Clone(),

		Positions: *s.Positions.Clone(),
		Livings:   *s.Livings.Clone(),
		Teams:     *s.Teams.Clone(),
		EntFlags:  *s.EntFlags.Clone(),
		Handles:   *s.Handles.Clone(),

		ActionQueues: *s.ActionQueues.CloneWith(func(q *action.Queue) *action.Queue { return q.Clone() }),
		Movements:    *s.Movements.CloneWith(func(m *movement.Movement) *movement.Movement { return m.Clone() }),
		StatusFX:     *s.StatusFX.CloneWith(func(d *statusfx.Director) *statusfx.Director { return d.Clone() }),
		CombatProfiles: *s.CombatProfiles.CloneWith(func(p *CombatProfile) *CombatProfile { return p.Clone() }),
		HpChangeLogs:   *s.HpChangeLogs.CloneWith(func(c *HpChanges) *HpChanges { return c.Clone() }),
		Shadows:        *s.Shadows.Clone(),

		Animators:      s.Animators.Clone(),
		SpriteTrees:    s.SpriteTrees.Clone(),
		Field:          s.Field.Clone(),
		StatusRegistry: s.StatusRegistry, // immutable battle-lifetime config, shared by reference
		TimeFreeze:     s.TimeFreeze.Clone(),
		BattleState:    s.BattleState.CloneForSnapshot(),

		RNG:      s.RNG.Clone(),
		Cosmetic: s.Cosmetic,

		Pending: s.Pending.Clone(),

		Statistics: s.Statistics.Clone(),

		ErrorSink: s.ErrorSink,

		Frame:     s.Frame,
		Turn:      s.Turn,
		turnLimit: s.turnLimit,
		Progress:  s.Progress,

		turnConfirmed: s.turnConfirmed,
		formPending:   s.formPending,
	}
	out.introHandles = make(map[uint64]bool, len(s.introHandles))
	for k, v := range s.introHandles {
		out.introHandles[k] = v
	}
	out.ScriptCallbacks = make(map[ScriptSlot]script.FunctionHandle, len(s.ScriptCallbacks))
	for k, v := range s.ScriptCallbacks {
		out.ScriptCallbacks[k] = v
	}
	out.pendingHits = append([]PendingHit(nil), s.pendingHits...)
	return out
}
