package sim

import (
	"github.com/hubnet/battlecore/internal/anim"
	"github.com/hubnet/battlecore/internal/ecs"
)

// EntityFired pairs an entity with the animator callbacks it fired this
// tick, so the caller (Shared Resources) can route frame/complete/
// interrupt callbacks through its own script/engine dispatch without
// this package needing to know about scripts at all.
type EntityFired struct {
	Entity ecs.Entity
	Fired  []anim.Fired
}

// Tick advances every per-entity facet by one simulation frame: actions,
// movements, status effects, the field, time-freeze, and (when the
// current battle state allows it) animators. It does not advance the
// Battle State Machine itself — callers drive that via AdvanceState,
// separately, since some states (CardSelect) suspend this Tick's work
// entirely per §4.3. Returns animator callbacks to fire, in live-entity
// (index) order.
func (s *Simulation) Tick() []EntityFired {
	var fired []EntityFired
	allowAnim := s.BattleState.AllowsAnimationUpdates()

	for _, e := range s.Entities.Live() {
		if allowAnim {
			if h, ok := s.Handles.Get(e); ok {
				if a, ok := s.Animators.Get(h.Animator); ok {
					if f := a.Update(); len(f) > 0 {
						fired = append(fired, EntityFired{Entity: e, Fired: f})
					}
				}
			}
		}
		if mv, ok := s.Movements.Get(e); ok {
			mv.Tick()
			if mv.Done() {
				s.Movements.Remove(e)
			}
		}
		if aq, ok := s.ActionQueues.Get(e); ok {
			aq.ProcessQueues()
			aq.ProcessActions()
		}
		if dir, ok := s.StatusFX.Get(e); ok {
			dir.Tick()
		}
	}

	s.processHits()

	s.Field.Tick()
	s.TimeFreeze.IncrementTime()
	s.Frame++
	return fired
}

// DrainCallbacks runs every pending callback in FIFO order, with shared
// passed through to each invocation. Kept separate from Tick so callers
// control exactly when callbacks fire relative to the state machine
// update (§4.9's draining happens after the tick's direct mutations).
func (s *Simulation) DrainCallbacks(shared any) {
	s.Pending.Drain(Ctx{Frame: s.Frame}, shared, s)
}

// AdvanceState runs one Update/NextState cycle of the Battle State
// Machine, transitioning if NextState reports a new state.
func (s *Simulation) AdvanceState() {
	s.BattleState.Update(s)
	if next := s.BattleState.NextState(s); next != nil {
		s.BattleState = *next
	}
}

// EndTick sweeps despawned entities, releasing their pool slots. Callers
// run this once, after Tick/AdvanceState/DrainCallbacks have all had a
// chance to react to the erased flag.
func (s *Simulation) EndTick() {
	s.Sweep()
}
