package sim

import (
	"github.com/hubnet/battlecore/internal/callback"
	"github.com/hubnet/battlecore/internal/script"
	"github.com/hubnet/battlecore/internal/timefreeze"
)

// This file implements battlestate.Sim against *Simulation so the
// battle state machine can drive the rest of the simulation without
// internal/battlestate importing internal/sim (avoiding the import
// cycle the opposite direction would create).

// ScriptDispatcher lets the simulation hand a bound script callback to
// the host for execution without internal/sim importing the goja
// runtime itself; internal/shared.Resources implements this against its
// own script.Manager.
type ScriptDispatcher interface {
	DispatchScriptCallback(handle script.FunctionHandle, entity uint64) callback.Result
}

// TurnCount returns the current turn index.
func (s *Simulation) TurnCount() int { return s.Turn }

// IncrementTurn bumps the turn counter.
func (s *Simulation) IncrementTurn() { s.Turn++ }

// TurnLimitReached reports whether the configured turn limit (0 means
// unlimited) has been hit.
func (s *Simulation) TurnLimitReached() bool {
	return s.turnLimit > 0 && s.Turn >= s.turnLimit
}

// SetTurnLimit configures the turn limit; 0 disables it.
func (s *Simulation) SetTurnLimit(n int) { s.turnLimit = n }

// FireIntro queues entity's intro action if one is bound, returning a
// synthetic handle derived from the entity id (the intro-action system
// itself is driven by Shared Resources' script callbacks, which install
// the actual ActionQueue entry; this just tracks completion bookkeeping
// for the Intro battle state).
func (s *Simulation) FireIntro(entity uint64) (handle uint64, hasDefault bool) {
	e := DecodeEntity(entity)
	if !s.Entities.Contains(e) {
		return 0, false
	}
	s.introHandles[entity] = false
	return entity, true
}

// IntroComplete reports whether handle's intro action has finished. The
// completion flag is flipped by MarkIntroComplete, called from the
// action system's end callback once wired.
func (s *Simulation) IntroComplete(handle uint64) bool {
	return s.introHandles[handle]
}

// MarkIntroComplete flags an entity's intro action as finished.
func (s *Simulation) MarkIntroComplete(entity uint64) {
	s.introHandles[entity] = true
}

// AllIntrosComplete reports whether every tracked intro has resolved.
func (s *Simulation) AllIntrosComplete() bool {
	for _, done := range s.introHandles {
		if !done {
			return false
		}
	}
	return true
}

// AllPlayersConfirmedCards reports the card-select confirmation gate,
// set by Shared Resources' UI-facing input layer.
func (s *Simulation) AllPlayersConfirmedCards() bool {
	return s.turnConfirmed
}

// SetTurnConfirmed flips the card-select confirmation gate.
func (s *Simulation) SetTurnConfirmed(v bool) { s.turnConfirmed = v }

// FormActivationPending reports whether a queued form activation should
// run before TurnStart.
func (s *Simulation) FormActivationPending() bool { return s.formPending }

// SetFormActivationPending flips the form-activation gate.
func (s *Simulation) SetFormActivationPending(v bool) { s.formPending = v }

// RegisterScriptCallback binds slot on entity to handle, so a later
// FireBattleTurn (or any other script dispatch point keyed the same way)
// has something to invoke (§6.1's per-entity callback registrar tables).
func (s *Simulation) RegisterScriptCallback(entity uint64, slot string, handle script.FunctionHandle) {
	s.ScriptCallbacks[ScriptSlot{Entity: entity, Slot: slot}] = handle
}

// DispatchScriptSlot queues entity's registered slot callback (if any)
// for dispatch the next time Pending drains; the actual goja invocation
// happens in Shared Resources, the only layer holding a script.Manager.
// Used both by FireBattleTurn and directly by script-table bindings that
// need to fire a registered callback outside the battle-state machine
// (e.g. an action's execute step calling back into the script that
// queued it).
func (s *Simulation) DispatchScriptSlot(entity uint64, slot string) {
	handle, ok := s.ScriptCallbacks[ScriptSlot{Entity: entity, Slot: slot}]
	if !ok {
		return
	}
	cb := callback.New[Ctx, any, *Simulation](slot, func(_ Ctx, shared any, _ *Simulation, _ any) callback.Result {
		dispatcher, ok := shared.(ScriptDispatcher)
		if !ok {
			return callback.Result{}
		}
		return dispatcher.DispatchScriptCallback(handle, entity)
	})
	s.Pending.Push(cb, nil)
}

// FireBattleTurn notifies entity that a new turn has started by
// dispatching its registered "battle_turn" script callback (§6.1).
func (s *Simulation) FireBattleTurn(entity uint64) {
	s.DispatchScriptSlot(entity, "battle_turn")
}

// TickBattle advances one simulation frame of the Battle state: actions,
// movements, time-freeze, status, field, animators. Returns whether the
// turn or battle ended.
//
// A turn ends once every live entity's action queue has drained and
// time-freeze has returned to Thawed (§4.3); a battle ends once the turn
// limit is hit, or once at least two distinct teams have been observed
// among live entities but fewer than two of them still have a
// living (HP > 0) member.
func (s *Simulation) TickBattle() (turnOver bool, battleOver bool) {
	s.Tick()

	turnOver = s.TimeFreeze.Phase() == timefreeze.Thawed
	if turnOver {
		for _, e := range s.Entities.Live() {
			aq, ok := s.ActionQueues.Get(e)
			if !ok {
				continue
			}
			if !aq.IsIdle() {
				turnOver = false
				break
			}
		}
	}

	if s.TurnLimitReached() {
		battleOver = true
		return turnOver, battleOver
	}

	teamsSeen := make(map[Team]bool)
	teamsAlive := make(map[Team]bool)
	for _, e := range s.Entities.Live() {
		team, ok := s.Teams.Get(e)
		if !ok {
			continue
		}
		teamsSeen[team] = true
		if living, ok := s.Livings.Get(e); ok && living.HP > 0 {
			teamsAlive[team] = true
		}
	}
	if len(teamsSeen) >= 2 && len(teamsAlive) < 2 {
		battleOver = true
	}
	return turnOver, battleOver
}
