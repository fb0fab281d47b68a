package sim

import "github.com/hubnet/battlecore/internal/combat"

// PendingHit is one hit queued for resolution on the next Tick, rather
// than applied immediately at the point it was generated (§4.5: card
// execution, status effects, and scripts all produce hits at different
// points in a frame; queuing lets the pipeline run once, in order, per
// tick, which rollback's determinism requires).
type PendingHit struct {
	Target uint64
	Hit    combat.Hit
}

// Diagnostics lets the Hit/Defense Pipeline report a defense rule error
// without internal/sim depending on a logger directly; concrete callers
// (internal/shared.Resources) implement this against their own logger.
type Diagnostics interface {
	ReportError(frame int64, source string, err error)
}

// EnqueueHit queues hit for resolution against targetID on the next
// Tick (§4.5 step 1: "resolve target").
func (s *Simulation) EnqueueHit(targetID uint64, hit combat.Hit) {
	s.pendingHits = append(s.pendingHits, PendingHit{Target: targetID, Hit: hit})
}

// processHits drains the pending-hit queue through the Hit/Defense
// Pipeline in FIFO order, applying each target's persistent CombatProfile
// rules and callbacks; no ad hoc rules or callbacks are added here.
func (s *Simulation) processHits() {
	if len(s.pendingHits) == 0 {
		return
	}
	hits := s.pendingHits
	s.pendingHits = nil
	for _, ph := range hits {
		target := ph.Target
		combat.Process(s.resolveForHit, target, ph.Hit)
	}
}

// resolveForHit builds a combat.Target for targetID with no ad hoc
// defense rules or hit callbacks beyond what the entity's CombatProfile
// already carries, reporting any defense-rule error through ErrorSink
// rather than swallowing it (§7's error taxonomy: defense rule errors
// surface, they don't panic the tick).
func (s *Simulation) resolveForHit(targetID uint64) *combat.Target {
	onErr := func(err error) {
		if s.ErrorSink != nil {
			s.ErrorSink.ReportError(s.Frame, "combat.defense_rule", err)
		}
	}
	return s.ResolveTarget(targetID, nil, onErr, nil)
}
