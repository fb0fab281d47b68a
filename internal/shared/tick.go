package shared

import (
	"time"

	"github.com/hubnet/battlecore/internal/netplay"
	"github.com/hubnet/battlecore/internal/sim"
)

// History is a ring of committed Simulation snapshots, one per recent
// frame, bounded by the same InputLimit as Resources.VMRing so a
// simulation rollback and a VM rollback always have matching depth
// (§4.10: "every tick the simulation's entire state tree must be
// clonable... Snapshot = deep clone of Simulation").
type History struct {
	limit int
	snaps []*sim.Simulation // snaps[i] is the Simulation as committed at frame base+i
	base  int64
}

// NewHistory creates an empty ring retaining at most limit frames.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Commit appends s's snapshot as the newest committed frame.
func (h *History) Commit(s *sim.Simulation) {
	if len(h.snaps) == 0 {
		h.base = s.Frame
	}
	h.snaps = append(h.snaps, s.Clone())
	if len(h.snaps) > h.limit {
		drop := len(h.snaps) - h.limit
		h.snaps = h.snaps[drop:]
		h.base += int64(drop)
	}
}

// At returns the committed snapshot for frame, or nil if it has already
// been pruned or was never committed.
func (h *History) At(frame int64) *sim.Simulation {
	idx := frame - h.base
	if idx < 0 || int(idx) >= len(h.snaps) {
		return nil
	}
	return h.snaps[idx].Clone()
}

// Step runs one Tick/AdvanceState/DrainCallbacks/EndTick cycle on s and
// commits the resulting snapshot to history, per §2's per-tick data flow.
func Step(s *sim.Simulation, r *Resources, h *History) {
	s.Tick()
	s.AdvanceState()
	s.DrainCallbacks(r)
	s.EndTick()
	if h != nil {
		h.Commit(s)
	}
	if r.VMRing != nil {
		r.VMRing.Snap(s.Frame)
	}
}

// Rollback implements §4.10's rollback procedure: restore the simulation
// snapshot at frame F, roll every tracked VM back by (current - F)
// frames, and return the restored *sim.Simulation for the caller to
// resimulate forward from using corrected input. Returns nil if frame F
// is no longer in history (caller must treat this as an unrecoverable
// desync — see netplay.DesyncCoordinator's MaxRollbackAttempts).
func Rollback(current int64, frame int64, h *History, r *Resources) *sim.Simulation {
	restored := h.At(frame)
	if restored == nil {
		return nil
	}
	if r.VMRing != nil {
		r.VMRing.Rollback(int(current - frame))
	}
	return restored
}

// Resim re-simulates s tick-by-tick from its current frame up to (and
// including) target, using ib for per-frame input delivery and
// committing a fresh snapshot at every re-simulated frame (§4.10 steps
// 4-5). applyInput is called once per frame before the tick advances, so
// the caller can route ib's recorded flags into the simulation's action
// queues however the script bridge expects.
func Resim(s *sim.Simulation, target int64, ib *netplay.InputBuffer, r *Resources, h *History, applyInput func(frame int64, s *sim.Simulation)) {
	for s.Frame < target {
		if applyInput != nil {
			applyInput(s.Frame, s)
		}
		Step(s, r, h)
	}
}

// Tick drives the full netplay-aware per-frame cycle: wait for every
// expected player's input to be ready at the simulation's current frame
// (§6.3: "missing inputs block simulation at that frame boundary in
// netplay mode"), apply it, then step. Returns false without advancing
// if input is not yet ready.
func Tick(s *sim.Simulation, ib *netplay.InputBuffer, expected []netplay.PlayerIndex, r *Resources, h *History, applyInput func(frame int64, s *sim.Simulation)) bool {
	if ib != nil && !ib.Ready(s.Frame, expected) {
		return false
	}
	if applyInput != nil {
		applyInput(s.Frame, s)
	}
	Step(s, r, h)
	r.Desync.Update(time.Duration(0))
	return true
}
