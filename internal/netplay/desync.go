// Desync recovery: when a peer reports a checksum mismatch for an
// already-committed frame, Shared Resources' event channel carries a
// DesyncReport and the host layer decides whether to request a
// rollback-resim or give up (the original's desync_patch_api.rs,
// surfaced here since nothing in Non-goals excludes it).
//
// Grounded on the teacher's internal/fsm hierarchical region machine
// (engine/fsm/*.go): unlike the Time-Freeze Tracker's small closed set
// of phases (§9 prefers a hand-rolled enum there), desync recovery is
// genuinely the shape fsm targets — guard-gated transitions driven by
// external events (a report arriving, a resim attempt finishing) rather
// than a fixed linear timeline, plus a bounded-retry guard that reads
// naturally as a closure over attempt count.
package netplay

import (
	"time"

	"github.com/hubnet/battlecore/internal/fsm"
)

const (
	desyncStateStable fsm.StateID = iota + 2
	desyncStateDetected
	desyncStateRollingBack
	desyncStateAborted
)

const desyncRegion = "recovery"

// MaxRollbackAttempts bounds how many times the host will retry a resim
// for the same desync episode before giving up.
const MaxRollbackAttempts = 3

// DesyncReport is one peer's checksum mismatch for a committed frame.
type DesyncReport struct {
	Frame    int64
	Checksum uint64
	PeerID   PeerID
}

// DesyncContext is the fsm context type threaded through guards/actions.
type DesyncContext struct {
	pending  *DesyncReport
	attempts int

	// RequestResim is invoked on entering RollingBack; the host calls
	// ResolveResim once the resim finishes.
	RequestResim func(report DesyncReport, attempt int)
	// OnAbort is invoked on entering Aborted.
	OnAbort func(report DesyncReport)

	rollbackSucceeded bool
	rollbackFailed    bool
}

// DesyncCoordinator wraps an fsm.Machine configured for the
// Stable -> Detected -> RollingBack -> (Stable | Detected | Aborted) cycle,
// retrying a bounded number of times before giving up.
type DesyncCoordinator struct {
	machine *fsm.Machine[*DesyncContext]
	ctx     *DesyncContext
}

// NewDesyncCoordinator builds and initializes the recovery machine.
func NewDesyncCoordinator(requestResim func(DesyncReport, int), onAbort func(DesyncReport)) *DesyncCoordinator {
	m := fsm.NewMachine[*DesyncContext]()
	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)

	stable := m.AddState(desyncStateStable, "Stable", fsm.StateRoot)
	m.AddState(desyncStateDetected, "Detected", fsm.StateRoot)
	rollingBack := m.AddState(desyncStateRollingBack, "RollingBack", fsm.StateRoot)
	aborted := m.AddState(desyncStateAborted, "Aborted", fsm.StateRoot)

	hasPending := func(ctx *DesyncContext, _ *fsm.RegionState) bool { return ctx.pending != nil }
	failedCanRetry := func(ctx *DesyncContext, _ *fsm.RegionState) bool {
		return ctx.rollbackFailed && ctx.attempts < MaxRollbackAttempts
	}
	failedExhausted := func(ctx *DesyncContext, _ *fsm.RegionState) bool {
		return ctx.rollbackFailed && ctx.attempts >= MaxRollbackAttempts
	}
	succeeded := func(ctx *DesyncContext, _ *fsm.RegionState) bool { return ctx.rollbackSucceeded }

	m.AddTransition(desyncStateStable, fsm.Transition[*DesyncContext]{TargetID: desyncStateDetected, Guard: hasPending})
	m.AddTransition(desyncStateDetected, fsm.Transition[*DesyncContext]{TargetID: desyncStateRollingBack})
	m.AddTransition(desyncStateRollingBack, fsm.Transition[*DesyncContext]{TargetID: desyncStateStable, Guard: succeeded})
	m.AddTransition(desyncStateRollingBack, fsm.Transition[*DesyncContext]{TargetID: desyncStateDetected, Guard: failedCanRetry})
	m.AddTransition(desyncStateRollingBack, fsm.Transition[*DesyncContext]{TargetID: desyncStateAborted, Guard: failedExhausted})

	stable.OnEnter = append(stable.OnEnter, fsm.Action[*DesyncContext]{
		Func: func(ctx *DesyncContext, _ any) {
			ctx.pending = nil
			ctx.attempts = 0
		},
	})
	rollingBack.OnEnter = append(rollingBack.OnEnter, fsm.Action[*DesyncContext]{
		Func: func(ctx *DesyncContext, _ any) {
			ctx.attempts++
			ctx.rollbackSucceeded = false
			ctx.rollbackFailed = false
			if ctx.RequestResim != nil && ctx.pending != nil {
				ctx.RequestResim(*ctx.pending, ctx.attempts)
			}
		},
	})
	aborted.OnEnter = append(aborted.OnEnter, fsm.Action[*DesyncContext]{
		Func: func(ctx *DesyncContext, _ any) {
			if ctx.OnAbort != nil && ctx.pending != nil {
				ctx.OnAbort(*ctx.pending)
			}
		},
	})

	m.DefineRegion(desyncRegion, desyncStateStable)
	if err := m.CompilePaths(); err != nil {
		panic("netplay: desync machine: " + err.Error())
	}

	ctx := &DesyncContext{RequestResim: requestResim, OnAbort: onAbort}
	if err := m.Init(ctx); err != nil {
		panic("netplay: desync machine: " + err.Error())
	}

	return &DesyncCoordinator{machine: m, ctx: ctx}
}

// Report feeds a newly observed desync into the machine.
func (d *DesyncCoordinator) Report(r DesyncReport) {
	if d.ctx.pending == nil {
		d.ctx.pending = &r
	}
}

// ResolveResim tells the coordinator how the most recent resim attempt
// went; call once per RequestResim invocation.
func (d *DesyncCoordinator) ResolveResim(succeeded bool) {
	if succeeded {
		d.ctx.rollbackSucceeded = true
	} else {
		d.ctx.rollbackFailed = true
	}
}

// Update drives the machine's auto-transitions for one host tick.
func (d *DesyncCoordinator) Update(dt time.Duration) {
	d.machine.Update(d.ctx, dt)
}

// State returns the current recovery phase name ("Stable", "Detected",
// "RollingBack", "Aborted").
func (d *DesyncCoordinator) State() string {
	return d.machine.GetRegionState(desyncRegion)
}
