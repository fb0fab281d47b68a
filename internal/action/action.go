// Package action implements the Action System (§4.4): a queued or
// running behavior with a lockout policy, advanced once per tick via
// process_queues/process_actions.
package action

// Lockout is an action's completion policy.
type Lockout int

const (
	// LockoutAnimation ends when the action's bound animator completes.
	LockoutAnimation Lockout = iota
	// LockoutSequence ends when all of the action's steps complete in order.
	LockoutSequence
	// LockoutAsync runs for a fixed N frames, non-blocking.
	LockoutAsync
)

// Handle identifies an Action.
type Handle uint64

// Step is one atomic step within a sequenced action.
type Step struct {
	Callback  func()
	Completed bool
}

// Action is a queued or running entity behavior.
type Action struct {
	Handle Handle
	Entity uint64

	Lockout  Lockout
	AsyncN   int // frames remaining, for LockoutAsync
	animDone func() bool

	Properties any // card data, opaque to the action system

	Steps      []Step
	stepCursor int

	ExecuteCallback   func(*Action)
	PerFrameCallback  func(*Action)
	EndCallback       func(*Action)
	InterruptCallback func(*Action)
	CanMoveToCallback func(*Action) bool

	executed bool
	elapsed  int
}

// BindAnimationDone wires the predicate LockoutAnimation polls to decide
// completion (the action system does not import anim directly, to avoid
// a dependency edge the spec does not require here).
func (a *Action) BindAnimationDone(fn func() bool) {
	a.animDone = fn
}

// Queue is one entity's ActionQueue: an optional active action plus a
// FIFO pending list (§4.4).
type Queue struct {
	Active  *Action
	pending []*Action
}

// NewQueue creates an empty action queue.
func NewQueue() *Queue {
	return &Queue{}
}

// QueueAction appends act to the pending FIFO (§4.4 step 2).
func (q *Queue) QueueAction(act *Action) {
	q.pending = append(q.pending, act)
}

// ProcessQueues promotes the head of pending to active if nothing is
// currently active, firing its execute callback exactly once on
// promotion (§4.4 steps 3-4).
func (q *Queue) ProcessQueues() {
	if q.Active != nil || len(q.pending) == 0 {
		return
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	q.Active = next
	if !next.executed {
		next.executed = true
		if next.ExecuteCallback != nil {
			next.ExecuteCallback(next)
		}
	}
}

// ProcessActions advances the active action by one tick: fires its
// per-frame callback, advances the step cursor when the current step
// completes, and evaluates the lockout-completion predicate (§4.4 step 5).
// Returns true if the active action completed and was cleared this tick.
func (q *Queue) ProcessActions() bool {
	a := q.Active
	if a == nil {
		return false
	}
	a.elapsed++
	if a.PerFrameCallback != nil {
		a.PerFrameCallback(a)
	}

	switch a.Lockout {
	case LockoutSequence:
		if a.stepCursor < len(a.Steps) && a.Steps[a.stepCursor].Completed {
			a.stepCursor++
		}
		if a.stepCursor >= len(a.Steps) {
			return q.completeActive()
		}
	case LockoutAsync:
		if a.elapsed >= a.AsyncN {
			return q.completeActive()
		}
	case LockoutAnimation:
		if a.animDone != nil && a.animDone() {
			return q.completeActive()
		}
	}
	return false
}

// completeActive fires the end callback, honoring a CanMoveToCallback
// override if present, then frees the active slot (§4.4 step 6).
func (q *Queue) completeActive() bool {
	a := q.Active
	if a.CanMoveToCallback != nil && !a.CanMoveToCallback(a) {
		return false
	}
	if a.EndCallback != nil {
		a.EndCallback(a)
	}
	q.Active = nil
	return true
}

// CancelAll drains the pending queue, interrupts the active action if
// present, then fires its end callback and frees it (§4.4 step 7: "drains
// pending, fires interrupt_callback on active if present, calls end
// callback, frees").
func (q *Queue) CancelAll() {
	q.pending = nil
	if q.Active == nil {
		return
	}
	a := q.Active
	if a.InterruptCallback != nil {
		a.InterruptCallback(a)
	}
	if a.EndCallback != nil {
		a.EndCallback(a)
	}
	q.Active = nil
}

// Pending returns the current pending FIFO, oldest first.
func (q *Queue) Pending() []*Action {
	out := make([]*Action, len(q.pending))
	copy(out, q.pending)
	return out
}

// IsIdle reports whether the queue has nothing active and nothing
// pending — the per-entity half of the turn-over predicate (§4.3: "a
// turn ends once every live entity's action queue has drained").
func (q *Queue) IsIdle() bool {
	return q.Active == nil && len(q.pending) == 0
}

// clone returns a shallow copy of a with its own Steps backing array —
// callback function values are reference types already and are safe to
// share across snapshots, only the step-progress slice needs isolating.
func (a *Action) clone() *Action {
	cp := *a
	cp.Steps = append([]Step(nil), a.Steps...)
	return &cp
}

// Clone returns a deep, independent copy of the queue for simulation
// snapshotting (§4.10's "actions" in the snapshot list).
func (q *Queue) Clone() *Queue {
	out := &Queue{}
	if q.Active != nil {
		out.Active = q.Active.clone()
	}
	out.pending = make([]*Action, len(q.pending))
	for i, a := range q.pending {
		out.pending[i] = a.clone()
	}
	return out
}
