package callback

// Queued is one entry waiting in the pending-callback FIFO: the callback
// itself plus whatever params it should be invoked with.
type Queued[Ctx, Shared, Sim any] struct {
	CB     Callback[Ctx, Shared, Sim]
	Params any
}

// Queue is the pending_callbacks FIFO described in §3's invariant ("pending
// callback drain") and §4.9 ("scripts can invoke engine APIs that queue
// further callbacks... these are drained by call_pending_callbacks").
//
// The teacher's event.EventQueue (event/queue.go) is a lock-free MPSC ring
// buffer sized for concurrent producers across goroutines; this simulation
// is single-threaded cooperative (§5), so the CAS/atomic machinery buys
// nothing here and is dropped in favor of a plain growable slice. The
// contract it preserves from the teacher is the shape: Push appends,
// Consume drains everything in FIFO order and the queue is empty at tick
// start (§3's "pending callback drain" invariant).
type Queue[Ctx, Shared, Sim any] struct {
	items []Queued[Ctx, Shared, Sim]
}

// NewQueue creates an empty pending-callback queue.
func NewQueue[Ctx, Shared, Sim any]() *Queue[Ctx, Shared, Sim] {
	return &Queue[Ctx, Shared, Sim]{items: make([]Queued[Ctx, Shared, Sim], 0, 16)}
}

// Push appends a callback invocation to the tail of the queue. Safe to call
// from within a callback that is itself being drained — Drain re-reads
// len(q.items) each iteration so appended entries are picked up in the same
// pass (§4.9: "draining continues until empty").
func (q *Queue[Ctx, Shared, Sim]) Push(cb Callback[Ctx, Shared, Sim], params any) {
	q.items = append(q.items, Queued[Ctx, Shared, Sim]{CB: cb, Params: params})
}

// Len reports the number of callbacks currently queued.
func (q *Queue[Ctx, Shared, Sim]) Len() int {
	return len(q.items)
}

// Drain invokes every queued callback in FIFO order, including ones pushed
// by callbacks that ran earlier in the same Drain call, until the queue is
// empty. Calling Drain on an empty queue is a no-op (§8: "callback drain
// idempotence").
func (q *Queue[Ctx, Shared, Sim]) Drain(ctx Ctx, shared Shared, sim Sim) {
	for i := 0; i < len(q.items); i++ {
		entry := q.items[i]
		entry.CB.Invoke(ctx, shared, sim, entry.Params)
	}
	q.items = q.items[:0]
}

// Clone returns an independent copy for simulation snapshotting. Queued
// entries are plain values (a Callback is just a wrapped func), so a
// slice copy is already a deep copy.
func (q *Queue[Ctx, Shared, Sim]) Clone() *Queue[Ctx, Shared, Sim] {
	return &Queue[Ctx, Shared, Sim]{items: append([]Queued[Ctx, Shared, Sim](nil), q.items...)}
}
