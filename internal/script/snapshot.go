package script

// Snapshotter captures and restores a VM's observable state as an opaque
// blob. goja has no built-in heap/stack snapshot primitive, so unlike
// internal/rng.Sim (which wraps a generator with a real binary snapshot
// format), a VM's snapshot is whatever the loaded script exposes through
// a pair of host-callable hooks (`__snapshot`/`__restore`), typically a
// JSON dump of its module-level state table. A script that registers
// neither hook is treated as stateless: Snap/Restore are then no-ops,
// which is correct for scripts whose only state lives in the simulation
// entities they mutate, not in VM-local variables.
type Snapshotter struct {
	vm *VM
}

// NewSnapshotter wraps vm for ring-buffered snapshotting.
func NewSnapshotter(vm *VM) *Snapshotter {
	return &Snapshotter{vm: vm}
}

func (s *Snapshotter) dump() (string, bool) {
	val, err := s.vm.Call("__snapshot")
	if err != nil {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

func (s *Snapshotter) load(blob string) {
	_, _ = s.vm.Call("__restore", blob)
}

type frameEntry struct {
	frame int64
	blobs map[int]string
}

// Ring is a fixed-capacity ring buffer of per-frame VM snapshots, one per
// VM, bounded by INPUT_BUFFER_LIMIT (§4.10).
type Ring struct {
	limit   int
	snaps   map[int]*Snapshotter
	history []frameEntry
}

// NewRing creates a ring buffer retaining at most limit frames per VM.
func NewRing(limit int) *Ring {
	return &Ring{limit: limit, snaps: make(map[int]*Snapshotter)}
}

// Track registers vm so its snapshots are captured by Snap.
func (r *Ring) Track(vm *VM) {
	r.snaps[vm.Index()] = NewSnapshotter(vm)
}

// Snap commits the current frame's state for every tracked VM.
func (r *Ring) Snap(frame int64) {
	blobs := make(map[int]string, len(r.snaps))
	for idx, snap := range r.snaps {
		if blob, ok := snap.dump(); ok {
			blobs[idx] = blob
		}
	}
	r.history = append(r.history, frameEntry{frame: frame, blobs: blobs})
	if len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
}

// Rollback restores every tracked VM to the state captured n frames
// before the most recent Snap.
func (r *Ring) Rollback(n int) bool {
	idx := len(r.history) - 1 - n
	if idx < 0 || idx >= len(r.history) {
		return false
	}
	entry := r.history[idx]
	for vmIdx, blob := range entry.blobs {
		if snap, ok := r.snaps[vmIdx]; ok {
			snap.load(blob)
		}
	}
	r.history = r.history[:idx+1]
	return true
}
