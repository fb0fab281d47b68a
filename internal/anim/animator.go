// Package anim implements the Animator (§4.2): a state machine over named
// frame lists, with callbacks fired on frame change, loop, and completion.
package anim

// Vec2 is a named point carried by a frame (anchors, hit origins, etc.).
type Vec2 struct {
	X, Y float64
}

// Rect is a sprite-sheet source rectangle.
type Rect struct {
	X, Y, W, H int
}

// Frame is one entry in an animation state's frame list.
type Frame struct {
	Duration int
	Sprite   Rect
	Origin   Vec2
	Points   map[string]Vec2
	// OnceCallbackID, when non-empty, names a do-once frame callback that
	// is removed from the frame after it fires.
	OnceCallbackID string
}

// PlaybackMode is the caller-facing loop mode (§4.2).
type PlaybackMode int

const (
	Once PlaybackMode = iota
	Loop
	Bounce
	Reverse
)

type loopMode int

const (
	loopOnce loopMode = iota
	loopWrap
	loopBounce
)

// CallbackKind distinguishes the three callback classes an Update can
// return, in the fixed firing order §4.2 specifies.
type CallbackKind int

const (
	CallbackFrame CallbackKind = iota
	CallbackComplete
	CallbackInterrupt
)

// Fired is one callback id the caller should invoke, tagged with why.
type Fired struct {
	Kind CallbackKind
	ID   string
}

// Animator is a state machine over named frame lists.
type Animator struct {
	states map[string][]Frame

	state        string
	frameIndex   int
	elapsed      int
	loopCount    int
	reversed     bool
	mode         loopMode
	complete     bool

	interruptCallbacks []string
	completeCallbacks  []string

	synthCounter int
}

// New creates an empty animator with no states loaded.
func New() *Animator {
	return &Animator{states: make(map[string][]Frame)}
}

// Load replaces the entire state map (as if read from an asset path),
// then performs the same reset Load always does: drain and return
// interrupt callbacks, and clear complete/frame callbacks.
func (a *Animator) Load(states map[string][]Frame) []Fired {
	a.states = states
	return a.resetCallbacks()
}

func (a *Animator) resetCallbacks() []Fired {
	out := make([]Fired, 0, len(a.interruptCallbacks))
	for _, id := range a.interruptCallbacks {
		out = append(out, Fired{Kind: CallbackInterrupt, ID: id})
	}
	a.interruptCallbacks = nil
	a.completeCallbacks = nil
	a.complete = false
	return out
}

// SetState switches to a named state, resetting frame index to 0 (or the
// last frame if reversed), clearing complete, clearing frame callbacks,
// and draining/returning interrupt callbacks.
func (a *Animator) SetState(name string) []Fired {
	frames := a.states[name]
	out := a.resetCallbacks()
	a.state = name
	a.elapsed = 0
	a.loopCount = 0
	if a.reversed && len(frames) > 0 {
		a.frameIndex = len(frames) - 1
	} else {
		a.frameIndex = 0
	}
	return out
}

// SetPlaybackMode maps the caller-facing mode onto the internal loop mode
// and reversed flag (Reverse = Once + reversed).
func (a *Animator) SetPlaybackMode(mode PlaybackMode) {
	switch mode {
	case Once:
		a.mode, a.reversed = loopOnce, false
	case Loop:
		a.mode, a.reversed = loopWrap, false
	case Bounce:
		a.mode, a.reversed = loopBounce, false
	case Reverse:
		a.mode, a.reversed = loopOnce, true
	}
}

// CurrentFrame returns the frame the animator is currently displaying.
func (a *Animator) CurrentFrame() (Frame, bool) {
	frames := a.states[a.state]
	if a.frameIndex < 0 || a.frameIndex >= len(frames) {
		return Frame{}, false
	}
	return frames[a.frameIndex], true
}

// Complete reports whether playback has finished (Once/Reverse reaching
// its last frame).
func (a *Animator) Complete() bool { return a.complete }

// RegisterOnComplete appends id to the callbacks fired the tick playback
// completes (§4.2's on_complete contract, §6.1's Animation table).
// Registrations accumulate across a SetState/Load cycle's lifetime and
// are cleared by the next reset, same as a frame's OnceCallbackID.
func (a *Animator) RegisterOnComplete(id string) {
	a.completeCallbacks = append(a.completeCallbacks, id)
}

// RegisterOnInterrupt appends id to the callbacks fired when the current
// state is abandoned before completing (§4.2's on_interrupt contract).
func (a *Animator) RegisterOnInterrupt(id string) {
	a.interruptCallbacks = append(a.interruptCallbacks, id)
}

// Update advances the animator by one simulation frame and returns the
// callbacks to fire, in the fixed order: frame callbacks for a first-run
// or frame-changed tick, then complete callbacks if a loop finished or
// playback completed this tick.
func (a *Animator) Update() []Fired {
	frames := a.states[a.state]
	if len(frames) == 0 {
		return nil
	}

	var out []Fired
	firstRun := a.elapsed == 0
	prevIndex := a.frameIndex
	loopedThisTick := false

	cur := frames[a.frameIndex]
	a.elapsed++
	if a.elapsed >= cur.Duration {
		a.elapsed = 0
		loopedThisTick = a.advanceFrame(frames)
	}

	if firstRun {
		if id := frames[prevIndex].OnceCallbackID; id != "" {
			out = append(out, Fired{Kind: CallbackFrame, ID: id})
			a.clearOnceCallback(prevIndex)
		}
	}
	if a.frameIndex != prevIndex {
		if f, ok := a.CurrentFrame(); ok && f.OnceCallbackID != "" {
			out = append(out, Fired{Kind: CallbackFrame, ID: f.OnceCallbackID})
			a.clearOnceCallback(a.frameIndex)
		}
	}

	if loopedThisTick || a.complete {
		for _, id := range a.completeCallbacks {
			out = append(out, Fired{Kind: CallbackComplete, ID: id})
		}
		if a.complete {
			a.interruptCallbacks = nil
		}
	}

	return out
}

func (a *Animator) clearOnceCallback(idx int) {
	frames := a.states[a.state]
	if idx < 0 || idx >= len(frames) || frames[idx].OnceCallbackID == "" {
		return
	}
	// Copy on write: the frame slice may be shared with clones and with
	// other animators loaded from the same states.
	states := make(map[string][]Frame, len(a.states))
	for k, v := range a.states {
		states[k] = v
	}
	cp := append([]Frame(nil), frames...)
	cp[idx].OnceCallbackID = ""
	states[a.state] = cp
	a.states = states
}

// advanceFrame moves to the next frame per the active loop mode, reports
// whether a loop/bounce-flip happened this tick.
func (a *Animator) advanceFrame(frames []Frame) bool {
	n := len(frames)
	if n == 0 {
		return false
	}
	switch a.mode {
	case loopOnce:
		if a.reversed {
			if a.frameIndex == 0 {
				a.complete = true
				return false
			}
			a.frameIndex--
		} else {
			if a.frameIndex == n-1 {
				a.complete = true
				return false
			}
			a.frameIndex++
		}
		return false
	case loopWrap:
		a.frameIndex++
		if a.frameIndex >= n {
			a.frameIndex = 0
			a.loopCount++
			return true
		}
		return false
	case loopBounce:
		if a.reversed {
			if a.frameIndex == 0 {
				a.reversed = false
				a.loopCount++
				if n > 1 {
					a.frameIndex = 1
				}
				return true
			}
			a.frameIndex--
		} else {
			if a.frameIndex == n-1 {
				a.reversed = true
				a.loopCount++
				if n > 1 {
					a.frameIndex = n - 2
				}
				return true
			}
			a.frameIndex++
		}
		return false
	}
	return false
}

// DeriveState creates a new synthetic state with a fresh unique name,
// reusing base's frames reordered/duplicated per indices.
func (a *Animator) DeriveState(base string, indices []int) string {
	src := a.states[base]
	derived := make([]Frame, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(src) {
			derived = append(derived, src[i])
		}
	}
	a.synthCounter++
	name := syntheticName(base, a.synthCounter)
	a.states[name] = derived
	return name
}

func syntheticName(base string, n int) string {
	return base + "#derived" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// CopyFrom adopts other's animation data, then performs an implicit
// SetState(current) to reset progress and fire interrupts.
func (a *Animator) CopyFrom(other *Animator) []Fired {
	a.states = other.states
	a.mode = other.mode
	a.reversed = other.reversed
	return a.SetState(a.state)
}

// Clone returns a deep, independent copy for snapshotting.
func (a *Animator) Clone() *Animator {
	clone := &Animator{
		states:       a.states, // frame data is immutable content, safe to share
		state:        a.state,
		frameIndex:   a.frameIndex,
		elapsed:      a.elapsed,
		loopCount:    a.loopCount,
		reversed:     a.reversed,
		mode:         a.mode,
		complete:     a.complete,
		synthCounter: a.synthCounter,
	}
	clone.interruptCallbacks = append([]string(nil), a.interruptCallbacks...)
	clone.completeCallbacks = append([]string(nil), a.completeCallbacks...)
	return clone
}
