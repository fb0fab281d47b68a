// Package callback implements the uniform "deferred host closure" type used
// by every battle subsystem for engine and script callbacks (§4.9).
package callback

// Result is the outcome a Callback hands back to its caller. Engine call
// sites interpret Value per their own default-value contract (§7: every
// callback returns a default on internal failure — bool defaults false, int
// defaults 0, and so on); Result only carries the raw value plus whether the
// underlying function actually ran.
type Result struct {
	Value any
	Ran   bool
}

// Func is the uniform callback signature: host context, shared resources,
// the simulation being mutated, and caller-supplied parameters.
type Func[Ctx, Shared, Sim any] func(ctx Ctx, shared Shared, sim Sim, params any) Result

// Callback wraps a Func so it can be stored, cloned, and bound like the
// "cheaply cloneable refcounted closure" described in §4.9. Go funcs are
// already reference values, so Callback is a thin value type around one;
// cloning a Callback is a plain struct copy.
type Callback[Ctx, Shared, Sim any] struct {
	fn      Func[Ctx, Shared, Sim]
	name    string // for diagnostics/logging only
	boundTo any    // non-nil once Bind has fixed params
}

// Stub returns a callback that ignores its inputs and always returns def,
// matching the default-value contract used when a script clears a callback
// slot (the `-FN` suffix tables in §6.1 substitute this for nil).
func Stub[Ctx, Shared, Sim any](name string, def any) Callback[Ctx, Shared, Sim] {
	return Callback[Ctx, Shared, Sim]{
		name: name,
		fn: func(Ctx, Shared, Sim, any) Result {
			return Result{Value: def, Ran: false}
		},
	}
}

// New wraps a plain function as a Callback.
func New[Ctx, Shared, Sim any](name string, fn Func[Ctx, Shared, Sim]) Callback[Ctx, Shared, Sim] {
	return Callback[Ctx, Shared, Sim]{name: name, fn: fn}
}

// Bind returns a zero-argument callback with params fixed at call time; the
// caller invokes Invoke(ctx, shared, sim, nil) and the original params are
// substituted transparently.
func (c Callback[Ctx, Shared, Sim]) Bind(params any) Callback[Ctx, Shared, Sim] {
	bound := c
	bound.boundTo = params
	return bound
}

// Invoke calls the underlying function, substituting bound params if Bind
// was used. A nil underlying fn (zero-value Callback) is treated as a no-op
// returning the zero Result — queries against despawned targets resolve this
// way per §7's "missing target is silent" rule.
func (c Callback[Ctx, Shared, Sim]) Invoke(ctx Ctx, shared Shared, sim Sim, params any) Result {
	if c.fn == nil {
		return Result{}
	}
	if c.boundTo != nil {
		params = c.boundTo
	}
	return c.fn(ctx, shared, sim, params)
}

// IsZero reports whether this callback has no underlying function.
func (c Callback[Ctx, Shared, Sim]) IsZero() bool {
	return c.fn == nil
}

// Name returns the diagnostic name, used in script-error log lines (§7).
func (c Callback[Ctx, Shared, Sim]) Name() string {
	return c.name
}
