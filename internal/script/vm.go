// Package script implements the Script VM Manager and host/guest bridge
// (§4.9, §6.1): one goja.Runtime per loaded package, a deterministic
// Math.random, a sorted-key detPairs iterator (for...in itself keeps
// goja's order), and FunctionHandle, a typed function reference keyed by
// (vm index, local key).
//
// Grounded on the teacher-adjacent r3e-network-service_layer's
// gojaScriptEngine (system/tee/script_engine.go): per-invocation goja.New(),
// injecting host values via vm.Set, and goja.AssertFunction for calling
// back into guest code. That service spins up one Runtime per request;
// here a Runtime is long-lived per loaded script package, since battle
// scripts hold state (registered callbacks, module-level variables)
// across many simulation ticks.
package script

import (
	"fmt"
	"sort"

	"github.com/dop251/goja"
)

// FunctionHandle identifies a guest function registered as a callback.
type FunctionHandle struct {
	VMIndex  int
	LocalKey string
}

// VM wraps one goja runtime plus the determinism shims required by §6.1.
type VM struct {
	index   int
	rt      *goja.Runtime
	rngNext func() float64
}

// NewVM creates a runtime wired with a deterministic RNG source. rngNext
// must be backed by the simulation's snapshotted RNG (internal/rng.Sim),
// never by an unsnapshotted source — §6.1 "scripts must not call
// math.random directly".
func NewVM(index int, rngNext func() float64) *VM {
	rt := goja.New()
	vm := &VM{index: index, rt: rt, rngNext: rngNext}
	vm.installDeterminism()
	return vm
}

// installDeterminism overrides Math.random with the supplied deterministic
// source and installs a `detPairs` host function that iterates a plain
// object's own keys in sorted order, standing in for Lua's `pairs` (§6.1:
// "engine replaces pairs with a sort-by-key iterator"). Scripts are
// expected to use `detPairs(obj, fn)` instead of `for...in`.
func (v *VM) installDeterminism() {
	mathObj := v.rt.Get("Math").ToObject(v.rt)
	_ = mathObj.Set("random", func(goja.FunctionCall) goja.Value {
		return v.rt.ToValue(v.rngNext())
	})

	_ = v.rt.Set("detPairs", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		obj := call.Arguments[0].ToObject(v.rt)
		fn, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			return goja.Undefined()
		}
		keys := obj.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fn(goja.Undefined(), v.rt.ToValue(k), obj.Get(k)); err != nil {
				panic(v.rt.ToValue(err.Error()))
			}
		}
		return goja.Undefined()
	})
}

// RunSource loads script source into the runtime (module-level code,
// table registration calls).
func (v *VM) RunSource(name, src string) error {
	_, err := v.rt.RunScript(name, src)
	if err != nil {
		return fmt.Errorf("script: run %s: %w", name, err)
	}
	return nil
}

// Global exposes a host value under name for guest scripts to read.
func (v *VM) Global(name string, value any) error {
	return v.rt.Set(name, value)
}

// Call invokes the guest function bound to localKey with args, returning
// its exported return value. A missing function is not an error at this
// layer — §7 requires engine defaults on script failure, which the
// Callback wrapper built on top of Call supplies.
func (v *VM) Call(localKey string, args ...any) (any, error) {
	fnVal := v.rt.Get(localKey)
	fn, ok := goja.AssertFunction(fnVal)
	if !ok {
		return nil, fmt.Errorf("script: %s is not a function", localKey)
	}
	jsArgs := make([]goja.Value, len(args))
	for i, a := range args {
		jsArgs[i] = v.rt.ToValue(a)
	}
	result, err := fn(goja.Undefined(), jsArgs...)
	if err != nil {
		return nil, fmt.Errorf("script: call %s: %w", localKey, err)
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return nil, nil
	}
	return result.Export(), nil
}

// Index returns this VM's position in the Manager's vm table.
func (v *VM) Index() int { return v.index }
