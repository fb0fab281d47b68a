package script

import (
	"fmt"

	"github.com/hubnet/battlecore/internal/callback"
)

// Manager owns every loaded VM, indexed by load order. Guest functions
// are referenced by FunctionHandle (VM index plus local key) and looked
// up in their VM when called; Manager keeps no table of them.
type Manager struct {
	vms   []*VM
	rngFn func() float64
}

// NewManager creates an empty manager. rngFn is shared by every VM it
// creates, so all VMs draw from the same deterministic source in load
// order — the order the battle's package list is resolved in.
func NewManager(rngFn func() float64) *Manager {
	return &Manager{rngFn: rngFn}
}

// LoadPackage creates a new VM, runs its source, and returns its index.
func (m *Manager) LoadPackage(name, src string) (int, error) {
	idx := len(m.vms)
	vm := NewVM(idx, m.rngFn)
	if err := vm.RunSource(name, src); err != nil {
		return 0, err
	}
	m.vms = append(m.vms, vm)
	return idx, nil
}

// VM returns the VM at index, or nil if out of range.
func (m *Manager) VM(index int) *VM {
	if index < 0 || index >= len(m.vms) {
		return nil
	}
	return m.vms[index]
}

// ParamPacker converts the host-supplied params into the ordered
// arguments a guest function expects.
type ParamPacker func(params any) []any

// NewScriptCallback wraps a guest function as a Callback[Ctx, Shared,
// Sim], per §4.9's `new_script_callback(vm_handle, function_handle,
// param_packer)`. Invoking the returned Callback injects a script-facing
// context built by mkContext, packs params, calls the guest function, and
// converts a script error into the zero Result rather than propagating it
// — panics/errors never cross the script boundary as simulation failures
// (§9 "Exceptions/panics across script boundary → catch at the
// boundary").
func NewScriptCallback[Ctx, Shared, Sim any](
	m *Manager,
	handle FunctionHandle,
	pack ParamPacker,
	mkContext func(Ctx, Shared, Sim) any,
	onError func(error),
) callback.Callback[Ctx, Shared, Sim] {
	name := fmt.Sprintf("script:%d:%s", handle.VMIndex, handle.LocalKey)
	return callback.New[Ctx, Shared, Sim](name, func(ctx Ctx, shared Shared, sim Sim, params any) callback.Result {
		vm := m.VM(handle.VMIndex)
		if vm == nil {
			return callback.Result{}
		}
		if mkContext != nil {
			_ = vm.Global("__ctx", mkContext(ctx, shared, sim))
		}
		var args []any
		if pack != nil {
			args = pack(params)
		}
		value, err := vm.Call(handle.LocalKey, args...)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return callback.Result{}
		}
		return callback.Result{Value: value, Ran: true}
	})
}
