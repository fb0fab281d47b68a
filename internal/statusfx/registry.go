// Package statusfx implements the battle-lifetime Status Registry (§4.7):
// the table of status flags, their mutual-blocker rules, and the
// immobilizing/inactionable classification sets. It is distinct from the
// stats package, which tracks simulation counters, not status effects.
//
// Grounded on the teacher's registry.RegisterX/GetX/Names name-to-factory
// pattern (registry/registry.go), simplified to a single-threaded registry
// — the simulation has no concurrent registration path — and on
// stats.MetricMap's sorted-key iteration discipline for deterministic
// Names()/blocker-walk order.
package statusfx

import (
	"fmt"
	"sort"
)

// Limit is the maximum number of distinct status flags a battle can
// register: one bit per flag in a 32-bit word (§4.7 STATUS_LIMIT).
const Limit = 32

// Built-in flags occupy the low bits so every package, core or scripted,
// agrees on their numeric value without a registration round-trip.
const (
	FlagParalyze uint32 = 1 << iota
	FlagFreeze
	FlagConfuse
	FlagRoot
	builtinCount
)

// Constructor builds a fresh per-entity status instance payload when a
// flag is applied. The registry only stores and looks these up; it does
// not interpret the returned value.
type Constructor func(params any) any

type entry struct {
	packageID   string
	namespace   string
	name        string
	flag        uint32
	constructor Constructor
}

type blockerRule struct {
	blocking uint32
	blocked  uint32
}

// Registry is the process-of-battle-lifetime status table described in
// §4.7.
type Registry struct {
	nextShift     uint
	entries       []entry
	byName        map[string]int // name -> index into entries
	blockers      []blockerRule
	immobilizing  uint32
	inactionable  uint32
}

// NewRegistry creates a registry pre-seeded with the built-in flags,
// blocker rules, and classification sets named in §4.7.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]int),
	}
	r.seedBuiltin("paralyze", FlagParalyze)
	r.seedBuiltin("freeze", FlagFreeze)
	r.seedBuiltin("confuse", FlagConfuse)
	r.seedBuiltin("root", FlagRoot)
	r.nextShift = uint(len(r.entries))

	r.blockers = []blockerRule{
		{blocking: FlagFreeze, blocked: FlagParalyze},
		{blocking: FlagParalyze, blocked: FlagFreeze},
		{blocking: FlagConfuse, blocked: FlagFreeze},
	}
	r.immobilizing = FlagParalyze | FlagFreeze
	r.inactionable = FlagParalyze | FlagFreeze | FlagRoot
	return r
}

func (r *Registry) seedBuiltin(name string, flag uint32) {
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry{packageID: "core", namespace: "core", name: name, flag: flag})
}

// Dependency describes one package's status contribution, in the shape
// Init walks (§4.7: "walks dependencies in namespace order").
type Dependency struct {
	PackageID   string
	Namespace   string
	Name        string
	Constructor Constructor
	Blocks      []string // names this status blocks
	BlockedBy   []string // names that block this status
}

// InitResult reports what Init actually did, for diagnostics logging.
type InitResult struct {
	Registered []string
	Skipped    []string // name conflicts
	Exhausted  []string // dropped because Limit was reached
}

// Init registers every dependency's status flag, walking dependencies in
// namespace order for determinism, then collects blocker rules only after
// every flag has resolved (so a Blocks/BlockedBy reference to a
// same-batch status always succeeds).
func (r *Registry) Init(deps []Dependency) InitResult {
	sorted := make([]Dependency, len(deps))
	copy(sorted, deps)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Namespace != sorted[j].Namespace {
			return sorted[i].Namespace < sorted[j].Namespace
		}
		return sorted[i].Name < sorted[j].Name
	})

	var result InitResult
	for _, dep := range sorted {
		if _, exists := r.byName[dep.Name]; exists {
			result.Skipped = append(result.Skipped, dep.Name)
			continue
		}
		if uint(len(r.entries)) >= Limit {
			result.Exhausted = append(result.Exhausted, dep.Name)
			continue
		}
		flag := uint32(1) << r.nextShift
		r.nextShift++
		r.byName[dep.Name] = len(r.entries)
		r.entries = append(r.entries, entry{
			packageID:   dep.PackageID,
			namespace:   dep.Namespace,
			name:        dep.Name,
			flag:        flag,
			constructor: dep.Constructor,
		})
		result.Registered = append(result.Registered, dep.Name)
	}

	for _, dep := range sorted {
		depFlag, ok := r.ResolveFlag(dep.Name)
		if !ok {
			continue
		}
		for _, blockedName := range dep.Blocks {
			if blockedFlag, ok := r.ResolveFlag(blockedName); ok {
				r.blockers = append(r.blockers, blockerRule{blocking: depFlag, blocked: blockedFlag})
			}
		}
		for _, blockerName := range dep.BlockedBy {
			if blockerFlag, ok := r.ResolveFlag(blockerName); ok {
				r.blockers = append(r.blockers, blockerRule{blocking: blockerFlag, blocked: depFlag})
			}
		}
	}

	return result
}

// ResolveFlag looks up a status's bit flag by name.
func (r *Registry) ResolveFlag(name string) (uint32, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return r.entries[idx].flag, true
}

// StatusConstructor returns the constructor registered for flag, if any.
func (r *Registry) StatusConstructor(flag uint32) (Constructor, bool) {
	for _, e := range r.entries {
		if e.flag == flag {
			if e.constructor == nil {
				return nil, false
			}
			return e.constructor, true
		}
	}
	return nil, false
}

// IsBlocked reports whether applying `candidate` is forbidden given the
// set of flags already active on an entity (§3 "Status blockers").
func (r *Registry) IsBlocked(active uint32, candidate uint32) bool {
	for _, rule := range r.blockers {
		if rule.blocked == candidate && active&rule.blocking != 0 {
			return true
		}
	}
	return false
}

// Immobilizing reports whether any flag in set is in the immobilizing
// class (movement disabled).
func (r *Registry) Immobilizing(set uint32) bool {
	return set&r.immobilizing != 0
}

// Inactionable reports whether any flag in set is in the inactionable
// class (actions disabled).
func (r *Registry) Inactionable(set uint32) bool {
	return set&r.inactionable != 0
}

// Names returns every registered status name in registration order: the
// built-ins first, then each Init call's dependencies in the (namespace,
// name) order Init sorts them into.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

func (r *Registry) String() string {
	return fmt.Sprintf("statusfx.Registry{flags=%d/%d}", len(r.entries), Limit)
}
