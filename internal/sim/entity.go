// Package sim implements the Simulation aggregate (§3, §4.10): the
// snapshot root that wires every battle-core facet — the entity store,
// field, animators, sprite trees, actions, status director, time-freeze,
// movement, the hit/defense pipeline, the battle state machine, RNG, and
// pending callbacks — into one clonable unit.
//
// Every external-facing consumer interface in this codebase (battlestate.
// Sim, combat.Living) is expressed in terms of a plain uint64 entity id
// rather than ecs.Entity directly, so those packages stay free of an
// import on internal/ecs. Simulation is the single place that encodes
// and decodes between the two.
package sim

import "github.com/hubnet/battlecore/internal/ecs"

// EncodeEntity packs an ecs.Entity into the uint64 id the consumer
// interfaces (battlestate.Sim, combat.Living, script callback params)
// pass around.
func EncodeEntity(e ecs.Entity) uint64 {
	return uint64(e.Index)<<32 | uint64(e.Generation)
}

// DecodeEntity unpacks a uint64 id back into an ecs.Entity.
func DecodeEntity(id uint64) ecs.Entity {
	return ecs.Entity{Index: uint32(id >> 32), Generation: uint32(id)}
}
