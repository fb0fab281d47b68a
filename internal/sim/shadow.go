package sim

import "github.com/hubnet/battlecore/internal/ecs"

// SpawnShadow creates a lightweight mirror entity that shares owner's
// animator handle rather than allocating its own, so the two stay in
// visual lockstep without the pipeline paying for a second animator
// (SPEC_FULL.md §C entity_shadow.rs). Shadows have no Living, ActionQueue,
// StatusFX, or CombatProfile facet — they are a pure render-side
// reflection, never a combat participant. Returns ecs.Nil if owner does
// not carry animator/sprite-tree handles.
func (s *Simulation) SpawnShadow(owner ecs.Entity) ecs.Entity {
	ownerHandles, ok := s.Handles.Get(owner)
	if !ok {
		return ecs.Nil
	}
	e := s.Entities.Spawn()
	s.EntFlags.Add(e, FlagPendingSpawn)
	s.Handles.Add(e, Handles{
		Animator:   ownerHandles.Animator,
		SpriteTree: s.SpriteTrees.Alloc(),
	})
	s.Shadows.Add(e, Shadow{Owner: owner})
	return e
}
