package sim

import (
	"github.com/hubnet/battlecore/internal/action"
	"github.com/hubnet/battlecore/internal/anim"
	"github.com/hubnet/battlecore/internal/battlestate"
	"github.com/hubnet/battlecore/internal/callback"
	"github.com/hubnet/battlecore/internal/ecs"
	"github.com/hubnet/battlecore/internal/field"
	"github.com/hubnet/battlecore/internal/movement"
	"github.com/hubnet/battlecore/internal/rng"
	"github.com/hubnet/battlecore/internal/script"
	"github.com/hubnet/battlecore/internal/spritetree"
	"github.com/hubnet/battlecore/internal/stats"
	"github.com/hubnet/battlecore/internal/statusfx"
	"github.com/hubnet/battlecore/internal/timefreeze"
)

// ScriptSlot identifies one entity's registration against a standard
// callback-registrar name from §6.1 (e.g. "battle_turn", "activate"),
// mapping it to the guest function a loaded script package bound there.
type ScriptSlot struct {
	Entity uint64
	Slot   string
}

// Ctx is the host-facing context passed into callback invocations that
// originate from the simulation loop (as opposed to ones bound directly
// against a goja call site, which carry goja's own call context).
type Ctx struct {
	Frame int64
}

// Callback is the Simulation-bound instantiation of the generic
// callback type: Shared is left as `any` here because internal/shared
// (the Shared Resources container) depends on this package and cannot
// be imported back in without a cycle; concrete callers in internal/
// shared type-assert the Shared argument to their own type.
type Callback = callback.Callback[Ctx, any, *Simulation]

// Simulation is the snapshot root (§3 "Simulation" row): every facet
// needed to resolve one battle tick and to be cloned wholesale for
// rollback.
type Simulation struct {
	Entities *ecs.Store

	Positions ecs.Store[Position]
	Livings   ecs.Store[Living]
	Teams     ecs.Store[Team]
	EntFlags  ecs.Store[Flags]
	Handles   ecs.Store[Handles]

	ActionQueues   ecs.Store[*action.Queue]
	Movements      ecs.Store[*movement.Movement]
	StatusFX       ecs.Store[*statusfx.Director]
	CombatProfiles ecs.Store[*CombatProfile]
	HpChangeLogs   ecs.Store[*HpChanges]
	Shadows        ecs.Store[Shadow]

	Animators   *anim.Pool
	SpriteTrees *spritetree.Pool

	Field        *field.Field
	StatusRegistry *statusfx.Registry
	TimeFreeze   *timefreeze.Tracker
	BattleState  battlestate.State

	RNG      *rng.Sim
	Cosmetic *rng.Cosmetic

	Pending *callback.Queue[Ctx, any, *Simulation]

	Statistics *stats.Registry

	ScriptCallbacks map[ScriptSlot]script.FunctionHandle

	// ErrorSink receives diagnostics the simulation can't otherwise
	// surface (e.g. a defense rule returning an error mid-pipeline);
	// nil is valid and simply drops them. Concrete callers
	// (internal/shared.Resources) set this once at construction.
	ErrorSink Diagnostics

	Frame     int64
	Turn      int
	turnLimit int
	Progress  float64

	introHandles  map[uint64]bool
	turnConfirmed bool
	formPending   bool

	pendingHits []PendingHit
}

// New creates an empty Simulation over a width x height field.
func New(fieldW, fieldH int, seed1, seed2 uint64, cosmeticSeed uint32, statusDeps []statusfx.Dependency) *Simulation {
	reg := statusfx.NewRegistry()
	reg.Init(statusDeps)

	s := &Simulation{
		Entities:       ecs.NewStore(),
		Positions:      *ecs.NewStore[Position](),
		Livings:        *ecs.NewStore[Living](),
		Teams:          *ecs.NewStore[Team](),
		EntFlags:       *ecs.NewStore[Flags](),
		Handles:        *ecs.NewStore[Handles](),
		ActionQueues:   *ecs.NewStore[*action.Queue](),
		Movements:      *ecs.NewStore[*movement.Movement](),
		StatusFX:       *ecs.NewStore[*statusfx.Director](),
		CombatProfiles: *ecs.NewStore[*CombatProfile](),
		HpChangeLogs:   *ecs.NewStore[*HpChanges](),
		Shadows:        *ecs.NewStore[Shadow](),
		Animators:      anim.NewPool(),
		SpriteTrees:    spritetree.NewPool(),
		Field:          field.New(fieldW, fieldH),
		StatusRegistry: reg,
		TimeFreeze:     timefreeze.New(),
		BattleState:    battlestate.NewIntro(),
		RNG:            rng.NewSim(seed1, seed2),
		Cosmetic:       rng.NewCosmetic(cosmeticSeed),
		Pending:         callback.NewQueue[Ctx, any, *Simulation](),
		Statistics:      stats.NewRegistry(),
		ScriptCallbacks: make(map[ScriptSlot]script.FunctionHandle),
		introHandles:    make(map[uint64]bool),
	}
	return s
}

// Spawn creates a new entity with the pending-spawn flag set and
// allocates its animator and sprite-tree handles (§3: "created on spawn
// request; spawned on first tick after pending-spawn").
func (s *Simulation) Spawn() ecs.Entity {
	e := s.Entities.Spawn()
	s.EntFlags.Add(e, FlagPendingSpawn)
	s.Handles.Add(e, Handles{
		Animator:   s.Animators.Alloc(),
		SpriteTree: s.SpriteTrees.Alloc(),
	})
	s.ActionQueues.Add(e, action.NewQueue())
	s.StatusFX.Add(e, statusfx.NewDirector())
	s.CombatProfiles.Add(e, &CombatProfile{})
	s.HpChangeLogs.Add(e, NewHpChanges())
	return e
}

// Despawn marks e erased; its slot is reclaimed on the next Sweep.
func (s *Simulation) Despawn(e ecs.Entity) {
	s.Entities.MarkErased(e)
	s.EntFlags.Mutate(e, func(f *Flags) { *f |= FlagDeleted })
}

// Sweep finalizes despawn for every erased entity, releasing their
// animator/sprite-tree pool slots and component rows (§4.1, §9's
// arena+handle pattern: the pool slot is freed alongside the entity
// row so a stale handle fails the same way a stale Entity does).
func (s *Simulation) Sweep() {
	s.Entities.Sweep(func(e ecs.Entity) {
		if shadow, isShadow := s.Shadows.Get(e); !isShadow || shadow.Owner == ecs.Nil {
			if h, ok := s.Handles.Get(e); ok {
				s.Animators.Free(h.Animator)
				s.SpriteTrees.Free(h.SpriteTree)
			}
		} else if h, ok := s.Handles.Get(e); ok {
			// Shadow entities share their owner's animator handle; only
			// release the sprite-tree slot allocated for the shadow itself.
			s.SpriteTrees.Free(h.SpriteTree)
		}
		s.Positions.Remove(e)
		s.Livings.Remove(e)
		s.Teams.Remove(e)
		s.EntFlags.Remove(e)
		s.Handles.Remove(e)
		s.ActionQueues.Remove(e)
		s.Movements.Remove(e)
		s.StatusFX.Remove(e)
		s.CombatProfiles.Remove(e)
		s.HpChangeLogs.Remove(e)
		s.Shadows.Remove(e)
	})
}

// LiveEntities returns every live entity's encoded id, in deterministic
// index order (battlestate.Sim, combat resolution).
func (s *Simulation) LiveEntities() []uint64 {
	live := s.Entities.Live()
	out := make([]uint64, len(live))
	for i, e := range live {
		out[i] = EncodeEntity(e)
	}
	return out
}
