package sim

import (
	"github.com/hubnet/battlecore/internal/action"
	"github.com/hubnet/battlecore/internal/anim"
	"github.com/hubnet/battlecore/internal/combat"
	"github.com/hubnet/battlecore/internal/ecs"
	"github.com/hubnet/battlecore/internal/spatial"
	"github.com/hubnet/battlecore/internal/spritetree"
)

// Position is an entity's tile coordinate plus sub-tile offset (§3).
type Position struct {
	Tile   spatial.Tile
	Offset spatial.Vec2
	Facing int
}

// Living is an entity's HP-bearing facet.
type Living struct {
	HP      int
	MaxHP   int
	Element int
}

// Flags is the pending-spawn/spawned/on-field/deleted lifecycle bitset an
// entity carries (§3's Entity row). Erasure is not a bit here; the entity
// allocator tracks it (ecs MarkErased).
type Flags uint8

const (
	FlagPendingSpawn Flags = 1 << iota
	FlagSpawned
	FlagOnField
	FlagDeleted
)

// Team identifies which side controls an entity.
type Team int

// Handles bundles an entity's pool handles into the sprite tree and
// animator arenas (§9's arena+handle pattern — entities hold only the
// indices, never a live pointer into either pool).
type Handles struct {
	Animator   anim.Handle
	SpriteNode int // index within the tree named by SpriteTree
	SpriteTree spritetree.Handle
}

// CombatProfile holds an entity's persistent Hit/Defense Pipeline
// registrations (§3's Living row: "list of defense rules... hit-property
// callbacks"): augment- and script-registered defense rules folded into
// every hit the entity takes, plus hit callbacks fired after a hit
// resolves. Attached to every entity Spawn creates (Spawn adds no Living).
type CombatProfile struct {
	Augments     []action.Augment
	DefenseRules []combat.DefenseRule
	HitCallbacks []func(combat.Hit)
}

// AddAugment appends aug to the profile, folding its defense rule (if
// any) into DefenseRules so the Hit/Defense Pipeline applies it
// alongside card-level rules (§4.5 step 3, SPEC_FULL.md §C
// ability_modifier_api.rs/augment_api.rs).
func (p *CombatProfile) AddAugment(aug action.Augment) {
	p.Augments = append(p.Augments, aug)
	if aug.Defense != nil {
		p.DefenseRules = append(p.DefenseRules, aug.Defense)
	}
}

// Clone returns a deep, independent copy for simulation snapshotting.
func (p *CombatProfile) Clone() *CombatProfile {
	return &CombatProfile{
		Augments:     append([]action.Augment(nil), p.Augments...),
		DefenseRules: append([]combat.DefenseRule(nil), p.DefenseRules...),
		HitCallbacks: append([]func(combat.Hit)(nil), p.HitCallbacks...),
	}
}

// Shadow links a lightweight reflection/silhouette entity to the entity
// it mirrors, sharing that entity's animator handle rather than owning
// one of its own; shadows have no Living facet (SPEC_FULL.md §C
// entity_shadow.rs).
type Shadow struct {
	Owner ecs.Entity
}

// HpSource classifies what produced an HpParticle (§3's HpParticle row).
type HpSource int

const (
	HpSourceHit HpSource = iota
	HpSourceHeal
	HpSourceDrain
)

// HpParticle is one floating damage/heal number queued for the renderer
// (§3, §6.4).
type HpParticle struct {
	CreatedAt int64
	Source    HpSource
	Magnitude int
	X, Y      float64
	sortKey   int64
}
