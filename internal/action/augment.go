package action

import "github.com/hubnet/battlecore/internal/combat"

// Augment is a script-registered modifier attachable to an entity's
// Living facet (original_source/ability_modifier_api.rs, augment_api.rs):
// a named, taggable bundle that may contribute a stat delta and/or a
// defense rule into the Hit/Defense Pipeline's rule list alongside
// card-level rules (§4.5 step 3, SPEC_FULL.md §C).
type Augment struct {
	ID        string
	Namespace string
	Tags      []string

	// StatDeltas holds named integer adjustments (e.g. "max_hp", "attack")
	// the owning entity's facets apply when the augment is active; the
	// combat/action systems read these by name rather than this package
	// knowing about Living's concrete fields.
	StatDeltas map[string]int

	// Defense, when non-nil, is folded into the target's defense-rule
	// list for every hit the entity takes while the augment is attached.
	Defense combat.DefenseRule
}

// HasTag reports whether a is tagged with name.
func (a Augment) HasTag(name string) bool {
	for _, t := range a.Tags {
		if t == name {
			return true
		}
	}
	return false
}
