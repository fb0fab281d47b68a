// Package combat implements the Hit/Defense Pipeline (§4.5): the ordered
// sequence of steps that resolve one hit against a target's Living facet.
package combat

// Flags is a bitset of hit properties.
type Flags uint32

const (
	FlagSuperEffective Flags = 1 << iota
	FlagShake
	FlagNoCounter
	FlagImpact
)

// Drag describes a forced-movement component of a hit.
type Drag struct {
	DX, DY int // unit step direction; (0,0) means no drag
	Count  int
}

// DragPerTileDuration is the number of frames each successful drag step
// contributes to the resulting slide Movement's duration.
const DragPerTileDuration = 4

// Hit is the input to the pipeline (§4.5).
type Hit struct {
	Damage      int
	Element     int
	Flags       Flags
	Drag        Drag
	AggressorID uint64
	Context     any
}

// Living is the subset of an entity's HP-bearing facet the pipeline
// mutates. Defined here (the consumer) so combat has no dependency on
// whatever package ultimately owns entity storage.
type Living interface {
	HP() int
	SetHP(int)
	Element() int
	HasActiveMovement() bool
}

// DefenseRule inspects and may mutate a hit before damage resolution, or
// mark it blocked. A rule that returns an error is logged and treated as
// pass-through (§4.5: "defense rule errors are logged and treated as
// pass-through").
type DefenseRule func(h *Hit) (blocked bool, err error)

// Target bundles the pieces the pipeline needs to resolve and mutate a
// target entity.
type Target struct {
	Living             Living
	TimeFrozen         bool
	DefenseRules       []DefenseRule
	TileBonusDamage    func() int
	ApplyStatusFlags   func(flags uint32)
	InstallDragMovement func(steps int, dx, dy int)
	CanMoveTo          func(x, y int) bool
	Position           func() (int, int)
	HitCallbacks       []func(Hit)
	OnDefenseError     func(err error)
}

// Resolve is the target-lookup step: returns nil if the target cannot be
// resolved (§4.5 step 1 "early return if missing" — missing target is
// silent per §4.5's failure-modes note).
type Resolve func(targetID uint64) *Target

// Process runs the full pipeline for one hit against targetID.
func Process(resolve Resolve, targetID uint64, hit Hit) {
	target := resolve(targetID)
	if target == nil {
		return
	}

	timeFrozen := target.TimeFrozen

	for _, rule := range target.DefenseRules {
		blocked, err := rule(&hit)
		if err != nil {
			if target.OnDefenseError != nil {
				target.OnDefenseError(err)
			}
			continue
		}
		if blocked {
			if target.ApplyStatusFlags != nil {
				target.ApplyStatusFlags(uint32(hit.Flags))
			}
			return
		}
	}

	if timeFrozen {
		hit.Flags |= FlagShake | FlagNoCounter
	}

	damage := hit.Damage
	if hit.Flags&FlagSuperEffective != 0 {
		damage *= 2
	}
	if target.TileBonusDamage != nil {
		damage += target.TileBonusDamage()
	}

	newHP := target.Living.HP() - damage
	if newHP < 0 {
		newHP = 0
	}
	target.Living.SetHP(newHP)

	if hit.Flags&FlagImpact != 0 {
		// visual white-flash marker; the caller's render layer reads this
		// off the Hit it receives via HitCallbacks.
	}

	if target.ApplyStatusFlags != nil {
		target.ApplyStatusFlags(uint32(hit.Flags))
	}

	if (hit.Drag.DX != 0 || hit.Drag.DY != 0) && !target.Living.HasActiveMovement() {
		installDrag(target, hit.Drag)
	}

	for _, cb := range target.HitCallbacks {
		cb(hit)
	}
}

// installDrag computes the chain destination by stepping delta one tile
// at a time up to drag.Count, stopping at the first tile that fails
// CanMoveTo or doesn't exist, and installs a sliding movement to the
// furthest valid tile (§4.5 step 10).
func installDrag(target *Target, drag Drag) {
	if target.Position == nil || target.CanMoveTo == nil || target.InstallDragMovement == nil {
		return
	}
	x, y := target.Position()
	steps := 0
	for i := 0; i < drag.Count; i++ {
		nx, ny := x+drag.DX, y+drag.DY
		if !target.CanMoveTo(nx, ny) {
			break
		}
		x, y = nx, ny
		steps++
	}
	if steps == 0 {
		return
	}
	target.InstallDragMovement(steps, drag.DX, drag.DY)
}
