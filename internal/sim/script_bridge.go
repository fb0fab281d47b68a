package sim

import (
	"github.com/hubnet/battlecore/internal/action"
	"github.com/hubnet/battlecore/internal/combat"
	"github.com/hubnet/battlecore/internal/field"
	"github.com/hubnet/battlecore/internal/script"
)

// scriptBridge implements script.Bridge against one loaded VM's view of
// *Simulation. Constructed once per LoadPackage call (internal/shared's
// LoadScriptPackage), it is the only place a goja table's getter/setter
// touches simulation internals.
type scriptBridge struct {
	s       *Simulation
	vmIndex int

	encounterNS, encounterID string
	customStates             map[string]field.State
}

// NewScriptBridge builds the script.Bridge implementation for one loaded
// VM. Callers (internal/shared.Resources) construct one per LoadPackage
// call and pass it to script.BindTables immediately after.
func NewScriptBridge(s *Simulation, vmIndex int, encounterNS, encounterID string) script.Bridge {
	return &scriptBridge{s: s, vmIndex: vmIndex, encounterNS: encounterNS, encounterID: encounterID, customStates: make(map[string]field.State)}
}

func (b *scriptBridge) handle(localKey string) script.FunctionHandle {
	return script.FunctionHandle{VMIndex: b.vmIndex, LocalKey: localKey}
}

func (b *scriptBridge) EntityPosition(entity uint64) (int, int, bool) {
	e := DecodeEntity(entity)
	pos, ok := b.s.Positions.Get(e)
	if !ok {
		return 0, 0, false
	}
	return pos.Tile.X, pos.Tile.Y, true
}

func (b *scriptBridge) SetEntityPosition(entity uint64, x, y int) {
	e := DecodeEntity(entity)
	b.s.Positions.Mutate(e, func(p *Position) { p.Tile.X, p.Tile.Y = x, y })
}

func (b *scriptBridge) EntityHP(entity uint64) (int, bool) {
	e := DecodeEntity(entity)
	v, ok := b.s.Livings.Get(e)
	if !ok {
		return 0, false
	}
	return v.HP, true
}

func (b *scriptBridge) SetEntityHP(entity uint64, hp int) {
	(&livingAdapter{s: b.s, e: DecodeEntity(entity)}).SetHP(hp)
}

func (b *scriptBridge) EntityElement(entity uint64) (int, bool) {
	e := DecodeEntity(entity)
	v, ok := b.s.Livings.Get(e)
	if !ok {
		return 0, false
	}
	return v.Element, true
}

func (b *scriptBridge) SetEntityElement(entity uint64, el int) {
	e := DecodeEntity(entity)
	b.s.Livings.Mutate(e, func(v *Living) { v.Element = el })
}

func (b *scriptBridge) EntityTeam(entity uint64) (int, bool) {
	e := DecodeEntity(entity)
	t, ok := b.s.Teams.Get(e)
	if !ok {
		return 0, false
	}
	return int(t), true
}

func (b *scriptBridge) SetEntityTeam(entity uint64, team int) {
	e := DecodeEntity(entity)
	b.s.Teams.Mutate(e, func(t *Team) { *t = Team(team) })
}

func (b *scriptBridge) EntityExists(entity uint64) bool {
	return b.s.Entities.Contains(DecodeEntity(entity))
}

func (b *scriptBridge) DespawnEntity(entity uint64) {
	b.s.Despawn(DecodeEntity(entity))
}

func (b *scriptBridge) SetAnimationState(entity uint64, state string) {
	e := DecodeEntity(entity)
	h, ok := b.s.Handles.Get(e)
	if !ok {
		return
	}
	if a, ok := b.s.Animators.Get(h.Animator); ok {
		a.SetState(state)
	}
}

func (b *scriptBridge) AnimationFrame(entity uint64) (x, y, w, h int, ok bool) {
	e := DecodeEntity(entity)
	hd, ok := b.s.Handles.Get(e)
	if !ok {
		return 0, 0, 0, 0, false
	}
	a, ok := b.s.Animators.Get(hd.Animator)
	if !ok {
		return 0, 0, 0, 0, false
	}
	frame, ok := a.CurrentFrame()
	if !ok {
		return 0, 0, 0, 0, false
	}
	return frame.Sprite.X, frame.Sprite.Y, frame.Sprite.W, frame.Sprite.H, true
}

func (b *scriptBridge) RegisterOnComplete(entity uint64, localKey string) {
	e := DecodeEntity(entity)
	hd, ok := b.s.Handles.Get(e)
	if !ok {
		return
	}
	a, ok := b.s.Animators.Get(hd.Animator)
	if !ok {
		return
	}
	a.RegisterOnComplete(localKey)
	b.s.RegisterScriptCallback(entity, "oncomplete:"+localKey, b.handle(localKey))
}

func (b *scriptBridge) RegisterOnInterrupt(entity uint64, localKey string) {
	e := DecodeEntity(entity)
	hd, ok := b.s.Handles.Get(e)
	if !ok {
		return
	}
	a, ok := b.s.Animators.Get(hd.Animator)
	if !ok {
		return
	}
	a.RegisterOnInterrupt(localKey)
	b.s.RegisterScriptCallback(entity, "oninterrupt:"+localKey, b.handle(localKey))
}

func (b *scriptBridge) QueueAction(entity uint64, localKey string) {
	e := DecodeEntity(entity)
	aq, ok := b.s.ActionQueues.Get(e)
	if !ok {
		return
	}
	slot := "action:" + localKey
	b.s.RegisterScriptCallback(entity, slot, b.handle(localKey))
	act := &action.Action{
		Entity:  entity,
		Lockout: action.LockoutAsync,
		AsyncN:  1,
		ExecuteCallback: func(*action.Action) {
			b.s.DispatchScriptSlot(entity, slot)
		},
	}
	aq.QueueAction(act)
}

func (b *scriptBridge) CancelActions(entity uint64) {
	e := DecodeEntity(entity)
	if aq, ok := b.s.ActionQueues.Get(e); ok {
		aq.CancelAll()
	}
}

func (b *scriptBridge) ConfirmCard(playerIndex int) {
	b.s.SetTurnConfirmed(true)
}

func (b *scriptBridge) CardsConfirmed() bool {
	return b.s.AllPlayersConfirmedCards()
}

func (b *scriptBridge) RequestFormActivation(entity uint64) {
	b.s.SetFormActivationPending(true)
}

func (b *scriptBridge) FormActivationPending() bool {
	return b.s.FormActivationPending()
}

func (b *scriptBridge) ApplyStatus(entity uint64, flagName string, duration int) {
	e := DecodeEntity(entity)
	dir, ok := b.s.StatusFX.Get(e)
	if !ok {
		return
	}
	flag, ok := b.s.StatusRegistry.ResolveFlag(flagName)
	if !ok {
		return
	}
	dir.Apply(b.s.StatusRegistry, flag, duration, nil)
}

func (b *scriptBridge) ResolveStatusFlag(name string) (uint32, bool) {
	return b.s.StatusRegistry.ResolveFlag(name)
}

func (b *scriptBridge) EnqueueHit(target, aggressor uint64, damage, element int, flagNames []string, dragDX, dragDY, dragCount int) {
	var flags combat.Flags
	for _, name := range flagNames {
		switch name {
		case "super_effective":
			flags |= combat.FlagSuperEffective
		case "shake":
			flags |= combat.FlagShake
		case "no_counter":
			flags |= combat.FlagNoCounter
		case "impact":
			flags |= combat.FlagImpact
		}
	}
	b.s.EnqueueHit(target, combat.Hit{
		Damage:      damage,
		Element:     element,
		Flags:       flags,
		Drag:        combat.Drag{DX: dragDX, DY: dragDY, Count: dragCount},
		AggressorID: aggressor,
	})
}

func (b *scriptBridge) TileState(x, y int) (string, bool) {
	t := b.s.Field.At(x, y)
	if t == nil {
		return "", false
	}
	return b.stateName(t.State), true
}

func (b *scriptBridge) SetTileState(x, y int, state string) bool {
	t := b.s.Field.At(x, y)
	if t == nil {
		return false
	}
	st, ok := b.stateValue(state)
	if !ok {
		return false
	}
	return t.SetState(st)
}

func (b *scriptBridge) SetTileTeam(x, y, team int) bool {
	t := b.s.Field.At(x, y)
	if t == nil {
		return false
	}
	return t.SetTeam(team)
}

func (b *scriptBridge) RegisterCustomTileState(name string) int {
	if st, ok := b.customStates[name]; ok {
		return int(st)
	}
	st := field.CustomStateBase + field.State(len(b.customStates))
	b.customStates[name] = st
	return int(st)
}

func (b *scriptBridge) FieldSize() (int, int) {
	return b.s.Field.Width, b.s.Field.Height
}

func (b *scriptBridge) RegisterAugment(entity uint64, id, namespace string, tags []string, statDeltas map[string]int) {
	e := DecodeEntity(entity)
	profile, ok := b.s.CombatProfiles.Get(e)
	if !ok {
		return
	}
	profile.AddAugment(action.Augment{ID: id, Namespace: namespace, Tags: tags, StatDeltas: statDeltas})
}

func (b *scriptBridge) RegisterMutator(name, localKey string) {
	b.s.RegisterScriptCallback(0, "mutator:"+name, b.handle(localKey))
}

func (b *scriptBridge) SpawnEntity() uint64 {
	return EncodeEntity(b.s.Spawn())
}

func (b *scriptBridge) SpawnShadow(owner uint64) uint64 {
	return EncodeEntity(b.s.SpawnShadow(DecodeEntity(owner)))
}

func (b *scriptBridge) EncounterNamespace() string { return b.encounterNS }
func (b *scriptBridge) EncounterID() string        { return b.encounterID }

func (b *scriptBridge) RegisterCallback(entity uint64, slot, localKey string) {
	b.s.RegisterScriptCallback(entity, slot, b.handle(localKey))
}

var builtinStateNames = map[field.State]string{
	field.Normal: "normal", field.Crack: "crack", field.Broken: "broken",
	field.Grass: "grass", field.Sand: "sand", field.Sea: "sea",
	field.Lava: "lava", field.Metal: "metal", field.Volcano: "volcano",
	field.Hidden: "hidden",
}

func (b *scriptBridge) stateName(st field.State) string {
	if name, ok := builtinStateNames[st]; ok {
		return name
	}
	for name, v := range b.customStates {
		if v == st {
			return name
		}
	}
	return ""
}

func (b *scriptBridge) stateValue(name string) (field.State, bool) {
	for st, n := range builtinStateNames {
		if n == name {
			return st, true
		}
	}
	if st, ok := b.customStates[name]; ok {
		return st, true
	}
	return 0, false
}
