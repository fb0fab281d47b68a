package script

import (
	"sort"

	"github.com/dop251/goja"
)

// Bridge is the host-side surface §6.1's script tables call through to.
// internal/sim implements this against a concrete *Simulation so
// internal/script never imports internal/sim (the reverse dependency is
// the only direction this module allows).
type Bridge interface {
	EntityPosition(entity uint64) (x, y int, ok bool)
	SetEntityPosition(entity uint64, x, y int)
	EntityHP(entity uint64) (hp int, ok bool)
	SetEntityHP(entity uint64, hp int)
	EntityElement(entity uint64) (element int, ok bool)
	SetEntityElement(entity uint64, element int)
	EntityTeam(entity uint64) (team int, ok bool)
	SetEntityTeam(entity uint64, team int)
	EntityExists(entity uint64) bool
	DespawnEntity(entity uint64)

	SetAnimationState(entity uint64, state string)
	AnimationFrame(entity uint64) (x, y, w, h int, ok bool)
	RegisterOnComplete(entity uint64, localKey string)
	RegisterOnInterrupt(entity uint64, localKey string)

	QueueAction(entity uint64, localKey string)
	CancelActions(entity uint64)

	ConfirmCard(playerIndex int)
	CardsConfirmed() bool
	RequestFormActivation(entity uint64)
	FormActivationPending() bool

	ApplyStatus(entity uint64, flagName string, duration int)
	ResolveStatusFlag(name string) (flag uint32, ok bool)

	EnqueueHit(target, aggressor uint64, damage, element int, flagNames []string, dragDX, dragDY, dragCount int)

	TileState(x, y int) (state string, ok bool)
	SetTileState(x, y int, state string) bool
	SetTileTeam(x, y int, team int) bool
	RegisterCustomTileState(name string) int

	FieldSize() (w, h int)

	RegisterAugment(entity uint64, id, namespace string, tags []string, statDeltas map[string]int)

	RegisterMutator(name, localKey string)

	SpawnEntity() uint64
	SpawnShadow(owner uint64) uint64

	EncounterNamespace() string
	EncounterID() string

	RegisterCallback(entity uint64, slot, localKey string)
}

// hitFlagBits maps the script-visible hit-flag names to combat.Flags
// bits without internal/script importing internal/combat (the flag
// names are part of the script contract, not the pipeline's Go type).
var hitFlagBits = map[string]uint32{
	"super_effective": 1 << 0,
	"shake":           1 << 1,
	"no_counter":      1 << 2,
	"impact":          1 << 3,
}

// BindTables installs every §6.1 table as a JS object in vm's runtime,
// delegating each getter/setter/registrar to bridge. Called once per VM
// right after RunSource, so module-level script code can already
// reference these tables during registration.
func BindTables(vm *VM, bridge Bridge) error {
	rt := vm.rt

	entity := rt.NewObject()
	_ = entity.Set("position", func(id uint64) goja.Value {
		x, y, ok := bridge.EntityPosition(id)
		if !ok {
			return goja.Undefined()
		}
		return rt.ToValue(map[string]int{"x": x, "y": y})
	})
	_ = entity.Set("set_position", func(id uint64, x, y int) { bridge.SetEntityPosition(id, x, y) })
	_ = entity.Set("hp", func(id uint64) goja.Value {
		hp, ok := bridge.EntityHP(id)
		if !ok {
			return goja.Undefined()
		}
		return rt.ToValue(hp)
	})
	_ = entity.Set("set_hp", func(id uint64, hp int) { bridge.SetEntityHP(id, hp) })
	_ = entity.Set("element", func(id uint64) goja.Value {
		el, ok := bridge.EntityElement(id)
		if !ok {
			return goja.Undefined()
		}
		return rt.ToValue(el)
	})
	_ = entity.Set("set_element", func(id uint64, el int) { bridge.SetEntityElement(id, el) })
	_ = entity.Set("team", func(id uint64) goja.Value {
		team, ok := bridge.EntityTeam(id)
		if !ok {
			return goja.Undefined()
		}
		return rt.ToValue(team)
	})
	_ = entity.Set("set_team", func(id uint64, team int) { bridge.SetEntityTeam(id, team) })
	_ = entity.Set("exists", func(id uint64) bool { return bridge.EntityExists(id) })
	_ = entity.Set("despawn", func(id uint64) { bridge.DespawnEntity(id) })
	_ = rt.Set("Entity", entity)

	anim := rt.NewObject()
	_ = anim.Set("set_state", func(id uint64, state string) { bridge.SetAnimationState(id, state) })
	_ = anim.Set("current_frame", func(id uint64) goja.Value {
		x, y, w, h, ok := bridge.AnimationFrame(id)
		if !ok {
			return goja.Undefined()
		}
		return rt.ToValue(map[string]int{"x": x, "y": y, "w": w, "h": h})
	})
	_ = anim.Set("on_complete", func(id uint64, localKey string) { bridge.RegisterOnComplete(id, localKey) })
	_ = anim.Set("on_interrupt", func(id uint64, localKey string) { bridge.RegisterOnInterrupt(id, localKey) })
	_ = rt.Set("Animation", anim)

	act := rt.NewObject()
	_ = act.Set("queue", func(id uint64, localKey string) { bridge.QueueAction(id, localKey) })
	_ = act.Set("cancel_all", func(id uint64) { bridge.CancelActions(id) })
	_ = rt.Set("Action", act)

	cardBtn := rt.NewObject()
	_ = cardBtn.Set("confirm", func(playerIndex int) { bridge.ConfirmCard(playerIndex) })
	_ = cardBtn.Set("all_confirmed", func() bool { return bridge.CardsConfirmed() })
	_ = rt.Set("CardSelectButton", cardBtn)

	player := rt.NewObject()
	_ = player.Set("request_form_activation", func(id uint64) { bridge.RequestFormActivation(id) })
	_ = rt.Set("Player", player)

	form := rt.NewObject()
	_ = form.Set("activation_pending", func() bool { return bridge.FormActivationPending() })
	_ = rt.Set("PlayerForm", form)

	status := rt.NewObject()
	_ = status.Set("apply", func(id uint64, flagName string, duration int) { bridge.ApplyStatus(id, flagName, duration) })
	_ = status.Set("resolve_flag", func(name string) goja.Value {
		flag, ok := bridge.ResolveStatusFlag(name)
		if !ok {
			return goja.Undefined()
		}
		return rt.ToValue(flag)
	})
	_ = rt.Set("Status", status)

	hitFlag := rt.NewObject()
	names := make([]string, 0, len(hitFlagBits))
	for name := range hitFlagBits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_ = hitFlag.Set(name, hitFlagBits[name])
	}
	_ = hitFlag.Set("enqueue", func(target, aggressor uint64, damage, element int, flagNames []string, dragDX, dragDY, dragCount int) {
		bridge.EnqueueHit(target, aggressor, damage, element, flagNames, dragDX, dragDY, dragCount)
	})
	_ = rt.Set("HitFlag", hitFlag)

	tile := rt.NewObject()
	_ = tile.Set("state", func(x, y int) goja.Value {
		state, ok := bridge.TileState(x, y)
		if !ok {
			return goja.Undefined()
		}
		return rt.ToValue(state)
	})
	_ = tile.Set("set_state", func(x, y int, state string) bool { return bridge.SetTileState(x, y, state) })
	_ = tile.Set("set_team", func(x, y, team int) bool { return bridge.SetTileTeam(x, y, team) })
	_ = rt.Set("TileState", tile)

	custom := rt.NewObject()
	_ = custom.Set("register", func(name string) int { return bridge.RegisterCustomTileState(name) })
	_ = rt.Set("CustomTileState", custom)

	fld := rt.NewObject()
	_ = fld.Set("size", func() goja.Value {
		w, h := bridge.FieldSize()
		return rt.ToValue(map[string]int{"w": w, "h": h})
	})
	_ = rt.Set("Field", fld)

	augment := rt.NewObject()
	_ = augment.Set("register", func(id uint64, augID, namespace string, tags []string, statDeltas map[string]int) {
		bridge.RegisterAugment(id, augID, namespace, tags, statDeltas)
	})
	_ = rt.Set("Augment", augment)

	mutator := rt.NewObject()
	_ = mutator.Set("register", func(name, localKey string) { bridge.RegisterMutator(name, localKey) })
	_ = rt.Set("Mutator", mutator)

	spawner := rt.NewObject()
	_ = spawner.Set("spawn", func() uint64 { return bridge.SpawnEntity() })
	_ = spawner.Set("spawn_shadow", func(owner uint64) uint64 { return bridge.SpawnShadow(owner) })
	_ = rt.Set("Spawner", spawner)

	encounter := rt.NewObject()
	_ = encounter.Set("namespace", func() string { return bridge.EncounterNamespace() })
	_ = encounter.Set("id", func() string { return bridge.EncounterID() })
	_ = rt.Set("Encounter", encounter)

	// Standard callback registrars (§6.1): every table above registers a
	// getter/setter, but the named callbacks (update, battle_turn,
	// activate, ...) share one generic registrar keyed by slot name
	// rather than one goja function per name.
	callbackReg := rt.NewObject()
	_ = callbackReg.Set("register", func(id uint64, slot, localKey string) { bridge.RegisterCallback(id, slot, localKey) })
	_ = rt.Set("Callback", callbackReg)

	return nil
}
