package fsm

import "time"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Trigger identifies an externally-fired transition cause (0 = Tick, auto-transition)
type Trigger int

const TriggerTick Trigger = 0

// RegionState holds runtime state for a single parallel region
type RegionState struct {
	Name          string
	ActiveStateID StateID
	TimeInState   time.Duration
	ActivePath    []StateID
	Paused        bool
}

// Machine is the generic hierarchical finite state machine runtime with parallel region support.
// T is the context type passed to actions and guards.
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes map[StateID]*Node[T]

	// Region Configuration
	regionInitials map[string]StateID

	// Runtime State (per-region)
	regions map[string]*RegionState

	// Dependency Injection
	guardReg        map[string]GuardFunc[T]
	guardFactoryReg map[string]GuardFactoryFunc[T]
	actionReg       map[string]ActionFunc[T]

	// State metadata
	StateDurations map[StateID]time.Duration // Max duration per state (0 = instant/event-driven)
	StateIndices   map[StateID]int           // Deterministic index
	StateCount     int                       // Total non-Root states
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node, used for O(1) LCA lookup
	Path []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions sorted by evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Trigger  Trigger      // TriggerTick (0) = auto-transition each Update
	Guard    GuardFunc[T] // nil = always true
}

// Action represents a side-effect
type Action[T any] struct {
	Func  ActionFunc[T]
	Args  any          // Pre-compiled payload
	Guard GuardFunc[T] // conditional execution (nil = always)
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T, region *RegionState) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)

// GuardFactoryFunc creates a parameterized guard
type GuardFactoryFunc[T any] func(m *Machine[T], args map[string]any) GuardFunc[T]
