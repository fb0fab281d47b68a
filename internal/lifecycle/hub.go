// Package lifecycle provides the Service/Hub pattern used to start and
// stop Shared Resources subsystems (script package loaders, recording
// sinks, netplay transport) in dependency order (§5).
//
// Adapted from the teacher's engine/services package (hub.go,
// interface.go), with one correctness fix: the teacher's topological sort
// iterates Go maps directly when picking zero-in-degree nodes and when
// building the dependents adjacency list, which makes init/start/stop
// order depend on map iteration order — acceptable for a render-loop
// service hub, not acceptable here, where every other subsystem sorts
// explicitly to keep ticks replayable. This version sorts service names
// before walking them so the computed order is a pure function of the
// registered dependency graph.
package lifecycle

import (
	"fmt"
	"sort"
	"sync"
)

// Service is the lifecycle interface for a Shared Resources subsystem.
type Service interface {
	Name() string
	Dependencies() []string
	Init(shared any) error
	Start() error
	Stop() error
}

// Hub is the runtime container for service instances.
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	sorted   []string
	started  []string
}

// NewHub creates an empty service hub.
func NewHub() *Hub {
	return &Hub{services: make(map[string]Service)}
}

// Register adds a service instance to the hub.
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("lifecycle: service already registered: %s", name)
	}
	h.services[name] = svc
	h.sorted = nil
	return nil
}

// Get retrieves a service by name.
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet retrieves a service and casts it to T, panicking on mismatch.
func MustGet[T any](h *Hub, name string) T {
	h.mu.RLock()
	svc, ok := h.services[name]
	h.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("lifecycle: service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("lifecycle: service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll resolves dependencies and calls Init on all services in
// topological order, rolling back via Stop on failure.
func (h *Hub) InitAll(shared any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		order, err := h.topologicalSort()
		if err != nil {
			return err
		}
		h.sorted = order
	}

	var initialized []string
	for _, name := range h.sorted {
		svc := h.services[name]
		if err := svc.Init(shared); err != nil {
			for i := len(initialized) - 1; i >= 0; i-- {
				h.services[initialized[i]].Stop()
			}
			return fmt.Errorf("lifecycle: service %s init failed: %w", name, err)
		}
		initialized = append(initialized, name)
	}
	return nil
}

// StartAll calls Start on all services in topological order.
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = nil
	for _, name := range h.sorted {
		svc := h.services[name]
		if err := svc.Start(); err != nil {
			for i := len(h.started) - 1; i >= 0; i-- {
				h.services[h.started[i]].Stop()
			}
			return fmt.Errorf("lifecycle: service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll calls Stop on all started services in reverse order.
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := len(h.started) - 1; i >= 0; i-- {
		if svc, ok := h.services[h.started[i]]; ok {
			svc.Stop()
		}
	}
	h.started = nil
}

// topologicalSort computes initialization order via Kahn's algorithm,
// breaking every tie by sorted service name so the result does not
// depend on map iteration order.
func (h *Hub) topologicalSort() ([]string, error) {
	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)

	inDegree := make(map[string]int, len(names))
	dependents := make(map[string][]string)

	for _, name := range names {
		inDegree[name] = 0
	}
	for _, name := range names {
		deps := append([]string(nil), h.services[name].Dependencies()...)
		sort.Strings(deps)
		for _, dep := range deps {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("lifecycle: service %s depends on unregistered service: %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for _, name := range names {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var result []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		deps := append([]string(nil), dependents[name]...)
		sort.Strings(deps)
		for _, dependent := range deps {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, fmt.Errorf("lifecycle: circular dependency detected in services")
	}
	return result, nil
}

// Names returns all registered service names, sorted.
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
