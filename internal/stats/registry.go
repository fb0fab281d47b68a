package stats

// Registry is the central statistics facade embedded in a Simulation.
// Scripts and the combat pipeline fetch-and-mutate through Bools/Ints/
// Floats/Strings; nothing here is safe for concurrent use, matching the
// rest of the simulation core (§5).
type Registry struct {
	Bools   *MetricMap[bool]
	Ints    *MetricMap[int64]
	Floats  *MetricMap[float64]
	Strings *MetricMap[string]
}

// NewRegistry creates an initialized Registry.
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[bool](),
		Ints:    NewMetricMap[int64](),
		Floats:  NewMetricMap[float64](),
		Strings: NewMetricMap[string](),
	}
}

// TotalCount returns total metrics across all types.
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Clone returns an independent deep copy for snapshotting.
func (r *Registry) Clone() *Registry {
	return &Registry{
		Bools:   r.Bools.Clone(),
		Ints:    r.Ints.Clone(),
		Floats:  r.Floats.Clone(),
		Strings: r.Strings.Clone(),
	}
}
