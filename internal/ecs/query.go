package ecs

// Queryable is any component store a Query can intersect against.
type Queryable interface {
	All() []Entity
	Has(Entity) bool
	Count() int
}

// Query builds an intersection across component stores, grounded on the
// teacher's QueryBuilder: start from the smallest store's dense entity
// list and filter through the rest, so the cost is bounded by the
// smallest candidate set rather than the largest.
type Query struct {
	stores  []Queryable
	results []Entity
	ran     bool
}

// NewQuery starts a fresh, empty query.
func NewQuery() *Query {
	return &Query{stores: make([]Queryable, 0, 4)}
}

// With adds a component store the returned entities must also appear in.
func (q *Query) With(store Queryable) *Query {
	if q.ran {
		panic("ecs: query already executed")
	}
	q.stores = append(q.stores, store)
	return q
}

// Execute returns every entity present in all stores added via With, in
// deterministic order. Calling Execute more than once returns the cached
// result.
func (q *Query) Execute() []Entity {
	if q.ran {
		return q.results
	}
	q.ran = true

	if len(q.stores) == 0 {
		q.results = nil
		return nil
	}
	if len(q.stores) == 1 {
		q.results = q.stores[0].All()
		return q.results
	}

	smallest := 0
	for i := 1; i < len(q.stores); i++ {
		if q.stores[i].Count() < q.stores[smallest].Count() {
			smallest = i
		}
	}

	candidates := q.stores[smallest].All()
	for i, store := range q.stores {
		if i == smallest {
			continue
		}
		filtered := candidates[:0]
		for _, e := range candidates {
			if store.Has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}

	q.results = candidates
	return q.results
}
