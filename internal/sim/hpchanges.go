package sim

import "sort"

// HpChanges accumulates one entity's HP deltas within a tick, batching
// multiple hits/heals into a single sorted list of HpParticle events for
// the renderer (§3's HpParticle row, SPEC_FULL.md §C hp_changes.rs:
// "a per-entity diff accumulator that batches multiple hits/heals within
// a tick into sorted (by creation time then source) particle events").
type HpChanges struct {
	particles []HpParticle
	seq       int64
}

// NewHpChanges creates an empty accumulator.
func NewHpChanges() *HpChanges {
	return &HpChanges{}
}

// Record appends one HP delta observation.
func (c *HpChanges) Record(frame int64, source HpSource, magnitude int, x, y float64) {
	c.seq++
	c.particles = append(c.particles, HpParticle{
		CreatedAt: frame,
		Source:    source,
		Magnitude: magnitude,
		X:         x,
		Y:         y,
		sortKey:   c.seq,
	})
}

// Drain returns this tick's particles sorted by creation time then
// source then insertion order, clearing the accumulator.
func (c *HpChanges) Drain() []HpParticle {
	if len(c.particles) == 0 {
		return nil
	}
	out := append([]HpParticle(nil), c.particles...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].sortKey < out[j].sortKey
	})
	c.particles = nil
	return out
}

// Clone returns a deep, independent copy for simulation snapshotting.
func (c *HpChanges) Clone() *HpChanges {
	return &HpChanges{particles: append([]HpParticle(nil), c.particles...), seq: c.seq}
}
