// Package rng provides the two random sources the simulation needs (§3
// "Deterministic RNG"): a snapshot-serializable source that drives any
// randomness affecting simulation state, and a separate, non-snapshotted
// source for cosmetic jitter (e.g. hp particle placement) that must never
// perturb replay determinism.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// Sim is the deterministic, snapshot-serializable RNG backing every piece
// of randomness that can affect simulation state (damage rolls, AI choice,
// drop tables). It wraps math/rand/v2's PCG generator, chosen over the
// teacher's vmath.FastRand specifically because PCG implements
// encoding.BinaryMarshaler/BinaryUnmarshaler — required for §4.10's
// snapshot/restore contract — where a bare xorshift32 state would need a
// hand-rolled (de)serializer for no benefit.
type Sim struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewSim seeds a deterministic simulation RNG from a 128-bit seed pair.
func NewSim(seed1, seed2 uint64) *Sim {
	src := rand.NewPCG(seed1, seed2)
	return &Sim{src: src, r: rand.New(src)}
}

// IntN returns a uniform value in [0, n).
func (s *Sim) IntN(n int) int {
	return s.r.IntN(n)
}

// Float64 returns a uniform value in [0.0, 1.0).
func (s *Sim) Float64() float64 {
	return s.r.Float64()
}

// Chance reports true with probability p (p in [0,1]), using the
// deterministic source — the required path for any roll that affects
// simulation outcome (status application chance, critical hit, etc.).
func (s *Sim) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Shuffle permutes n items in place using the deterministic source,
// following math/rand/v2's Fisher-Yates via rand.Shuffle semantics.
func (s *Sim) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Marshal captures the generator's internal state for inclusion in a
// simulation snapshot (§4.10: "a snapshot captures simulation... at the
// same frame boundary").
func (s *Sim) Marshal() ([]byte, error) {
	return s.src.MarshalBinary()
}

// Restore replaces the generator's internal state from a previously
// captured snapshot, reproducing bit-identical future output.
func (s *Sim) Restore(data []byte) error {
	if err := s.src.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("rng: restore snapshot: %w", err)
	}
	return nil
}

// Clone returns an independent copy of s with identical future output,
// used when cloning a whole Simulation for a speculative rollback branch.
func (s *Sim) Clone() *Sim {
	data, err := s.Marshal()
	if err != nil {
		// PCG.MarshalBinary never fails in practice; a failure here means
		// the stdlib's internal format changed underneath us.
		panic(fmt.Sprintf("rng: clone: %v", err))
	}
	clone := NewSim(0, 0)
	if err := clone.Restore(data); err != nil {
		panic(fmt.Sprintf("rng: clone: %v", err))
	}
	return clone
}

// Cosmetic is the non-snapshotted RNG for visual-only jitter, grounded on
// the teacher's vmath.FastRand xorshift32 generator. Its state is
// deliberately excluded from Sim/snapshots: two replays of the same
// simulation may render cosmetic particles differently without breaking
// determinism, since nothing observable to the simulation depends on it.
type Cosmetic struct {
	state uint32
}

// NewCosmetic seeds the cosmetic generator. A zero seed is remapped to 1,
// since xorshift32 has a fixed point at zero.
func NewCosmetic(seed uint32) *Cosmetic {
	if seed == 0 {
		seed = 1
	}
	return &Cosmetic{state: seed}
}

// Next returns the next raw xorshift32 output.
func (c *Cosmetic) Next() uint32 {
	x := c.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	c.state = x
	return x
}

// IntN returns a value in [0, n), or 0 if n <= 0.
func (c *Cosmetic) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c.Next() % uint32(n))
}

// Float32 returns a value in [0.0, 1.0) suitable for particle jitter.
func (c *Cosmetic) Float32() float32 {
	return float32(c.Next()>>8) / float32(1<<24)
}
