package shared

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/hubnet/battlecore/internal/sim"
)

// Checksum computes a stable hash over s's decision-affecting state:
// entity store (position, HP, team) plus tile grid plus RNG state. This
// is the battle core's side of SPEC_FULL.md §C's desync-patch contract
// (original_source/desync_patch_api.rs): the surrounding host compares
// peers' per-frame checksums without this package knowing anything about
// network transport. Reads in deterministic order throughout (live
// entities by index, tiles by row-major position) so the result never
// depends on map iteration order (§4.10's determinism requirements).
func Checksum(s *sim.Simulation) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeI64 := func(v int64) { writeU64(uint64(v)) }

	writeI64(s.Frame)

	for _, id := range s.LiveEntities() {
		writeU64(id)
		e := sim.DecodeEntity(id)

		if pos, ok := s.Positions.Get(e); ok {
			writeI64(int64(pos.Tile.X))
			writeI64(int64(pos.Tile.Y))
			writeI64(int64(pos.Facing))
		}
		if liv, ok := s.Livings.Get(e); ok {
			writeI64(int64(liv.HP))
			writeI64(int64(liv.Element))
		}
		if team, ok := s.Teams.Get(e); ok {
			writeI64(int64(team))
		}
	}

	for y := 0; y < s.Field.Height; y++ {
		for x := 0; x < s.Field.Width; x++ {
			t := s.Field.At(x, y)
			if t == nil {
				continue
			}
			writeI64(int64(t.State))
			writeI64(int64(t.Team))
			writeI64(int64(t.OriginalTeam))
		}
	}

	if blob, err := s.RNG.Marshal(); err == nil {
		h.Write(blob)
	}

	return h.Sum64()
}
