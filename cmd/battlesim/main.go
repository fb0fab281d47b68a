// Command battlesim is a minimal, renderless driver for the deterministic
// battle simulation core: it builds a Simulation and Shared Resources,
// steps a fixed number of ticks, and logs frame/checksum pairs.
//
// Grounded on the teacher's cmd/vi-fighter/main.go shape (flag-parsed
// options, construct dependencies, then a loop) stripped to what a
// no-render, no-input, no-network host needs; the renderer/input/server
// protocol layers this core assumes as external collaborators (§1) are
// not implemented here.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hubnet/battlecore/internal/shared"
	"github.com/hubnet/battlecore/internal/sim"
	"github.com/hubnet/battlecore/internal/statusfx"
)

func main() {
	width := flag.Int("width", 6, "field width in tiles")
	height := flag.Int("height", 3, "field height in tiles")
	ticks := flag.Int("ticks", 120, "number of simulation ticks to run")
	seed1 := flag.Uint64("seed1", 1, "first half of the deterministic RNG seed")
	seed2 := flag.Uint64("seed2", 2, "second half of the deterministic RNG seed")
	debug := flag.Bool("debug", false, "enable debug-level logging")
	flag.Parse()

	cfg := shared.DefaultConfig()
	if *debug {
		cfg.LogLevel = logrus.DebugLevel
	}

	s := sim.New(*width, *height, *seed1, *seed2, uint32(*seed1), []statusfx.Dependency{})
	res := shared.New(cfg, s.RNG.Float64, 1)
	s.ErrorSink = res

	if err := res.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "battlesim: start: %v\n", err)
		os.Exit(1)
	}
	defer res.Stop()

	history := shared.NewHistory(cfg.InputLimit)

	e := s.Spawn()
	s.Livings.Add(e, sim.Living{HP: 100, MaxHP: 100})
	s.MarkIntroComplete(sim.EncodeEntity(e))

	for i := 0; i < *ticks; i++ {
		shared.Step(s, res, history)
		res.Log.WithFields(logrus.Fields{
			"frame":    s.Frame,
			"checksum": shared.Checksum(s),
			"turn":     s.Turn,
			"state":    s.BattleState.Kind.String(),
		}).Info("battlesim: tick")
	}
}
