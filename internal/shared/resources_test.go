package shared

import (
	"testing"

	"github.com/hubnet/battlecore/internal/sim"
)

func newTestSim() *sim.Simulation {
	return sim.New(4, 4, 1, 2, 7, nil)
}

func TestNewAppliesDefaultConfig(t *testing.T) {
	r := New(nil, func() float64 { return 0.5 }, 2)
	if r.Log == nil {
		t.Fatalf("expected logger set")
	}
	if r.Transport != nil {
		t.Fatalf("expected no transport without netplay config")
	}
	if r.Desync == nil {
		t.Fatalf("expected desync coordinator constructed")
	}
}

func TestStartStopRunsRegisteredServices(t *testing.T) {
	r := New(nil, func() float64 { return 0 }, 1)
	if err := r.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	r.Stop()
}

func TestChecksumDeterministicAcrossClones(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	s.Livings.Add(e, sim.Living{HP: 50})

	a := Checksum(s)
	clone := s.Clone()
	b := Checksum(clone)

	if a != b {
		t.Fatalf("expected checksum to match across clone, got %d vs %d", a, b)
	}
}

func TestChecksumDivergesOnHPChange(t *testing.T) {
	s := newTestSim()
	e := s.Spawn()
	s.Livings.Add(e, sim.Living{HP: 50})

	before := Checksum(s)
	s.Livings.Mutate(e, func(l *sim.Living) { l.HP = 10 })
	after := Checksum(s)

	if before == after {
		t.Fatalf("expected checksum to diverge after HP mutation")
	}
}

func TestRecordingRoundTrip(t *testing.T) {
	r := New(nil, func() float64 { return 0 }, 1)
	r.BeginRecording(42, nil, nil, nil)
	r.RecordInput(0, map[uint8]uint16{0: 0x01})
	r.AttachPackageBlob("local", "test", []byte("package data"))

	data, err := r.FinishRecording()
	if err != nil {
		t.Fatalf("finish recording: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected encoded recording bytes")
	}
}

func TestHistoryCommitAndRollback(t *testing.T) {
	h := NewHistory(4)
	s := newTestSim()

	h.Commit(s)
	e := s.Spawn()
	s.Livings.Add(e, sim.Living{HP: 30})
	s.Frame++
	h.Commit(s)

	restored := h.At(s.Frame - 1)
	if restored == nil {
		t.Fatalf("expected frame still in history")
	}
	if restored.Entities.Contains(e) {
		t.Fatalf("expected entity absent from the earlier snapshot")
	}
}
