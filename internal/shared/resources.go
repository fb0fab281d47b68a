// Package shared implements the Shared Resources container (§3, §5):
// everything that surrounds a Simulation but is never snapshotted — VM
// code, the structured logger, recording sink, and netplay transport.
// Only *sim.Simulation is part of the rollback snapshot; Resources is
// long-lived across every rollback/resim cycle.
//
// Grounded on the same engine/services shape internal/lifecycle already
// adapts: lifecycle.Hub is the generic dependency-ordered start/stop
// engine, Resources is this battle core's concrete instantiation of it,
// the way the teacher's own cmd/*/main.go wires concrete GameContext
// dependencies through engine/services.
package shared

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hubnet/battlecore/internal/callback"
	"github.com/hubnet/battlecore/internal/lifecycle"
	"github.com/hubnet/battlecore/internal/netplay"
	"github.com/hubnet/battlecore/internal/recording"
	"github.com/hubnet/battlecore/internal/script"
	"github.com/hubnet/battlecore/internal/sim"
)

// Config bundles the plain-struct configuration every Shared Resources
// subsystem is built from (SPEC_FULL.md §A: no config-parsing library —
// the teacher's network/config.go and engine/fsm/config.go convention of
// exported structs with documented zero values is kept here too).
type Config struct {
	Netplay     *netplay.Config // nil disables networking (local/offline battle)
	InputLimit  int             // §4.10 INPUT_BUFFER_LIMIT
	LogLevel    logrus.Level
	LogFields   logrus.Fields
}

// DefaultConfig returns a local, non-networked configuration suitable for
// single-machine replay/testing.
func DefaultConfig() *Config {
	return &Config{
		Netplay:    nil,
		InputLimit: 180,
		LogLevel:   logrus.InfoLevel,
	}
}

// Resources is the Shared Resources aggregate: non-snapshotted state
// that lives alongside (never inside) the Simulation.
type Resources struct {
	Log *logrus.Entry

	Scripts *script.Manager
	VMRing  *script.Ring

	Input      *netplay.InputBuffer
	Peers      *netplay.PeerManager
	Transport  *netplay.Transport
	Desync     *netplay.DesyncCoordinator

	Hub *lifecycle.Hub

	mu        sync.Mutex
	recording *recording.Recording
}

// New builds a Resources instance from cfg. rngNext must be the
// simulation's own deterministic RNG draw function (internal/rng.Sim's
// Float64), so script-side math.random participates in the snapshot
// contract (§6.1).
func New(cfg *Config, rngNext func() float64, players int) *Resources {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	entry := logrus.NewEntry(logger).WithFields(cfg.LogFields)

	r := &Resources{
		Log:     entry,
		Scripts: script.NewManager(rngNext),
		VMRing:  script.NewRing(cfg.InputLimit),
		Input:   netplay.NewInputBuffer(cfg.InputLimit, players),
		Hub:     lifecycle.NewHub(),
	}

	if cfg.Netplay != nil {
		r.Peers = netplay.NewPeerManager(cfg.Netplay)
		r.Transport = netplay.NewTransport(cfg.Netplay)
	}

	r.Desync = netplay.NewDesyncCoordinator(r.requestResim, r.onDesyncAbort)

	// Registration only fails on a duplicate name, which cannot happen
	// here: both service names are fixed literals registered at most once
	// per Resources instance.
	_ = r.Hub.Register(scriptService{r})
	if r.Transport != nil {
		_ = r.Hub.Register(transportService{r})
	}

	return r
}

func (r *Resources) requestResim(report netplay.DesyncReport, attempt int) {
	r.Log.WithFields(logrus.Fields{
		"frame":   report.Frame,
		"peer":    report.PeerID,
		"attempt": attempt,
	}).Warn("shared: requesting rollback resim for desync report")
}

func (r *Resources) onDesyncAbort(report netplay.DesyncReport) {
	r.Log.WithFields(logrus.Fields{
		"frame": report.Frame,
		"peer":  report.PeerID,
	}).Error("shared: desync recovery exhausted retries, aborting")
}

// LoadScriptPackage loads src into a new VM, binds every §6.1 script
// table against simulation via a fresh script.Bridge, tracks the VM for
// rollback snapshotting, and returns its VM index. encounterNS/encounterID
// are exposed to the package's Encounter table and may be empty for a
// player package.
func (r *Resources) LoadScriptPackage(name, src string, simulation *sim.Simulation, encounterNS, encounterID string) (int, error) {
	idx, err := r.Scripts.LoadPackage(name, src)
	if err != nil {
		return 0, err
	}
	vm := r.Scripts.VM(idx)
	bridge := sim.NewScriptBridge(simulation, idx, encounterNS, encounterID)
	if err := script.BindTables(vm, bridge); err != nil {
		return 0, err
	}
	r.VMRing.Track(vm)
	return idx, nil
}

// DispatchScriptCallback invokes the guest function named by handle,
// passing entity as its sole argument, and logs (rather than
// propagates) any script runtime error per §7's error taxonomy. This
// method is how Resources implements sim.ScriptDispatcher.
func (r *Resources) DispatchScriptCallback(handle script.FunctionHandle, entity uint64) callback.Result {
	vm := r.Scripts.VM(handle.VMIndex)
	if vm == nil {
		return callback.Result{}
	}
	value, err := vm.Call(handle.LocalKey, entity)
	if err != nil {
		r.Log.WithFields(logrus.Fields{
			"vm":     handle.VMIndex,
			"entity": entity,
			"fn":     handle.LocalKey,
		}).Warn("shared: script callback error")
		return callback.Result{}
	}
	return callback.Result{Value: value, Ran: true}
}

// ReportError logs a simulation-reported diagnostic (e.g. a defense rule
// error) with its originating frame and source, per §7: defense-rule
// errors are logged and treated as pass-through, never propagated as a
// tick failure. Resources implements sim.Diagnostics.
func (r *Resources) ReportError(frame int64, source string, err error) {
	r.Log.WithFields(logrus.Fields{
		"frame":  frame,
		"source": source,
	}).WithError(err).Warn("shared: simulation diagnostic")
}

// BeginRecording starts accumulating a recording for a new battle.
func (r *Resources) BeginRecording(seed uint64, players []recording.PlayerSetup, encounter *recording.EncounterRef, data *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = &recording.Recording{
		Encounter: encounter,
		Data:      data,
		Seed:      seed,
		Players:   players,
	}
}

// RecordInput appends one frame's per-player input to the in-progress
// recording, if any is active.
func (r *Resources) RecordInput(frame int64, input map[uint8]uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording == nil {
		return
	}
	r.recording.InputBuffer = append(r.recording.InputBuffer, recording.InputFrame{Frame: frame, Input: input})
}

// AttachPackageBlob embeds a zipped script package into the in-progress
// recording so a future replay is self-contained (§6.5).
func (r *Resources) AttachPackageBlob(category, namespace string, bytes []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording == nil {
		return
	}
	r.recording.Packages = append(r.recording.Packages, recording.PackageBlob{Category: category, Namespace: namespace, Bytes: bytes})
}

// FinishRecording encodes and returns the accumulated recording, clearing
// the in-progress buffer.
func (r *Resources) FinishRecording() ([]byte, error) {
	r.mu.Lock()
	rec := r.recording
	r.recording = nil
	r.mu.Unlock()

	if rec == nil {
		return nil, nil
	}
	return recording.Encode(rec)
}
