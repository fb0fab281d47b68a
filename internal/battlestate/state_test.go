package battlestate

import "testing"

type mockSim struct {
	introsComplete   bool
	cardsConfirmed   bool
	formPending      bool
	turns            int
	battleTurnFired  []uint64
	tickTurnOver     bool
}

func (m *mockSim) TurnCount() int                                     { return m.turns }
func (m *mockSim) IncrementTurn()                                     { m.turns++ }
func (m *mockSim) TurnLimitReached() bool                             { return false }
func (m *mockSim) LiveEntities() []uint64                             { return []uint64{1, 2} }
func (m *mockSim) FireIntro(e uint64) (uint64, bool)                  { return e, true }
func (m *mockSim) IntroComplete(h uint64) bool                        { return true }
func (m *mockSim) AllIntrosComplete() bool                            { return m.introsComplete }
func (m *mockSim) AllPlayersConfirmedCards() bool                     { return m.cardsConfirmed }
func (m *mockSim) FormActivationPending() bool                        { return m.formPending }
func (m *mockSim) FireBattleTurn(e uint64)                            { m.battleTurnFired = append(m.battleTurnFired, e) }
func (m *mockSim) TickBattle() (bool, bool)                           { return m.tickTurnOver, false }

func TestIntroTransitionsToCardSelectOnceComplete(t *testing.T) {
	s := NewIntro()
	sim := &mockSim{introsComplete: false}
	s.Update(sim)
	if next := s.NextState(sim); next != nil {
		t.Fatalf("expected no transition before intros complete")
	}
	sim.introsComplete = true
	if next := s.NextState(sim); next == nil || next.Kind != KindCardSelect {
		t.Fatalf("expected transition to CardSelect, got %+v", next)
	}
}

func TestCardSelectRoutesToFormActivateOrTurnStart(t *testing.T) {
	s := State{Kind: KindCardSelect, CardSelect: &CardSelectData{}}
	sim := &mockSim{cardsConfirmed: true, formPending: true}
	if next := s.NextState(sim); next == nil || next.Kind != KindFormActivate {
		t.Fatalf("expected FormActivate, got %+v", next)
	}
	sim.formPending = false
	if next := s.NextState(sim); next == nil || next.Kind != KindTurnStart {
		t.Fatalf("expected TurnStart, got %+v", next)
	}
}

func TestTurnStartFiresBattleTurnAndMovesToBattle(t *testing.T) {
	s := State{Kind: KindTurnStart, TurnStart: &TurnStartData{}}
	sim := &mockSim{}
	s.Update(sim)
	if sim.turns != 1 {
		t.Fatalf("expected turn counter incremented")
	}
	if len(sim.battleTurnFired) != 2 {
		t.Fatalf("expected battle-turn callback fired for both live entities")
	}
	if next := s.NextState(sim); next == nil || next.Kind != KindBattle {
		t.Fatalf("expected transition to Battle")
	}
}

func TestAllowsAnimationUpdatesFalseOnlyDuringCardSelect(t *testing.T) {
	cs := State{Kind: KindCardSelect}
	if cs.AllowsAnimationUpdates() {
		t.Fatalf("expected CardSelect to suspend animation updates")
	}
	battle := State{Kind: KindBattle}
	if !battle.AllowsAnimationUpdates() {
		t.Fatalf("expected Battle to allow animation updates")
	}
}

func TestCloneForSnapshotIsIndependent(t *testing.T) {
	s := NewIntro()
	s.Intro.Pending[1] = 99
	clone := s.CloneForSnapshot()
	clone.Intro.Pending[1] = 42
	if s.Intro.Pending[1] == clone.Intro.Pending[1] {
		t.Fatalf("expected clone to be independent of original")
	}
}
