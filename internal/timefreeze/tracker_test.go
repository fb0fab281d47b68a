package timefreeze

import "testing"

func TestSetTeamActionEntersFreezeFromThawed(t *testing.T) {
	tr := New()
	tr.SetTeamAction(0, 100)
	if tr.Phase() != Freeze {
		t.Fatalf("expected Freeze, got %s", tr.Phase())
	}
	if len(tr.Chain()) != 1 {
		t.Fatalf("expected one chain entry")
	}
}

func TestFreezeAdvancesThroughFadeInToCounterable(t *testing.T) {
	tr := New()
	tr.SetTeamAction(0, 1)
	tr.IncrementTime() // Freeze -> FadeIn
	if tr.Phase() != FadeIn {
		t.Fatalf("expected FadeIn, got %s", tr.Phase())
	}
	for i := 0; i < FadeDuration; i++ {
		tr.IncrementTime()
	}
	if tr.Phase() != Counterable {
		t.Fatalf("expected Counterable, got %s", tr.Phase())
	}
}

func TestCanCounterRespectsGraceWindow(t *testing.T) {
	tr := New()
	tr.SetTeamAction(0, 1)
	tr.IncrementTime()
	for i := 0; i < FadeDuration; i++ {
		tr.IncrementTime()
	}
	if !tr.CanCounter() {
		t.Fatalf("expected counter allowed at start of Counterable")
	}
	for i := 0; i < CounterDuration-counterGraceFrames; i++ {
		tr.IncrementTime()
	}
	if tr.CanCounter() {
		t.Fatalf("expected counter disallowed within grace window of counterable end")
	}
}

func TestSetTeamActionDuringCounterableReplacesAndExtends(t *testing.T) {
	tr := New()
	tr.SetTeamAction(0, 1)
	tr.IncrementTime()
	for i := 0; i < FadeDuration; i++ {
		tr.IncrementTime()
	}
	tr.SetTeamAction(1, 2)
	if len(tr.Chain()) != 2 {
		t.Fatalf("expected chain to grow to 2, got %d", len(tr.Chain()))
	}
	tr.SetTeamAction(0, 3)
	chain := tr.Chain()
	if len(chain) != 2 {
		t.Fatalf("expected team 0's old entry replaced not duplicated, got %d entries", len(chain))
	}
}

func TestAdvanceActionPopsTailAndEntersFadeOutWhenEmpty(t *testing.T) {
	tr := New()
	tr.SetTeamAction(0, 42)
	popped, ok := tr.AdvanceAction()
	if !ok || popped.Team != 0 || popped.Handle != 42 {
		t.Fatalf("expected to pop team 0 action, got %+v ok=%v", popped, ok)
	}
	if tr.Phase() != FadeOut {
		t.Fatalf("expected FadeOut once chain empties, got %s", tr.Phase())
	}
}

func TestAdvanceActionReentersActionWhenChainRemains(t *testing.T) {
	tr := New()
	tr.SetTeamAction(0, 1)
	tr.SetTeamAction(1, 2)
	popped, ok := tr.AdvanceAction()
	if !ok || popped.Team != 1 {
		t.Fatalf("expected to pop the most recently queued team first, got %+v", popped)
	}
	if tr.Phase() != Action {
		t.Fatalf("expected Action phase while chain still has entries, got %s", tr.Phase())
	}
}

func TestFadeAlphaRamps(t *testing.T) {
	tr := New()
	if tr.FadeAlpha() != 0 {
		t.Fatalf("expected 0 alpha while thawed")
	}
	tr.SetTeamAction(0, 1)
	tr.IncrementTime()
	if a := tr.FadeAlpha(); a != 0 {
		t.Fatalf("expected 0 alpha at FadeIn start, got %f", a)
	}
	for i := 0; i < FadeDuration/2; i++ {
		tr.IncrementTime()
	}
	if a := tr.FadeAlpha(); a <= 0 || a >= 1 {
		t.Fatalf("expected partial alpha mid fade-in, got %f", a)
	}
}

func TestDecrossRestoresRevertSlot(t *testing.T) {
	tr := New()
	tr.SetTeamAction(0, 1)
	tr.IncrementTime()
	tr.StartDecross()
	if tr.Phase() != Decross {
		t.Fatalf("expected Decross")
	}
	for i := 0; i < DecrossDuration; i++ {
		tr.IncrementTime()
	}
	if tr.Phase() != FadeIn {
		t.Fatalf("expected restored FadeIn phase after decross, got %s", tr.Phase())
	}
	if !tr.ShouldThaw() {
		t.Fatalf("expected ShouldThaw after decross completion")
	}
}
