package anim

import "testing"

func threeFrameStates() map[string][]Frame {
	return map[string][]Frame{
		"walk": {
			{Duration: 1},
			{Duration: 1},
			{Duration: 1},
		},
	}
}

func TestLoopWrapsAndIncrementsLoopCount(t *testing.T) {
	a := New()
	a.Load(threeFrameStates())
	a.SetPlaybackMode(Loop)
	a.SetState("walk")

	for i := 0; i < 3; i++ {
		a.Update()
	}
	if a.loopCount != 1 {
		t.Fatalf("expected one loop completed, got %d", a.loopCount)
	}
	if a.frameIndex != 0 {
		t.Fatalf("expected frame index wrapped to 0, got %d", a.frameIndex)
	}
}

func TestOnceStopsAtLastFrameAndSetsComplete(t *testing.T) {
	a := New()
	a.Load(threeFrameStates())
	a.SetPlaybackMode(Once)
	a.SetState("walk")

	for i := 0; i < 5; i++ {
		a.Update()
	}
	if !a.Complete() {
		t.Fatalf("expected animator complete after reaching last frame")
	}
	if a.frameIndex != 2 {
		t.Fatalf("expected frame index pinned at last frame, got %d", a.frameIndex)
	}
}

func TestBounceAlternatesDirection(t *testing.T) {
	a := New()
	a.Load(threeFrameStates())
	a.SetPlaybackMode(Bounce)
	a.SetState("walk")

	// 0->1->2 ->(flip) 1->0 ->(flip) 1
	for i := 0; i < 5; i++ {
		a.Update()
	}
	if a.loopCount != 2 {
		t.Fatalf("expected two direction flips, got %d", a.loopCount)
	}
}

func TestSetStateDrainsInterruptCallbacks(t *testing.T) {
	a := New()
	a.Load(threeFrameStates())
	a.RegisterOnInterrupt("on_interrupt")
	fired := a.SetState("walk")
	if len(fired) != 1 || fired[0].Kind != CallbackInterrupt || fired[0].ID != "on_interrupt" {
		t.Fatalf("expected interrupt callback drained, got %+v", fired)
	}
	if len(a.interruptCallbacks) != 0 {
		t.Fatalf("expected interrupt callbacks cleared")
	}
}

func TestRegisterOnCompleteFiresOnPlaybackComplete(t *testing.T) {
	a := New()
	a.Load(threeFrameStates())
	a.SetPlaybackMode(Once)
	a.SetState("walk")
	a.RegisterOnComplete("on_complete")

	var fired []Fired
	for i := 0; i < 3; i++ {
		fired = a.Update()
	}
	if len(fired) != 1 || fired[0].Kind != CallbackComplete || fired[0].ID != "on_complete" {
		t.Fatalf("expected complete callback fired on last tick, got %+v", fired)
	}
}

func TestDeriveStateReusesFramesByIndex(t *testing.T) {
	a := New()
	a.Load(threeFrameStates())
	name := a.DeriveState("walk", []int{2, 0, 0})
	if len(a.states[name]) != 3 {
		t.Fatalf("expected derived state with 3 frames, got %d", len(a.states[name]))
	}
	if name == "walk" {
		t.Fatalf("expected a fresh synthetic name")
	}
}
