package movement

import "testing"

func TestDoneAfterFullDuration(t *testing.T) {
	m := New(Tile{0, 0}, Tile{3, 0}, 2, 5, 1, 0)
	for i := 0; i < m.TotalDuration()-1; i++ {
		m.Tick()
		if m.Done() {
			t.Fatalf("movement finished early at tick %d", i)
		}
	}
	m.Tick()
	if !m.Done() {
		t.Fatalf("expected movement done after total duration")
	}
}

func TestOnBeginFiresAfterDelay(t *testing.T) {
	m := New(Tile{0, 0}, Tile{1, 0}, 3, 2, 0, 0)
	fired := 0
	m.OnBegin = func() { fired++ }
	for i := 0; i < 3; i++ {
		m.Tick()
	}
	if fired != 0 {
		t.Fatalf("expected OnBegin not yet fired during startup delay")
	}
	m.Tick()
	if fired != 1 {
		t.Fatalf("expected OnBegin to fire exactly once on the first travel tick")
	}
}

func TestOnEndFiresExactlyOnce(t *testing.T) {
	m := New(Tile{0, 0}, Tile{1, 0}, 0, 1, 0, 0)
	ends := 0
	m.OnEnd = func() { ends++ }
	for i := 0; i < 5; i++ {
		m.Tick()
	}
	if ends != 1 {
		t.Fatalf("expected OnEnd fired exactly once, got %d", ends)
	}
}

func TestTeleportProgressIsOneAfterDelay(t *testing.T) {
	m := New(Tile{0, 0}, Tile{5, 5}, 2, 0, 0, 0)
	m.Tick()
	m.Tick()
	if p := m.Progress(); p != 1 {
		t.Fatalf("expected teleport progress 1 after delay, got %f", p)
	}
}
