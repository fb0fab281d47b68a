package field

import "testing"

func TestSetStateMetalCrackImmune(t *testing.T) {
	tile := NewTile()
	tile.SetState(Metal)
	if tile.SetState(Crack) {
		t.Fatalf("expected metal tile to resist cracking")
	}
	if tile.State != Metal {
		t.Fatalf("state should remain Metal")
	}
}

func TestWalkableReflectsSurface(t *testing.T) {
	tile := NewTile()
	if !tile.Walkable() {
		t.Fatalf("expected Normal tile walkable")
	}
	tile.SetState(Lava)
	if tile.Walkable() {
		t.Fatalf("expected Lava tile not walkable")
	}
}

func TestSetStateBlockedByReservation(t *testing.T) {
	tile := NewTile()
	tile.addReservation(1)
	if tile.SetState(Lava) {
		t.Fatalf("expected non-walkable transition blocked while reserved")
	}
}

func TestSetTeamFirstAssignmentRecordsOriginal(t *testing.T) {
	tile := NewTile()
	tile.SetTeam(2)
	if tile.OriginalTeam != 2 || tile.Team != 2 {
		t.Fatalf("expected original team recorded")
	}
}

func TestSetTeamSubsequentStartsRevertTimer(t *testing.T) {
	tile := NewTile()
	tile.SetTeam(2)
	tile.SetTeam(5)
	if tile.Team != 5 {
		t.Fatalf("expected team changed to 5")
	}
	if tile.revertTimer != TempTeamDuration {
		t.Fatalf("expected revert timer started")
	}
}

func TestSetTeamBlockedWhileReserved(t *testing.T) {
	tile := NewTile()
	tile.SetTeam(1)
	tile.addReservation(9)
	if tile.SetTeam(2) {
		t.Fatalf("expected team change blocked while reserved")
	}
}

func TestAttemptWashMatchesPairs(t *testing.T) {
	tile := NewTile()
	tile.State = Sand
	if !tile.AttemptWash(ElementWind) {
		t.Fatalf("expected sand+wind to wash")
	}
	if !tile.Washed {
		t.Fatalf("expected washed flag set")
	}
}

func TestAttemptWashRejectsMismatch(t *testing.T) {
	tile := NewTile()
	tile.State = Sand
	if tile.AttemptWash(ElementFire) {
		t.Fatalf("sand+fire should not wash")
	}
}

func TestApplyWashResetsToNormal(t *testing.T) {
	tile := NewTile()
	tile.State = Sand
	tile.Washed = true
	tile.ApplyWash()
	if tile.State != Normal || tile.Washed {
		t.Fatalf("expected tile reset to Normal and unwashed")
	}
}

func TestAutoReservationNoopWhileActionExecuting(t *testing.T) {
	tile := NewTile()
	tile.HandleAutoReservationAddition(1, true, true)
	if len(tile.reservations) != 0 {
		t.Fatalf("expected no-op while action executing")
	}
	tile.HandleAutoReservationAddition(1, true, false)
	if len(tile.reservations) != 1 {
		t.Fatalf("expected reservation added")
	}
}

func TestFieldBoundsAndClone(t *testing.T) {
	f := New(4, 3)
	if f.At(10, 10) != nil {
		t.Fatalf("expected nil for out-of-bounds")
	}
	f.At(1, 1).SetTeam(3)
	clone := f.Clone()
	clone.At(1, 1).SetTeam(9)
	if f.At(1, 1).Team == clone.At(1, 1).Team {
		t.Fatalf("expected clone to be independent")
	}
}
