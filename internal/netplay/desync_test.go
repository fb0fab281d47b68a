package netplay

import "testing"

func TestDesyncCoordinatorStartsStable(t *testing.T) {
	d := NewDesyncCoordinator(nil, nil)
	if got := d.State(); got != "Stable" {
		t.Fatalf("expected Stable, got %s", got)
	}
}

func TestDesyncCoordinatorRecoversOnSuccessfulResim(t *testing.T) {
	var requested int
	d := NewDesyncCoordinator(func(DesyncReport, int) { requested++ }, nil)

	d.Report(DesyncReport{Frame: 42, Checksum: 0xBEEF, PeerID: 3})
	d.Update(0)
	if got := d.State(); got != "Detected" {
		t.Fatalf("expected Detected, got %s", got)
	}

	d.Update(0)
	if got := d.State(); got != "RollingBack" {
		t.Fatalf("expected RollingBack, got %s", got)
	}
	if requested != 1 {
		t.Fatalf("expected resim requested once, got %d", requested)
	}

	d.ResolveResim(true)
	d.Update(0)
	if got := d.State(); got != "Stable" {
		t.Fatalf("expected Stable after successful resim, got %s", got)
	}
}

func TestDesyncCoordinatorAbortsAfterExhaustingRetries(t *testing.T) {
	var aborted *DesyncReport
	attempts := 0
	d := NewDesyncCoordinator(func(DesyncReport, int) { attempts++ }, func(r DesyncReport) { aborted = &r })

	d.Report(DesyncReport{Frame: 7, Checksum: 1, PeerID: 1})
	d.Update(0) // Stable -> Detected

	for i := 0; i < MaxRollbackAttempts; i++ {
		d.Update(0) // Detected -> RollingBack
		if got := d.State(); got != "RollingBack" {
			t.Fatalf("attempt %d: expected RollingBack, got %s", i, got)
		}
		d.ResolveResim(false)
		d.Update(0) // RollingBack -> Detected (retry guard) or Aborted (retries exhausted)
	}

	if got := d.State(); got != "Aborted" {
		t.Fatalf("expected Aborted after exhausting retries, got %s", got)
	}
	if attempts != MaxRollbackAttempts {
		t.Fatalf("expected %d resim attempts, got %d", MaxRollbackAttempts, attempts)
	}
	if aborted == nil || aborted.Frame != 7 {
		t.Fatalf("expected abort callback with original report, got %v", aborted)
	}
}
