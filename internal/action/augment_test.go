package action

import "testing"

func TestAugmentHasTag(t *testing.T) {
	a := Augment{Tags: []string{"elemental", "charged"}}
	if !a.HasTag("charged") {
		t.Fatalf("expected tag present")
	}
	if a.HasTag("missing") {
		t.Fatalf("expected tag absent")
	}
}
