package recording

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := "encdata"
	rec := &Recording{
		Encounter: &EncounterRef{Namespace: "local", ID: "e1"},
		Data:      &data,
		Seed:      1234,
		Players: []PlayerSetup{
			{Index: 0, Namespace: "local", PackageID: "p1", Local: true},
		},
		Packages: []PackageBlob{
			{Category: "character", Namespace: "local", Bytes: []byte{1, 2, 3}},
		},
		InputBuffer: []InputFrame{
			{Frame: 0, Input: map[uint8]uint16{0: 5}},
		},
	}

	encoded, err := Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.Seed != rec.Seed {
		t.Fatalf("seed mismatch: got %d want %d", decoded.Seed, rec.Seed)
	}
	if decoded.Encounter == nil || decoded.Encounter.ID != "e1" {
		t.Fatalf("expected encounter ref preserved, got %+v", decoded.Encounter)
	}
	if len(decoded.Packages) != 1 || decoded.Packages[0].Bytes[2] != 3 {
		t.Fatalf("expected package blob preserved, got %+v", decoded.Packages)
	}
	if len(decoded.InputBuffer) != 1 || decoded.InputBuffer[0].Input[0] != 5 {
		t.Fatalf("expected input buffer preserved, got %+v", decoded.InputBuffer)
	}
}

func TestDecodeOmitsOptionalFields(t *testing.T) {
	rec := &Recording{Seed: 7}
	encoded, err := Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Encounter != nil || decoded.Data != nil {
		t.Fatalf("expected optional fields to decode as nil")
	}
}
