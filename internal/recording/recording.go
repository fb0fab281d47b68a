// Package recording implements the message-packed battle recording
// format (§6.5): everything needed to replay a battle's input buffers
// against restored script packages.
package recording

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncounterRef names an optional encounter package pair.
type EncounterRef struct {
	Namespace string
	ID        string
}

// PlayerSetup mirrors the battle-initialization player record (§6.2).
type PlayerSetup struct {
	Index     int
	Namespace string
	PackageID string
	Local     bool
}

// PackageBlob is one zipped script package embedded in the recording so
// a replay is self-contained even if the original package has since
// changed on disk.
type PackageBlob struct {
	Category  string
	Namespace string
	Bytes     []byte
}

// InputFrame is one frame's per-player input, keyed by PlayerIndex for a
// compact on-the-wire shape (reusing netplay's bit-packed flags would
// create an import cycle between netplay and recording for no benefit,
// so the type is duplicated here at the wire boundary).
type InputFrame struct {
	Frame int64
	Input map[uint8]uint16
}

// Recording is the top-level message-packed struct (§6.5).
type Recording struct {
	Encounter    *EncounterRef `msgpack:"encounter,omitempty"`
	Data         *string       `msgpack:"data,omitempty"`
	Seed         uint64        `msgpack:"seed"`
	Players      []PlayerSetup `msgpack:"players"`
	Packages     []PackageBlob `msgpack:"packages"`
	InputBuffer  []InputFrame  `msgpack:"input_buffer"`
}

// Encode serializes r to its wire format.
func Encode(r *Recording) ([]byte, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("recording: encode: %w", err)
	}
	return data, nil
}

// Decode parses a wire-format recording.
func Decode(data []byte) (*Recording, error) {
	var r Recording
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("recording: decode: %w", err)
	}
	return &r, nil
}
