package adapter

import (
	"encoding/json"
)

// JSON encodes change-event envelopes and document snapshots. Wrapped so codec
// failures can be injected in tests.
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	// Marshal encodes v compactly, as published on the wire
	Marshal(v any) ([]byte, error)
	// MarshalIndent encodes v with two-space indentation for operator output
	MarshalIndent(v any) ([]byte, error)
	// Unmarshal decodes data into v
	Unmarshal(data []byte, v any) error
}

type stdJSON struct{}

// NewJSON returns the encoding/json backed codec
func NewJSON() JSON {
	return stdJSON{}
}

func (stdJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (stdJSON) MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (stdJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
