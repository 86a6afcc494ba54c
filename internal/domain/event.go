package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewDocumentEvent builds a change event with a fresh ULID. before may be nil for created documents
func NewDocumentEvent(collection Collection, kind ChangeKind, documentID string, before, after any, at time.Time) (*DocumentEvent, error) {
	event := &DocumentEvent{
		EventID:    ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
		Collection: collection,
		Kind:       kind,
		DocumentID: documentID,
		Timestamp:  at.UTC(),
	}

	if before != nil {
		raw, err := json.Marshal(before)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal before snapshot: %w", err)
		}
		event.Before = raw
	}

	raw, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal after snapshot: %w", err)
	}
	event.After = raw

	return event, nil
}

// DecodeAfter unmarshals the after snapshot into v
func (e *DocumentEvent) DecodeAfter(v any) error {
	if err := json.Unmarshal(e.After, v); err != nil {
		return fmt.Errorf("%w: after: %v", ErrInvalidDocument, err)
	}
	return nil
}

// DecodeBefore unmarshals the before snapshot into v
func (e *DocumentEvent) DecodeBefore(v any) error {
	if err := json.Unmarshal(e.Before, v); err != nil {
		return fmt.Errorf("%w: before: %v", ErrInvalidDocument, err)
	}
	return nil
}
