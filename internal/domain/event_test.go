package domain

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	before := UserDocument{ID: "u1", TotalTokensCreated: 4}
	after := UserDocument{ID: "u1", TotalTokensCreated: 5}

	event, err := NewDocumentEvent(CollectionUsers, ChangeKindUpdated, "u1", before, after, at)
	require.NoError(t, err)
	assert.True(t, event.Valid())
	assert.Equal(t, "documents.users.updated", event.Subject())

	id, err := ulid.ParseStrict(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), id.Time())

	var decodedBefore, decodedAfter UserDocument
	require.NoError(t, event.DecodeBefore(&decodedBefore))
	require.NoError(t, event.DecodeAfter(&decodedAfter))
	assert.Equal(t, int64(4), decodedBefore.TotalTokensCreated)
	assert.Equal(t, int64(5), decodedAfter.TotalTokensCreated)
}

func TestNewDocumentEvent_Created(t *testing.T) {
	event, err := NewDocumentEvent(CollectionTokens, ChangeKindCreated, "t1", nil, TokenDocument{ID: "t1"}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, event.Before)
	assert.True(t, event.Valid())

	other, err := NewDocumentEvent(CollectionTokens, ChangeKindCreated, "t1", nil, TokenDocument{ID: "t1"}, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, event.EventID, other.EventID)
}

func TestDocumentEvent_DecodeInvalid(t *testing.T) {
	event := &DocumentEvent{After: []byte(`{"totalTokensCreated":"many"}`)}

	var doc UserDocument
	err := event.DecodeAfter(&doc)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
