package messaging

import (
	"context"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

// Publisher defines the interface for publishing document change events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishDocumentEvent publishes a change event on its documents.{collection}.{kind} subject
	PublishDocumentEvent(ctx context.Context, event *domain.DocumentEvent) error
	// Close closes the connection
	Close()
}
