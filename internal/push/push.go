package push

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// ErrEmptyToken is returned when a message has no device token
var ErrEmptyToken = errors.New("empty device token")

// Message is a notification addressed to a single device token
type Message struct {
	Token string
	Title string
	Body  string
	// Data is delivered to the client app as-is; it always carries a "type" key
	Data map[string]string
}

// Sender delivers push notifications
//
//go:generate mockgen -source=push.go -destination=../mocks/push.go -package=mocks -mock_names=Sender=MockPushSender,MessagingClient=MockMessagingClient
type Sender interface {
	// Send delivers msg and returns the provider message id
	Send(ctx context.Context, msg Message) (string, error)
}

// MessagingClient is the subset of *messaging.Client used to send
type MessagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Config holds the FCM sender configuration
type Config struct {
	ProjectID       string
	CredentialsFile string
	// AppURL, when set, is used as the web push click-through link
	AppURL string
}

type fcmSender struct {
	client MessagingClient
	appURL string
}

// NewFCMSender creates a Sender backed by Firebase Cloud Messaging
func NewFCMSender(client MessagingClient, appURL string) Sender {
	return &fcmSender{client: client, appURL: appURL}
}

// NewMessagingClient initializes a Firebase app and returns its messaging client.
// Without a credentials file, application default credentials are used.
func NewMessagingClient(ctx context.Context, cfg Config) (*messaging.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging: %w", err)
	}

	return client, nil
}

func (s *fcmSender) Send(ctx context.Context, msg Message) (string, error) {
	if msg.Token == "" {
		return "", ErrEmptyToken
	}

	id, err := s.client.Send(ctx, s.toFCMMessage(msg))
	if err != nil {
		return "", fmt.Errorf("failed to send push notification: %w", err)
	}

	return id, nil
}

func (s *fcmSender) toFCMMessage(msg Message) *messaging.Message {
	m := &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	}

	if s.appURL != "" {
		m.Webpush = &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{Link: s.appURL},
		}
	}

	return m
}
