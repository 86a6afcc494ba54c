package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	natsjs "github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/providers/jetstream"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

// defaultTriggerTimeout bounds a trigger run when no ack wait is configured
const defaultTriggerTimeout = 30 * time.Second

// Config holds the configuration for the event bridge
type Config struct {
	URL             string
	StreamName      string
	ConsumerName    string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ConnectionName  string
	AckWaitTimeout  time.Duration
	MaxDeliver      int
	WorkerPoolSize  int
	WorkerQueueSize int
}

// TriggerRunner runs the trigger entrypoints for decoded change events
//
//go:generate mockgen -source=bridge.go -destination=../mocks/bridge.go -package=mocks -mock_names=TriggerRunner=MockTriggerRunner
type TriggerRunner interface {
	OnTokenCreated(ctx context.Context, token domain.TokenDocument) triggers.Report
	OnLiquidityAdded(ctx context.Context, liquidity domain.LiquidityDocument) triggers.Report
	OnUserUpdated(ctx context.Context, before, after domain.UserDocument) triggers.Report
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run consumes change events until ctx is done
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc      adapter.NatsConn
	js      adapter.JetStream
	runner  TriggerRunner
	json    adapter.JSON
	metrics *metrics.Metrics
	config  Config
}

// NewBridge connects to NATS and returns a bridge that feeds change events to runner
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	runner TriggerRunner,
	jsonAdapter adapter.JSON,
	m *metrics.Metrics,
) (Bridge, error) {
	nc, js, err := natsJS.Connect(cfg.URL, natsjs.ConnectOptions(cfg.ConnectionName, cfg.MaxReconnects, cfg.ReconnectWait)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &bridge{
		nc:      nc,
		js:      js,
		runner:  runner,
		json:    jsonAdapter,
		metrics: m,
		config:  cfg,
	}, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event bridge",
		zap.String("stream", b.config.StreamName),
		zap.String("consumer", b.config.ConsumerName))

	if err := b.js.EnsureStream(ctx, natsjs.StreamConfig(b.config.StreamName)); err != nil {
		return fmt.Errorf("failed to ensure stream: %w", err)
	}

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: domain.DocumentEventsSubject,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved",
		zap.String("consumer", consumerInfo.Name),
		zap.Uint64("pending", consumerInfo.NumPending))

	// The pool outlives ctx so queued and running triggers finish after shutdown starts.
	// Deferred calls run in reverse: the subscription stops before the pool drains.
	pool := pond.NewPool(
		b.config.WorkerPoolSize,
		pond.WithQueueSize(b.config.WorkerQueueSize),
	)
	defer func() {
		pool.StopAndWait()
		logger.InfoCtx(ctx, "Trigger worker pool stopped",
			zap.Uint64("completed", pool.CompletedTasks()),
			zap.Uint64("failed", pool.FailedTasks()))
	}()

	sub, err := consumer.Consume(func(msg adapter.Message) {
		pool.Submit(func() {
			b.handleMessage(ctx, msg)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.InfoCtx(ctx, "Started consuming messages")

	select {
	case <-ctx.Done():
		logger.InfoCtx(ctx, "Shutting down event bridge")
		return ctx.Err()
	case <-sub.Closed():
		return fmt.Errorf("consumer subscription closed")
	}
}

// handleMessage decodes one change event, runs its trigger and acknowledges it.
// Undecodable messages are terminated so they are not redelivered.
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	subject := msg.Subject()

	var event domain.DocumentEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal event"), zap.String("subject", subject))
		b.terminate(ctx, msg, subject)
		return
	}

	if !event.Valid() {
		logger.WarnCtx(ctx, "Dropping incomplete change event",
			zap.String("subject", subject),
			zap.String("eventID", event.EventID))
		b.terminate(ctx, msg, subject)
		return
	}

	var deliveries uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		deliveries = metadata.NumDelivered
	}

	logger.InfoCtx(ctx, "Received change event",
		zap.String("subject", subject),
		zap.String("eventID", event.EventID),
		zap.String("documentID", event.DocumentID),
		zap.Uint64("deliveryCount", deliveries))

	// Triggers run detached from shutdown, bounded by the ack deadline
	triggerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.triggerTimeout())
	defer cancel()

	report, handled, err := b.dispatch(triggerCtx, &event)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("subject", subject), zap.String("eventID", event.EventID))
		b.terminate(ctx, msg, subject)
		return
	}

	if interrupted(report) {
		logger.WarnCtx(ctx, "Trigger interrupted, requesting redelivery",
			zap.String("subject", subject),
			zap.String("eventID", event.EventID),
			zap.Error(report.Err()))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
		b.metrics.BridgeMessages.WithLabelValues(subject, metrics.MessageNacked).Inc()
		return
	}

	result := metrics.MessageAcked
	if !handled {
		result = metrics.MessageSkipped
	}

	// Step failures other than interruption do not cause redelivery
	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
	b.metrics.BridgeMessages.WithLabelValues(subject, result).Inc()
}

func (b *bridge) triggerTimeout() time.Duration {
	if b.config.AckWaitTimeout > 0 {
		return b.config.AckWaitTimeout
	}
	return defaultTriggerTimeout
}

// interrupted reports whether a step was cut off by the trigger deadline or a cancellation
func interrupted(report triggers.Report) bool {
	for _, step := range report.Steps {
		if errors.Is(step.Err, context.Canceled) || errors.Is(step.Err, context.DeadlineExceeded) {
			return true
		}
	}
	return false
}

// dispatch routes the event to its trigger. It reports false for events no trigger listens to
func (b *bridge) dispatch(ctx context.Context, event *domain.DocumentEvent) (triggers.Report, bool, error) {
	var report triggers.Report
	switch {
	case event.Collection == domain.CollectionTokens && event.Kind == domain.ChangeKindCreated:
		var token domain.TokenDocument
		if err := event.DecodeAfter(&token); err != nil {
			return report, false, err
		}
		if token.ID == "" {
			token.ID = event.DocumentID
		}
		report = b.runner.OnTokenCreated(ctx, token)

	case event.Collection == domain.CollectionLiquidity && event.Kind == domain.ChangeKindCreated:
		var liquidity domain.LiquidityDocument
		if err := event.DecodeAfter(&liquidity); err != nil {
			return report, false, err
		}
		if liquidity.ID == "" {
			liquidity.ID = event.DocumentID
		}
		report = b.runner.OnLiquidityAdded(ctx, liquidity)

	case event.Collection == domain.CollectionUsers && event.Kind == domain.ChangeKindUpdated:
		var before, after domain.UserDocument
		if err := event.DecodeBefore(&before); err != nil {
			return report, false, err
		}
		if err := event.DecodeAfter(&after); err != nil {
			return report, false, err
		}
		if after.ID == "" {
			after.ID = event.DocumentID
		}
		report = b.runner.OnUserUpdated(ctx, before, after)

	default:
		return report, false, nil
	}

	return report, true, nil
}

func (b *bridge) terminate(ctx context.Context, msg adapter.Message, subject string) {
	if err := msg.Term(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
	}
	b.metrics.BridgeMessages.WithLabelValues(subject, metrics.MessageTerminated).Inc()
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	if err := b.nc.Drain(); err != nil {
		b.nc.Close()
	}
}
