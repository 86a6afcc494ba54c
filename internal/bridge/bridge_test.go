package bridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/bridge"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	mockspkg "github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/mocks"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBridgeMocks contains all the mocks needed for testing the bridge
type testBridgeMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mockspkg.MockNatsJetStream
	natsConn  *mockspkg.MockNatsConn
	jetStream *mockspkg.MockJetStream
	consumer  *mockspkg.MockNatsConsumer
	consume   *mockspkg.MockConsumeContext
	runner    *mockspkg.MockTriggerRunner
	bridge    bridge.Bridge
}

func testConfig() bridge.Config {
	return bridge.Config{
		URL:             "nats://localhost:4222",
		StreamName:      "DOCUMENT_EVENTS",
		ConsumerName:    "trigger-worker",
		MaxReconnects:   5,
		ReconnectWait:   time.Second,
		ConnectionName:  "test-trigger-worker",
		AckWaitTimeout:  30 * time.Second,
		MaxDeliver:      3,
		WorkerPoolSize:  2,
		WorkerQueueSize: 16,
	}
}

// setupTestBridge creates all the mocks and the bridge under test
func setupTestBridge(t *testing.T) *testBridgeMocks {
	ctrl := gomock.NewController(t)

	tm := &testBridgeMocks{
		ctrl:      ctrl,
		natsJS:    mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:  mockspkg.NewMockNatsConn(ctrl),
		jetStream: mockspkg.NewMockJetStream(ctrl),
		consumer:  mockspkg.NewMockNatsConsumer(ctrl),
		consume:   mockspkg.NewMockConsumeContext(ctrl),
		runner:    mockspkg.NewMockTriggerRunner(ctrl),
	}

	cfg := testConfig()
	tm.natsJS.EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(tm.natsConn, tm.jetStream, nil)

	b, err := bridge.NewBridge(cfg, tm.natsJS, tm.runner, adapter.NewJSON(), metrics.NewNop())
	require.NoError(t, err)
	tm.bridge = b

	return tm
}

// tearDownTestBridge cleans up the test mocks
func tearDownTestBridge(mocks *testBridgeMocks) {
	mocks.ctrl.Finish()
}

// expectConsumerSetup wires the calls Run makes before consuming
func expectConsumerSetup(mocks *testBridgeMocks) {
	mocks.jetStream.EXPECT().
		EnsureStream(gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "DOCUMENT_EVENTS", gomock.Any()).
		Return(mocks.consumer, nil)
	mocks.consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "trigger-worker"}, nil)
}

// startConsuming runs the bridge in the background and returns the registered message handler
func startConsuming(t *testing.T, mocks *testBridgeMocks) (adapter.MessageHandler, context.CancelFunc, <-chan error) {
	expectConsumerSetup(mocks)

	handlers := make(chan adapter.MessageHandler, 1)
	var closed <-chan struct{} = make(chan struct{})
	mocks.consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlers <- handler
			return mocks.consume, nil
		})
	mocks.consume.EXPECT().Closed().Return(closed).AnyTimes()
	mocks.consume.EXPECT().Stop().AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- mocks.bridge.Run(ctx)
	}()

	select {
	case handler := <-handlers:
		return handler, cancel, errCh
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("bridge did not start consuming")
		return nil, cancel, errCh
	}
}

func stopConsuming(t *testing.T, cancel context.CancelFunc, errCh <-chan error) {
	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop")
	}
}

func newEventMessage(t *testing.T, ctrl *gomock.Controller, event *domain.DocumentEvent) *mockspkg.MockJetStreamMessage {
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return newRawMessage(ctrl, event.Subject(), data)
}

func newRawMessage(ctrl *gomock.Controller, subject string, data []byte) *mockspkg.MockJetStreamMessage {
	msg := mockspkg.NewMockJetStreamMessage(ctrl)
	msg.EXPECT().Subject().Return(subject).AnyTimes()
	msg.EXPECT().Data().Return(data).AnyTimes()
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).AnyTimes()
	return msg
}

// signalOn returns a func that closes done, used as the Ack/Term action
func signalOn(done chan struct{}, ret error) func() error {
	return func() error {
		close(done)
		return ret
	}
}

func waitFor(t *testing.T, done <-chan struct{}) {
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not settled")
	}
}

var testTime = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func TestNewBridge_Success(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	assert.NotNil(t, mocks.bridge)
}

func TestNewBridge_ConnectError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mockspkg.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("connection refused"))

	b, err := bridge.NewBridge(testConfig(), natsJS, mockspkg.NewMockTriggerRunner(ctrl), adapter.NewJSON(), metrics.NewNop())

	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestBridge_Run_EnsureStreamError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.jetStream.EXPECT().
		EnsureStream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cfg jetstream.StreamConfig) error {
			assert.Equal(t, "DOCUMENT_EVENTS", cfg.Name)
			assert.Equal(t, []string{domain.DocumentEventsSubject}, cfg.Subjects)
			return errors.New("stream error")
		})

	err := mocks.bridge.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure stream")
}

func TestBridge_Run_CreateConsumerError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.jetStream.EXPECT().
		EnsureStream(gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "DOCUMENT_EVENTS", jetstream.ConsumerConfig{
			Durable:       "trigger-worker",
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxDeliver:    3,
			FilterSubject: "documents.>",
		}).
		Return(nil, errors.New("consumer error"))

	err := mocks.bridge.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestBridge_Run_ConsumerInfoError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.jetStream.EXPECT().
		EnsureStream(gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(mocks.consumer, nil)
	mocks.consumer.EXPECT().
		Info(gomock.Any()).
		Return(nil, errors.New("info error"))

	err := mocks.bridge.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get consumer info")
}

func TestBridge_Run_ConsumeError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	expectConsumerSetup(mocks)
	mocks.consumer.EXPECT().
		Consume(gomock.Any()).
		Return(nil, errors.New("consume error"))

	err := mocks.bridge.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestBridge_Run_ContextCancellation(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	_, cancel, errCh := startConsuming(t, mocks)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_Run_SubscriptionClosed(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	expectConsumerSetup(mocks)
	closed := make(chan struct{})
	close(closed)
	var closedCh <-chan struct{} = closed
	mocks.consumer.EXPECT().
		Consume(gomock.Any()).
		Return(mocks.consume, nil)
	mocks.consume.EXPECT().Closed().Return(closedCh)
	mocks.consume.EXPECT().Stop()

	err := mocks.bridge.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "consumer subscription closed")
}

func TestBridge_Close(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsConn.EXPECT().Drain().Return(nil)

	mocks.bridge.Close()
}

func TestBridge_Close_DrainError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsConn.EXPECT().Drain().Return(errors.New("drain error"))
	mocks.natsConn.EXPECT().Close()

	mocks.bridge.Close()
}

func TestBridge_ProcessMessage_TokenCreated(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	token := domain.TokenDocument{
		ContractAddress: "0x1111111111111111111111111111111111111111",
		Name:            "Test Token",
		Symbol:          "TEST",
		Decimals:        18,
		TotalSupply:     "1000000",
		DeployerAddress: "0xabcdef0123456789abcdef0123456789abcdef01",
		ChainID:         domain.ChainBaseSepolia,
		DeployedAt:      testTime,
		TxHash:          "0xdeadbeef",
	}
	event, err := domain.NewDocumentEvent(domain.CollectionTokens, domain.ChangeKindCreated, "tok-1", nil, token, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	expected := token
	expected.ID = "tok-1"
	mocks.runner.EXPECT().
		OnTokenCreated(gomock.Any(), expected).
		Return(triggers.Report{Trigger: triggers.TriggerTokenCreated, DocumentID: "tok-1"})

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Ack().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_LiquidityCreated(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	liquidity := domain.LiquidityDocument{
		ID:           "liq-1",
		TokenAddress: "0x1111111111111111111111111111111111111111",
		Amount:       "250.5",
		EthAmount:    "0.1",
		UserAddress:  "0xabcdef0123456789abcdef0123456789abcdef01",
		ChainID:      domain.ChainBaseMainnet,
		TxHash:       "0xbeef",
		FeeTier:      3000,
		CreatedAt:    testTime,
	}
	event, err := domain.NewDocumentEvent(domain.CollectionLiquidity, domain.ChangeKindCreated, "liq-1", nil, liquidity, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	mocks.runner.EXPECT().
		OnLiquidityAdded(gomock.Any(), liquidity).
		Return(triggers.Report{Trigger: triggers.TriggerLiquidityAdded, DocumentID: "liq-1"})

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Ack().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_UserUpdated(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	before := domain.UserDocument{
		ID:                 "user-1",
		WalletAddress:      "0xabcdef0123456789abcdef0123456789abcdef01",
		CreatedAt:          testTime,
		LastLoginAt:        testTime,
		TotalTokensCreated: 4,
	}
	after := before
	after.TotalTokensCreated = 5

	event, err := domain.NewDocumentEvent(domain.CollectionUsers, domain.ChangeKindUpdated, "user-1", before, after, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	mocks.runner.EXPECT().
		OnUserUpdated(gomock.Any(), before, after).
		Return(triggers.Report{Trigger: triggers.TriggerUserUpdated, DocumentID: "user-1"})

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Ack().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_FailedStepsStillAck(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	event, err := domain.NewDocumentEvent(domain.CollectionTokens, domain.ChangeKindCreated, "tok-2", nil,
		domain.TokenDocument{ID: "tok-2", DeployerAddress: "0xabcdef0123456789abcdef0123456789abcdef01"}, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	mocks.runner.EXPECT().
		OnTokenCreated(gomock.Any(), gomock.Any()).
		Return(triggers.Report{
			Trigger:    triggers.TriggerTokenCreated,
			DocumentID: "tok-2",
			Steps:      []triggers.StepResult{{Name: triggers.StepStats, Err: errors.New("database unavailable")}},
		})

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Ack().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_UnroutedEventIsAcked(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	// users.created has no trigger
	event, err := domain.NewDocumentEvent(domain.CollectionUsers, domain.ChangeKindCreated, "user-1", nil,
		domain.UserDocument{ID: "user-1"}, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Ack().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_InvalidJSON(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	handler, cancel, errCh := startConsuming(t, mocks)

	done := make(chan struct{})
	msg := newRawMessage(mocks.ctrl, "documents.tokens.created", []byte("{not json"))
	msg.EXPECT().Term().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_IncompleteEvent(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	// an update without its before snapshot cannot be evaluated
	event, err := domain.NewDocumentEvent(domain.CollectionUsers, domain.ChangeKindUpdated, "user-1", nil,
		domain.UserDocument{ID: "user-1"}, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Term().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_UndecodableSnapshot(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	event := &domain.DocumentEvent{
		EventID:    "01JHBK0000000000000000TEST",
		Collection: domain.CollectionTokens,
		Kind:       domain.ChangeKindCreated,
		DocumentID: "tok-3",
		After:      json.RawMessage(`{"decimals":"eighteen"}`),
		Timestamp:  testTime,
	}

	handler, cancel, errCh := startConsuming(t, mocks)

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Term().DoAndReturn(signalOn(done, nil))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_ProcessMessage_AckError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	event, err := domain.NewDocumentEvent(domain.CollectionUsers, domain.ChangeKindCreated, "user-1", nil,
		domain.UserDocument{ID: "user-1"}, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Ack().DoAndReturn(signalOn(done, errors.New("ack error")))

	handler(msg)
	waitFor(t, done)
	stopConsuming(t, cancel, errCh)
}

func TestBridge_Shutdown_InFlightTriggerCompletes(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	event, err := domain.NewDocumentEvent(domain.CollectionTokens, domain.ChangeKindCreated, "tok-4", nil,
		domain.TokenDocument{ID: "tok-4", DeployerAddress: "0xabcdef0123456789abcdef0123456789abcdef01"}, testTime)
	require.NoError(t, err)

	handler, cancel, errCh := startConsuming(t, mocks)

	started := make(chan struct{})
	release := make(chan struct{})
	mocks.runner.EXPECT().
		OnTokenCreated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, token domain.TokenDocument) triggers.Report {
			close(started)
			<-release
			// shutdown must not reach the trigger's store calls
			assert.NoError(t, ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return triggers.Report{Trigger: triggers.TriggerTokenCreated, DocumentID: token.ID}
		})

	done := make(chan struct{})
	msg := newEventMessage(t, mocks.ctrl, event)
	msg.EXPECT().Ack().DoAndReturn(signalOn(done, nil))
	msg.EXPECT().Nak().Times(0)

	handler(msg)
	waitFor(t, started)

	cancel()

	// Run waits for the running trigger
	select {
	case <-errCh:
		t.Fatal("bridge stopped before the in-flight trigger finished")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	waitFor(t, done)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop")
	}
}

func TestBridge_ProcessMessage_InterruptedTriggerIsRedelivered(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"deadline exceeded", fmt.Errorf("failed to increment global stats: %w", context.DeadlineExceeded)},
		{"canceled", fmt.Errorf("failed to update leaderboard: %w", context.Canceled)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestBridge(t)
			defer tearDownTestBridge(mocks)

			event, err := domain.NewDocumentEvent(domain.CollectionTokens, domain.ChangeKindCreated, "tok-5", nil,
				domain.TokenDocument{ID: "tok-5", DeployerAddress: "0xabcdef0123456789abcdef0123456789abcdef01"}, testTime)
			require.NoError(t, err)

			handler, cancel, errCh := startConsuming(t, mocks)

			mocks.runner.EXPECT().
				OnTokenCreated(gomock.Any(), gomock.Any()).
				Return(triggers.Report{
					Trigger:    triggers.TriggerTokenCreated,
					DocumentID: "tok-5",
					Steps: []triggers.StepResult{
						{Name: triggers.StepStats, Err: tt.err},
					},
				})

			done := make(chan struct{})
			msg := newEventMessage(t, mocks.ctrl, event)
			msg.EXPECT().Nak().DoAndReturn(signalOn(done, nil))
			msg.EXPECT().Ack().Times(0)

			handler(msg)
			waitFor(t, done)
			stopConsuming(t, cancel, errCh)
		})
	}
}
