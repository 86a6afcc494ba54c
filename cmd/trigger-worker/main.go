package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/bridge"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/config"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/push"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadTriggerWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "trigger-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Trigger Worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize push messaging
	messagingClient, err := push.NewMessagingClient(ctx, push.Config{
		ProjectID:       cfg.Firebase.ProjectID,
		CredentialsFile: cfg.Firebase.CredentialsFile,
		AppURL:          cfg.Firebase.AppURL,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize push messaging", zap.Error(err))
	}
	sender := push.NewFCMSender(messagingClient, cfg.Firebase.AppURL)
	logger.InfoCtx(ctx, "Push messaging initialized", zap.String("project", cfg.Firebase.ProjectID))

	// Metrics
	m := metrics.New(metrics.NewRegistry())
	metricsServer := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorCtx(ctx, err, zap.String("component", "metrics"))
		}
	}()

	// Create trigger service and bridge
	service := triggers.NewService(dataStore, sender, adapter.NewClock(), m)
	eventBridge, err := bridge.NewBridge(
		bridge.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			ConsumerName:    cfg.NATS.ConsumerName,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			AckWaitTimeout:  cfg.NATS.AckWait,
			MaxDeliver:      cfg.NATS.MaxDeliver,
			WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
			WorkerQueueSize: cfg.Worker.WorkerQueueSize,
		},
		adapter.NewNatsJetStream(),
		service,
		adapter.NewJSON(),
		m,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event bridge", zap.Error(err))
	}
	defer eventBridge.Close()
	logger.InfoCtx(ctx, "Event bridge created",
		zap.String("stream", cfg.NATS.StreamName),
		zap.String("consumer", cfg.NATS.ConsumerName))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		if err := eventBridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "bridge"))
	}
	cancel()

	// Run stops consuming, then waits for queued and running triggers. Triggers are
	// bounded by the ack wait, so the grace period covers one full run.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.NATS.AckWait+5*time.Second)
	defer shutdownCancel()
	select {
	case <-doneCh:
	case <-shutdownCtx.Done():
		logger.Warn("Timed out waiting for in-flight triggers")
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "metrics"))
	}

	logger.Info("Trigger Worker stopped")
}
