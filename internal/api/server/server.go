package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/middleware"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/rest"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/dto"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/executor"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/messaging"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug              bool
	Host               string
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	CORSAllowedOrigins []string
	Auth               middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	publisher  messaging.Publisher
	clock      adapter.Clock
	metrics    *metrics.Metrics
	supported  dto.ChainSupport
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, st store.Store, publisher messaging.Publisher, clock adapter.Clock, m *metrics.Metrics, supported dto.ChainSupport) *Server {
	return &Server{
		config:    cfg,
		store:     st,
		publisher: publisher,
		clock:     clock,
		metrics:   m,
		supported: supported,
	}
}

// Router builds the gin engine with middleware and routes attached
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.CORSAllowedOrigins))

	exec := executor.NewExecutor(s.store, s.publisher, s.clock, s.metrics)
	handler := rest.NewHandler(exec, s.supported)
	rest.SetupRoutes(router, handler, s.config.Auth, s.metrics.Handler())

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
