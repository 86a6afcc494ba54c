package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/middleware"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/dto"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/executor"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// CreateToken records a deployed token (requires authentication)
	// POST /api/v1/tokens
	CreateToken(c *gin.Context)

	// ListTokens retrieves the tokens deployed by an address
	// GET /api/v1/tokens?deployer=<address>&limit=<limit>&offset=<offset>
	ListTokens(c *gin.Context)

	// CreateLiquidity records a liquidity addition (requires authentication)
	// POST /api/v1/liquidity
	CreateLiquidity(c *gin.Context)

	// UpsertUser creates or refreshes a profile on wallet connect (requires authentication)
	// POST /api/v1/users
	UpsertUser(c *gin.Context)

	// RegisterPushToken stores the device push token of a wallet (requires authentication)
	// POST /api/v1/push-tokens
	RegisterPushToken(c *gin.Context)

	// GetLeaderboard retrieves the top creators
	// GET /api/v1/leaderboard?limit=<limit>
	GetLeaderboard(c *gin.Context)

	// GetGlobalStats retrieves the global counters
	// GET /api/v1/stats
	GetGlobalStats(c *gin.Context)

	// GetUserStats retrieves the counters of an address
	// GET /api/v1/users/:address/stats
	GetUserStats(c *gin.Context)

	// GetAchievements lists the achievements of a wallet's profile
	// GET /api/v1/users/:address/achievements
	GetAchievements(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor  executor.Executor
	supported dto.ChainSupport
}

// NewHandler creates a new REST API handler using the shared executor.
// supported decides which chain ids recording endpoints accept.
func NewHandler(exec executor.Executor, supported dto.ChainSupport) Handler {
	return &handler{
		executor:  exec,
		supported: supported,
	}
}

// CreateToken records a deployed token
func (h *handler) CreateToken(c *gin.Context) {
	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(h.supported); err != nil {
		respondError(c, err, "Invalid token request")
		return
	}

	if !middleware.WalletAllowed(c, req.DeployerAddress) {
		respondForbidden(c, "Token deployer does not match the authenticated wallet")
		return
	}

	response, err := h.executor.CreateToken(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create token")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListTokens retrieves the tokens deployed by an address
func (h *handler) ListTokens(c *gin.Context) {
	queryParams, err := ParseListTokensQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetTokens(
		c.Request.Context(),
		queryParams.Deployer,
		&queryParams.Limit,
		&queryParams.Offset,
	)
	if err != nil {
		respondError(c, err, "Failed to list tokens")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateLiquidity records a liquidity addition
func (h *handler) CreateLiquidity(c *gin.Context) {
	var req dto.CreateLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(h.supported); err != nil {
		respondError(c, err, "Invalid liquidity request")
		return
	}

	if !middleware.WalletAllowed(c, req.UserAddress) {
		respondForbidden(c, "Liquidity provider does not match the authenticated wallet")
		return
	}

	response, err := h.executor.CreateLiquidity(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create liquidity event")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// UpsertUser creates or refreshes a profile
func (h *handler) UpsertUser(c *gin.Context) {
	var req dto.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid user request")
		return
	}

	if !middleware.WalletAllowed(c, req.WalletAddress) {
		respondForbidden(c, "Wallet does not match the authenticated wallet")
		return
	}

	response, err := h.executor.UpsertUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to upsert user")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RegisterPushToken stores the device push token of a wallet.
// Field validation is left to the callable so its error codes reach the client.
func (h *handler) RegisterPushToken(c *gin.Context) {
	var req triggers.RegisterPushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if req.WalletAddress != "" && !middleware.WalletAllowed(c, req.WalletAddress) {
		respondForbidden(c, "Wallet does not match the authenticated wallet")
		return
	}

	response, err := h.executor.RegisterPushToken(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register push token")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetLeaderboard retrieves the top creators
func (h *handler) GetLeaderboard(c *gin.Context) {
	queryParams, err := ParseLeaderboardQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetLeaderboard(c.Request.Context(), &queryParams.Limit)
	if err != nil {
		respondError(c, err, "Failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetGlobalStats retrieves the global counters
func (h *handler) GetGlobalStats(c *gin.Context) {
	response, err := h.executor.GetGlobalStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get stats")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUserStats retrieves the counters of an address
func (h *handler) GetUserStats(c *gin.Context) {
	address, err := domain.NormalizeAddress(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", c.Param("address"))
		return
	}

	response, err := h.executor.GetUserStats(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get user stats")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAchievements lists the achievements of a wallet's profile
func (h *handler) GetAchievements(c *gin.Context) {
	address, err := domain.NormalizeAddress(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", c.Param("address"))
		return
	}

	response, err := h.executor.GetAchievements(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get achievements")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "token-launcher-api",
	})
}
