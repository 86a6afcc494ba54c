package executor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/constants"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/dto"
	apierrors "github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/errors"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/messaging"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// CreateToken records a deployed token and publishes its change events
	CreateToken(ctx context.Context, req dto.CreateTokenRequest) (*dto.TokenResponse, error)

	// CreateLiquidity records a liquidity addition and publishes its change events
	CreateLiquidity(ctx context.Context, req dto.CreateLiquidityRequest) (*dto.LiquidityResponse, error)

	// UpsertUser creates or refreshes the profile of a connected wallet
	UpsertUser(ctx context.Context, req dto.UpsertUserRequest) (*dto.UserResponse, error)

	// RegisterPushToken stores the device push token of a wallet
	RegisterPushToken(ctx context.Context, req triggers.RegisterPushTokenRequest) (*triggers.RegisterPushTokenResponse, error)

	// GetTokens lists the tokens deployed by an address
	GetTokens(ctx context.Context, deployer string, limit *int, offset *uint64) (*dto.TokenListResponse, error)

	// GetLeaderboard retrieves the top creators
	GetLeaderboard(ctx context.Context, limit *int) (*dto.LeaderboardResponse, error)

	// GetGlobalStats retrieves the global counters
	GetGlobalStats(ctx context.Context) (*dto.GlobalStatsResponse, error)

	// GetUserStats retrieves the counters of an address
	GetUserStats(ctx context.Context, address string) (*dto.UserStatsResponse, error)

	// GetAchievements lists the achievements of the profile linked to a wallet
	GetAchievements(ctx context.Context, walletAddress string) (*dto.AchievementListResponse, error)
}

type executor struct {
	store     store.Store
	publisher messaging.Publisher
	registrar *triggers.PushTokenRegistrar
	clock     adapter.Clock
	metrics   *metrics.Metrics
}

func NewExecutor(st store.Store, publisher messaging.Publisher, clock adapter.Clock, m *metrics.Metrics) Executor {
	return &executor{
		store:     st,
		publisher: publisher,
		registrar: triggers.NewPushTokenRegistrar(st, clock),
		clock:     clock,
		metrics:   m,
	}
}

func (e *executor) CreateToken(ctx context.Context, req dto.CreateTokenRequest) (*dto.TokenResponse, error) {
	deployedAt := e.clock.Now()
	if req.DeployedAt != nil {
		deployedAt = req.DeployedAt.UTC()
	}

	var decimals uint8
	if req.Decimals != nil {
		decimals = *req.Decimals
	}

	result, err := e.store.CreateToken(ctx, store.CreateTokenInput{
		ContractAddress: req.ContractAddress,
		Name:            req.Name,
		Symbol:          req.Symbol,
		Decimals:        decimals,
		TotalSupply:     req.TotalSupply,
		DeployerAddress: req.DeployerAddress,
		ChainID:         req.ChainID,
		DeployedAt:      deployedAt,
		TxHash:          req.TxHash,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create token: %v", err))
	}
	e.metrics.DocumentsRecorded.WithLabelValues(string(domain.CollectionTokens)).Inc()

	e.publish(ctx, domain.CollectionTokens, domain.ChangeKindCreated, result.Token.ID, nil, result.Token.ToDocument())
	e.publishUserUpdate(ctx, result.UserBefore, result.UserAfter)

	return dto.MapTokenToDTO(result.Token), nil
}

func (e *executor) CreateLiquidity(ctx context.Context, req dto.CreateLiquidityRequest) (*dto.LiquidityResponse, error) {
	result, err := e.store.CreateLiquidityEvent(ctx, store.CreateLiquidityEventInput{
		TokenAddress: req.TokenAddress,
		PoolAddress:  req.PoolAddress,
		Amount:       req.Amount,
		EthAmount:    req.EthAmount,
		UserAddress:  req.UserAddress,
		ChainID:      req.ChainID,
		TxHash:       req.TxHash,
		FeeTier:      req.FeeTier,
		TickLower:    req.TickLower,
		TickUpper:    req.TickUpper,
		CreatedAt:    e.clock.Now(),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create liquidity event: %v", err))
	}
	e.metrics.DocumentsRecorded.WithLabelValues(string(domain.CollectionLiquidity)).Inc()

	e.publish(ctx, domain.CollectionLiquidity, domain.ChangeKindCreated, result.Event.ID, nil, result.Event.ToDocument())
	e.publishUserUpdate(ctx, result.UserBefore, result.UserAfter)

	return dto.MapLiquidityEventToDTO(result.Event), nil
}

func (e *executor) UpsertUser(ctx context.Context, req dto.UpsertUserRequest) (*dto.UserResponse, error) {
	user, err := e.store.UpsertUser(ctx, store.UpsertUserInput{
		WalletAddress:           req.WalletAddress,
		DisplayName:             req.DisplayName,
		Email:                   req.Email,
		NotificationPreferences: req.NotificationPreferences,
		LoginAt:                 e.clock.Now(),
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to upsert user: %v", err))
	}
	e.metrics.DocumentsRecorded.WithLabelValues(string(domain.CollectionUsers)).Inc()

	return dto.MapUserToDTO(*user), nil
}

func (e *executor) RegisterPushToken(ctx context.Context, req triggers.RegisterPushTokenRequest) (*triggers.RegisterPushTokenResponse, error) {
	resp, err := e.registrar.RegisterPushToken(ctx, req)
	if err != nil {
		var ce *triggers.CallableError
		if !errors.As(err, &ce) {
			return nil, apierrors.NewInternalError("Failed to register push token")
		}

		switch ce.Code {
		case triggers.CodeInvalidArgument:
			return nil, apierrors.NewInvalidArgumentError(ce.Message)
		case triggers.CodeNotFound:
			return nil, apierrors.NewNotFoundError("User not found", "register the wallet before its push token")
		default:
			return nil, apierrors.NewInternalError(ce.Message)
		}
	}

	return resp, nil
}

func (e *executor) GetTokens(ctx context.Context, deployer string, limit *int, offset *uint64) (*dto.TokenListResponse, error) {
	// Use defaults if not provided
	if limit == nil {
		defaultLimit := constants.DEFAULT_TOKENS_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}

	tokens, total, err := e.store.GetTokensByDeployer(ctx, deployer, *limit, *offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get tokens: %v", err))
	}

	tokenDTOs := make([]dto.TokenResponse, len(tokens))
	for i, token := range tokens {
		tokenDTOs[i] = *dto.MapTokenToDTO(token)
	}

	// Build response with pagination
	var nextOffset *uint64
	if *offset+uint64(len(tokens)) < total {
		next := *offset + uint64(len(tokens))
		nextOffset = &next
	}

	return &dto.TokenListResponse{
		Tokens: tokenDTOs,
		Offset: nextOffset,
		Total:  total,
	}, nil
}

func (e *executor) GetLeaderboard(ctx context.Context, limit *int) (*dto.LeaderboardResponse, error) {
	if limit == nil {
		defaultLimit := constants.DEFAULT_LEADERBOARD_LIMIT
		limit = &defaultLimit
	}

	leaderboard, err := e.store.GetLeaderboard(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get leaderboard: %v", err))
	}

	return dto.MapLeaderboardToDTO(leaderboard, *limit), nil
}

func (e *executor) GetGlobalStats(ctx context.Context) (*dto.GlobalStatsResponse, error) {
	stats, err := e.store.GetGlobalStats(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get global stats: %v", err))
	}

	return dto.MapGlobalStatsToDTO(stats), nil
}

func (e *executor) GetUserStats(ctx context.Context, address string) (*dto.UserStatsResponse, error) {
	stats, err := e.store.GetUserStats(ctx, address)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user stats: %v", err))
	}

	return dto.MapUserStatsToDTO(address, stats), nil
}

func (e *executor) GetAchievements(ctx context.Context, walletAddress string) (*dto.AchievementListResponse, error) {
	user, err := e.store.GetUserByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user: %v", err))
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User not found")
	}

	achievements, err := e.store.GetAchievementsByUserID(ctx, user.ID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get achievements: %v", err))
	}

	return dto.MapAchievementsToDTO(achievements), nil
}

// publishUserUpdate emits users.updated when the write changed a profile counter
func (e *executor) publishUserUpdate(ctx context.Context, before, after *schema.User) {
	if before == nil || after == nil {
		return
	}

	e.publish(ctx, domain.CollectionUsers, domain.ChangeKindUpdated, after.ID, before.ToDocument(), after.ToDocument())
}

// publish emits a change event for a recorded document. The write is already committed,
// so a publish failure is logged and counted rather than returned to the client.
func (e *executor) publish(ctx context.Context, collection domain.Collection, kind domain.ChangeKind, documentID string, before, after any) {
	event, err := domain.NewDocumentEvent(collection, kind, documentID, before, after, e.clock.Now())
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("documentID", documentID))
		return
	}

	subject := event.Subject()
	if err := e.publisher.PublishDocumentEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to publish change event"),
			zap.String("subject", subject),
			zap.String("eventID", event.EventID),
			zap.String("documentID", documentID))
		e.metrics.EventsPublished.WithLabelValues(subject, metrics.ResultError).Inc()
		return
	}

	e.metrics.EventsPublished.WithLabelValues(subject, metrics.ResultOK).Inc()
}
