package store

import (
	"context"
	"time"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateToken records a deployed token and increments the deployer's profile counter in one transaction
	CreateToken(ctx context.Context, input CreateTokenInput) (*CreateTokenResult, error)
	// GetTokensByDeployer lists tokens deployed by an address, newest first, with the total count
	GetTokensByDeployer(ctx context.Context, deployer string, limit int, offset uint64) ([]schema.Token, uint64, error)
	// GetTopDeployers aggregates the tokens table into ranked creator entries
	GetTopDeployers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// CreateLiquidityEvent records a liquidity addition and increments the user's profile counter in one transaction
	CreateLiquidityEvent(ctx context.Context, input CreateLiquidityEventInput) (*CreateLiquidityEventResult, error)

	// UpsertUser creates the profile for a wallet or refreshes its login time and provided fields
	UpsertUser(ctx context.Context, input UpsertUserInput) (*schema.User, error)
	// GetUserByWalletAddress retrieves a profile by lower-cased wallet address; nil when absent
	GetUserByWalletAddress(ctx context.Context, walletAddress string) (*schema.User, error)
	// SetUserPushToken stores the push token on the profile; false when no profile matches
	SetUserPushToken(ctx context.Context, walletAddress string, pushToken string, at time.Time) (bool, error)

	// IncrementGlobalStats applies an additive update to the global stats row
	IncrementGlobalStats(ctx context.Context, delta StatsDelta) error
	// IncrementUserStats applies an additive update to the stats row of an address
	IncrementUserStats(ctx context.Context, address string, delta StatsDelta) error
	// GetGlobalStats retrieves the global stats row; nil when nothing was recorded yet
	GetGlobalStats(ctx context.Context) (*schema.GlobalStats, error)
	// GetUserStats retrieves the stats row of an address; nil when absent
	GetUserStats(ctx context.Context, address string) (*schema.UserStats, error)

	// UpdateLeaderboard runs mutate on the locked leaderboard entries and writes the result back
	UpdateLeaderboard(ctx context.Context, at time.Time, mutate LeaderboardMutation) ([]domain.LeaderboardEntry, error)
	// RebuildLeaderboard replaces the entries with the top deployers aggregated under the leaderboard lock; rank orders them before the write
	RebuildLeaderboard(ctx context.Context, at time.Time, limit int, rank LeaderboardMutation) ([]domain.LeaderboardEntry, error)
	// GetLeaderboard retrieves the leaderboard row; nil when never written
	GetLeaderboard(ctx context.Context) (*schema.Leaderboard, error)

	// CreateAchievement appends an achievement record
	CreateAchievement(ctx context.Context, input CreateAchievementInput) (*schema.Achievement, error)
	// GetAchievementsByUserID lists a user's achievements in unlock order
	GetAchievementsByUserID(ctx context.Context, userID string) ([]schema.Achievement, error)
}

// LeaderboardMutation transforms the current entries into the entries to persist
type LeaderboardMutation func(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry

// StatsDelta is an additive stats update. Zero fields leave their columns unchanged
type StatsDelta struct {
	TokensCreated   int64
	LiquidityEvents int64
	LiquidityValue  float64
	At              time.Time
}

// CreateTokenInput represents the input for recording a deployed token
type CreateTokenInput struct {
	ID              string
	ContractAddress string
	Name            string
	Symbol          string
	Decimals        uint8
	TotalSupply     string
	DeployerAddress string
	ChainID         domain.ChainID
	DeployedAt      time.Time
	TxHash          string
}

// CreateTokenResult carries the stored token and the deployer profile around the counter change.
// UserBefore and UserAfter are nil when the deployer has no profile.
type CreateTokenResult struct {
	Token      schema.Token
	UserBefore *schema.User
	UserAfter  *schema.User
}

// CreateLiquidityEventInput represents the input for recording a liquidity addition
type CreateLiquidityEventInput struct {
	ID           string
	TokenAddress string
	PoolAddress  *string
	Amount       string
	EthAmount    string
	UserAddress  string
	ChainID      domain.ChainID
	TxHash       string
	FeeTier      int
	TickLower    *int
	TickUpper    *int
	CreatedAt    time.Time
}

// CreateLiquidityEventResult carries the stored event and the user profile around the counter change
type CreateLiquidityEventResult struct {
	Event      schema.LiquidityEvent
	UserBefore *schema.User
	UserAfter  *schema.User
}

// UpsertUserInput represents a wallet connect. Nil optional fields keep stored values
type UpsertUserInput struct {
	ID                      string
	WalletAddress           string
	DisplayName             *string
	Email                   *string
	NotificationPreferences *domain.NotificationPreferences
	LoginAt                 time.Time
}

// CreateAchievementInput represents an unlocked milestone
type CreateAchievementInput struct {
	ID          string
	UserID      string
	Milestone   int64
	Title       string
	Description string
	Kind        string
	UnlockedAt  time.Time
}
