package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool of the underlying *sql.DB.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps idle connections to the open limit.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Tokens
// =============================================================================

// CreateToken records a deployed token and bumps the deployer's total_tokens_created
func (s *pgStore) CreateToken(ctx context.Context, input CreateTokenInput) (*CreateTokenResult, error) {
	result := &CreateTokenResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Insert the token
		token := schema.Token{
			ID:              input.ID,
			ContractAddress: input.ContractAddress,
			Name:            input.Name,
			Symbol:          input.Symbol,
			Decimals:        input.Decimals,
			TotalSupply:     input.TotalSupply,
			DeployerAddress: input.DeployerAddress,
			ChainID:         input.ChainID,
			DeployedAt:      input.DeployedAt,
			TxHash:          input.TxHash,
		}
		if token.ID == "" {
			token.ID = uuid.NewString()
		}
		if err := tx.Create(&token).Error; err != nil {
			return fmt.Errorf("failed to create token: %w", err)
		}
		result.Token = token

		// 2. Bump the deployer's profile counter, if a profile exists
		before, after, err := incrementUserCounter(tx, input.DeployerAddress, "total_tokens_created")
		if err != nil {
			return err
		}
		result.UserBefore = before
		result.UserAfter = after

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetTokensByDeployer lists tokens deployed by an address, newest first
func (s *pgStore) GetTokensByDeployer(ctx context.Context, deployer string, limit int, offset uint64) ([]schema.Token, uint64, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Token{}).
		Where("deployer_address = ?", deployer).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	var tokens []schema.Token
	err := query.
		Order("deployed_at DESC, id").
		Limit(limit).
		Offset(int(offset)). //nolint:gosec,G115
		Find(&tokens).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get tokens by deployer: %w", err)
	}

	return tokens, uint64(total), nil //nolint:gosec,G115
}

// GetTopDeployers ranks deployers by the number of tokens in the tokens table
func (s *pgStore) GetTopDeployers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return topDeployers(s.db.WithContext(ctx), limit)
}

func topDeployers(db *gorm.DB, limit int) ([]domain.LeaderboardEntry, error) {
	var rows []struct {
		Address     string
		TokenCount  int64
		LastTokenAt time.Time
	}

	err := db.
		Model(&schema.Token{}).
		Select("deployer_address AS address, COUNT(*) AS token_count, MAX(deployed_at) AS last_token_at").
		Group("deployer_address").
		Order("token_count DESC, last_token_at ASC, address ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate deployers: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, domain.LeaderboardEntry{
			Address:     r.Address,
			TokenCount:  r.TokenCount,
			LastTokenAt: r.LastTokenAt.UTC(),
		})
	}

	return entries, nil
}

// =============================================================================
// Liquidity
// =============================================================================

// CreateLiquidityEvent records a liquidity addition and bumps the user's total_liquidity_added
func (s *pgStore) CreateLiquidityEvent(ctx context.Context, input CreateLiquidityEventInput) (*CreateLiquidityEventResult, error) {
	result := &CreateLiquidityEventResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := schema.LiquidityEvent{
			ID:           input.ID,
			TokenAddress: input.TokenAddress,
			PoolAddress:  input.PoolAddress,
			Amount:       input.Amount,
			EthAmount:    input.EthAmount,
			UserAddress:  input.UserAddress,
			ChainID:      input.ChainID,
			TxHash:       input.TxHash,
			FeeTier:      input.FeeTier,
			TickLower:    input.TickLower,
			TickUpper:    input.TickUpper,
			CreatedAt:    input.CreatedAt,
		}
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create liquidity event: %w", err)
		}
		result.Event = event

		before, after, err := incrementUserCounter(tx, input.UserAddress, "total_liquidity_added")
		if err != nil {
			return err
		}
		result.UserBefore = before
		result.UserAfter = after

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// incrementUserCounter locks the profile of a wallet and adds one to column.
// Returns nil snapshots when no profile exists.
func incrementUserCounter(tx *gorm.DB, walletAddress string, column string) (*schema.User, *schema.User, error) {
	var before schema.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("wallet_address = ?", walletAddress).
		First(&before).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to lock user: %w", err)
	}

	if err := tx.Model(&schema.User{}).
		Where("id = ?", before.ID).
		Update(column, gorm.Expr(column+" + ?", 1)).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to increment user %s: %w", column, err)
	}

	var after schema.User
	if err := tx.Where("id = ?", before.ID).First(&after).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to reload user: %w", err)
	}

	return &before, &after, nil
}

// =============================================================================
// Users
// =============================================================================

// UpsertUser creates the profile for a wallet or refreshes an existing one
func (s *pgStore) UpsertUser(ctx context.Context, input UpsertUserInput) (*schema.User, error) {
	var user schema.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("wallet_address = ?", input.WalletAddress).
			First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = schema.User{
				ID:            input.ID,
				WalletAddress: input.WalletAddress,
				DisplayName:   input.DisplayName,
				Email:         input.Email,
				CreatedAt:     input.LoginAt,
				LastLoginAt:   input.LoginAt,
			}
			if user.ID == "" {
				user.ID = uuid.NewString()
			}
			if input.NotificationPreferences != nil {
				user.NotificationPreferences = datatypes.NewJSONType(*input.NotificationPreferences)
			}
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "wallet_address"}},
				DoNothing: true,
			}).Create(&user)
			if result.Error != nil {
				return fmt.Errorf("failed to create user: %w", result.Error)
			}
			if result.RowsAffected == 1 {
				return nil
			}

			// A concurrent connect created the profile first; refresh it instead
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("wallet_address = ?", input.WalletAddress).
				First(&user).Error; err != nil {
				return fmt.Errorf("failed to lock user: %w", err)
			}
		}

		updates := map[string]any{"last_login_at": input.LoginAt}
		if input.DisplayName != nil {
			updates["display_name"] = *input.DisplayName
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}
		if input.NotificationPreferences != nil {
			updates["notification_preferences"] = datatypes.NewJSONType(*input.NotificationPreferences)
		}

		if err := tx.Model(&schema.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		return tx.Where("id = ?", user.ID).First(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByWalletAddress retrieves a profile by wallet address
func (s *pgStore) GetUserByWalletAddress(ctx context.Context, walletAddress string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// SetUserPushToken stores the single push token of a wallet, replacing any previous one
func (s *pgStore) SetUserPushToken(ctx context.Context, walletAddress string, pushToken string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("wallet_address = ?", walletAddress).
		Updates(map[string]any{
			"push_token":            pushToken,
			"push_token_updated_at": at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to set push token: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// =============================================================================
// Stats
// =============================================================================

// IncrementGlobalStats upserts the global row, adding delta to the existing counters
func (s *pgStore) IncrementGlobalStats(ctx context.Context, delta StatsDelta) error {
	row := schema.GlobalStats{
		ID:                   domain.GlobalStatsID,
		TotalTokensCreated:   delta.TokensCreated,
		TotalLiquidityEvents: delta.LiquidityEvents,
		TotalLiquidityValue:  delta.LiquidityValue,
		UpdatedAt:            delta.At,
	}

	updates := map[string]any{
		"total_tokens_created":   gorm.Expr("global_stats.total_tokens_created + ?", delta.TokensCreated),
		"total_liquidity_events": gorm.Expr("global_stats.total_liquidity_events + ?", delta.LiquidityEvents),
		"total_liquidity_value":  gorm.Expr("global_stats.total_liquidity_value + ?", delta.LiquidityValue),
		"updated_at":             delta.At,
	}
	if delta.TokensCreated > 0 {
		at := delta.At
		row.LastTokenCreatedAt = &at
		updates["last_token_created_at"] = delta.At
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to increment global stats: %w", err)
	}

	return nil
}

// IncrementUserStats upserts the stats row of an address, adding delta to the existing counters
func (s *pgStore) IncrementUserStats(ctx context.Context, address string, delta StatsDelta) error {
	row := schema.UserStats{
		Address:         address,
		TokensCreated:   delta.TokensCreated,
		LiquidityEvents: delta.LiquidityEvents,
		LastActivityAt:  delta.At,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"tokens_created":   gorm.Expr("user_stats.tokens_created + ?", delta.TokensCreated),
			"liquidity_events": gorm.Expr("user_stats.liquidity_events + ?", delta.LiquidityEvents),
			"last_activity_at": delta.At,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to increment user stats: %w", err)
	}

	return nil
}

// GetGlobalStats retrieves the global stats row
func (s *pgStore) GetGlobalStats(ctx context.Context) (*schema.GlobalStats, error) {
	var stats schema.GlobalStats
	err := s.db.WithContext(ctx).Where("id = ?", domain.GlobalStatsID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get global stats: %w", err)
	}

	return &stats, nil
}

// GetUserStats retrieves the stats row of an address
func (s *pgStore) GetUserStats(ctx context.Context, address string) (*schema.UserStats, error) {
	var stats schema.UserStats
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	return &stats, nil
}

// =============================================================================
// Leaderboard
// =============================================================================

// UpdateLeaderboard applies mutate to the leaderboard under a row lock.
// Transactions aborted by a concurrent writer are retried with backoff.
func (s *pgStore) UpdateLeaderboard(ctx context.Context, at time.Time, mutate LeaderboardMutation) ([]domain.LeaderboardEntry, error) {
	return s.withLockedLeaderboard(ctx, at, func(_ *gorm.DB, current []domain.LeaderboardEntry) ([]domain.LeaderboardEntry, error) {
		return mutate(current), nil
	})
}

// RebuildLeaderboard aggregates the tokens table while holding the leaderboard row lock,
// so no concurrent update lands between the aggregate and the write
func (s *pgStore) RebuildLeaderboard(ctx context.Context, at time.Time, limit int, rank LeaderboardMutation) ([]domain.LeaderboardEntry, error) {
	return s.withLockedLeaderboard(ctx, at, func(tx *gorm.DB, _ []domain.LeaderboardEntry) ([]domain.LeaderboardEntry, error) {
		top, err := topDeployers(tx, limit)
		if err != nil {
			return nil, err
		}
		return rank(top), nil
	})
}

func (s *pgStore) withLockedLeaderboard(
	ctx context.Context,
	at time.Time,
	fn func(tx *gorm.DB, current []domain.LeaderboardEntry) ([]domain.LeaderboardEntry, error),
) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry

	err := retryTx(ctx, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// 1. Make sure the row exists so there is something to lock
			seed := schema.Leaderboard{
				ID:        domain.LeaderboardID,
				Entries:   datatypes.JSONSlice[domain.LeaderboardEntry]{},
				UpdatedAt: at,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return fmt.Errorf("failed to seed leaderboard: %w", err)
			}

			// 2. Lock and read the current entries
			var board schema.Leaderboard
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", domain.LeaderboardID).
				First(&board).Error
			if err != nil {
				return fmt.Errorf("failed to lock leaderboard: %w", err)
			}

			// 3. Compute the new entries and write back
			entries, err = fn(tx, slices.Clone([]domain.LeaderboardEntry(board.Entries)))
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []domain.LeaderboardEntry{}
			}

			if err := tx.Model(&schema.Leaderboard{}).
				Where("id = ?", domain.LeaderboardID).
				Updates(map[string]any{
					"entries":    datatypes.JSONSlice[domain.LeaderboardEntry](entries),
					"updated_at": at,
				}).Error; err != nil {
				return fmt.Errorf("failed to write leaderboard: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// GetLeaderboard retrieves the leaderboard row
func (s *pgStore) GetLeaderboard(ctx context.Context) (*schema.Leaderboard, error) {
	var board schema.Leaderboard
	err := s.db.WithContext(ctx).Where("id = ?", domain.LeaderboardID).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return &board, nil
}

// =============================================================================
// Achievements
// =============================================================================

// CreateAchievement appends an achievement record
func (s *pgStore) CreateAchievement(ctx context.Context, input CreateAchievementInput) (*schema.Achievement, error) {
	achievement := schema.Achievement{
		ID:          input.ID,
		UserID:      input.UserID,
		Milestone:   input.Milestone,
		Title:       input.Title,
		Description: input.Description,
		Kind:        input.Kind,
		UnlockedAt:  input.UnlockedAt,
	}
	if achievement.ID == "" {
		achievement.ID = uuid.NewString()
	}

	if err := s.db.WithContext(ctx).Create(&achievement).Error; err != nil {
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}

	return &achievement, nil
}

// GetAchievementsByUserID lists a user's achievements in unlock order
func (s *pgStore) GetAchievementsByUserID(ctx context.Context, userID string) ([]schema.Achievement, error) {
	var achievements []schema.Achievement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC, milestone ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}

	return achievements, nil
}
