// Package storetest holds the behavioural test suite every store.Store implementation must pass.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
)

// InitFunc returns a clean store for one test
type InitFunc func(t *testing.T) store.Store

const (
	alice = "0x1111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222"
	carol = "0x3333333333333333333333333333333333333333"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func now() time.Time {
	// Postgres keeps microseconds
	return time.Now().UTC().Truncate(time.Microsecond)
}

func buildTestToken(deployer string, deployedAt time.Time) store.CreateTokenInput {
	return store.CreateTokenInput{
		ID:              uuid.NewString(),
		ContractAddress: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		Name:            "Test Token",
		Symbol:          "TEST",
		Decimals:        18,
		TotalSupply:     "1000000000000000000000000",
		DeployerAddress: deployer,
		ChainID:         domain.ChainBaseSepolia,
		DeployedAt:      deployedAt,
		TxHash:          "0x" + fmt.Sprintf("%064x", deployedAt.UnixNano()),
	}
}

func buildTestLiquidity(user string, amount string) store.CreateLiquidityEventInput {
	return store.CreateLiquidityEventInput{
		ID:           uuid.NewString(),
		TokenAddress: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		Amount:       amount,
		EthAmount:    "0.5",
		UserAddress:  user,
		ChainID:      domain.ChainBaseSepolia,
		TxHash:       "0x" + fmt.Sprintf("%064x", 1),
		FeeTier:      3000,
		CreatedAt:    now(),
	}
}

func createUser(t *testing.T, s store.Store, wallet string) {
	t.Helper()
	_, err := s.UpsertUser(context.Background(), store.UpsertUserInput{
		WalletAddress: wallet,
		LoginAt:       now(),
	})
	require.NoError(t, err)
}

// Run executes the whole suite against the store returned by init
func Run(t *testing.T, init InitFunc) {
	t.Run("Tokens", func(t *testing.T) { testTokens(t, init) })
	t.Run("Liquidity", func(t *testing.T) { testLiquidity(t, init) })
	t.Run("Users", func(t *testing.T) { testUsers(t, init) })
	t.Run("Stats", func(t *testing.T) { testStats(t, init) })
	t.Run("Leaderboard", func(t *testing.T) { testLeaderboard(t, init) })
	t.Run("Achievements", func(t *testing.T) { testAchievements(t, init) })
}

// =============================================================================
// Tokens
// =============================================================================

func testTokens(t *testing.T, init InitFunc) {
	ctx := context.Background()

	t.Run("without profile", func(t *testing.T) {
		s := init(t)

		result, err := s.CreateToken(ctx, buildTestToken(alice, now()))
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.Token.ID)
		assert.Equal(t, alice, result.Token.DeployerAddress)
		assert.Nil(t, result.UserBefore)
		assert.Nil(t, result.UserAfter)
	})

	t.Run("increments deployer profile", func(t *testing.T) {
		s := init(t)
		createUser(t, s, alice)

		first, err := s.CreateToken(ctx, buildTestToken(alice, now()))
		require.NoError(t, err)
		require.NotNil(t, first.UserBefore)
		require.NotNil(t, first.UserAfter)
		assert.Equal(t, int64(0), first.UserBefore.TotalTokensCreated)
		assert.Equal(t, int64(1), first.UserAfter.TotalTokensCreated)

		second, err := s.CreateToken(ctx, buildTestToken(alice, now()))
		require.NoError(t, err)
		assert.Equal(t, int64(1), second.UserBefore.TotalTokensCreated)
		assert.Equal(t, int64(2), second.UserAfter.TotalTokensCreated)

		user, err := s.GetUserByWalletAddress(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(2), user.TotalTokensCreated)
	})

	t.Run("list by deployer", func(t *testing.T) {
		s := init(t)
		base := now().Add(-time.Hour)
		for i := range 3 {
			_, err := s.CreateToken(ctx, buildTestToken(alice, base.Add(time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}
		_, err := s.CreateToken(ctx, buildTestToken(bob, base))
		require.NoError(t, err)

		tokens, total, err := s.GetTokensByDeployer(ctx, alice, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, tokens, 2)
		assert.True(t, tokens[0].DeployedAt.After(tokens[1].DeployedAt))

		tokens, total, err = s.GetTokensByDeployer(ctx, alice, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Len(t, tokens, 1)

		tokens, total, err = s.GetTokensByDeployer(ctx, carol, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), total)
		assert.Empty(t, tokens)
	})

	t.Run("top deployers", func(t *testing.T) {
		s := init(t)
		base := now().Add(-time.Hour)
		for i := range 3 {
			_, err := s.CreateToken(ctx, buildTestToken(bob, base.Add(time.Duration(i)*time.Second)))
			require.NoError(t, err)
		}
		_, err := s.CreateToken(ctx, buildTestToken(alice, base))
		require.NoError(t, err)

		entries, err := s.GetTopDeployers(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, bob, entries[0].Address)
		assert.Equal(t, int64(3), entries[0].TokenCount)
		assert.True(t, entries[0].LastTokenAt.Equal(base.Add(2*time.Second)))
		assert.Equal(t, alice, entries[1].Address)
		assert.Equal(t, int64(1), entries[1].TokenCount)

		entries, err = s.GetTopDeployers(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

// =============================================================================
// Liquidity
// =============================================================================

func testLiquidity(t *testing.T, init InitFunc) {
	ctx := context.Background()

	t.Run("without profile", func(t *testing.T) {
		s := init(t)

		result, err := s.CreateLiquidityEvent(ctx, buildTestLiquidity(alice, "100"))
		require.NoError(t, err)
		assert.NotEmpty(t, result.Event.ID)
		assert.Equal(t, "100", result.Event.Amount)
		assert.Nil(t, result.UserAfter)
	})

	t.Run("increments user profile", func(t *testing.T) {
		s := init(t)
		createUser(t, s, alice)

		result, err := s.CreateLiquidityEvent(ctx, buildTestLiquidity(alice, "250.5"))
		require.NoError(t, err)
		require.NotNil(t, result.UserAfter)
		assert.Equal(t, int64(0), result.UserBefore.TotalLiquidityAdded)
		assert.Equal(t, int64(1), result.UserAfter.TotalLiquidityAdded)
		assert.Equal(t, int64(0), result.UserAfter.TotalTokensCreated)
	})
}

// =============================================================================
// Users
// =============================================================================

func testUsers(t *testing.T, init InitFunc) {
	ctx := context.Background()

	t.Run("upsert creates then refreshes", func(t *testing.T) {
		s := init(t)
		firstLogin := now().Add(-time.Hour)
		name := "alice"

		created, err := s.UpsertUser(ctx, store.UpsertUserInput{
			WalletAddress: alice,
			DisplayName:   &name,
			LoginAt:       firstLogin,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.CreatedAt.Equal(firstLogin))
		require.NotNil(t, created.DisplayName)
		assert.Equal(t, "alice", *created.DisplayName)
		assert.True(t, created.NotificationPreferences.Data().Allows(domain.NotificationTypeTokenCreated))

		disabled := false
		secondLogin := now()
		updated, err := s.UpsertUser(ctx, store.UpsertUserInput{
			WalletAddress:           alice,
			NotificationPreferences: &domain.NotificationPreferences{Achievements: &disabled},
			LoginAt:                 secondLogin,
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, updated.CreatedAt.Equal(firstLogin))
		assert.True(t, updated.LastLoginAt.Equal(secondLogin))
		require.NotNil(t, updated.DisplayName)
		assert.Equal(t, "alice", *updated.DisplayName)
		assert.False(t, updated.NotificationPreferences.Data().Allows(domain.NotificationTypeAchievement))
		assert.True(t, updated.NotificationPreferences.Data().Allows(domain.NotificationTypeLiquidityAdded))
	})

	t.Run("missing user", func(t *testing.T) {
		s := init(t)

		user, err := s.GetUserByWalletAddress(ctx, bob)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("set push token", func(t *testing.T) {
		s := init(t)
		createUser(t, s, alice)
		at := now()

		found, err := s.SetUserPushToken(ctx, alice, "fcm-token-1", at)
		require.NoError(t, err)
		assert.True(t, found)

		found, err = s.SetUserPushToken(ctx, alice, "fcm-token-2", at)
		require.NoError(t, err)
		assert.True(t, found)

		user, err := s.GetUserByWalletAddress(ctx, alice)
		require.NoError(t, err)
		require.NotNil(t, user.PushToken)
		assert.Equal(t, "fcm-token-2", *user.PushToken)
		require.NotNil(t, user.PushTokenUpdatedAt)
		assert.True(t, user.PushTokenUpdatedAt.Equal(at))

		found, err = s.SetUserPushToken(ctx, bob, "fcm-token-3", at)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

// =============================================================================
// Stats
// =============================================================================

func testStats(t *testing.T, init InitFunc) {
	ctx := context.Background()

	t.Run("global increments accumulate", func(t *testing.T) {
		s := init(t)

		stats, err := s.GetGlobalStats(ctx)
		require.NoError(t, err)
		assert.Nil(t, stats)

		tokenAt := now().Add(-time.Minute)
		require.NoError(t, s.IncrementGlobalStats(ctx, store.StatsDelta{TokensCreated: 1, At: tokenAt}))
		require.NoError(t, s.IncrementGlobalStats(ctx, store.StatsDelta{TokensCreated: 1, At: tokenAt}))
		require.NoError(t, s.IncrementGlobalStats(ctx, store.StatsDelta{LiquidityEvents: 1, LiquidityValue: 1.5, At: now()}))
		require.NoError(t, s.IncrementGlobalStats(ctx, store.StatsDelta{LiquidityEvents: 1, LiquidityValue: 2.25, At: now()}))

		stats, err = s.GetGlobalStats(ctx)
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, domain.GlobalStatsID, stats.ID)
		assert.Equal(t, int64(2), stats.TotalTokensCreated)
		assert.Equal(t, int64(2), stats.TotalLiquidityEvents)
		assert.InDelta(t, 3.75, stats.TotalLiquidityValue, 1e-9)
		require.NotNil(t, stats.LastTokenCreatedAt)
		// liquidity updates leave the token timestamp alone
		assert.True(t, stats.LastTokenCreatedAt.Equal(tokenAt))
	})

	t.Run("user increments accumulate", func(t *testing.T) {
		s := init(t)

		stats, err := s.GetUserStats(ctx, alice)
		require.NoError(t, err)
		assert.Nil(t, stats)

		last := now()
		require.NoError(t, s.IncrementUserStats(ctx, alice, store.StatsDelta{TokensCreated: 1, At: last.Add(-time.Second)}))
		require.NoError(t, s.IncrementUserStats(ctx, alice, store.StatsDelta{LiquidityEvents: 1, At: last}))
		require.NoError(t, s.IncrementUserStats(ctx, bob, store.StatsDelta{TokensCreated: 1, At: last}))

		stats, err = s.GetUserStats(ctx, alice)
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, int64(1), stats.TokensCreated)
		assert.Equal(t, int64(1), stats.LiquidityEvents)
		assert.True(t, stats.LastActivityAt.Equal(last))
	})
}

// =============================================================================
// Leaderboard
// =============================================================================

func testLeaderboard(t *testing.T, init InitFunc) {
	ctx := context.Background()

	t.Run("mutation sees previous write", func(t *testing.T) {
		s := init(t)

		board, err := s.GetLeaderboard(ctx)
		require.NoError(t, err)
		assert.Nil(t, board)

		at := now()
		entries, err := s.UpdateLeaderboard(ctx, at, func(current []domain.LeaderboardEntry) []domain.LeaderboardEntry {
			assert.Empty(t, current)
			return append(current, domain.LeaderboardEntry{Address: alice, TokenCount: 1, LastTokenAt: at})
		})
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		_, err = s.UpdateLeaderboard(ctx, at, func(current []domain.LeaderboardEntry) []domain.LeaderboardEntry {
			require.Len(t, current, 1)
			assert.Equal(t, alice, current[0].Address)
			current[0].TokenCount++
			return append(current, domain.LeaderboardEntry{Address: bob, TokenCount: 1, LastTokenAt: at})
		})
		require.NoError(t, err)

		board, err = s.GetLeaderboard(ctx)
		require.NoError(t, err)
		require.NotNil(t, board)
		assert.Equal(t, domain.LeaderboardID, board.ID)
		require.Len(t, board.Entries, 2)
		assert.Equal(t, int64(2), board.Entries[0].TokenCount)
		assert.Equal(t, bob, board.Entries[1].Address)
		assert.True(t, board.UpdatedAt.Equal(at))
	})

	t.Run("rebuild replaces entries with the token aggregate", func(t *testing.T) {
		s := init(t)

		at := now()
		_, err := s.UpdateLeaderboard(ctx, at, func(current []domain.LeaderboardEntry) []domain.LeaderboardEntry {
			return append(current, domain.LeaderboardEntry{Address: carol, TokenCount: 50, LastTokenAt: at})
		})
		require.NoError(t, err)

		base := at.Add(-time.Hour)
		for i, deployer := range []string{alice, bob, bob} {
			_, err := s.CreateToken(ctx, buildTestToken(deployer, base.Add(time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}

		var aggregated []domain.LeaderboardEntry
		entries, err := s.RebuildLeaderboard(ctx, at, domain.LeaderboardCapacity, func(top []domain.LeaderboardEntry) []domain.LeaderboardEntry {
			aggregated = top
			return top
		})
		require.NoError(t, err)
		assert.Equal(t, aggregated, entries)

		board, err := s.GetLeaderboard(ctx)
		require.NoError(t, err)
		require.NotNil(t, board)
		require.Len(t, board.Entries, 2)
		assert.Equal(t, bob, board.Entries[0].Address)
		assert.Equal(t, int64(2), board.Entries[0].TokenCount)
		assert.True(t, board.Entries[0].LastTokenAt.Equal(base.Add(2*time.Minute)))
		assert.Equal(t, alice, board.Entries[1].Address)
	})
}

// RunConcurrentLeaderboard checks that parallel increments on one address are never lost.
// It needs a store whose concurrent callers do not share a transaction.
func RunConcurrentLeaderboard(t *testing.T, s store.Store, workers int) {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpdateLeaderboard(ctx, now(), func(current []domain.LeaderboardEntry) []domain.LeaderboardEntry {
				for i := range current {
					if current[i].Address == carol {
						current[i].TokenCount++
						return current
					}
				}
				return append(current, domain.LeaderboardEntry{Address: carol, TokenCount: 1})
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	board, err := s.GetLeaderboard(ctx)
	require.NoError(t, err)
	require.NotNil(t, board)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, int64(workers), board.Entries[0].TokenCount)
}

// RunConcurrentFirstConnect checks that parallel first connects of one wallet all succeed
// and resolve to a single profile. It needs a store whose concurrent callers do not share a transaction.
func RunConcurrentFirstConnect(t *testing.T, s store.Store, wallet string, workers int) {
	ctx := context.Background()
	displayName := "racer"

	var wg sync.WaitGroup
	ids := make(chan string, workers)
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := s.UpsertUser(ctx, store.UpsertUserInput{
				ID:            uuid.NewString(),
				WalletAddress: wallet,
				DisplayName:   &displayName,
				LoginAt:       now(),
			})
			errs <- err
			if err == nil {
				ids <- user.ID
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(ids)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := s.GetUserByWalletAddress(ctx, wallet)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, displayName, *stored.DisplayName)
	for id := range ids {
		assert.Equal(t, stored.ID, id)
	}
}

// =============================================================================
// Achievements
// =============================================================================

func testAchievements(t *testing.T, init InitFunc) {
	ctx := context.Background()

	t.Run("append and list in order", func(t *testing.T) {
		s := init(t)
		at := now()

		for _, milestone := range []int64{10, 5} {
			a, err := s.CreateAchievement(ctx, store.CreateAchievementInput{
				UserID:      "user-1",
				Milestone:   milestone,
				Title:       fmt.Sprintf("m%d", milestone),
				Description: "desc",
				Kind:        domain.AchievementKindMilestone,
				UnlockedAt:  at,
			})
			require.NoError(t, err)
			assert.NotEmpty(t, a.ID)
		}

		// duplicates are accepted
		_, err := s.CreateAchievement(ctx, store.CreateAchievementInput{
			UserID:     "user-1",
			Milestone:  5,
			Title:      "m5",
			Kind:       domain.AchievementKindMilestone,
			UnlockedAt: at.Add(time.Second),
		})
		require.NoError(t, err)

		achievements, err := s.GetAchievementsByUserID(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, achievements, 3)

		milestones := make([]int64, 0, len(achievements))
		for _, a := range achievements {
			milestones = append(milestones, a.Milestone)
		}
		assert.Equal(t, []int64{5, 10, 5}, milestones)
		assert.True(t, sort.SliceIsSorted(achievements, func(i, j int) bool {
			return achievements[i].UnlockedAt.Before(achievements[j].UnlockedAt)
		}))

		achievements, err = s.GetAchievementsByUserID(ctx, "user-2")
		require.NoError(t, err)
		assert.Empty(t, achievements)
	})
}
