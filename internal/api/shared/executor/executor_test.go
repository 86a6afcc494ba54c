package executor_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/dto"
	apierrors "github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/errors"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/executor"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/mocks"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/memory"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

const (
	walletA = "0x1111111111111111111111111111111111111111"
	tokenA  = "0x3333333333333333333333333333333333333333"
	txHash  = "0xabababababababababababababababababababababababababababababababab"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testExecutorMocks struct {
	ctrl      *gomock.Controller
	store     *memory.Store
	publisher *mocks.MockPublisher
	metrics   *metrics.Metrics
}

func setupTestExecutor(t *testing.T) (executor.Executor, *testExecutorMocks) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(testTime).AnyTimes()

	tm := &testExecutorMocks{
		ctrl:      ctrl,
		store:     memory.NewStore(),
		publisher: mocks.NewMockPublisher(ctrl),
		metrics:   metrics.NewNop(),
	}
	return executor.NewExecutor(tm.store, tm.publisher, clock, tm.metrics), tm
}

func seedUser(t *testing.T, st store.Store) {
	t.Helper()
	_, err := st.UpsertUser(context.Background(), store.UpsertUserInput{WalletAddress: walletA, LoginAt: testTime})
	require.NoError(t, err)
}

func tokenRequest() dto.CreateTokenRequest {
	decimals := uint8(18)
	return dto.CreateTokenRequest{
		ContractAddress: tokenA,
		Name:            "Launch",
		Symbol:          "LNCH",
		Decimals:        &decimals,
		TotalSupply:     "1000000",
		DeployerAddress: walletA,
		ChainID:         domain.ChainBaseMainnet,
		TxHash:          txHash,
	}
}

func publishedCount(m *metrics.Metrics, subject, result string) float64 {
	return testutil.ToFloat64(m.EventsPublished.WithLabelValues(subject, result))
}

func TestExecutor_CreateToken(t *testing.T) {
	t.Run("without profile publishes token event only", func(t *testing.T) {
		exec, tm := setupTestExecutor(t)
		tm.publisher.EXPECT().
			PublishDocumentEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.DocumentEvent) error {
				assert.Equal(t, "documents.tokens.created", event.Subject())
				assert.Nil(t, event.Before)
				var doc domain.TokenDocument
				require.NoError(t, json.Unmarshal(event.After, &doc))
				assert.Equal(t, walletA, doc.DeployerAddress)
				assert.Equal(t, event.DocumentID, doc.ID)
				return nil
			})

		resp, err := exec.CreateToken(context.Background(), tokenRequest())

		require.NoError(t, err)
		assert.Equal(t, walletA, resp.DeployerAddress)
		assert.Equal(t, testTime, resp.DeployedAt)
		assert.Equal(t, float64(1), publishedCount(tm.metrics, "documents.tokens.created", metrics.ResultOK))
		assert.Equal(t, float64(1), testutil.ToFloat64(tm.metrics.DocumentsRecorded.WithLabelValues("tokens")))
	})

	t.Run("with profile publishes user update", func(t *testing.T) {
		exec, tm := setupTestExecutor(t)
		seedUser(t, tm.store)

		var subjects []string
		tm.publisher.EXPECT().
			PublishDocumentEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.DocumentEvent) error {
				subjects = append(subjects, event.Subject())
				if event.Collection == domain.CollectionUsers {
					var before, after domain.UserDocument
					require.NoError(t, json.Unmarshal(event.Before, &before))
					require.NoError(t, json.Unmarshal(event.After, &after))
					assert.Equal(t, int64(0), before.TotalTokensCreated)
					assert.Equal(t, int64(1), after.TotalTokensCreated)
				}
				return nil
			}).
			Times(2)

		_, err := exec.CreateToken(context.Background(), tokenRequest())

		require.NoError(t, err)
		assert.Equal(t, []string{"documents.tokens.created", "documents.users.updated"}, subjects)
	})

	t.Run("explicit deployment time", func(t *testing.T) {
		exec, tm := setupTestExecutor(t)
		tm.publisher.EXPECT().PublishDocumentEvent(gomock.Any(), gomock.Any()).Return(nil)
		deployedAt := testTime.Add(-time.Hour).In(time.FixedZone("UTC+2", 2*3600))
		req := tokenRequest()
		req.DeployedAt = &deployedAt

		resp, err := exec.CreateToken(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, testTime.Add(-time.Hour), resp.DeployedAt)
	})

	t.Run("publish failure still records", func(t *testing.T) {
		exec, tm := setupTestExecutor(t)
		tm.publisher.EXPECT().
			PublishDocumentEvent(gomock.Any(), gomock.Any()).
			Return(errors.New("nats unavailable"))

		resp, err := exec.CreateToken(context.Background(), tokenRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, float64(1), publishedCount(tm.metrics, "documents.tokens.created", metrics.ResultError))

		tokens, total, err := tm.store.GetTokensByDeployer(context.Background(), walletA, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		assert.Len(t, tokens, 1)
	})
}

func TestExecutor_CreateLiquidity(t *testing.T) {
	exec, tm := setupTestExecutor(t)
	seedUser(t, tm.store)

	gomock.InOrder(
		tm.publisher.EXPECT().
			PublishDocumentEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.DocumentEvent) error {
				assert.Equal(t, "documents.liquidity.created", event.Subject())
				return nil
			}),
		tm.publisher.EXPECT().
			PublishDocumentEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.DocumentEvent) error {
				assert.Equal(t, "documents.users.updated", event.Subject())
				return nil
			}),
	)

	resp, err := exec.CreateLiquidity(context.Background(), dto.CreateLiquidityRequest{
		TokenAddress: tokenA,
		Amount:       "10.5",
		EthAmount:    "0.2",
		UserAddress:  walletA,
		ChainID:      domain.ChainBaseMainnet,
		TxHash:       txHash,
		FeeTier:      3000,
	})

	require.NoError(t, err)
	assert.Equal(t, "10.5", resp.Amount)
	assert.Equal(t, testTime, resp.CreatedAt)
}

func TestExecutor_UpsertUser(t *testing.T) {
	exec, tm := setupTestExecutor(t)
	name := "alice"
	disabled := false

	// no change event for profile writes
	resp, err := exec.UpsertUser(context.Background(), dto.UpsertUserRequest{
		WalletAddress:           walletA,
		DisplayName:             &name,
		NotificationPreferences: &domain.NotificationPreferences{TokenCreated: &disabled},
	})

	require.NoError(t, err)
	assert.Equal(t, walletA, resp.WalletAddress)
	assert.Equal(t, &name, resp.DisplayName)
	assert.False(t, resp.PushEnabled)
	require.NotNil(t, resp.NotificationPreferences.TokenCreated)
	assert.False(t, *resp.NotificationPreferences.TokenCreated)

	user, err := tm.store.GetUserByWalletAddress(context.Background(), walletA)
	require.NoError(t, err)
	assert.Equal(t, testTime, user.LastLoginAt)
}

func TestExecutor_RegisterPushToken(t *testing.T) {
	tests := []struct {
		name     string
		seed     bool
		req      triggers.RegisterPushTokenRequest
		wantCode apierrors.ErrorCode
	}{
		{"missing token", true, triggers.RegisterPushTokenRequest{WalletAddress: walletA}, apierrors.ErrCodeInvalidArgument},
		{"invalid wallet", true, triggers.RegisterPushTokenRequest{WalletAddress: "0x12", FCMToken: "t"}, apierrors.ErrCodeInvalidArgument},
		{"unknown wallet", false, triggers.RegisterPushTokenRequest{WalletAddress: walletA, FCMToken: "t"}, apierrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, tm := setupTestExecutor(t)
			if tt.seed {
				seedUser(t, tm.store)
			}

			resp, err := exec.RegisterPushToken(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.wantCode, apierrors.AsAPIError(err).Code)
		})
	}

	t.Run("stored", func(t *testing.T) {
		exec, tm := setupTestExecutor(t)
		seedUser(t, tm.store)

		resp, err := exec.RegisterPushToken(context.Background(), triggers.RegisterPushTokenRequest{
			WalletAddress: walletA,
			FCMToken:      "device-token",
		})

		require.NoError(t, err)
		assert.True(t, resp.Success)

		user, err := tm.store.GetUserByWalletAddress(context.Background(), walletA)
		require.NoError(t, err)
		require.NotNil(t, user.PushToken)
		assert.Equal(t, "device-token", *user.PushToken)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := mocks.NewMockStore(ctrl)
		clock := mocks.NewMockClock(ctrl)
		clock.EXPECT().Now().Return(testTime).AnyTimes()
		st.EXPECT().SetUserPushToken(gomock.Any(), walletA, "device-token", testTime).Return(false, errors.New("db down"))
		exec := executor.NewExecutor(st, mocks.NewMockPublisher(ctrl), clock, metrics.NewNop())

		_, err := exec.RegisterPushToken(context.Background(), triggers.RegisterPushTokenRequest{
			WalletAddress: walletA,
			FCMToken:      "device-token",
		})

		apiErr := apierrors.AsAPIError(err)
		assert.Equal(t, apierrors.ErrCodeInternalError, apiErr.Code)
		assert.NotContains(t, apiErr.Message, "db down")
	})
}

func TestExecutor_GetTokens(t *testing.T) {
	exec, tm := setupTestExecutor(t)
	for i := 0; i < 3; i++ {
		_, err := tm.store.CreateToken(context.Background(), store.CreateTokenInput{
			Name:            "Launch",
			Symbol:          "LNCH",
			TotalSupply:     "1",
			DeployerAddress: walletA,
			ChainID:         domain.ChainBaseMainnet,
			DeployedAt:      testTime.Add(time.Duration(i) * time.Minute),
			TxHash:          txHash,
		})
		require.NoError(t, err)
	}

	limit := 2
	resp, err := exec.GetTokens(context.Background(), walletA, &limit, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Tokens, 2)
	assert.Equal(t, uint64(3), resp.Total)
	require.NotNil(t, resp.Offset)
	assert.Equal(t, uint64(2), *resp.Offset)
	assert.Equal(t, testTime.Add(2*time.Minute), resp.Tokens[0].DeployedAt)

	resp, err = exec.GetTokens(context.Background(), walletA, &limit, resp.Offset)
	require.NoError(t, err)
	assert.Len(t, resp.Tokens, 1)
	assert.Nil(t, resp.Offset)
}

func TestExecutor_GetLeaderboard(t *testing.T) {
	exec, tm := setupTestExecutor(t)

	resp, err := exec.GetLeaderboard(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)

	_, err = tm.store.UpdateLeaderboard(context.Background(), testTime, func([]domain.LeaderboardEntry) []domain.LeaderboardEntry {
		return []domain.LeaderboardEntry{
			{Address: walletA, TokenCount: 3, LastTokenAt: testTime},
			{Address: tokenA, TokenCount: 1, LastTokenAt: testTime},
		}
	})
	require.NoError(t, err)

	limit := 1
	resp, err = exec.GetLeaderboard(context.Background(), &limit)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, walletA, resp.Entries[0].Address)
}

func TestExecutor_Stats(t *testing.T) {
	exec, tm := setupTestExecutor(t)
	require.NoError(t, tm.store.IncrementGlobalStats(context.Background(), store.StatsDelta{TokensCreated: 2, At: testTime}))
	require.NoError(t, tm.store.IncrementUserStats(context.Background(), walletA, store.StatsDelta{TokensCreated: 2, At: testTime}))

	global, err := exec.GetGlobalStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), global.TotalTokensCreated)

	user, err := exec.GetUserStats(context.Background(), walletA)
	require.NoError(t, err)
	assert.Equal(t, walletA, user.Address)
	assert.Equal(t, int64(2), user.TokensCreated)

	empty, err := exec.GetUserStats(context.Background(), tokenA)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TokensCreated)
}

func TestExecutor_GetAchievements(t *testing.T) {
	exec, tm := setupTestExecutor(t)

	_, err := exec.GetAchievements(context.Background(), walletA)
	assert.Equal(t, apierrors.ErrCodeNotFound, apierrors.AsAPIError(err).Code)

	seedUser(t, tm.store)
	user, err := tm.store.GetUserByWalletAddress(context.Background(), walletA)
	require.NoError(t, err)
	_, err = tm.store.CreateAchievement(context.Background(), store.CreateAchievementInput{
		UserID:     user.ID,
		Milestone:  1,
		Title:      "First Token",
		Kind:       domain.AchievementKindMilestone,
		UnlockedAt: testTime,
	})
	require.NoError(t, err)

	resp, err := exec.GetAchievements(context.Background(), walletA)
	require.NoError(t, err)
	require.Len(t, resp.Achievements, 1)
	assert.Equal(t, int64(1), resp.Achievements[0].Milestone)
}
