package triggers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	mockspkg "github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/mocks"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/push"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/memory"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

func testNotification() triggers.Notification {
	return triggers.TokenCreatedNotification(testToken())
}

func TestNotifier_NotifyWallet_Sent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := memory.NewStore()
	seedUser(t, st, "user-1", walletA, "device-token")

	sender := mockspkg.NewMockPushSender(ctrl)
	sender.EXPECT().
		Send(gomock.Any(), push.Message{
			Token: "device-token",
			Title: "Token Deployed",
			Body:  "Test Token (TEST) is live on Base",
			Data: map[string]string{
				"type":         "token_created",
				"tokenAddress": walletB,
				"symbol":       "TEST",
				"chainId":      "84532",
			},
		}).
		Return("projects/test/messages/1", nil)

	notifier := triggers.NewNotifier(st, sender, metrics.NewNop())
	// wallet lookups are case-insensitive
	outcome, err := notifier.NotifyWallet(context.Background(), "0xABCDEF0123456789ABCDEF0123456789ABCDEF01", testNotification())

	require.NoError(t, err)
	assert.Equal(t, triggers.OutcomeSent, outcome)
}

func TestNotifier_NotifyWallet_Skipped(t *testing.T) {
	disabled := false

	tests := []struct {
		name     string
		seed     func(t *testing.T, st store.Store)
		expected triggers.Outcome
	}{
		{
			name:     "no profile",
			seed:     func(t *testing.T, st store.Store) {},
			expected: triggers.OutcomeSkippedNoUser,
		},
		{
			name: "no push token",
			seed: func(t *testing.T, st store.Store) {
				seedUser(t, st, "user-1", walletA, "")
			},
			expected: triggers.OutcomeSkippedNoPush,
		},
		{
			name: "category disabled",
			seed: func(t *testing.T, st store.Store) {
				seedUser(t, st, "user-1", walletA, "device-token")
				_, err := st.UpsertUser(context.Background(), store.UpsertUserInput{
					WalletAddress:           walletA,
					NotificationPreferences: &domain.NotificationPreferences{TokenCreated: &disabled},
					LoginAt:                 testTime,
				})
				require.NoError(t, err)
			},
			expected: triggers.OutcomeSkippedOptOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := memory.NewStore()
			tt.seed(t, st)

			// no Send expectation: the sender must not be called
			notifier := triggers.NewNotifier(st, mockspkg.NewMockPushSender(ctrl), metrics.NewNop())
			outcome, err := notifier.NotifyWallet(context.Background(), walletA, testNotification())

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestNotifier_NotifyWallet_OtherCategoryStillSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	disabled := false
	st := memory.NewStore()
	seedUser(t, st, "user-1", walletA, "device-token")
	_, err := st.UpsertUser(context.Background(), store.UpsertUserInput{
		WalletAddress:           walletA,
		NotificationPreferences: &domain.NotificationPreferences{LiquidityAdded: &disabled},
		LoginAt:                 testTime,
	})
	require.NoError(t, err)

	sender := mockspkg.NewMockPushSender(ctrl)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil)

	notifier := triggers.NewNotifier(st, sender, metrics.NewNop())
	outcome, err := notifier.NotifyWallet(context.Background(), walletA, testNotification())

	require.NoError(t, err)
	assert.Equal(t, triggers.OutcomeSent, outcome)
}

func TestNotifier_NotifyWallet_SendFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := memory.NewStore()
	seedUser(t, st, "user-1", walletA, "stale-token")

	sender := mockspkg.NewMockPushSender(ctrl)
	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return("", errors.New("registration-token-not-registered"))

	notifier := triggers.NewNotifier(st, sender, metrics.NewNop())
	outcome, err := notifier.NotifyWallet(context.Background(), walletA, testNotification())

	assert.NoError(t, err)
	assert.Equal(t, triggers.OutcomeFailed, outcome)
}

func TestNotifier_NotifyWallet_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mockspkg.NewMockStore(ctrl)
	st.EXPECT().
		GetUserByWalletAddress(gomock.Any(), walletA).
		Return(nil, errors.New("connection reset"))

	notifier := triggers.NewNotifier(st, mockspkg.NewMockPushSender(ctrl), metrics.NewNop())
	outcome, err := notifier.NotifyWallet(context.Background(), walletA, testNotification())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up recipient")
	assert.Equal(t, triggers.OutcomeFailed, outcome)
}

func TestNotificationBuilders(t *testing.T) {
	liquidity := triggers.LiquidityAddedNotification(domain.LiquidityDocument{
		TokenAddress: walletB,
		Amount:       "1000",
	})
	assert.Equal(t, domain.NotificationTypeLiquidityAdded, liquidity.Type)
	assert.Equal(t, "Liquidity Added", liquidity.Title)
	assert.Equal(t, map[string]string{"tokenAddress": walletB, "amount": "1000"}, liquidity.Data)

	achievement := triggers.AchievementNotification(triggers.Milestones[2], "ach-1")
	assert.Equal(t, domain.NotificationTypeAchievement, achievement.Type)
	assert.Equal(t, "Achievement Unlocked: Token Master", achievement.Title)
	assert.Equal(t, "You have deployed 10 tokens", achievement.Body)
	assert.Equal(t, map[string]string{"milestone": "10", "achievementId": "ach-1"}, achievement.Data)
}
