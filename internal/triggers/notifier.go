package triggers

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/push"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
)

// Outcome is the result of one dispatch attempt
type Outcome string

const (
	OutcomeSent          Outcome = "sent"
	OutcomeSkippedNoUser Outcome = "skipped_no_user"
	OutcomeSkippedNoPush Outcome = "skipped_no_token"
	OutcomeSkippedOptOut Outcome = "skipped_disabled"
	OutcomeFailed        Outcome = "failed"
)

// Notification is a push notification before it is addressed to a device
type Notification struct {
	Type  domain.NotificationType
	Title string
	Body  string
	// Data holds the event-specific keys; "type" is added on send
	Data map[string]string
}

// Notifier sends notifications to the push token registered for a wallet
type Notifier struct {
	store   store.Store
	sender  push.Sender
	metrics *metrics.Metrics
}

// NewNotifier creates a new notification dispatcher
func NewNotifier(st store.Store, sender push.Sender, m *metrics.Metrics) *Notifier {
	return &Notifier{store: st, sender: sender, metrics: m}
}

// NotifyWallet sends n to the device registered for wallet.
// A missing profile, a missing push token or a disabled category is a silent no-op.
// Push delivery failures are logged and reported as OutcomeFailed without an error;
// only a failed profile lookup returns an error.
func (n *Notifier) NotifyWallet(ctx context.Context, wallet string, notification Notification) (Outcome, error) {
	outcome, err := n.notify(ctx, wallet, notification)
	n.metrics.Notifications.WithLabelValues(string(notification.Type), string(outcome)).Inc()
	return outcome, err
}

func (n *Notifier) notify(ctx context.Context, wallet string, notification Notification) (Outcome, error) {
	user, err := n.store.GetUserByWalletAddress(ctx, domain.LowerAddress(wallet))
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to look up recipient: %w", err)
	}

	if user == nil {
		logger.DebugCtx(ctx, "No profile for wallet, skipping notification",
			zap.String("wallet", wallet),
			zap.String("type", string(notification.Type)))
		return OutcomeSkippedNoUser, nil
	}

	if user.PushToken == nil || *user.PushToken == "" {
		logger.DebugCtx(ctx, "No push token for wallet, skipping notification",
			zap.String("wallet", wallet),
			zap.String("type", string(notification.Type)))
		return OutcomeSkippedNoPush, nil
	}

	if !user.NotificationPreferences.Data().Allows(notification.Type) {
		return OutcomeSkippedOptOut, nil
	}

	data := make(map[string]string, len(notification.Data)+1)
	for k, v := range notification.Data {
		data[k] = v
	}
	data["type"] = string(notification.Type)

	messageID, err := n.sender.Send(ctx, push.Message{
		Token: *user.PushToken,
		Title: notification.Title,
		Body:  notification.Body,
		Data:  data,
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to send push notification",
			zap.Error(err),
			zap.String("wallet", wallet),
			zap.String("userID", user.ID),
			zap.String("type", string(notification.Type)))
		return OutcomeFailed, nil
	}

	logger.InfoCtx(ctx, "Push notification sent",
		zap.String("userID", user.ID),
		zap.String("type", string(notification.Type)),
		zap.String("messageID", messageID))

	return OutcomeSent, nil
}

// TokenCreatedNotification tells a deployer their token is live
func TokenCreatedNotification(token domain.TokenDocument) Notification {
	return Notification{
		Type:  domain.NotificationTypeTokenCreated,
		Title: "Token Deployed",
		Body:  fmt.Sprintf("%s (%s) is live on Base", token.Name, token.Symbol),
		Data: map[string]string{
			"tokenAddress": token.ContractAddress,
			"symbol":       token.Symbol,
			"chainId":      strconv.FormatInt(int64(token.ChainID), 10),
		},
	}
}

// LiquidityAddedNotification confirms a liquidity addition
func LiquidityAddedNotification(liquidity domain.LiquidityDocument) Notification {
	return Notification{
		Type:  domain.NotificationTypeLiquidityAdded,
		Title: "Liquidity Added",
		Body:  fmt.Sprintf("You added %s tokens of liquidity", liquidity.Amount),
		Data: map[string]string{
			"tokenAddress": liquidity.TokenAddress,
			"amount":       liquidity.Amount,
		},
	}
}

// AchievementNotification announces an unlocked milestone
func AchievementNotification(milestone Milestone, achievementID string) Notification {
	return Notification{
		Type:  domain.NotificationTypeAchievement,
		Title: fmt.Sprintf("Achievement Unlocked: %s", milestone.Title),
		Body:  milestone.Description,
		Data: map[string]string{
			"milestone":     strconv.FormatInt(milestone.Threshold, 10),
			"achievementId": achievementID,
		},
	}
}
