package triggers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
)

// Milestone is a token-count threshold that unlocks an achievement
type Milestone struct {
	Threshold   int64
	Title       string
	Description string
}

// Milestones is ordered by ascending threshold
var Milestones = []Milestone{
	{Threshold: 1, Title: "First Token", Description: "You deployed your first token on Base"},
	{Threshold: 5, Title: "Token Creator", Description: "You have deployed 5 tokens"},
	{Threshold: 10, Title: "Token Master", Description: "You have deployed 10 tokens"},
	{Threshold: 25, Title: "Token Legend", Description: "You have deployed 25 tokens"},
	{Threshold: 50, Title: "Token Titan", Description: "You have deployed 50 tokens"},
}

// CrossedMilestones returns the milestones with before < threshold <= after, ascending
func CrossedMilestones(before, after int64) []Milestone {
	var crossed []Milestone
	for _, m := range Milestones {
		if before < m.Threshold && m.Threshold <= after {
			crossed = append(crossed, m)
		}
	}
	return crossed
}

// MilestoneEvaluator records achievements for milestones crossed by a profile update
type MilestoneEvaluator struct {
	store    store.Store
	notifier *Notifier
	clock    adapter.Clock
	metrics  *metrics.Metrics
}

// NewMilestoneEvaluator creates a new milestone evaluator
func NewMilestoneEvaluator(st store.Store, notifier *Notifier, clock adapter.Clock, m *metrics.Metrics) *MilestoneEvaluator {
	return &MilestoneEvaluator{store: st, notifier: notifier, clock: clock, metrics: m}
}

// Evaluate appends one achievement per crossed milestone and notifies the user about each.
// A failed milestone does not stop the ones after it; all errors are joined.
func (e *MilestoneEvaluator) Evaluate(ctx context.Context, before, after domain.UserDocument) ([]schema.Achievement, error) {
	crossed := CrossedMilestones(before.TotalTokensCreated, after.TotalTokensCreated)
	if len(crossed) == 0 {
		return nil, nil
	}

	var achievements []schema.Achievement
	var errs []error
	for _, m := range crossed {
		achievement, err := e.store.CreateAchievement(ctx, store.CreateAchievementInput{
			UserID:      after.ID,
			Milestone:   m.Threshold,
			Title:       m.Title,
			Description: m.Description,
			Kind:        domain.AchievementKindMilestone,
			UnlockedAt:  e.clock.Now(),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("milestone %d: %w", m.Threshold, err))
			continue
		}
		achievements = append(achievements, *achievement)
		e.metrics.AchievementsUnlocked.WithLabelValues(strconv.FormatInt(m.Threshold, 10)).Inc()

		logger.InfoCtx(ctx, "Achievement unlocked",
			zap.String("userID", after.ID),
			zap.Int64("milestone", m.Threshold))

		if _, err := e.notifier.NotifyWallet(ctx, after.WalletAddress, AchievementNotification(m, achievement.ID)); err != nil {
			errs = append(errs, fmt.Errorf("milestone %d notification: %w", m.Threshold, err))
		}
	}

	return achievements, errors.Join(errs...)
}
