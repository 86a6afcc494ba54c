package triggers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/push"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
)

// Trigger names
const (
	TriggerTokenCreated   = "onTokenCreated"
	TriggerLiquidityAdded = "onLiquidityAdded"
	TriggerUserUpdated    = "onUserUpdated"
)

// Step names
const (
	StepStats        = "stats"
	StepNotification = "notification"
	StepLeaderboard  = "leaderboard"
	StepMilestones   = "milestones"
)

// StepResult is the outcome of one side effect of a trigger
type StepResult struct {
	Name string
	Err  error
}

// Report records every step a trigger ran
type Report struct {
	Trigger    string
	DocumentID string
	Steps      []StepResult
}

// Failed reports whether any step failed
func (r Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Err joins the errors of the failed steps
func (r Report) Err() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	return errors.Join(errs...)
}

// Service runs the trigger entrypoints for document change events.
// Every step of an entrypoint runs regardless of earlier failures.
type Service struct {
	stats       *StatsUpdater
	leaderboard *LeaderboardUpdater
	notifier    *Notifier
	milestones  *MilestoneEvaluator
	clock       adapter.Clock
	metrics     *metrics.Metrics
}

// NewService wires the trigger components on top of st and sender
func NewService(st store.Store, sender push.Sender, clock adapter.Clock, m *metrics.Metrics) *Service {
	notifier := NewNotifier(st, sender, m)
	return &Service{
		stats:       NewStatsUpdater(st, clock),
		leaderboard: NewLeaderboardUpdater(st, clock, m),
		notifier:    notifier,
		milestones:  NewMilestoneEvaluator(st, notifier, clock, m),
		clock:       clock,
		metrics:     m,
	}
}

// OnTokenCreated updates stats, notifies the deployer and counts the token on the leaderboard
func (s *Service) OnTokenCreated(ctx context.Context, token domain.TokenDocument) Report {
	report := s.begin(TriggerTokenCreated, token.ID)
	startedAt := s.clock.Now()

	s.step(ctx, &report, StepStats, func(ctx context.Context) error {
		return s.stats.Apply(ctx, domain.ActivityTokenCreated, token.DeployerAddress, 0)
	})
	s.step(ctx, &report, StepNotification, func(ctx context.Context) error {
		_, err := s.notifier.NotifyWallet(ctx, token.DeployerAddress, TokenCreatedNotification(token))
		return err
	})
	s.step(ctx, &report, StepLeaderboard, func(ctx context.Context) error {
		at := token.DeployedAt
		if at.IsZero() {
			at = s.clock.Now()
		}
		_, err := s.leaderboard.RecordTokenCreation(ctx, token.DeployerAddress, at)
		return err
	})

	s.finish(ctx, report, startedAt)
	return report
}

// OnLiquidityAdded updates stats and notifies the liquidity provider
func (s *Service) OnLiquidityAdded(ctx context.Context, liquidity domain.LiquidityDocument) Report {
	report := s.begin(TriggerLiquidityAdded, liquidity.ID)
	startedAt := s.clock.Now()

	s.step(ctx, &report, StepStats, func(ctx context.Context) error {
		amount, err := decimal.NewFromString(liquidity.Amount)
		if err != nil {
			return fmt.Errorf("invalid liquidity amount %q: %w", liquidity.Amount, err)
		}
		return s.stats.Apply(ctx, domain.ActivityLiquidityAdded, liquidity.UserAddress, amount.InexactFloat64())
	})
	s.step(ctx, &report, StepNotification, func(ctx context.Context) error {
		_, err := s.notifier.NotifyWallet(ctx, liquidity.UserAddress, LiquidityAddedNotification(liquidity))
		return err
	})

	s.finish(ctx, report, startedAt)
	return report
}

// OnUserUpdated evaluates milestones crossed between the two profile snapshots
func (s *Service) OnUserUpdated(ctx context.Context, before, after domain.UserDocument) Report {
	report := s.begin(TriggerUserUpdated, after.ID)
	startedAt := s.clock.Now()

	s.step(ctx, &report, StepMilestones, func(ctx context.Context) error {
		_, err := s.milestones.Evaluate(ctx, before, after)
		return err
	})

	s.finish(ctx, report, startedAt)
	return report
}

// Leaderboard exposes the leaderboard updater for administrative rebuilds
func (s *Service) Leaderboard() *LeaderboardUpdater {
	return s.leaderboard
}

func (s *Service) begin(trigger, documentID string) Report {
	return Report{Trigger: trigger, DocumentID: documentID}
}

func (s *Service) step(ctx context.Context, report *Report, name string, fn func(ctx context.Context) error) {
	err := fn(ctx)
	report.Steps = append(report.Steps, StepResult{Name: name, Err: err})

	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
		logger.ErrorCtx(ctx, err,
			zap.String("trigger", report.Trigger),
			zap.String("step", name),
			zap.String("documentID", report.DocumentID))
	}
	s.metrics.TriggerSteps.WithLabelValues(report.Trigger, name, result).Inc()
}

func (s *Service) finish(ctx context.Context, report Report, startedAt time.Time) {
	s.metrics.TriggerDuration.WithLabelValues(report.Trigger).Observe(s.clock.Since(startedAt).Seconds())

	if report.Failed() {
		logger.WarnCtx(ctx, "Trigger completed with failed steps",
			zap.String("trigger", report.Trigger),
			zap.String("documentID", report.DocumentID),
			zap.Int("steps", len(report.Steps)),
			zap.Error(report.Err()))
		return
	}

	logger.DebugCtx(ctx, "Trigger completed",
		zap.String("trigger", report.Trigger),
		zap.String("documentID", report.DocumentID))
}
