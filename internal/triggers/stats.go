package triggers

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
)

// StatsUpdater applies additive counter updates to global and per-user stats
type StatsUpdater struct {
	store store.Store
	clock adapter.Clock
}

// NewStatsUpdater creates a new stats updater
func NewStatsUpdater(st store.Store, clock adapter.Clock) *StatsUpdater {
	return &StatsUpdater{store: st, clock: clock}
}

// Apply records one activity of kind by actor. value is only used for liquidity additions.
// The global and user updates are attempted independently and their errors joined.
func (u *StatsUpdater) Apply(ctx context.Context, kind domain.ActivityKind, actor string, value float64) error {
	delta := store.StatsDelta{At: u.clock.Now()}

	switch kind {
	case domain.ActivityTokenCreated:
		delta.TokensCreated = 1
	case domain.ActivityLiquidityAdded:
		delta.LiquidityEvents = 1
		delta.LiquidityValue = value
	default:
		return fmt.Errorf("unknown activity kind %q", kind)
	}

	var errs []error
	if err := u.store.IncrementGlobalStats(ctx, delta); err != nil {
		errs = append(errs, err)
	}
	if err := u.store.IncrementUserStats(ctx, domain.LowerAddress(actor), delta); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
