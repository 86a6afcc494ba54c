package triggers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
)

// LeaderboardUpdater maintains the top creators leaderboard
type LeaderboardUpdater struct {
	store   store.Store
	clock   adapter.Clock
	metrics *metrics.Metrics
}

// NewLeaderboardUpdater creates a new leaderboard updater
func NewLeaderboardUpdater(st store.Store, clock adapter.Clock, m *metrics.Metrics) *LeaderboardUpdater {
	return &LeaderboardUpdater{store: st, clock: clock, metrics: m}
}

// RecordTokenCreation counts one more token for deployer inside a store transaction
func (u *LeaderboardUpdater) RecordTokenCreation(ctx context.Context, deployer string, at time.Time) ([]domain.LeaderboardEntry, error) {
	entries, err := u.store.UpdateLeaderboard(ctx, u.clock.Now(), func(current []domain.LeaderboardEntry) []domain.LeaderboardEntry {
		return ApplyTokenCreation(current, deployer, at)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update leaderboard: %w", err)
	}

	u.metrics.LeaderboardSize.Set(float64(len(entries)))
	return entries, nil
}

// Rebuild replaces the leaderboard with the top creators counted from the tokens table.
// The count runs under the leaderboard lock. Events still queued for the trigger worker
// are counted again when they arrive, so run it while the consumer is caught up.
func (u *LeaderboardUpdater) Rebuild(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, err := u.store.RebuildLeaderboard(ctx, u.clock.Now(), domain.LeaderboardCapacity, rank)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}

	u.metrics.LeaderboardSize.Set(float64(len(entries)))
	return entries, nil
}

// ApplyTokenCreation returns entries with one token counted for address.
// The address is matched case-insensitively; a new entry is appended with a count of 1.
// LastTokenAt only moves forward, so late events keep the newest timestamp.
// The result is sorted by token count descending (stable for ties) and capped at
// domain.LeaderboardCapacity, dropping whoever falls past the last rank.
func ApplyTokenCreation(entries []domain.LeaderboardEntry, address string, at time.Time) []domain.LeaderboardEntry {
	found := false
	for i := range entries {
		if strings.EqualFold(entries[i].Address, address) {
			entries[i].TokenCount++
			if at.After(entries[i].LastTokenAt) {
				entries[i].LastTokenAt = at
			}
			found = true
			break
		}
	}

	if !found {
		entries = append(entries, domain.LeaderboardEntry{
			Address:     domain.LowerAddress(address),
			TokenCount:  1,
			LastTokenAt: at,
		})
	}

	return rank(entries)
}

func rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TokenCount > entries[j].TokenCount
	})

	if len(entries) > domain.LeaderboardCapacity {
		entries = entries[:domain.LeaderboardCapacity]
	}

	return entries
}
