package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/dto"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
)

// showStats prints the global counters, or the counters of address when set, as JSON
func showStats(ctx context.Context, st store.Store, codec adapter.JSON, address string, out io.Writer) error {
	var view any
	if address == "" {
		stats, err := st.GetGlobalStats(ctx)
		if err != nil {
			return fmt.Errorf("get global stats: %w", err)
		}
		view = dto.MapGlobalStatsToDTO(stats)
	} else {
		normalized, err := domain.NormalizeAddress(address)
		if err != nil {
			return err
		}
		stats, err := st.GetUserStats(ctx, normalized)
		if err != nil {
			return fmt.Errorf("get user stats: %w", err)
		}
		view = dto.MapUserStatsToDTO(normalized, stats)
	}

	data, err := codec.MarshalIndent(view)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// showLeaderboard prints up to limit ranked creators as a table
func showLeaderboard(ctx context.Context, st store.Store, limit int, out io.Writer) error {
	if limit <= 0 || limit > domain.LeaderboardCapacity {
		limit = domain.LeaderboardCapacity
	}

	leaderboard, err := st.GetLeaderboard(ctx)
	if err != nil {
		return fmt.Errorf("get leaderboard: %w", err)
	}

	return writeEntries(out, dto.MapLeaderboardToDTO(leaderboard, limit).Entries)
}

type leaderboardRebuilder interface {
	Rebuild(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// rebuildLeaderboard recounts the leaderboard and prints the result
func rebuildLeaderboard(ctx context.Context, rebuilder leaderboardRebuilder, out io.Writer) error {
	entries, err := rebuilder.Rebuild(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "rebuilt leaderboard with %d entries\n", len(entries))
	leaderboard := &schema.Leaderboard{Entries: entries}
	return writeEntries(out, dto.MapLeaderboardToDTO(leaderboard, domain.LeaderboardCapacity).Entries)
}

// writeEntries renders ranked rows as an aligned table
func writeEntries(out io.Writer, entries []dto.LeaderboardEntryResponse) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tADDRESS\tTOKENS\tLAST TOKEN")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", e.Rank, e.Address, e.TokenCount, e.LastTokenAt.UTC().Format(time.RFC3339))
	}
	return w.Flush()
}
