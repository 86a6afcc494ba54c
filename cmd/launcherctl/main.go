package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/config"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/metrics"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

func main() {
	root := &cobra.Command{
		Use:          "launcherctl",
		Short:        "Token launcher admin CLI",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("env", "config/", "path to environment files")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Inspect activity counters",
	}
	statsShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print global counters, or the counters of one address",
		RunE:  runStatsShow,
	}
	statsShowCmd.Flags().String("address", "", "wallet address (global counters when empty)")
	statsCmd.AddCommand(statsShowCmd)
	root.AddCommand(statsCmd)

	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Inspect or repair the top creators leaderboard",
	}
	leaderboardShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the ranked creators",
		RunE:  runLeaderboardShow,
	}
	leaderboardShowCmd.Flags().Int("limit", domain.LeaderboardCapacity, "number of entries to print")
	leaderboardRebuildCmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Recount the leaderboard from the tokens table",
		RunE:  runLeaderboardRebuild,
	}
	leaderboardCmd.AddCommand(leaderboardShowCmd, leaderboardRebuildCmd)
	root.AddCommand(leaderboardCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore loads the CLI config, initializes logging and connects to the database
func openStore(cmd *cobra.Command) (store.Store, func(), error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	envPath, _ := cmd.Flags().GetString("env")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.LoadCLIConfig(cfgFile, envPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Initialize(logger.Config{Debug: debug || cfg.Debug}); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		return nil, nil, err
	}
	logger.Debug("Connected to database", zap.String("host", cfg.Database.Host))

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		logger.Flush(time.Second)
	}
	return store.NewPGStore(db), cleanup, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runStatsShow(cmd *cobra.Command, _ []string) error {
	address, _ := cmd.Flags().GetString("address")

	st, cleanup, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := commandContext()
	defer stop()

	return showStats(ctx, st, adapter.NewJSON(), address, cmd.OutOrStdout())
}

func runLeaderboardShow(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	st, cleanup, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := commandContext()
	defer stop()

	return showLeaderboard(ctx, st, limit, cmd.OutOrStdout())
}

func runLeaderboardRebuild(cmd *cobra.Command, _ []string) error {
	st, cleanup, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := commandContext()
	defer stop()

	updater := triggers.NewLeaderboardUpdater(st, adapter.NewClock(), metrics.NewNop())
	return rebuildLeaderboard(ctx, updater, cmd.OutOrStdout())
}
