package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"buget/internal/cli"
	"buget/internal/config"
	"buget/internal/core"
	"buget/internal/log"
	"buget/internal/services"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	backend  string
	dbPath   string
	file     string
	logLevel string
	today    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "bugetctl",
		Short:         "Personal budget ledger in lei",
		Long:          "bugetctl records income, expenses and transfers between budgets, and reports balances and totals.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", "", "data backend (sqlite, file, memory); defaults to DATA_BACKEND")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path; defaults to SQLITE_DB_PATH")
	flags.StringVar(&opts.file, "file", "", "snapshot file path; defaults to SNAPSHOT_FILE")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.today, "today", "", "override today's date (YYYY-MM-DD)")

	cmd.AddCommand(addCmd(opts))
	cmd.AddCommand(listCmd(opts))
	cmd.AddCommand(balancesCmd(opts))
	cmd.AddCommand(reportCmd(opts))
	cmd.AddCommand(budgetsCmd(opts))
	cmd.AddCommand(categoriesCmd(opts))
	cmd.AddCommand(exportCmd(opts))
	cmd.AddCommand(importCmd(opts))
	cmd.AddCommand(backupStatusCmd(opts))
	return cmd
}

func main() {
	cli.LoadEnvFile()

	logger := log.New(log.Config{Output: os.Stderr})
	ctx, stop := cli.GracefulShutdown(context.Background(), logger)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// session is an opened ledger plus what is needed to release it.
type session struct {
	svc   *services.LedgerService
	today core.Date
	close func()
}

// openSession loads the configured ledger. Flags override the environment.
func openSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	ctx := cmd.Context()
	logger := cli.SetupLogger(opts.logLevel, log.ComponentCLI, cmd.ErrOrStderr())

	cfg := config.Load()
	if opts.backend != "" {
		cfg.DataBackend = opts.backend
	}
	if opts.dbPath != "" {
		cfg.SQLiteDBPath = opts.dbPath
	}
	if opts.file != "" {
		cfg.SnapshotFile = opts.file
	}
	cfg.LogLevel = opts.logLevel
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	today := core.Today()
	if opts.today != "" {
		var err error
		if today, err = core.ParseDate(opts.today); err != nil {
			return nil, fmt.Errorf("--today: %w", err)
		}
	}

	store, err := cli.OpenBackend(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	svc := services.NewLedgerService(store.Store, nil, logger)
	if err := svc.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return &session{
		svc:   svc,
		today: today,
		close: func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close backend", log.FieldError, err)
			}
		},
	}, nil
}
