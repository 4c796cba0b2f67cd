package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/academy_booking/internal/app"
	"github.com/Freeeeeet/academy_booking/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "academyctl",
		Short:         "Operator tool for the academy reservation backend",
		Long:          `Runs database migrations, seeds reference data and manages the student roster.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newRosterCmd(),
	)

	return rootCmd
}

// env открытые ресурсы одной команды
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
	repos  *app.Repositories
}

// withEnv загружает конфиг, подключается к базе и закрывает всё после fn
func withEnv(ctx context.Context, fn func(ctx context.Context, e *env) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pool, err := app.OpenPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, &env{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		repos:  app.NewRepositories(pool),
	})
}
