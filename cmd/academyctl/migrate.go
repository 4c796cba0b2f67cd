package main

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/academy_booking/internal/app"
	"github.com/Freeeeeet/academy_booking/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd, func(ctx context.Context, m *app.Migrator) error {
					return m.Run(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd, func(ctx context.Context, m *app.Migrator) error {
					return m.Down(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd, func(ctx context.Context, m *app.Migrator) error {
					version, err := m.Version(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
					return nil
				})
			},
		},
	)

	return migrateCmd
}

func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, m *app.Migrator) error) error {
	return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
		m, err := app.NewMigrator(e.pool, migrations.FS, e.logger)
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(ctx, m)
	})
}
