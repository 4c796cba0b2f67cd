package main

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default roster, weekly schedule and teacher account into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
				seed := service.NewSeedService(e.repos.Users, e.repos.AllowedStudents, e.repos.Schedules, service.SeedConfig{
					TeacherPhone:    e.cfg.SeedTeacherPhone,
					TeacherPassword: e.cfg.SeedTeacherPassword,
					TeacherName:     e.cfg.SeedTeacherName,
				}, e.logger)
				if err := seed.EnsureSeedData(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "seed data is in place")
				return nil
			})
		},
	}
}
