package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rosterFile формат файла для roster import
//
//	students:
//	  - name: 홍길동
//	    phone: 010-1234-5678
//	    seat: 1
type rosterFile struct {
	Students []model.AllowedStudent `yaml:"students"`
}

func newRosterCmd() *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the list of phone numbers allowed to register",
	}

	var (
		name  string
		phone string
		seat  int
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add one student to the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoster(cmd, func(ctx context.Context, roster *service.RosterService) error {
				student, err := roster.Add(ctx, model.AllowedStudent{Name: name, PhoneNumber: phone, SeatNumber: seat})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s), seat %d\n", student.Name, student.PhoneNumber, student.SeatNumber)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "student name")
	addCmd.Flags().StringVar(&phone, "phone", "", "phone number, dashes are allowed")
	addCmd.Flags().IntVar(&seat, "seat", 0, "seat number")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("phone")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoster(cmd, func(ctx context.Context, roster *service.RosterService) error {
				students, err := roster.List(ctx)
				if err != nil {
					return err
				}
				return printRoster(cmd.OutOrStdout(), students)
			})
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Insert or update roster entries from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open roster file: %w", err)
			}
			defer f.Close()

			students, err := parseRosterFile(f)
			if err != nil {
				return err
			}

			return withRoster(cmd, func(ctx context.Context, roster *service.RosterService) error {
				n, err := roster.Import(ctx, students)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d students\n", n)
				return nil
			})
		},
	}

	rosterCmd.AddCommand(addCmd, listCmd, importCmd)
	return rosterCmd
}

func withRoster(cmd *cobra.Command, fn func(ctx context.Context, roster *service.RosterService) error) error {
	return withEnv(cmd.Context(), func(ctx context.Context, e *env) error {
		return fn(ctx, service.NewRosterService(e.repos.Tx, e.repos.AllowedStudents, e.logger))
	})
}

func parseRosterFile(r io.Reader) ([]model.AllowedStudent, error) {
	var file rosterFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	if len(file.Students) == 0 {
		return nil, fmt.Errorf("roster file has no students")
	}
	return file.Students, nil
}

func printRoster(w io.Writer, students []*model.AllowedStudent) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEAT\tNAME\tPHONE")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.SeatNumber, s.Name, s.PhoneNumber)
	}
	return tw.Flush()
}
