package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPostponeCommand() *cobra.Command {
	var dateFlag string
	var reason string

	command := &cobra.Command{
		Use:   "postpone <record-id>",
		Short: "Move a revision record to a future date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid record ID %q: %w", args[0], err)
			}

			newDate, err := time.ParseInLocation("2006-01-02", dateFlag, application.location)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateFlag, err)
			}

			record, err := application.service.PostponeRevision(context.Background(), id, newDate, reason)
			if err != nil {
				return err
			}

			color.Green("revision for %s postponed to %s",
				record.CompetenceCode, record.DueDate.Format("2006-01-02"))
			return nil
		},
	}

	command.Flags().StringVar(&dateFlag, "date", "", "new due date, YYYY-MM-DD (required)")
	command.Flags().StringVar(&reason, "reason", "", "why the revision is postponed")
	_ = command.MarkFlagRequired("date")

	return command
}

func newCancelCommand() *cobra.Command {
	var reason string

	command := &cobra.Command{
		Use:   "cancel <record-id>",
		Short: "Cancel a revision record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid record ID %q: %w", args[0], err)
			}

			record, err := application.service.CancelRevision(context.Background(), id, reason)
			if err != nil {
				return err
			}

			color.Yellow("revision for %s cancelled", record.CompetenceCode)
			return nil
		},
	}

	command.Flags().StringVar(&reason, "reason", "", "why the revision is cancelled")

	return command
}
