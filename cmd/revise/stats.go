package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	var studentFlag string
	var periodDays int

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show a student's progress and revision statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			studentID, err := parseStudentID(studentFlag)
			if err != nil {
				return err
			}

			stats, err := application.service.RevisionStats(context.Background(), studentID, periodDays)
			if err != nil {
				return err
			}

			title := color.New(color.FgCyan, color.Bold)
			title.Printf("Progress (%d competences)\n", stats.Summary.TotalCards)
			fmt.Printf("  mastered:  %d\n", stats.Summary.Mastered)
			fmt.Printf("  learning:  %d\n", stats.Summary.Learning)
			fmt.Printf("  difficult: %d\n", stats.Summary.Difficult)
			fmt.Printf("  avg ease:  %.2f\n", stats.Summary.AverageEaseFactor)
			fmt.Printf("  avg interval: %.1f days\n", stats.Summary.AverageIntervalDays)
			fmt.Printf("  success rate: %.0f%%\n", stats.Summary.SuccessRate*100)

			title.Printf("\nRevisions (last %d days)\n", stats.PeriodDays)
			fmt.Printf("  open:    %d\n", stats.OpenRevisions)
			fmt.Printf("  overdue: %d\n", stats.OverdueRevisions)
			fmt.Printf("  due in period: %d\n", stats.DueInPeriod)
			fmt.Printf("  reviewed in period: %d\n", stats.ReviewedInPeriod)

			return nil
		},
	}

	command.Flags().StringVar(&studentFlag, "student", "", "student UUID (required)")
	command.Flags().IntVar(&periodDays, "period", 7, "reporting period in days")
	_ = command.MarkFlagRequired("student")

	return command
}
