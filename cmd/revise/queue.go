package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apprendo/revise/internal/service/revision"
)

func newQueueCommand() *cobra.Command {
	var studentFlag string
	var limit int

	command := &cobra.Command{
		Use:   "queue",
		Short: "Show a student's due reviews and seven-day plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			studentID, err := parseStudentID(studentFlag)
			if err != nil {
				return err
			}

			queue, err := application.service.ExercisesToRevise(
				context.Background(),
				studentID,
				revision.Filters{MaxPerDay: limit},
			)
			if err != nil {
				return err
			}

			dueTitle := color.New(color.FgRed, color.Bold)
			dueTitle.Printf("Due today (%d)\n", len(queue.Due))
			for _, card := range queue.Due {
				fmt.Printf("  %-20s ease=%.2f interval=%dd overdue=%dd\n",
					card.CompetenceCode, card.EaseFactor, card.IntervalDays,
					card.OverdueDays(queue.Plan[0].Date))
			}

			planTitle := color.New(color.FgCyan, color.Bold)
			planTitle.Println("\nNext 7 days")
			for _, day := range queue.Plan {
				if len(day.Cards) == 0 {
					continue
				}
				fmt.Printf("  %s:", day.Date.Format("Mon 02 Jan"))
				for _, card := range day.Cards {
					fmt.Printf(" %s", card.CompetenceCode)
				}
				fmt.Println()
			}

			return nil
		},
	}

	command.Flags().StringVar(&studentFlag, "student", "", "student UUID (required)")
	command.Flags().IntVar(&limit, "limit", 0, "override the daily session cap")
	_ = command.MarkFlagRequired("student")

	return command
}
