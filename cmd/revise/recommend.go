package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRecommendCommand() *cobra.Command {
	var studentFlag string

	command := &cobra.Command{
		Use:   "recommend",
		Short: "Show actionable guidance for a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			studentID, err := parseStudentID(studentFlag)
			if err != nil {
				return err
			}

			recommendations, err := application.service.Recommendations(context.Background(), studentID)
			if err != nil {
				return err
			}

			if len(recommendations) == 0 {
				color.Green("nothing to flag, keep going")
				return nil
			}

			for _, rec := range recommendations {
				color.New(color.FgYellow, color.Bold).Printf("%s: ", rec.Action)
				fmt.Println(rec.Reason)
				if len(rec.CompetenceCodes) > 0 {
					fmt.Printf("  %s\n", strings.Join(rec.CompetenceCodes, ", "))
				}
			}

			return nil
		},
	}

	command.Flags().StringVar(&studentFlag, "student", "", "student UUID (required)")
	_ = command.MarkFlagRequired("student")

	return command
}
