package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/service/revision"
)

func newRecordCommand() *cobra.Command {
	var (
		studentFlag string
		competence  string
		exerciseID  string
		correct     bool
		timeSpent   float64
		hints       int
		score       int
		difficulty  int
		errorType   string
	)

	command := &cobra.Command{
		Use:   "record",
		Short: "Record one exercise attempt and reschedule the competence",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			studentID, err := parseStudentID(studentFlag)
			if err != nil {
				return err
			}

			ctx := context.Background()

			if correct {
				data := revision.SuccessData{
					CompetenceCode:   competence,
					ExerciseID:       exerciseID,
					TimeSpentSeconds: timeSpent,
					HintsUsed:        hints,
				}
				if cmd.Flags().Changed("score") {
					data.Score = &score
				}

				result, err := application.service.RecordSuccess(ctx, studentID, data)
				if err != nil {
					return err
				}

				color.Green("quality %.1f, next review %s (interval %dd, ease %.2f)",
					result.Quality,
					result.Card.NextReviewAt.Format("2006-01-02"),
					result.Card.IntervalDays,
					result.Card.EaseFactor)
				if result.MasteryReached {
					color.New(color.FgGreen, color.Bold).Println("mastery reached, revision closed")
				}
				return nil
			}

			data := revision.FailureData{
				CompetenceCode:   competence,
				ExerciseID:       exerciseID,
				TimeSpentSeconds: timeSpent,
			}
			if errorType != "" {
				data.ErrorType = domain.ErrorType(errorType)
				if !data.ErrorType.Valid() {
					return fmt.Errorf("%w: %q", domain.ErrInvalidErrorType, errorType)
				}
			}
			if cmd.Flags().Changed("difficulty") {
				data.PerceivedDifficulty = &difficulty
			}

			result, err := application.service.RecordFailure(ctx, studentID, data)
			if err != nil {
				return err
			}

			color.Yellow("quality %.1f, revision #%d due %s (priority %d)",
				result.Quality,
				result.Record.FailureCount,
				result.Record.DueDate.Format("2006-01-02"),
				result.Record.Priority)
			fmt.Printf("%d open revision(s) for this student\n", len(result.NextDue))
			return nil
		},
	}

	command.Flags().StringVar(&studentFlag, "student", "", "student UUID (required)")
	command.Flags().StringVar(&competence, "competence", "", "competence code (required)")
	command.Flags().StringVar(&exerciseID, "exercise", "", "exercise ID (required)")
	command.Flags().BoolVar(&correct, "correct", false, "the attempt was correct")
	command.Flags().Float64Var(&timeSpent, "time", 0, "time spent in seconds")
	command.Flags().IntVar(&hints, "hints", 0, "hints used (successes only)")
	command.Flags().IntVar(&score, "score", 0, "score 0-100 (successes only)")
	command.Flags().IntVar(&difficulty, "difficulty", 0, "perceived difficulty 0-5 (failures only)")
	command.Flags().StringVar(&errorType, "error-type", "", "failure category: calcul, comprehension, attention, methode")
	_ = command.MarkFlagRequired("student")
	_ = command.MarkFlagRequired("competence")
	_ = command.MarkFlagRequired("exercise")

	return command
}
