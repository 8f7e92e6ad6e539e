package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewCompetenceCard(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	card, err := NewCompetenceCard(uuid.New(), "CM1.FRAC.CMP", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if card.EaseFactor != 2.5 {
		t.Errorf("expected initial ease factor 2.5, got %v", card.EaseFactor)
	}
	if card.RepetitionNumber != 0 || card.IntervalDays != 0 {
		t.Error("new cards must start with zero repetitions and interval")
	}
	if !card.IsDue(now) {
		t.Error("new cards must be due immediately")
	}

	t.Run("requires a student", func(t *testing.T) {
		_, err := NewCompetenceCard(uuid.Nil, "CM1.FRAC.CMP", now)
		if !errors.Is(err, ErrEmptyCardStudentID) {
			t.Errorf("expected ErrEmptyCardStudentID, got %v", err)
		}
	})

	t.Run("requires a competence code", func(t *testing.T) {
		_, err := NewCompetenceCard(uuid.New(), "", now)
		if !errors.Is(err, ErrEmptyCompetenceCode) {
			t.Errorf("expected ErrEmptyCompetenceCode, got %v", err)
		}
	})
}

func TestCompetenceCardValidate(t *testing.T) {
	t.Parallel()
	now := time.Now()

	valid := func(t *testing.T) *CompetenceCard {
		card, err := NewCompetenceCard(uuid.New(), "CM1.FRAC.CMP", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return card
	}

	t.Run("negative interval", func(t *testing.T) {
		card := valid(t)
		card.IntervalDays = -1
		if err := card.Validate(); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("expected ErrInvalidInterval, got %v", err)
		}
	})

	t.Run("negative repetitions", func(t *testing.T) {
		card := valid(t)
		card.RepetitionNumber = -1
		if err := card.Validate(); !errors.Is(err, ErrInvalidRepetitions) {
			t.Errorf("expected ErrInvalidRepetitions, got %v", err)
		}
	})

	t.Run("ease factor at or below 1.0", func(t *testing.T) {
		card := valid(t)
		card.EaseFactor = 1.0
		if err := card.Validate(); !errors.Is(err, ErrInvalidEaseFactor) {
			t.Errorf("expected ErrInvalidEaseFactor, got %v", err)
		}
	})
}

func TestCompetenceCardDueness(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		nextReviewAt    time.Time
		expectedDue     bool
		expectedOverdue int
	}{
		{"never scheduled", time.Time{}, true, 0},
		{"due later the same day", now.Add(10 * time.Hour), true, 0},
		{"due tomorrow", now.AddDate(0, 0, 1), false, 0},
		{"three days overdue", now.AddDate(0, 0, -3), true, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := &CompetenceCard{NextReviewAt: tc.nextReviewAt}

			if got := card.IsDue(now); got != tc.expectedDue {
				t.Errorf("IsDue: expected %v, got %v", tc.expectedDue, got)
			}
			if got := card.OverdueDays(now); got != tc.expectedOverdue {
				t.Errorf("OverdueDays: expected %d, got %d", tc.expectedOverdue, got)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	a := time.Date(2026, 3, 10, 23, 30, 0, 0, paris)
	b := time.Date(2026, 3, 11, 0, 15, 0, 0, paris)

	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("expected 1 calendar day across midnight, got %d", got)
	}
	if got := DaysBetween(b, a); got != -1 {
		t.Errorf("expected -1 going backwards, got %d", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("expected 0 for the same instant, got %d", got)
	}
}
