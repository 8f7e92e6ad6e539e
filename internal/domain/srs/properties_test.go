package srs

import (
	"math/rand"
	"testing"
	"time"
)

// The properties here hold for any quality sequence, not just the literal
// scenarios: they guard the invariants parents of the algorithm care about.

func TestEaseFactorStaysWithinBounds(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	rng := rand.New(rand.NewSource(42))

	card := testCard(t, params.InitialEaseFactor, 0, 0)
	now := testNow

	for i := 0; i < 500; i++ {
		quality := float64(rng.Intn(11)) / 2 // 0, 0.5, ..., 5
		result := calculateNextReview(card, quality, now, params)
		card = result.Card

		if card.EaseFactor < params.MinEaseFactor || card.EaseFactor > params.MaxEaseFactor {
			t.Fatalf("ease factor %v out of bounds after %d reviews (quality %v)",
				card.EaseFactor, i+1, quality)
		}
		if card.RepetitionNumber < 0 {
			t.Fatalf("repetition number went negative after %d reviews", i+1)
		}
		if card.IntervalDays < 1 || card.IntervalDays > 30 {
			t.Fatalf("interval %d outside [1, 30] after %d reviews", card.IntervalDays, i+1)
		}
		now = card.NextReviewAt
	}
}

func TestRepetitionMonotonicity(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	for repetition := 0; repetition <= 10; repetition++ {
		card := testCard(t, 2.0, repetition, 5)

		for quality := 0.0; quality <= 5; quality += 0.5 {
			result := calculateNextReview(card, quality, testNow, params)

			if quality >= params.SuccessThreshold {
				if result.Card.RepetitionNumber != repetition+1 {
					t.Errorf("success at quality %v: expected repetition %d, got %d",
						quality, repetition+1, result.Card.RepetitionNumber)
				}
			} else {
				if result.Card.RepetitionNumber > repetition {
					t.Errorf("failure at quality %v increased repetition %d -> %d",
						quality, repetition, result.Card.RepetitionNumber)
				}
				if result.Card.RepetitionNumber < 0 {
					t.Errorf("failure at quality %v pushed repetition below zero", quality)
				}
			}
		}
	}
}

func TestCalculateNextReviewDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	card := testCard(t, 2.5, 2, 3)
	original := *card

	_ = calculateNextReview(card, 4, testNow, params)

	if *card != original {
		t.Errorf("input card was mutated: %+v != %+v", *card, original)
	}
}

func TestDifficultyLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		repetition int
		easeFactor float64
		expected   DifficultyLabel
	}{
		{0, 2.5, DifficultyBeginner},
		{1, 1.3, DifficultyBeginner}, // low repetition wins over ease
		{2, 2.3, DifficultyEasy},
		{2, 2.29, DifficultyMedium},
		{5, 2.0, DifficultyMedium},
		{5, 1.99, DifficultyHard},
		{3, 1.6, DifficultyHard},
		{3, 1.59, DifficultyVeryHard},
		{10, 1.3, DifficultyVeryHard},
	}

	for _, tc := range testCases {
		if got := difficultyLabel(tc.repetition, tc.easeFactor); got != tc.expected {
			t.Errorf("difficultyLabel(%d, %v): expected %q, got %q",
				tc.repetition, tc.easeFactor, tc.expected, got)
		}
	}
}

func TestShouldReviewNow(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	t.Run("card scheduled in the future is not due", func(t *testing.T) {
		card := testCard(t, 2.5, 0, 0)
		card.NextReviewAt = testNow.AddDate(0, 0, 3)

		result := calculateNextReview(card, 4, testNow, params)
		if result.ShouldReviewNow {
			t.Error("card scheduled in the future should not be flagged for review")
		}
	})

	t.Run("overdue card should be reviewed", func(t *testing.T) {
		card := testCard(t, 2.5, 0, 0)
		card.NextReviewAt = testNow.AddDate(0, 0, -2)

		result := calculateNextReview(card, 4, testNow, params)
		if !result.ShouldReviewNow {
			t.Error("overdue card should be flagged for review")
		}
	})

	t.Run("card due later today counts as due", func(t *testing.T) {
		card := testCard(t, 2.5, 0, 0)
		card.NextReviewAt = testNow.Add(5 * time.Hour) // same calendar day

		result := calculateNextReview(card, 4, testNow, params)
		if !result.ShouldReviewNow {
			t.Error("same-day card should be flagged for review")
		}
	})
}
