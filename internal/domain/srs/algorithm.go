package srs

import (
	"math"
	"time"

	"github.com/apprendo/revise/internal/domain"
)

// DifficultyLabel summarizes how hard a competence currently is for the
// student, derived from the ease factor and the repetition count.
type DifficultyLabel string

// Possible difficulty labels.
const (
	DifficultyBeginner DifficultyLabel = "beginner"
	DifficultyEasy     DifficultyLabel = "easy"
	DifficultyMedium   DifficultyLabel = "medium"
	DifficultyHard     DifficultyLabel = "hard"
	DifficultyVeryHard DifficultyLabel = "very_hard"
)

// ReviewResult is the outcome of scheduling one review.
type ReviewResult struct {
	// Card is a new CompetenceCard with the updated scheduling state. The
	// input card is never modified.
	Card *domain.CompetenceCard

	// Quality is the clamped quality score the schedule was computed from.
	Quality float64

	// ShouldReviewNow is true when the card had no prior schedule or its
	// prior next-review day had already arrived.
	ShouldReviewNow bool

	// DifficultyLabel describes the card's difficulty after the update.
	DifficultyLabel DifficultyLabel
}

// calculateSuccessEaseFactor applies the canonical SM-2 ease factor update
// for a successful review:
//
//	EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// The result is clamped between params.MinEaseFactor and params.MaxEaseFactor.
func calculateSuccessEaseFactor(currentEF, quality float64, params *Params) float64 {
	newEF := currentEF + (0.1 - (5-quality)*(0.08+(5-quality)*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateFailureEaseFactor applies the failure penalty to the ease factor.
// Gentler than canonical SM-2, which drops the ease factor much faster.
func calculateFailureEaseFactor(currentEF float64, params *Params) float64 {
	newEF := currentEF - params.FailureEasePenalty
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	return newEF
}

// calculateSuccessInterval determines the raw interval in days after a
// success, before tier capping. The first two successful repetitions use
// fixed intervals; later ones grow by the updated ease factor.
func calculateSuccessInterval(previousInterval, newRepetition int, newEF float64, params *Params) int {
	switch newRepetition {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		interval := int(math.Round(float64(previousInterval) * newEF))
		if interval < 1 {
			interval = 1
		}
		return interval
	}
}

// calculateNextReview computes a card's next scheduling state from a quality
// score. It follows the immutable update pattern: the input card is copied,
// never modified.
//
// Success (quality at or above the success threshold) advances the
// repetition number, grows the interval and applies the canonical SM-2 ease
// factor update. Failure partially walks the repetition number back (one
// step, never below 0, not the canonical hard reset), resets the interval to
// one day and applies a gentle ease penalty. Either way the raw interval is
// then capped by repetition tier so a young learner is never scheduled too
// far ahead, and the next review date is computed with date-only arithmetic.
func calculateNextReview(card *domain.CompetenceCard, quality float64, now time.Time, params *Params) *ReviewResult {
	if quality < 0 || math.IsNaN(quality) {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	shouldReviewNow := card.IsDue(now)

	newCard := card.Clone()
	newCard.LastQuality = quality
	newCard.LastReviewedAt = now
	newCard.UpdatedAt = now

	var interval int
	if quality >= params.SuccessThreshold {
		newCard.RepetitionNumber = card.RepetitionNumber + 1
		newCard.EaseFactor = calculateSuccessEaseFactor(card.EaseFactor, quality, params)
		interval = calculateSuccessInterval(card.IntervalDays, newCard.RepetitionNumber, newCard.EaseFactor, params)
	} else {
		newCard.RepetitionNumber = card.RepetitionNumber - 1
		if newCard.RepetitionNumber < 0 {
			newCard.RepetitionNumber = 0
		}
		newCard.EaseFactor = calculateFailureEaseFactor(card.EaseFactor, params)
		interval = params.FirstInterval
	}

	if maxDays := params.capForRepetition(newCard.RepetitionNumber); interval > maxDays {
		interval = maxDays
	}

	newCard.EaseFactor = round2(newCard.EaseFactor)
	newCard.IntervalDays = interval
	newCard.NextReviewAt = domain.DateOf(now).AddDate(0, 0, interval)

	return &ReviewResult{
		Card:            newCard,
		Quality:         quality,
		ShouldReviewNow: shouldReviewNow,
		DifficultyLabel: difficultyLabel(newCard.RepetitionNumber, newCard.EaseFactor),
	}
}

// difficultyLabel maps a card's state to a difficulty label. Cards with at
// most one successful repetition are always "beginner" regardless of ease.
func difficultyLabel(repetition int, easeFactor float64) DifficultyLabel {
	if repetition <= 1 {
		return DifficultyBeginner
	}
	switch {
	case easeFactor >= 2.3:
		return DifficultyEasy
	case easeFactor >= 2.0:
		return DifficultyMedium
	case easeFactor >= 1.6:
		return DifficultyHard
	default:
		return DifficultyVeryHard
	}
}
