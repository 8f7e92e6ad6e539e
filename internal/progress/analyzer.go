// Package progress aggregates a student's competence card set into mastery
// buckets, summary statistics and actionable recommendations.
package progress

import (
	"math"

	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/domain/srs"
)

// successQualityFloor is the last-quality bar a card must clear, together
// with a healthy ease factor, to count toward the success rate.
const successQualityFloor = 3

// Summary aggregates a card set into mastery buckets and averages.
type Summary struct {
	TotalCards          int     `json:"total_cards"`
	Mastered            int     `json:"mastered"`
	Learning            int     `json:"learning"`
	Difficult           int     `json:"difficult"`
	AverageEaseFactor   float64 `json:"average_ease_factor"`   // 2 decimals
	AverageIntervalDays float64 `json:"average_interval_days"` // 1 decimal
	SuccessRate         float64 `json:"success_rate"`          // 0-1, 2 decimals
}

// Analyze buckets a card set by mastery state and computes the averages.
//
// A card is mastered when its ease factor and repetition count both clear the
// mastery thresholds, difficult when its ease factor has sunk to the struggle
// region, and learning otherwise. An empty set reports zeros except for the
// average ease factor, which defaults to the initial 2.5 so a brand-new
// student does not look like a struggling one.
func Analyze(cards []*domain.CompetenceCard) Summary {
	if len(cards) == 0 {
		return Summary{AverageEaseFactor: 2.5}
	}

	summary := Summary{TotalCards: len(cards)}

	var easeSum, intervalSum float64
	successes := 0

	for _, card := range cards {
		easeSum += card.EaseFactor
		intervalSum += float64(card.IntervalDays)

		switch {
		case isMastered(card):
			summary.Mastered++
		case card.EaseFactor <= srs.StruggleMaxEaseFactor:
			summary.Difficult++
		default:
			summary.Learning++
		}

		if card.EaseFactor >= 2.0 && card.LastQuality >= successQualityFloor {
			successes++
		}
	}

	total := float64(summary.TotalCards)
	summary.AverageEaseFactor = roundTo(easeSum/total, 2)
	summary.AverageIntervalDays = roundTo(intervalSum/total, 1)
	summary.SuccessRate = roundTo(float64(successes)/total, 2)

	return summary
}

// isMastered reports whether a card has reached durable mastery.
func isMastered(card *domain.CompetenceCard) bool {
	return card.EaseFactor >= srs.MasteryMinEaseFactor &&
		card.RepetitionNumber >= srs.MasteryMinRepetitions
}

// roundTo rounds half-up to the given number of decimal places.
func roundTo(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Floor(x*shift+0.5) / shift
}
