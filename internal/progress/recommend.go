package progress

import (
	"fmt"
	"sort"
	"time"

	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/domain/srs"
)

// Action identifies a recommendation kind.
type Action string

// Recommendation actions, in the fixed order they are evaluated.
const (
	ActionFocusPractice     Action = "focus_practice"
	ActionPrioritizeReview  Action = "prioritize_review"
	ActionIncreaseFrequency Action = "increase_frequency"
)

// Rule thresholds.
const (
	// overloadDueCount is the due-card count above which the student should
	// stop acquiring and start clearing their review backlog.
	overloadDueCount = 15

	// overloadCiteLimit caps how many competences an overload
	// recommendation cites.
	overloadCiteLimit = 10

	// staleWindowDays and staleTouchedFraction drive the frequency rule: if
	// fewer than this fraction of cards were touched in the window, the
	// student is not practicing often enough.
	staleWindowDays      = 7
	staleTouchedFraction = 0.3
)

// Recommendation is one piece of actionable guidance for a student.
type Recommendation struct {
	Action          Action   `json:"action"`
	Reason          string   `json:"reason"`
	CompetenceCodes []string `json:"competence_codes,omitempty"`
}

// Recommend evaluates the guidance rules over a card set. The rules are
// independent, each contributes at most one entry, and the output order is
// fixed: focus practice, prioritize review, increase frequency.
//
// An empty card set yields no recommendations: there is nothing to guide yet.
func Recommend(cards []*domain.CompetenceCard, now time.Time) []Recommendation {
	if len(cards) == 0 {
		return nil
	}

	var recommendations []Recommendation

	if rec, ok := focusPractice(cards); ok {
		recommendations = append(recommendations, rec)
	}
	if rec, ok := prioritizeReview(cards, now); ok {
		recommendations = append(recommendations, rec)
	}
	if rec, ok := increaseFrequency(cards, now); ok {
		recommendations = append(recommendations, rec)
	}

	return recommendations
}

// focusPractice fires when any competence has sunk into the struggle region.
func focusPractice(cards []*domain.CompetenceCard) (Recommendation, bool) {
	var codes []string
	for _, card := range cards {
		if card.EaseFactor <= srs.StruggleMaxEaseFactor {
			codes = append(codes, card.CompetenceCode)
		}
	}
	if len(codes) == 0 {
		return Recommendation{}, false
	}

	sort.Strings(codes)
	return Recommendation{
		Action:          ActionFocusPractice,
		Reason:          fmt.Sprintf("%d competence(s) need focused practice", len(codes)),
		CompetenceCodes: codes,
	}, true
}

// prioritizeReview fires when the due backlog has grown past the overload
// threshold, citing the earliest-due competences.
func prioritizeReview(cards []*domain.CompetenceCard, now time.Time) (Recommendation, bool) {
	var due []*domain.CompetenceCard
	for _, card := range cards {
		if card.IsDue(now) {
			due = append(due, card)
		}
	}
	if len(due) <= overloadDueCount {
		return Recommendation{}, false
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].CompetenceCode < due[j].CompetenceCode
	})

	limit := overloadCiteLimit
	if len(due) < limit {
		limit = len(due)
	}
	codes := make([]string, 0, limit)
	for _, card := range due[:limit] {
		codes = append(codes, card.CompetenceCode)
	}

	return Recommendation{
		Action:          ActionPrioritizeReview,
		Reason:          fmt.Sprintf("%d reviews are due, clear the oldest first", len(due)),
		CompetenceCodes: codes,
	}, true
}

// increaseFrequency fires when too small a fraction of the card set was
// touched within the recent window.
func increaseFrequency(cards []*domain.CompetenceCard, now time.Time) (Recommendation, bool) {
	windowStart := now.AddDate(0, 0, -staleWindowDays)

	touched := 0
	for _, card := range cards {
		if !card.LastReviewedAt.IsZero() && card.LastReviewedAt.After(windowStart) {
			touched++
		}
	}

	fraction := float64(touched) / float64(len(cards))
	if fraction >= staleTouchedFraction {
		return Recommendation{}, false
	}

	return Recommendation{
		Action: ActionIncreaseFrequency,
		Reason: fmt.Sprintf("only %d of %d competences practiced in the last %d days",
			touched, len(cards), staleWindowDays),
	}, true
}
