package progress

import (
	"time"

	"github.com/apprendo/revise/internal/domain"
)

// RevisionStats combines the card-set summary with the state of a student's
// open revision records over a reporting period.
type RevisionStats struct {
	Summary Summary `json:"summary"`

	// PeriodDays is the reporting window ending at the time of the query.
	PeriodDays int `json:"period_days"`

	// OpenRevisions counts all records still awaiting action.
	OpenRevisions int `json:"open_revisions"`

	// OverdueRevisions counts open records whose due day has passed.
	OverdueRevisions int `json:"overdue_revisions"`

	// DueInPeriod counts open records falling due within the period ahead.
	DueInPeriod int `json:"due_in_period"`

	// ReviewedInPeriod counts cards reviewed within the period behind.
	ReviewedInPeriod int `json:"reviewed_in_period"`
}

// Stats computes revision statistics for a reporting period of periodDays.
// Periods below one day are treated as one week.
func Stats(cards []*domain.CompetenceCard, records []*domain.RevisionRecord, periodDays int, now time.Time) RevisionStats {
	if periodDays < 1 {
		periodDays = 7
	}

	stats := RevisionStats{
		Summary:    Analyze(cards),
		PeriodDays: periodDays,
	}

	periodStart := now.AddDate(0, 0, -periodDays)
	periodEnd := domain.DateOf(now).AddDate(0, 0, periodDays)

	for _, record := range records {
		if !record.IsOpen() {
			continue
		}
		stats.OpenRevisions++
		if record.EffectiveStatus(now) == domain.RevisionStatusDue {
			stats.OverdueRevisions++
		}
		if !domain.DateOf(record.DueDate).After(periodEnd) {
			stats.DueInPeriod++
		}
	}

	for _, card := range cards {
		if !card.LastReviewedAt.IsZero() && card.LastReviewedAt.After(periodStart) {
			stats.ReviewedInPeriod++
		}
	}

	return stats
}
