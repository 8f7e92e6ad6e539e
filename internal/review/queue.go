// Package review builds prioritized review queues and forward-looking study
// plans from a student's competence card set.
package review

import (
	"sort"
	"time"

	"github.com/apprendo/revise/internal/domain"
)

// DefaultMaxPerDay caps a daily review session when the caller does not
// provide its own limit. Ten reviews is already a long session for a child.
const DefaultMaxPerDay = 10

// PlanDays is the length of the forward-looking study plan.
const PlanDays = 7

// DayPlan lists the cards scheduled for one calendar day of the plan.
type DayPlan struct {
	Date  time.Time
	Cards []*domain.CompetenceCard
}

// Queue is a student's prioritized review workload: the due list for today,
// the cards coming up within a week, and a fixed seven-day plan for
// presentation layers. All three views use calendar-day comparisons.
type Queue struct {
	// Due holds cards whose next review day has arrived, oldest debt first,
	// truncated to the session cap.
	Due []*domain.CompetenceCard

	// Upcoming holds cards due within the next PlanDays days, ascending.
	// Unlike Due it is not capped: it is informational, not a session.
	Upcoming []*domain.CompetenceCard

	// Plan maps each of the next PlanDays calendar days (offset 0 = today)
	// to the cards scheduled exactly on that day, each day capped
	// independently of the due list.
	Plan []DayPlan
}

// Schedule is the derived study schedule consumed by planning UIs: the due
// list plus the upcoming cards grouped by calendar day.
type Schedule struct {
	Due      []*domain.CompetenceCard
	Upcoming map[string][]*domain.CompetenceCard // keyed by YYYY-MM-DD
}

// BuildQueue turns a student's full card set into a review queue for the
// calendar day of now. maxPerDay values below 1 fall back to DefaultMaxPerDay.
//
// Duplicate (student, competence) entries are deduplicated with the most
// recently updated card winning. Cards that were never scheduled are treated
// as immediately due.
func BuildQueue(cards []*domain.CompetenceCard, maxPerDay int, now time.Time) *Queue {
	if maxPerDay < 1 {
		maxPerDay = DefaultMaxPerDay
	}

	deduped := dedupe(cards)
	sortByNextReview(deduped)

	today := domain.DateOf(now)
	horizon := today.AddDate(0, 0, PlanDays)

	queue := &Queue{
		Due:      make([]*domain.CompetenceCard, 0),
		Upcoming: make([]*domain.CompetenceCard, 0),
		Plan:     make([]DayPlan, PlanDays),
	}

	for _, card := range deduped {
		switch {
		case card.IsDue(now):
			queue.Due = append(queue.Due, card)
		case !domain.DateOf(card.NextReviewAt).After(horizon):
			queue.Upcoming = append(queue.Upcoming, card)
		}
	}

	if len(queue.Due) > maxPerDay {
		queue.Due = queue.Due[:maxPerDay]
	}

	for offset := 0; offset < PlanDays; offset++ {
		day := today.AddDate(0, 0, offset)
		plan := DayPlan{Date: day, Cards: make([]*domain.CompetenceCard, 0)}

		for _, card := range deduped {
			next := card.NextReviewAt
			if next.IsZero() {
				// Never-scheduled cards belong to today's slot.
				next = today
			}
			if !domain.SameDay(next, day) {
				continue
			}
			plan.Cards = append(plan.Cards, card)
			if len(plan.Cards) == maxPerDay {
				break
			}
		}

		queue.Plan[offset] = plan
	}

	return queue
}

// BuildSchedule derives the study schedule view from a queue.
func BuildSchedule(queue *Queue) *Schedule {
	schedule := &Schedule{
		Due:      queue.Due,
		Upcoming: make(map[string][]*domain.CompetenceCard),
	}
	for _, card := range queue.Upcoming {
		key := domain.DateOf(card.NextReviewAt).Format("2006-01-02")
		schedule.Upcoming[key] = append(schedule.Upcoming[key], card)
	}
	return schedule
}

// dedupe collapses duplicate (student, competence) entries, keeping the most
// recently updated card for each key.
func dedupe(cards []*domain.CompetenceCard) []*domain.CompetenceCard {
	type key struct {
		student    string
		competence string
	}

	best := make(map[key]*domain.CompetenceCard, len(cards))
	order := make([]key, 0, len(cards))

	for _, card := range cards {
		if card == nil {
			continue
		}
		k := key{student: card.StudentID.String(), competence: card.CompetenceCode}
		existing, ok := best[k]
		if !ok {
			best[k] = card
			order = append(order, k)
			continue
		}
		if card.UpdatedAt.After(existing.UpdatedAt) {
			best[k] = card
		}
	}

	result := make([]*domain.CompetenceCard, 0, len(order))
	for _, k := range order {
		result = append(result, best[k])
	}
	return result
}

// sortByNextReview orders cards ascending by next review date, oldest debt
// first. Never-scheduled cards (zero time) sort before everything, and ties
// break on competence code so the queue is deterministic.
func sortByNextReview(cards []*domain.CompetenceCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		if !cards[i].NextReviewAt.Equal(cards[j].NextReviewAt) {
			return cards[i].NextReviewAt.Before(cards[j].NextReviewAt)
		}
		return cards[i].CompetenceCode < cards[j].CompetenceCode
	})
}
