package progress

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apprendo/revise/internal/domain"
)

var recommendNow = time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)

func TestRecommendEmptySet(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Recommend(nil, recommendNow))
}

func TestRecommendHealthySet(t *testing.T) {
	t.Parallel()

	card := progressCard("FR-OK", 2.3, 3, 14, 4)
	card.NextReviewAt = recommendNow.AddDate(0, 0, 5)
	card.LastReviewedAt = recommendNow.AddDate(0, 0, -2)

	assert.Empty(t, Recommend([]*domain.CompetenceCard{card}, recommendNow))
}

func TestRecommendFocusPractice(t *testing.T) {
	t.Parallel()

	hardB := progressCard("MATH-B", 1.4, 3, 1, 1)
	hardA := progressCard("MATH-A", 1.6, 2, 1, 2)
	fine := progressCard("FR-OK", 2.4, 3, 10, 4)
	for _, card := range []*domain.CompetenceCard{hardA, hardB, fine} {
		card.NextReviewAt = recommendNow.AddDate(0, 0, 3)
		card.LastReviewedAt = recommendNow.AddDate(0, 0, -1)
	}

	recommendations := Recommend([]*domain.CompetenceCard{hardB, hardA, fine}, recommendNow)

	require.Len(t, recommendations, 1)
	assert.Equal(t, ActionFocusPractice, recommendations[0].Action)
	assert.Equal(t, []string{"MATH-A", "MATH-B"}, recommendations[0].CompetenceCodes,
		"cited codes must be sorted")
}

func TestRecommendPrioritizeReview(t *testing.T) {
	t.Parallel()

	var cards []*domain.CompetenceCard
	for i := 0; i < 16; i++ {
		card := progressCard(fmt.Sprintf("COMP-%02d", i), 2.3, 2, 3, 3)
		card.NextReviewAt = recommendNow.AddDate(0, 0, -i)
		card.LastReviewedAt = recommendNow.AddDate(0, 0, -1)
		cards = append(cards, card)
	}

	recommendations := Recommend(cards, recommendNow)

	require.Len(t, recommendations, 1)
	rec := recommendations[0]
	assert.Equal(t, ActionPrioritizeReview, rec.Action)
	require.Len(t, rec.CompetenceCodes, 10)
	assert.Equal(t, "COMP-15", rec.CompetenceCodes[0], "earliest due card cited first")
}

func TestRecommendPrioritizeReviewThreshold(t *testing.T) {
	t.Parallel()

	// Exactly 15 due cards is still below the overload bar.
	var cards []*domain.CompetenceCard
	for i := 0; i < 15; i++ {
		card := progressCard(fmt.Sprintf("COMP-%02d", i), 2.3, 2, 3, 3)
		card.NextReviewAt = recommendNow
		card.LastReviewedAt = recommendNow.AddDate(0, 0, -1)
		cards = append(cards, card)
	}

	assert.Empty(t, Recommend(cards, recommendNow))
}

func TestRecommendIncreaseFrequency(t *testing.T) {
	t.Parallel()

	// Ten cards, only two touched this week: 0.2 < 0.3.
	var cards []*domain.CompetenceCard
	for i := 0; i < 10; i++ {
		card := progressCard(fmt.Sprintf("COMP-%02d", i), 2.3, 3, 14, 4)
		card.NextReviewAt = recommendNow.AddDate(0, 0, 10)
		if i < 2 {
			card.LastReviewedAt = recommendNow.AddDate(0, 0, -3)
		} else {
			card.LastReviewedAt = recommendNow.AddDate(0, 0, -12)
		}
		cards = append(cards, card)
	}

	recommendations := Recommend(cards, recommendNow)

	require.Len(t, recommendations, 1)
	assert.Equal(t, ActionIncreaseFrequency, recommendations[0].Action)
	assert.Empty(t, recommendations[0].CompetenceCodes)
}

func TestRecommendFixedOrder(t *testing.T) {
	t.Parallel()

	// A neglected backlog of struggling cards trips every rule at once.
	var cards []*domain.CompetenceCard
	for i := 0; i < 16; i++ {
		card := progressCard(fmt.Sprintf("COMP-%02d", i), 1.5, 3, 1, 1)
		card.NextReviewAt = recommendNow.AddDate(0, 0, -1)
		card.LastReviewedAt = recommendNow.AddDate(0, 0, -20)
		cards = append(cards, card)
	}

	recommendations := Recommend(cards, recommendNow)

	require.Len(t, recommendations, 3)
	assert.Equal(t, ActionFocusPractice, recommendations[0].Action)
	assert.Equal(t, ActionPrioritizeReview, recommendations[1].Action)
	assert.Equal(t, ActionIncreaseFrequency, recommendations[2].Action)
}
