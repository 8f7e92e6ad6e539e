package srs

import (
	"errors"
	"time"

	"github.com/apprendo/revise/internal/domain"
)

// Common errors
var (
	ErrNilCard     = errors.New("competence card cannot be nil")
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// Service defines the interface for scheduling algorithm operations.
// Implementations are stateless: every call operates only on its inputs.
type Service interface {
	// EstimateQuality converts one exercise attempt into a 0-5 quality score
	// in half-point steps.
	EstimateQuality(attempt domain.ExerciseAttempt) float64

	// CalculateNextReview computes a card's new scheduling state from a
	// quality score. Quality outside [0, 5] is clamped.
	CalculateNextReview(
		card *domain.CompetenceCard,
		quality float64,
		now time.Time,
	) (*ReviewResult, error)

	// PostponeReview pushes a card's next review forward by a number of days
	// without touching its ease factor or repetition count.
	PostponeReview(
		card *domain.CompetenceCard,
		days int,
		now time.Time,
	) (*domain.CompetenceCard, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// EstimateQuality implements the Service interface.
func (s *defaultService) EstimateQuality(attempt domain.ExerciseAttempt) float64 {
	return estimateQuality(attempt, s.params)
}

// CalculateNextReview implements the Service interface.
func (s *defaultService) CalculateNextReview(
	card *domain.CompetenceCard,
	quality float64,
	now time.Time,
) (*ReviewResult, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	return calculateNextReview(card, quality, now, s.params), nil
}

// PostponeReview implements the Service interface.
func (s *defaultService) PostponeReview(
	card *domain.CompetenceCard,
	days int,
	now time.Time,
) (*domain.CompetenceCard, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	newCard := card.Clone()
	newCard.NextReviewAt = domain.DateOf(card.NextReviewAt).AddDate(0, 0, days)
	newCard.UpdatedAt = now

	return newCard, nil
}
