// Package revision exposes the engine's public operation surface: recording
// attempt outcomes, building the review workload, and managing the lifecycle
// of explicitly scheduled revision records.
package revision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/domain/srs"
	"github.com/apprendo/revise/internal/progress"
	"github.com/apprendo/revise/internal/review"
)

// Common error types for the revision service.
var (
	// ErrRecordNotFound indicates that the revision record does not exist.
	ErrRecordNotFound = errors.New("revision record not found")

	// ErrInvalidTransition indicates an operation on a record that is
	// already in a terminal state.
	ErrInvalidTransition = errors.New("revision record is already closed")

	// ErrInvalidDate indicates a postpone target that is not a future
	// calendar day.
	ErrInvalidDate = errors.New("postpone date must be in the future")

	// ErrInvalidInput indicates malformed attempt data that could not be
	// repaired by clamping.
	ErrInvalidInput = errors.New("invalid input data")
)

// FailureData describes one failed exercise attempt as reported by the
// exercise layer.
type FailureData struct {
	CompetenceCode      string           `json:"competence_code"      validate:"required"`
	ExerciseID          string           `json:"exercise_id"          validate:"required"`
	QuestionID          string           `json:"question_id"          validate:"omitempty"`
	TimeSpentSeconds    float64          `json:"time_spent_seconds"   validate:"omitempty"`
	ErrorType           domain.ErrorType `json:"error_type"           validate:"omitempty,oneof=calcul comprehension attention methode"`
	PerceivedDifficulty *int             `json:"perceived_difficulty" validate:"omitempty,gte=0,lte=5"`
}

// SuccessData describes one successful exercise attempt.
type SuccessData struct {
	CompetenceCode   string  `json:"competence_code"    validate:"required"`
	ExerciseID       string  `json:"exercise_id"        validate:"required"`
	QuestionID       string  `json:"question_id"        validate:"omitempty"`
	TimeSpentSeconds float64 `json:"time_spent_seconds" validate:"omitempty"`
	Score            *int    `json:"score"              validate:"omitempty,gte=0,lte=100"`
	HintsUsed        int     `json:"hints_used"         validate:"omitempty,gte=0"`
}

// Filters narrows the review workload returned by ExercisesToRevise.
type Filters struct {
	// CompetenceCodes restricts the queue to the listed competences.
	// Empty means all.
	CompetenceCodes []string

	// MaxPerDay overrides the configured daily session cap when positive.
	MaxPerDay int
}

// FailureResult is the outcome of recording a failed attempt.
type FailureResult struct {
	// RevisionScheduled is true when the failure left an open revision
	// record behind, freshly created or rescheduled.
	RevisionScheduled bool `json:"revision_scheduled"`

	// Quality is the estimated quality score for the attempt.
	Quality float64 `json:"quality"`

	// Card is the competence card after the scheduling update.
	Card *domain.CompetenceCard `json:"card"`

	// Record is the open revision record for the failed competence.
	Record *domain.RevisionRecord `json:"record"`

	// NextDue lists the student's open records ordered by due date.
	NextDue []*domain.RevisionRecord `json:"next_due"`
}

// SuccessResult is the outcome of recording a successful attempt.
type SuccessResult struct {
	// MasteryReached is true when the success pushed the competence over
	// the mastery thresholds, closing any open revision record.
	MasteryReached bool `json:"mastery_reached"`

	// Quality is the estimated quality score for the attempt.
	Quality float64 `json:"quality"`

	// Card is the competence card after the scheduling update.
	Card *domain.CompetenceCard `json:"card"`

	// Remaining lists the student's still-open records ordered by due date.
	Remaining []*domain.RevisionRecord `json:"remaining"`
}

// CardRepository provides a student's competence card set. Implementations
// own persistence; the engine only reads the full set and writes back
// updated cards.
type CardRepository interface {
	// LoadCards returns all competence cards for a student.
	LoadCards(ctx context.Context, studentID uuid.UUID) ([]*domain.CompetenceCard, error)

	// SaveCard inserts or replaces the card for its (student, competence) key.
	SaveCard(ctx context.Context, card *domain.CompetenceCard) error
}

// RevisionRepository provides a student's revision records.
type RevisionRepository interface {
	// LoadOpenRecords returns the student's open (non-terminal) records.
	LoadOpenRecords(ctx context.Context, studentID uuid.UUID) ([]*domain.RevisionRecord, error)

	// Save inserts or replaces a record by ID.
	Save(ctx context.Context, record *domain.RevisionRecord) error

	// FindByID returns the record with the given ID, or store.ErrRecordNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.RevisionRecord, error)
}

// Service is the public operation surface consumed by the transport layer.
type Service interface {
	// RecordFailure processes a failed attempt: updates the competence
	// card's schedule and creates or reschedules the open revision record
	// for the competence.
	RecordFailure(ctx context.Context, studentID uuid.UUID, data FailureData) (*FailureResult, error)

	// RecordSuccess processes a successful attempt: updates the schedule
	// and closes the open revision record once mastery is reached.
	RecordSuccess(ctx context.Context, studentID uuid.UUID, data SuccessData) (*SuccessResult, error)

	// ExercisesToRevise builds the student's prioritized review queue and
	// seven-day plan.
	ExercisesToRevise(ctx context.Context, studentID uuid.UUID, filters Filters) (*review.Queue, error)

	// RevisionStats aggregates the student's cards and open records over a
	// reporting period in days.
	RevisionStats(ctx context.Context, studentID uuid.UUID, periodDays int) (*progress.RevisionStats, error)

	// Recommendations evaluates the guidance rules over the student's cards.
	Recommendations(ctx context.Context, studentID uuid.UUID) ([]progress.Recommendation, error)

	// PostponeRevision moves an open record's due date to a future day.
	// Returns ErrRecordNotFound, ErrInvalidTransition or ErrInvalidDate.
	PostponeRevision(ctx context.Context, id uuid.UUID, newDate time.Time, reason string) (*domain.RevisionRecord, error)

	// CancelRevision abandons an open record.
	// Returns ErrRecordNotFound or ErrInvalidTransition.
	CancelRevision(ctx context.Context, id uuid.UUID, reason string) (*domain.RevisionRecord, error)
}

// ServiceError wraps errors from the revision service with operation context,
// so consumers can discriminate with errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_failure").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// The mastery gate: reaching it on a success closes the competence's open
// revision record. Shared with the progress analyzer via the srs constants.
func masteryReached(card *domain.CompetenceCard) bool {
	return card.EaseFactor >= srs.MasteryMinEaseFactor &&
		card.RepetitionNumber >= srs.MasteryMinRepetitions
}
