package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for CompetenceCard
var (
	ErrEmptyCardStudentID  = errors.New("competence card student ID cannot be empty")
	ErrEmptyCompetenceCode = errors.New("competence code cannot be empty")
	ErrInvalidInterval     = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor   = errors.New("ease factor must be greater than 1.0")
	ErrInvalidRepetitions  = errors.New("repetition number must be greater than or equal to 0")
)

// CompetenceCard tracks a student's spaced repetition state for a single
// curriculum competence. It is the durable learning-state record: created on
// the first attempt at a competence and mutated on every subsequent attempt,
// never deleted.
type CompetenceCard struct {
	StudentID        uuid.UUID `json:"student_id"        yaml:"student_id"`
	CompetenceCode   string    `json:"competence_code"   yaml:"competence_code"`
	EaseFactor       float64   `json:"ease_factor"       yaml:"ease_factor"`       // 1.3-2.5
	RepetitionNumber int       `json:"repetition_number" yaml:"repetition_number"` // successful reviews, never below 0
	IntervalDays     int       `json:"interval_days"     yaml:"interval_days"`
	LastReviewedAt   time.Time `json:"last_reviewed_at"  yaml:"last_reviewed_at"`
	NextReviewAt     time.Time `json:"next_review_at"    yaml:"next_review_at"`
	LastQuality      float64   `json:"last_quality"      yaml:"last_quality"` // 0-5 in half-point steps
	CreatedAt        time.Time `json:"created_at"        yaml:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"        yaml:"updated_at"`
}

// NewCompetenceCard creates the learning-state record for a student's first
// attempt at a competence. New cards start at the default ease factor and are
// available for review immediately.
func NewCompetenceCard(studentID uuid.UUID, competenceCode string, now time.Time) (*CompetenceCard, error) {
	card := &CompetenceCard{
		StudentID:        studentID,
		CompetenceCode:   competenceCode,
		EaseFactor:       2.5,
		RepetitionNumber: 0,
		IntervalDays:     0,
		LastReviewedAt:   time.Time{},
		NextReviewAt:     now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the CompetenceCard has valid data.
// Returns an error if any field fails validation.
func (c *CompetenceCard) Validate() error {
	if c.StudentID == uuid.Nil {
		return ErrEmptyCardStudentID
	}

	if c.CompetenceCode == "" {
		return ErrEmptyCompetenceCode
	}

	if c.IntervalDays < 0 {
		return ErrInvalidInterval
	}

	if c.RepetitionNumber < 0 {
		return ErrInvalidRepetitions
	}

	if c.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	return nil
}

// Clone returns a deep copy of the card. The scheduling engine follows the
// immutable update pattern: it never modifies a caller's card in place.
func (c *CompetenceCard) Clone() *CompetenceCard {
	copied := *c
	return &copied
}

// IsDue reports whether the card is due for review on the calendar day of
// now. Cards that were never scheduled are immediately due.
func (c *CompetenceCard) IsDue(now time.Time) bool {
	if c.NextReviewAt.IsZero() {
		return true
	}
	return !DateOf(c.NextReviewAt).After(DateOf(now))
}

// OverdueDays returns how many whole calendar days the card is past its next
// review date, or 0 if it is not overdue.
func (c *CompetenceCard) OverdueDays(now time.Time) int {
	if c.NextReviewAt.IsZero() {
		return 0
	}
	days := DaysBetween(c.NextReviewAt, now)
	if days < 0 {
		return 0
	}
	return days
}
