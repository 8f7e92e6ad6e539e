package domain

import (
	"github.com/google/uuid"
)

// ErrorType categorizes why an exercise attempt failed. The categories come
// from the pedagogy team and feed teacher-facing reporting, not the
// scheduling algorithm itself.
type ErrorType string

// Known failure categories.
const (
	ErrorTypeCalcul        ErrorType = "calcul"
	ErrorTypeComprehension ErrorType = "comprehension"
	ErrorTypeAttention     ErrorType = "attention"
	ErrorTypeMethode       ErrorType = "methode"
)

// Valid reports whether the error type is one of the known categories.
// The empty value is valid: the exercise layer does not always classify.
func (e ErrorType) Valid() bool {
	switch e {
	case "", ErrorTypeCalcul, ErrorTypeComprehension, ErrorTypeAttention, ErrorTypeMethode:
		return true
	default:
		return false
	}
}

// ExerciseAttempt is the ephemeral input produced by the exercise layer for
// one answer. It is consumed once by the quality estimator and never stored.
//
// Numeric fields are clamped by the estimator rather than rejected: a
// malformed attempt from a young learner's session must still produce a
// usable quality score.
type ExerciseAttempt struct {
	StudentID        uuid.UUID `json:"student_id"         validate:"required"`
	CompetenceCode   string    `json:"competence_code"    validate:"required"`
	IsCorrect        bool      `json:"is_correct"`
	TimeSpentSeconds float64   `json:"time_spent_seconds" validate:"omitempty,gte=0"`
	HintsUsed        int       `json:"hints_used"         validate:"omitempty,gte=0"`
	Difficulty       int       `json:"difficulty"         validate:"omitempty,gte=0,lte=5"`
	Confidence       *float64  `json:"confidence"         validate:"omitempty,gte=0,lte=5"` // optional self-assessment
}
