package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RevisionStatus represents the lifecycle state of a revision record.
type RevisionStatus string

// Possible revision record states. "due" is computed from the due date, never
// stored: a pending or postponed record whose due date has arrived is due.
const (
	RevisionStatusPending   RevisionStatus = "pending"
	RevisionStatusDue       RevisionStatus = "due"
	RevisionStatusCompleted RevisionStatus = "completed"
	RevisionStatusPostponed RevisionStatus = "postponed"
	RevisionStatusCancelled RevisionStatus = "cancelled"
)

// Common validation errors for RevisionRecord
var (
	ErrEmptyRecordID        = errors.New("revision record ID cannot be empty")
	ErrEmptyRecordStudentID = errors.New("revision record student ID cannot be empty")
	ErrInvalidStatus        = errors.New("invalid revision record status")
)

// Priority weights. A record's priority is its failure-count base plus ten
// points per overdue day, so old debt always climbs the queue.
const (
	priorityPerFailure   = 20
	priorityPerDayLate   = 10
	priorityFailureLimit = 5 // base stops growing after this many failures
)

// RevisionRecord is an explicitly tracked pending review action, distinct
// from the per-competence card. Records are created when a student fails a
// competence or when a proactive re-check is scheduled, and they move through
// a small state machine until completed or cancelled.
type RevisionRecord struct {
	ID             uuid.UUID      `json:"id"              yaml:"id"`
	StudentID      uuid.UUID      `json:"student_id"      yaml:"student_id"`
	CompetenceCode string         `json:"competence_code" yaml:"competence_code"`
	Status         RevisionStatus `json:"status"          yaml:"status"`
	DueDate        time.Time      `json:"due_date"        yaml:"due_date"`
	Priority       int            `json:"priority"        yaml:"priority"`
	FailureCount   int            `json:"failure_count"   yaml:"failure_count"`
	Reason         string         `json:"reason"          yaml:"reason"`
	CreatedAt      time.Time      `json:"created_at"      yaml:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"      yaml:"updated_at"`
}

// NewRevisionRecord creates a pending revision record for a competence.
func NewRevisionRecord(studentID uuid.UUID, competenceCode string, dueDate, now time.Time) (*RevisionRecord, error) {
	record := &RevisionRecord{
		ID:             uuid.New(),
		StudentID:      studentID,
		CompetenceCode: competenceCode,
		Status:         RevisionStatusPending,
		DueDate:        dueDate,
		FailureCount:   1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	record.Priority = record.ComputePriority(now)

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the RevisionRecord has valid data.
func (r *RevisionRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecordID
	}

	if r.StudentID == uuid.Nil {
		return ErrEmptyRecordStudentID
	}

	if r.CompetenceCode == "" {
		return ErrEmptyCompetenceCode
	}

	switch r.Status {
	case RevisionStatusPending, RevisionStatusCompleted, RevisionStatusPostponed, RevisionStatusCancelled:
	default:
		return ErrInvalidStatus
	}

	return nil
}

// IsTerminal reports whether the record has reached a terminal state.
// Terminal records never transition again.
func (r *RevisionRecord) IsTerminal() bool {
	return r.Status == RevisionStatusCompleted || r.Status == RevisionStatusCancelled
}

// IsOpen reports whether the record still represents a pending review action.
func (r *RevisionRecord) IsOpen() bool {
	return !r.IsTerminal()
}

// EffectiveStatus returns the record's state as seen by callers: open records
// whose due date has arrived report RevisionStatusDue, everything else
// reports the stored status.
func (r *RevisionRecord) EffectiveStatus(now time.Time) RevisionStatus {
	if r.IsOpen() && !DateOf(r.DueDate).After(DateOf(now)) {
		return RevisionStatusDue
	}
	return r.Status
}

// MarkCompleted closes the record after the student demonstrated mastery.
// Returns ErrInvalidTransition if the record is already terminal.
func (r *RevisionRecord) MarkCompleted(now time.Time) error {
	if r.IsTerminal() {
		return ErrInvalidTransition
	}
	r.Status = RevisionStatusCompleted
	r.UpdatedAt = now
	return nil
}

// Postpone moves an open record's due date to a future calendar day.
// Returns ErrInvalidTransition if the record is terminal and ErrInvalidDate
// if newDate is not after today.
func (r *RevisionRecord) Postpone(newDate time.Time, reason string, now time.Time) error {
	if r.IsTerminal() {
		return ErrInvalidTransition
	}
	if !DateOf(newDate).After(DateOf(now)) {
		return ErrInvalidDate
	}
	r.Status = RevisionStatusPostponed
	r.DueDate = newDate
	if reason != "" {
		r.Reason = reason
	}
	r.Priority = r.ComputePriority(now)
	r.UpdatedAt = now
	return nil
}

// Cancel abandons an open record.
// Returns ErrInvalidTransition if the record is already terminal.
func (r *RevisionRecord) Cancel(reason string, now time.Time) error {
	if r.IsTerminal() {
		return ErrInvalidTransition
	}
	r.Status = RevisionStatusCancelled
	if reason != "" {
		r.Reason = reason
	}
	r.UpdatedAt = now
	return nil
}

// RecordFailure increments the failure count and reschedules the record.
func (r *RevisionRecord) RecordFailure(newDueDate, now time.Time) {
	r.FailureCount++
	r.DueDate = newDueDate
	r.Priority = r.ComputePriority(now)
	r.UpdatedAt = now
}

// ComputePriority returns the queue priority for the record at the given
// time: a failure-count base plus a bonus per overdue day.
func (r *RevisionRecord) ComputePriority(now time.Time) int {
	failures := r.FailureCount
	if failures > priorityFailureLimit {
		failures = priorityFailureLimit
	}
	base := failures * priorityPerFailure

	overdue := DaysBetween(r.DueDate, now)
	if overdue < 0 {
		overdue = 0
	}

	return base + overdue*priorityPerDayLate
}
