package revision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/domain/srs"
	"github.com/apprendo/revise/internal/platform/logger"
	"github.com/apprendo/revise/internal/progress"
	"github.com/apprendo/revise/internal/review"
	"github.com/apprendo/revise/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*revisionServiceImpl)(nil)

// defaultDifficulty is assumed for attempts whose perceived difficulty is
// missing. It maps to the middle of the expected-time table.
const defaultDifficulty = 2

// revisionServiceImpl implements the Service interface.
type revisionServiceImpl struct {
	cardRepo     CardRepository
	revisionRepo RevisionRepository
	srsService   srs.Service
	maxPerDay    int
	logger       *slog.Logger
	validate     *validator.Validate
	now          func() time.Time
}

// Option configures the revision service.
type Option func(*revisionServiceImpl)

// WithClock overrides the service's time source. Tests use this to pin the
// calendar day.
func WithClock(now func() time.Time) Option {
	return func(s *revisionServiceImpl) {
		s.now = now
	}
}

// WithMaxPerDay overrides the default daily session cap.
func WithMaxPerDay(maxPerDay int) Option {
	return func(s *revisionServiceImpl) {
		if maxPerDay > 0 {
			s.maxPerDay = maxPerDay
		}
	}
}

// NewService creates a revision Service backed by the given repositories.
func NewService(
	cardRepo CardRepository,
	revisionRepo RevisionRepository,
	srsService srs.Service,
	log *slog.Logger,
	opts ...Option,
) Service {
	if cardRepo == nil {
		panic("cardRepo cannot be nil")
	}
	if revisionRepo == nil {
		panic("revisionRepo cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &revisionServiceImpl{
		cardRepo:     cardRepo,
		revisionRepo: revisionRepo,
		srsService:   srsService,
		maxPerDay:    review.DefaultMaxPerDay,
		logger:       log.With(slog.String("component", "revision_service")),
		validate:     validator.New(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordFailure implements Service.RecordFailure.
func (s *revisionServiceImpl) RecordFailure(
	ctx context.Context,
	studentID uuid.UUID,
	data FailureData,
) (*FailureResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	if err := s.validate.Struct(data); err != nil {
		log.Warn("malformed failure data",
			slog.String("student_id", studentID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	difficulty := defaultDifficulty
	if data.PerceivedDifficulty != nil {
		difficulty = *data.PerceivedDifficulty
	}
	attempt := domain.ExerciseAttempt{
		StudentID:        studentID,
		CompetenceCode:   data.CompetenceCode,
		IsCorrect:        false,
		TimeSpentSeconds: data.TimeSpentSeconds,
		Difficulty:       difficulty,
	}

	card, result, err := s.applyAttempt(ctx, studentID, attempt, now)
	if err != nil {
		return nil, newServiceError("record_failure", "failed to update schedule", err)
	}

	records, err := s.revisionRepo.LoadOpenRecords(ctx, studentID)
	if err != nil {
		return nil, newServiceError("record_failure", "failed to load open records", err)
	}

	record := openRecordFor(records, data.CompetenceCode)
	if record == nil {
		dueDate := domain.DateOf(now).AddDate(0, 0, 1)
		record, err = domain.NewRevisionRecord(studentID, data.CompetenceCode, dueDate, now)
		if err != nil {
			return nil, newServiceError("record_failure", "failed to create revision record", err)
		}
		records = append(records, record)
	} else {
		// Reschedule using the date the scheduler just computed.
		record.RecordFailure(card.NextReviewAt, now)
	}

	if err := s.revisionRepo.Save(ctx, record); err != nil {
		return nil, newServiceError("record_failure", "failed to save revision record", err)
	}

	sortByDueDate(records)

	log.Debug("recorded failed attempt",
		slog.String("student_id", studentID.String()),
		slog.String("competence_code", data.CompetenceCode),
		slog.Float64("quality", result.Quality),
		slog.Int("failure_count", record.FailureCount),
		slog.Time("due_date", record.DueDate))

	return &FailureResult{
		RevisionScheduled: true,
		Quality:           result.Quality,
		Card:              card,
		Record:            record,
		NextDue:           records,
	}, nil
}

// RecordSuccess implements Service.RecordSuccess.
func (s *revisionServiceImpl) RecordSuccess(
	ctx context.Context,
	studentID uuid.UUID,
	data SuccessData,
) (*SuccessResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	if err := s.validate.Struct(data); err != nil {
		log.Warn("malformed success data",
			slog.String("student_id", studentID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	attempt := domain.ExerciseAttempt{
		StudentID:        studentID,
		CompetenceCode:   data.CompetenceCode,
		IsCorrect:        true,
		TimeSpentSeconds: data.TimeSpentSeconds,
		HintsUsed:        data.HintsUsed,
		Difficulty:       defaultDifficulty,
	}
	if data.Score != nil {
		// A 0-100 score maps onto the 0-5 confidence scale.
		confidence := float64(*data.Score) / 20
		attempt.Confidence = &confidence
	}

	card, result, err := s.applyAttempt(ctx, studentID, attempt, now)
	if err != nil {
		return nil, newServiceError("record_success", "failed to update schedule", err)
	}

	records, err := s.revisionRepo.LoadOpenRecords(ctx, studentID)
	if err != nil {
		return nil, newServiceError("record_success", "failed to load open records", err)
	}

	mastery := masteryReached(card)
	record := openRecordFor(records, data.CompetenceCode)
	if record != nil {
		if mastery {
			if err := record.MarkCompleted(now); err != nil {
				return nil, newServiceError("record_success", "failed to close revision record", err)
			}
		} else {
			record.DueDate = card.NextReviewAt
			record.Priority = record.ComputePriority(now)
			record.UpdatedAt = now
		}
		if err := s.revisionRepo.Save(ctx, record); err != nil {
			return nil, newServiceError("record_success", "failed to save revision record", err)
		}
	}

	remaining := make([]*domain.RevisionRecord, 0, len(records))
	for _, r := range records {
		if r.IsOpen() {
			remaining = append(remaining, r)
		}
	}
	sortByDueDate(remaining)

	log.Debug("recorded successful attempt",
		slog.String("student_id", studentID.String()),
		slog.String("competence_code", data.CompetenceCode),
		slog.Float64("quality", result.Quality),
		slog.Float64("ease_factor", card.EaseFactor),
		slog.Int("interval_days", card.IntervalDays),
		slog.Bool("mastery_reached", mastery))

	return &SuccessResult{
		MasteryReached: mastery,
		Quality:        result.Quality,
		Card:           card,
		Remaining:      remaining,
	}, nil
}

// ExercisesToRevise implements Service.ExercisesToRevise.
func (s *revisionServiceImpl) ExercisesToRevise(
	ctx context.Context,
	studentID uuid.UUID,
	filters Filters,
) (*review.Queue, error) {
	cards, err := s.cardRepo.LoadCards(ctx, studentID)
	if err != nil {
		return nil, newServiceError("exercises_to_revise", "failed to load cards", err)
	}

	if len(filters.CompetenceCodes) > 0 {
		wanted := make(map[string]bool, len(filters.CompetenceCodes))
		for _, code := range filters.CompetenceCodes {
			wanted[code] = true
		}
		filtered := cards[:0]
		for _, card := range cards {
			if wanted[card.CompetenceCode] {
				filtered = append(filtered, card)
			}
		}
		cards = filtered
	}

	maxPerDay := s.maxPerDay
	if filters.MaxPerDay > 0 {
		maxPerDay = filters.MaxPerDay
	}

	return review.BuildQueue(cards, maxPerDay, s.now()), nil
}

// RevisionStats implements Service.RevisionStats.
func (s *revisionServiceImpl) RevisionStats(
	ctx context.Context,
	studentID uuid.UUID,
	periodDays int,
) (*progress.RevisionStats, error) {
	cards, err := s.cardRepo.LoadCards(ctx, studentID)
	if err != nil {
		return nil, newServiceError("revision_stats", "failed to load cards", err)
	}

	records, err := s.revisionRepo.LoadOpenRecords(ctx, studentID)
	if err != nil {
		return nil, newServiceError("revision_stats", "failed to load open records", err)
	}

	stats := progress.Stats(cards, records, periodDays, s.now())
	return &stats, nil
}

// Recommendations implements Service.Recommendations.
func (s *revisionServiceImpl) Recommendations(
	ctx context.Context,
	studentID uuid.UUID,
) ([]progress.Recommendation, error) {
	cards, err := s.cardRepo.LoadCards(ctx, studentID)
	if err != nil {
		return nil, newServiceError("recommendations", "failed to load cards", err)
	}

	return progress.Recommend(cards, s.now()), nil
}

// PostponeRevision implements Service.PostponeRevision.
func (s *revisionServiceImpl) PostponeRevision(
	ctx context.Context,
	id uuid.UUID,
	newDate time.Time,
	reason string,
) (*domain.RevisionRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	record, err := s.findRecord(ctx, id, "postpone_revision")
	if err != nil {
		return nil, err
	}

	if err := record.Postpone(newDate, reason, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			return nil, ErrInvalidTransition
		case errors.Is(err, domain.ErrInvalidDate):
			return nil, ErrInvalidDate
		default:
			return nil, newServiceError("postpone_revision", "failed to postpone record", err)
		}
	}

	if err := s.revisionRepo.Save(ctx, record); err != nil {
		return nil, newServiceError("postpone_revision", "failed to save record", err)
	}

	log.Debug("postponed revision",
		slog.String("record_id", id.String()),
		slog.Time("due_date", record.DueDate),
		slog.String("reason", reason))

	return record, nil
}

// CancelRevision implements Service.CancelRevision.
func (s *revisionServiceImpl) CancelRevision(
	ctx context.Context,
	id uuid.UUID,
	reason string,
) (*domain.RevisionRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	record, err := s.findRecord(ctx, id, "cancel_revision")
	if err != nil {
		return nil, err
	}

	if err := record.Cancel(reason, now); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, ErrInvalidTransition
		}
		return nil, newServiceError("cancel_revision", "failed to cancel record", err)
	}

	if err := s.revisionRepo.Save(ctx, record); err != nil {
		return nil, newServiceError("cancel_revision", "failed to save record", err)
	}

	log.Debug("cancelled revision",
		slog.String("record_id", id.String()),
		slog.String("reason", reason))

	return record, nil
}

// applyAttempt runs the quality estimator and the scheduler for one attempt,
// creating the competence card on first contact, and saves the updated card.
func (s *revisionServiceImpl) applyAttempt(
	ctx context.Context,
	studentID uuid.UUID,
	attempt domain.ExerciseAttempt,
	now time.Time,
) (*domain.CompetenceCard, *srs.ReviewResult, error) {
	cards, err := s.cardRepo.LoadCards(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cards: %w", err)
	}

	var card *domain.CompetenceCard
	for _, c := range cards {
		if c.CompetenceCode == attempt.CompetenceCode {
			card = c
			break
		}
	}
	if card == nil {
		card, err = domain.NewCompetenceCard(studentID, attempt.CompetenceCode, now)
		if err != nil {
			return nil, nil, fmt.Errorf("create card: %w", err)
		}
	}

	quality := s.srsService.EstimateQuality(attempt)
	result, err := s.srsService.CalculateNextReview(card, quality, now)
	if err != nil {
		return nil, nil, fmt.Errorf("calculate next review: %w", err)
	}

	if err := s.cardRepo.SaveCard(ctx, result.Card); err != nil {
		return nil, nil, fmt.Errorf("save card: %w", err)
	}

	return result.Card, result, nil
}

// findRecord loads a record by ID, mapping the store's not-found error onto
// the service taxonomy.
func (s *revisionServiceImpl) findRecord(
	ctx context.Context,
	id uuid.UUID,
	operation string,
) (*domain.RevisionRecord, error) {
	record, err := s.revisionRepo.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) || errors.Is(err, ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, newServiceError(operation, "failed to load record", err)
	}
	return record, nil
}

// openRecordFor returns the open record for a competence, or nil.
func openRecordFor(records []*domain.RevisionRecord, competenceCode string) *domain.RevisionRecord {
	for _, record := range records {
		if record.CompetenceCode == competenceCode && record.IsOpen() {
			return record
		}
	}
	return nil
}

// sortByDueDate orders records ascending by due date, ties broken by
// priority descending then competence code.
func sortByDueDate(records []*domain.RevisionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].DueDate.Equal(records[j].DueDate) {
			return records[i].DueDate.Before(records[j].DueDate)
		}
		if records[i].Priority != records[j].Priority {
			return records[i].Priority > records[j].Priority
		}
		return records[i].CompetenceCode < records[j].CompetenceCode
	})
}
