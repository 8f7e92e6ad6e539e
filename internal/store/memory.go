package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/apprendo/revise/internal/domain"
)

// MemoryStore is an in-memory implementation of the engine's card and
// revision repositories. It is the reference implementation used by tests
// and serializes all access behind one mutex, matching the engine's
// read-the-full-set, compute, write-the-full-set contract.
type MemoryStore struct {
	mu      sync.RWMutex
	cards   map[uuid.UUID]map[string]*domain.CompetenceCard // studentID -> competence code -> card
	records map[uuid.UUID]*domain.RevisionRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cards:   make(map[uuid.UUID]map[string]*domain.CompetenceCard),
		records: make(map[uuid.UUID]*domain.RevisionRecord),
	}
}

// LoadCards returns copies of all competence cards for a student. A student
// with no cards yields an empty slice, not an error.
func (s *MemoryStore) LoadCards(_ context.Context, studentID uuid.UUID) ([]*domain.CompetenceCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCode := s.cards[studentID]
	cards := make([]*domain.CompetenceCard, 0, len(byCode))
	for _, card := range byCode {
		cards = append(cards, card.Clone())
	}
	return cards, nil
}

// SaveCard inserts or replaces the card for its (student, competence) key.
func (s *MemoryStore) SaveCard(_ context.Context, card *domain.CompetenceCard) error {
	if card == nil {
		return ErrInvalidEntity
	}
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byCode := s.cards[card.StudentID]
	if byCode == nil {
		byCode = make(map[string]*domain.CompetenceCard)
		s.cards[card.StudentID] = byCode
	}
	byCode[card.CompetenceCode] = card.Clone()
	return nil
}

// LoadOpenRecords returns copies of the student's open revision records.
func (s *MemoryStore) LoadOpenRecords(_ context.Context, studentID uuid.UUID) ([]*domain.RevisionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*domain.RevisionRecord
	for _, record := range s.records {
		if record.StudentID == studentID && record.IsOpen() {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

// Save inserts or replaces a revision record by ID.
func (s *MemoryStore) Save(_ context.Context, record *domain.RevisionRecord) error {
	if record == nil {
		return ErrInvalidEntity
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.records[record.ID] = &copied
	return nil
}

// FindByID returns a copy of the revision record with the given ID.
// Returns ErrRecordNotFound if no such record exists.
func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*domain.RevisionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}
