package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/apprendo/revise/internal/domain"
)

// studentFile is the on-disk document for one student: their full card set
// plus every revision record ever created for them.
type studentFile struct {
	Cards     []*domain.CompetenceCard `yaml:"cards"`
	Revisions []*domain.RevisionRecord `yaml:"revisions"`
}

// YAMLStore persists cards and revision records as one YAML document per
// student under a data directory. It backs the operator CLI; real
// deployments supply their own repository implementations.
type YAMLStore struct {
	mu  sync.Mutex
	dir string
}

// NewYAMLStore creates a store rooted at dir, creating the directory if
// needed.
func NewYAMLStore(dir string) (*YAMLStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &YAMLStore{dir: dir}, nil
}

func (s *YAMLStore) path(studentID uuid.UUID) string {
	return filepath.Join(s.dir, studentID.String()+".yaml")
}

// load reads a student's document. A missing file is an empty document.
func (s *YAMLStore) load(studentID uuid.UUID) (*studentFile, error) {
	data, err := os.ReadFile(s.path(studentID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &studentFile{}, nil
		}
		return nil, fmt.Errorf("read student file: %w", err)
	}

	var doc studentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse student file: %w", err)
	}
	return &doc, nil
}

func (s *YAMLStore) save(studentID uuid.UUID, doc *studentFile) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal student file: %w", err)
	}
	if err := os.WriteFile(s.path(studentID), data, 0o644); err != nil {
		return fmt.Errorf("write student file: %w", err)
	}
	return nil
}

// LoadCards returns all competence cards for a student.
func (s *YAMLStore) LoadCards(_ context.Context, studentID uuid.UUID) ([]*domain.CompetenceCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(studentID)
	if err != nil {
		return nil, err
	}
	return doc.Cards, nil
}

// SaveCard inserts or replaces the card for its (student, competence) key.
func (s *YAMLStore) SaveCard(_ context.Context, card *domain.CompetenceCard) error {
	if card == nil {
		return ErrInvalidEntity
	}
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(card.StudentID)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range doc.Cards {
		if existing.CompetenceCode == card.CompetenceCode {
			doc.Cards[i] = card
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Cards = append(doc.Cards, card)
	}

	return s.save(card.StudentID, doc)
}

// LoadOpenRecords returns the student's open revision records.
func (s *YAMLStore) LoadOpenRecords(_ context.Context, studentID uuid.UUID) ([]*domain.RevisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(studentID)
	if err != nil {
		return nil, err
	}

	var open []*domain.RevisionRecord
	for _, record := range doc.Revisions {
		if record.IsOpen() {
			open = append(open, record)
		}
	}
	return open, nil
}

// Save inserts or replaces a revision record by ID.
func (s *YAMLStore) Save(_ context.Context, record *domain.RevisionRecord) error {
	if record == nil {
		return ErrInvalidEntity
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(record.StudentID)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range doc.Revisions {
		if existing.ID == record.ID {
			doc.Revisions[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Revisions = append(doc.Revisions, record)
	}

	return s.save(record.StudentID, doc)
}

// FindByID scans the data directory for the revision record with the given
// ID. Returns ErrRecordNotFound if no student file contains it.
func (s *YAMLStore) FindByID(_ context.Context, id uuid.UUID) (*domain.RevisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		studentID, err := uuid.Parse(entry.Name()[:len(entry.Name())-len(".yaml")])
		if err != nil {
			continue
		}
		doc, err := s.load(studentID)
		if err != nil {
			return nil, err
		}
		for _, record := range doc.Revisions {
			if record.ID == id {
				return record, nil
			}
		}
	}

	return nil, ErrRecordNotFound
}
