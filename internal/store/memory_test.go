package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/service/revision"
	"github.com/apprendo/revise/internal/store"
)

// Both stores must satisfy the engine's repository contracts.
var (
	_ revision.CardRepository     = (*store.MemoryStore)(nil)
	_ revision.RevisionRepository = (*store.MemoryStore)(nil)
	_ revision.CardRepository     = (*store.YAMLStore)(nil)
	_ revision.RevisionRepository = (*store.YAMLStore)(nil)
)

var storeNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func newCard(t *testing.T, studentID uuid.UUID, code string) *domain.CompetenceCard {
	t.Helper()
	card, err := domain.NewCompetenceCard(studentID, code, storeNow)
	require.NoError(t, err)
	return card
}

func newRecord(t *testing.T, studentID uuid.UUID, code string) *domain.RevisionRecord {
	t.Helper()
	record, err := domain.NewRevisionRecord(studentID, code, storeNow.AddDate(0, 0, 1), storeNow)
	require.NoError(t, err)
	return record
}

func TestMemoryStoreCards(t *testing.T) {
	t.Parallel()
	memory := store.NewMemoryStore()
	ctx := context.Background()
	studentID := uuid.New()

	cards, err := memory.LoadCards(ctx, studentID)
	require.NoError(t, err)
	assert.Empty(t, cards, "unknown student yields an empty set, not an error")

	require.NoError(t, memory.SaveCard(ctx, newCard(t, studentID, "MATH-FRAC")))
	require.NoError(t, memory.SaveCard(ctx, newCard(t, studentID, "FR-CONJ")))

	// Saving the same competence again replaces it.
	updated := newCard(t, studentID, "MATH-FRAC")
	updated.EaseFactor = 2.1
	require.NoError(t, memory.SaveCard(ctx, updated))

	cards, err = memory.LoadCards(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	for _, card := range cards {
		if card.CompetenceCode == "MATH-FRAC" {
			assert.Equal(t, 2.1, card.EaseFactor)
		}
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	t.Parallel()
	memory := store.NewMemoryStore()
	ctx := context.Background()
	studentID := uuid.New()

	require.NoError(t, memory.SaveCard(ctx, newCard(t, studentID, "MATH-FRAC")))

	cards, err := memory.LoadCards(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	// Mutating a loaded card must not leak back into the store.
	cards[0].EaseFactor = 1.3

	reloaded, err := memory.LoadCards(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 2.5, reloaded[0].EaseFactor)
}

func TestMemoryStoreRejectsInvalidEntities(t *testing.T) {
	t.Parallel()
	memory := store.NewMemoryStore()
	ctx := context.Background()

	assert.ErrorIs(t, memory.SaveCard(ctx, nil), store.ErrInvalidEntity)

	broken := newCard(t, uuid.New(), "MATH-FRAC")
	broken.EaseFactor = 0.4
	assert.ErrorIs(t, memory.SaveCard(ctx, broken), store.ErrInvalidEntity)

	assert.ErrorIs(t, memory.Save(ctx, nil), store.ErrInvalidEntity)
}

func TestMemoryStoreRecords(t *testing.T) {
	t.Parallel()
	memory := store.NewMemoryStore()
	ctx := context.Background()
	studentID := uuid.New()

	open := newRecord(t, studentID, "MATH-FRAC")
	closed := newRecord(t, studentID, "FR-CONJ")
	require.NoError(t, closed.MarkCompleted(storeNow))
	other := newRecord(t, uuid.New(), "GEO-ANGLE")

	for _, record := range []*domain.RevisionRecord{open, closed, other} {
		require.NoError(t, memory.Save(ctx, record))
	}

	records, err := memory.LoadOpenRecords(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, records, 1, "closed and foreign records are filtered out")
	assert.Equal(t, open.ID, records[0].ID)

	found, err := memory.FindByID(ctx, closed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RevisionStatusCompleted, found.Status)

	_, err = memory.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
	assert.True(t, store.IsNotFoundError(err))
}
