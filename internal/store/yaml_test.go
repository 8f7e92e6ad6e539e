package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/store"
)

func newYAMLStore(t *testing.T) *store.YAMLStore {
	t.Helper()
	yamlStore, err := store.NewYAMLStore(t.TempDir())
	require.NoError(t, err)
	return yamlStore
}

func TestYAMLStoreCreatesDataDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := store.NewYAMLStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestYAMLStoreCardRoundTrip(t *testing.T) {
	t.Parallel()
	yamlStore := newYAMLStore(t)
	ctx := context.Background()
	studentID := uuid.New()

	cards, err := yamlStore.LoadCards(ctx, studentID)
	require.NoError(t, err)
	assert.Empty(t, cards, "a student without a file has an empty card set")

	card := newCard(t, studentID, "MATH-FRAC")
	card.EaseFactor = 2.3
	card.RepetitionNumber = 2
	card.IntervalDays = 3
	card.LastQuality = 3.5
	card.NextReviewAt = storeNow.AddDate(0, 0, 3)
	require.NoError(t, yamlStore.SaveCard(ctx, card))

	loaded, err := yamlStore.LoadCards(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, studentID, got.StudentID)
	assert.Equal(t, "MATH-FRAC", got.CompetenceCode)
	assert.Equal(t, 2.3, got.EaseFactor)
	assert.Equal(t, 2, got.RepetitionNumber)
	assert.Equal(t, 3, got.IntervalDays)
	assert.Equal(t, 3.5, got.LastQuality)
	assert.True(t, got.NextReviewAt.Equal(card.NextReviewAt))
}

func TestYAMLStoreReplacesCardByCompetence(t *testing.T) {
	t.Parallel()
	yamlStore := newYAMLStore(t)
	ctx := context.Background()
	studentID := uuid.New()

	require.NoError(t, yamlStore.SaveCard(ctx, newCard(t, studentID, "MATH-FRAC")))

	updated := newCard(t, studentID, "MATH-FRAC")
	updated.RepetitionNumber = 4
	require.NoError(t, yamlStore.SaveCard(ctx, updated))

	loaded, err := yamlStore.LoadCards(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 4, loaded[0].RepetitionNumber)
}

func TestYAMLStoreIsolatesStudents(t *testing.T) {
	t.Parallel()
	yamlStore := newYAMLStore(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, yamlStore.SaveCard(ctx, newCard(t, alice, "MATH-FRAC")))
	require.NoError(t, yamlStore.SaveCard(ctx, newCard(t, bob, "FR-CONJ")))

	aliceCards, err := yamlStore.LoadCards(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceCards, 1)
	assert.Equal(t, "MATH-FRAC", aliceCards[0].CompetenceCode)
}

func TestYAMLStoreRecordLifecycle(t *testing.T) {
	t.Parallel()
	yamlStore := newYAMLStore(t)
	ctx := context.Background()
	studentID := uuid.New()

	record := newRecord(t, studentID, "MATH-FRAC")
	require.NoError(t, yamlStore.Save(ctx, record))

	open, err := yamlStore.LoadOpenRecords(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, record.ID, open[0].ID)

	// Closing the record and saving it again replaces the stored entry and
	// removes it from the open set.
	require.NoError(t, record.MarkCompleted(storeNow))
	require.NoError(t, yamlStore.Save(ctx, record))

	open, err = yamlStore.LoadOpenRecords(ctx, studentID)
	require.NoError(t, err)
	assert.Empty(t, open)

	found, err := yamlStore.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RevisionStatusCompleted, found.Status)
}

func TestYAMLStoreFindByIDScansAllStudents(t *testing.T) {
	t.Parallel()
	yamlStore := newYAMLStore(t)
	ctx := context.Background()

	var wanted *domain.RevisionRecord
	for i := 0; i < 3; i++ {
		record := newRecord(t, uuid.New(), "MATH-FRAC")
		require.NoError(t, yamlStore.Save(ctx, record))
		if i == 1 {
			wanted = record
		}
	}

	found, err := yamlStore.FindByID(ctx, wanted.ID)
	require.NoError(t, err)
	assert.Equal(t, wanted.StudentID, found.StudentID)

	_, err = yamlStore.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestYAMLStoreIgnoresForeignFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlStore, err := store.NewYAMLStore(dir)
	require.NoError(t, err)

	// Non-student files in the data directory must not break the scan.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("data dir"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not-a-uuid.yaml"), []byte("cards: []"), 0o644))

	_, err = yamlStore.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}
