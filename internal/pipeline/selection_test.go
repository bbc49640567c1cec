package pipeline_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

func TestResolveSelectionEmpty(t *testing.T) {
	store := newFakeStore()

	_, err := pipeline.ResolveSelection(context.Background(), store, uuid.New(), nil)
	assert.ErrorIs(t, err, pipeline.ErrEmptySelection)
	assert.Empty(t, store.selectedCalls)
}

func TestResolveSelectionPreservesCallerOrder(t *testing.T) {
	store := newFakeStore()
	project := store.addProject("volcanoes", models.StageVideoAssembly)

	a := store.addMedia(project.ID, models.MediaImage, models.SourcePexels, "volcano")
	b := store.addMedia(project.ID, models.MediaGIF, models.SourceGiphy, "lava")
	c := store.addMedia(project.ID, models.MediaImage, models.SourcePexels, "ash")

	ordered, err := pipeline.ResolveSelection(context.Background(), store, project.ID, []uuid.UUID{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, c.ID, ordered[0].ID)
	assert.Equal(t, a.ID, ordered[1].ID)
	assert.Equal(t, b.ID, ordered[2].ID)

	require.Len(t, store.selectedCalls, 1)
	assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, store.selectedCalls[0])
}

func TestResolveSelectionCollectsAllUnknownIDs(t *testing.T) {
	store := newFakeStore()
	project := store.addProject("volcanoes", models.StageVideoAssembly)
	other := store.addProject("glaciers", models.StageVideoAssembly)

	owned := store.addMedia(project.ID, models.MediaImage, models.SourcePexels, "volcano")
	foreign := store.addMedia(other.ID, models.MediaImage, models.SourcePexels, "glacier")
	missing := uuid.New()

	_, err := pipeline.ResolveSelection(context.Background(), store, project.ID, []uuid.UUID{owned.ID, foreign.ID, missing})

	var unknown *pipeline.UnknownCandidateError
	require.ErrorAs(t, err, &unknown)
	assert.ElementsMatch(t, []uuid.UUID{foreign.ID, missing}, unknown.IDs)

	// A rejected selection marks nothing.
	assert.Empty(t, store.selectedCalls)
	assert.False(t, store.media[owned.ID].IsSelected)
}
