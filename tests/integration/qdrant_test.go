package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
)

func TestQdrant_SaveAndSearch(t *testing.T) {
	resetCollection(t)
	ctx := context.Background()

	character := ports.EntryVector{
		ID:        uuid.New().String(),
		Type:      entities.EntryTypeCharacter,
		Name:      "Elara Voss",
		Summary:   "A wandering scholar.",
		Embedding: makeEmbedding(1),
	}
	location := ports.EntryVector{
		ID:        uuid.New().String(),
		Type:      entities.EntryTypeLocation,
		Name:      "Sunken Library",
		Summary:   "A drowned archive.",
		Embedding: makeEmbedding(500),
	}

	require.NoError(t, testRepo.Save(ctx, character))
	require.NoError(t, testRepo.Save(ctx, location))

	matches, err := testRepo.Search(ctx, makeEmbedding(1), 10)

	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Elara Voss", matches[0].Name, "closest vector first")
	assert.Equal(t, entities.EntryTypeCharacter, matches[0].Type)
	assert.Greater(t, matches[0].Score, float32(0))
}

func TestQdrant_SearchByType(t *testing.T) {
	resetCollection(t)
	ctx := context.Background()

	vecs := []ports.EntryVector{
		{ID: uuid.New().String(), Type: entities.EntryTypeCharacter, Name: "Elara Voss", Embedding: makeEmbedding(1)},
		{ID: uuid.New().String(), Type: entities.EntryTypeLocation, Name: "Sunken Library", Embedding: makeEmbedding(2)},
		{ID: uuid.New().String(), Type: entities.EntryTypeLocation, Name: "Gilded City", Embedding: makeEmbedding(3)},
	}
	require.NoError(t, testRepo.SaveBatch(ctx, vecs))

	matches, err := testRepo.SearchByType(ctx, makeEmbedding(2), entities.EntryTypeLocation, 10)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, match := range matches {
		assert.Equal(t, entities.EntryTypeLocation, match.Type)
	}
}

func TestQdrant_SaveReplacesExisting(t *testing.T) {
	resetCollection(t)
	ctx := context.Background()

	id := uuid.New().String()
	vec := ports.EntryVector{
		ID:        id,
		Type:      entities.EntryTypeCharacter,
		Name:      "Elara Voss",
		Summary:   "A wandering scholar.",
		Embedding: makeEmbedding(1),
	}
	require.NoError(t, testRepo.Save(ctx, vec))

	vec.Summary = "Former scholar, now a fugitive."
	require.NoError(t, testRepo.Save(ctx, vec))

	count, err := testRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count, "same ID should upsert, not duplicate")

	matches, err := testRepo.Search(ctx, makeEmbedding(1), 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Former scholar, now a fugitive.", matches[0].Summary)
}

func TestQdrant_Delete(t *testing.T) {
	resetCollection(t)
	ctx := context.Background()

	id := uuid.New().String()
	require.NoError(t, testRepo.Save(ctx, ports.EntryVector{
		ID:        id,
		Type:      entities.EntryTypeArtifact,
		Name:      "Tidebound Compass",
		Embedding: makeEmbedding(7),
	}))

	require.NoError(t, testRepo.Delete(ctx, id))

	count, err := testRepo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
