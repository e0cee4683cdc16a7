package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/mocks"
)

func TestChapterHandler_HandleAdd(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewChapterHandler(db)

	chapter, err := handler.HandleAdd(context.Background(), "world-1", 3, "The Drowned Archive")

	require.NoError(t, err)
	assert.NotEmpty(t, chapter.ID)
	assert.Equal(t, 3, chapter.Number)
	assert.Equal(t, "The Drowned Archive", chapter.Title)
	assert.Len(t, db.Chapters, 1)
}

func TestChapterHandler_HandleAdd_InvalidNumber(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewChapterHandler(db)

	for _, number := range []int{0, -1} {
		_, err := handler.HandleAdd(context.Background(), "world-1", number, "Bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	}
	assert.Empty(t, db.Chapters)
}

func TestChapterHandler_HandleList(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewChapterHandler(db)

	for _, number := range []int{3, 1, 2} {
		_, err := handler.HandleAdd(context.Background(), "world-1", number, "")
		require.NoError(t, err)
	}
	_, err := handler.HandleAdd(context.Background(), "world-2", 1, "elsewhere")
	require.NoError(t, err)

	chapters, err := handler.HandleList(context.Background(), "world-1")

	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, 2, chapters[1].Number)
	assert.Equal(t, 3, chapters[2].Number)
}

func TestChapterHandler_HandleRemove(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewChapterHandler(db)

	chapter, err := handler.HandleAdd(context.Background(), "world-1", 1, "")
	require.NoError(t, err)

	err = handler.HandleRemove(context.Background(), chapter.ID)

	require.NoError(t, err)
	assert.Empty(t, db.Chapters)
}
