package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
)

// ChapterHandler handles manuscript chapter bookkeeping.
type ChapterHandler struct {
	db ports.RelationalDB
}

// NewChapterHandler creates a new ChapterHandler.
func NewChapterHandler(db ports.RelationalDB) *ChapterHandler {
	return &ChapterHandler{db: db}
}

// HandleAdd registers a chapter. Saving an existing number updates its title.
func (h *ChapterHandler) HandleAdd(ctx context.Context, worldID string, number int, title string) (*entities.Chapter, error) {
	if number < 1 {
		return nil, fmt.Errorf("chapter number must be positive, got %d", number)
	}

	chapter := &entities.Chapter{
		ID:        uuid.New().String(),
		WorldID:   worldID,
		Number:    number,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := h.db.SaveChapter(ctx, chapter); err != nil {
		return nil, fmt.Errorf("saving chapter: %w", err)
	}
	return chapter, nil
}

// HandleList returns a world's chapters ordered by number.
func (h *ChapterHandler) HandleList(ctx context.Context, worldID string) ([]entities.Chapter, error) {
	return h.db.ListChapters(ctx, worldID)
}

// HandleRemove deletes a chapter by ID.
func (h *ChapterHandler) HandleRemove(ctx context.Context, chapterID string) error {
	return h.db.DeleteChapter(ctx, chapterID)
}
