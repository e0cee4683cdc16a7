package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
)

// exportBatchSize is the page size used when draining a world's entries.
const exportBatchSize = 200

// WorldExport is the portable document produced by export and consumed by
// import. Snapshots, issues, and reports are deliberately left out: they are
// derived state and get rebuilt as the imported entries evolve.
type WorldExport struct {
	WorldID    string             `json:"world_id"`
	ExportedAt time.Time          `json:"exported_at"`
	Entries    []*entities.Entry  `json:"entries"`
	Chapters   []entities.Chapter `json:"chapters"`
}

// ExportHandler dumps a world's canon as a single JSON document.
type ExportHandler struct {
	db  ports.RelationalDB
	now func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(db ports.RelationalDB) *ExportHandler {
	return &ExportHandler{
		db:  db,
		now: time.Now,
	}
}

// Handle writes the world's entries and chapters to w as indented JSON.
// It returns the number of entries exported.
func (h *ExportHandler) Handle(ctx context.Context, worldID string, w io.Writer) (int, error) {
	doc := WorldExport{
		WorldID:    worldID,
		ExportedAt: h.now(),
		Entries:    []*entities.Entry{},
	}

	offset := 0
	for {
		page, err := h.db.ListEntries(ctx, worldID, exportBatchSize, offset)
		if err != nil {
			return 0, fmt.Errorf("listing entries: %w", err)
		}
		doc.Entries = append(doc.Entries, page...)
		if len(page) < exportBatchSize {
			break
		}
		offset += len(page)
	}

	chapters, err := h.db.ListChapters(ctx, worldID)
	if err != nil {
		return 0, fmt.Errorf("listing chapters: %w", err)
	}
	doc.Chapters = chapters

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encoding export: %w", err)
	}

	return len(doc.Entries), nil
}
