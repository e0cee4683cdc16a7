package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/canon-core/internal/domain/ports"
	"github.com/ersonp/canon-core/internal/domain/services"
)

// ImportHandler loads a WorldExport document into a world.
type ImportHandler struct {
	db         ports.RelationalDB
	query      *services.QueryService
	continuity *services.ContinuityService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(db ports.RelationalDB, query *services.QueryService, continuity *services.ContinuityService) *ImportHandler {
	return &ImportHandler{
		db:         db,
		query:      query,
		continuity: continuity,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun    bool // Validate without saving
	Overwrite bool // Replace entries whose names already exist
}

// ImportError describes a single entry that could not be imported.
type ImportError struct {
	Name   string
	Reason string
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Chapters int
	Errors   []ImportError
}

// Handle reads a WorldExport document from r and imports it into worldID.
// Imported entries are re-identified, indexed, and given a fresh snapshot
// baseline; existing entries with the same name are skipped unless
// Overwrite is set.
func (h *ImportHandler) Handle(ctx context.Context, worldID string, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	var doc WorldExport
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding import document: %w", err)
	}

	result := &ImportResult{}

	for _, entry := range doc.Entries {
		if entry == nil {
			continue
		}
		entry.WorldID = worldID

		if err := validateEntry(entry); err != nil {
			result.Errors = append(result.Errors, ImportError{Name: entry.Name, Reason: err.Error()})
			continue
		}

		existing, err := h.db.FindEntryByName(ctx, worldID, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("checking for existing entry: %w", err)
		}
		if existing != nil && !opts.Overwrite {
			result.Skipped++
			continue
		}

		if opts.DryRun {
			result.Imported++
			continue
		}

		if existing != nil {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
		} else {
			entry.ID = uuid.New().String()
			entry.CreatedAt = time.Now()
		}
		entry.UpdatedAt = time.Now()

		if err := h.db.SaveEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("saving entry %q: %w", entry.Name, err)
		}
		if err := h.query.IndexEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("indexing entry %q: %w", entry.Name, err)
		}
		if _, err := h.continuity.CaptureSnapshot(ctx, entry.ID); err != nil {
			return nil, fmt.Errorf("capturing snapshot for %q: %w", entry.Name, err)
		}
		result.Imported++
	}

	for _, chapter := range doc.Chapters {
		if chapter.Number < 1 {
			result.Errors = append(result.Errors, ImportError{
				Name:   fmt.Sprintf("chapter %d", chapter.Number),
				Reason: "chapter number must be at least 1",
			})
			continue
		}
		if opts.DryRun {
			result.Chapters++
			continue
		}

		chapter.WorldID = worldID
		if chapter.ID == "" {
			chapter.ID = uuid.New().String()
		}
		if chapter.CreatedAt.IsZero() {
			chapter.CreatedAt = time.Now()
		}
		if err := h.db.SaveChapter(ctx, &chapter); err != nil {
			return nil, fmt.Errorf("saving chapter %d: %w", chapter.Number, err)
		}
		result.Chapters++
	}

	return result, nil
}
