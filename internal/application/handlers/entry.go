// Package handlers contains application-layer handlers that bridge the CLI
// to the domain services.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
	"github.com/ersonp/canon-core/internal/domain/services"
)

// EntryHandler handles canon entry operations at the application layer.
type EntryHandler struct {
	db         ports.RelationalDB
	query      *services.QueryService
	continuity *services.ContinuityService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(db ports.RelationalDB, query *services.QueryService, continuity *services.ContinuityService) *EntryHandler {
	return &EntryHandler{
		db:         db,
		query:      query,
		continuity: continuity,
	}
}

// EntryListResult contains the result of listing entries.
type EntryListResult struct {
	Entries []*entities.Entry `json:"entries"`
	Total   int               `json:"total"`
}

// HandleCreate validates and stores a new entry, indexes it for semantic
// search, and captures its first snapshot so later edits have a baseline.
func (h *EntryHandler) HandleCreate(ctx context.Context, entry *entities.Entry) (*entities.Entry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	existing, err := h.db.FindEntryByName(ctx, entry.WorldID, entry.Name)
	if err != nil {
		return nil, fmt.Errorf("checking for duplicate: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("entry %q already exists in this world", entry.Name)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := h.db.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}

	if err := h.query.IndexEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("indexing entry: %w", err)
	}

	if _, err := h.continuity.CaptureSnapshot(ctx, entry.ID); err != nil {
		return nil, fmt.Errorf("capturing initial snapshot: %w", err)
	}

	return entry, nil
}

// HandleUpdate stores an edited entry and refreshes its search index. The
// captured snapshot is left alone: the next impact check compares against it.
func (h *EntryHandler) HandleUpdate(ctx context.Context, entry *entities.Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	entry.UpdatedAt = time.Now()
	if err := h.db.SaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	if err := h.query.IndexEntry(ctx, entry); err != nil {
		return fmt.Errorf("indexing entry: %w", err)
	}
	return nil
}

// HandleGet finds an entry by name within a world.
func (h *EntryHandler) HandleGet(ctx context.Context, worldID, name string) (*entities.Entry, error) {
	entry, err := h.db.FindEntryByName(ctx, worldID, name)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("no entry named %q in this world", name)
	}
	return entry, nil
}

// HandleList returns all entries for a world with pagination.
func (h *EntryHandler) HandleList(ctx context.Context, worldID string, limit, offset int) (*EntryListResult, error) {
	list, err := h.db.ListEntries(ctx, worldID, limit, offset)
	if err != nil {
		return nil, err
	}

	count, err := h.db.CountEntries(ctx, worldID)
	if err != nil {
		return nil, err
	}

	return &EntryListResult{
		Entries: list,
		Total:   count,
	}, nil
}

// HandleDelete removes an entry along with its snapshot, issues, reports,
// and search index row.
func (h *EntryHandler) HandleDelete(ctx context.Context, entryID string) error {
	if err := h.db.DeleteEntry(ctx, entryID); err != nil {
		return err
	}
	return h.query.DeleteEntry(ctx, entryID)
}

// validateEntry checks the type tag and that exactly the matching facts
// struct is populated.
func validateEntry(entry *entities.Entry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	if entry.Name == "" {
		return fmt.Errorf("entry name is required")
	}
	if entry.WorldID == "" {
		return fmt.Errorf("entry world is required")
	}
	if !entities.ValidEntryType(string(entry.Type)) {
		return fmt.Errorf("unknown entry type %q", entry.Type)
	}

	facts := map[entities.EntryType]bool{
		entities.EntryTypeCharacter: entry.Character != nil,
		entities.EntryTypeLocation:  entry.Location != nil,
		entities.EntryTypeSystem:    entry.System != nil,
		entities.EntryTypeArtifact:  entry.Artifact != nil,
		entities.EntryTypeRule:      entry.Rule != nil,
		entities.EntryTypeEvent:     entry.Event != nil,
	}
	for entryType, present := range facts {
		if entryType == entry.Type && !present {
			return fmt.Errorf("%s entry needs %s facts", entry.Type, entry.Type)
		}
		if entryType != entry.Type && present {
			return fmt.Errorf("%s entry carries %s facts", entry.Type, entryType)
		}
	}
	return nil
}
