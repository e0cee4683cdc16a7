package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
	"github.com/ersonp/canon-core/internal/domain/services"
)

// ImpactHandler drives the snapshot → check → report cycle.
type ImpactHandler struct {
	db         ports.RelationalDB
	continuity *services.ContinuityService
}

// NewImpactHandler creates a new ImpactHandler.
func NewImpactHandler(db ports.RelationalDB, continuity *services.ContinuityService) *ImpactHandler {
	return &ImpactHandler{
		db:         db,
		continuity: continuity,
	}
}

// HandleSnapshot captures the named entry's current state as the comparison
// baseline for the next impact check.
func (h *ImpactHandler) HandleSnapshot(ctx context.Context, worldID, name string) (*entities.StoredSnapshot, error) {
	entry, err := h.resolve(ctx, worldID, name)
	if err != nil {
		return nil, err
	}
	return h.continuity.CaptureSnapshot(ctx, entry.ID)
}

// HandleCheck runs an impact check for the named entry.
func (h *ImpactHandler) HandleCheck(ctx context.Context, worldID, name string) (*services.ImpactResult, error) {
	entry, err := h.resolve(ctx, worldID, name)
	if err != nil {
		return nil, err
	}
	return h.continuity.CheckImpact(ctx, entry.ID)
}

// HandleReports lists the named entry's impact reports, most recent first.
func (h *ImpactHandler) HandleReports(ctx context.Context, worldID, name string) ([]entities.ImpactReport, error) {
	entry, err := h.resolve(ctx, worldID, name)
	if err != nil {
		return nil, err
	}
	return h.continuity.ListReports(ctx, entry.ID)
}

// resolve finds an entry by name within the world.
func (h *ImpactHandler) resolve(ctx context.Context, worldID, name string) (*entities.Entry, error) {
	entry, err := h.db.FindEntryByName(ctx, worldID, name)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("no entry named %q in this world", name)
	}
	return entry, nil
}
