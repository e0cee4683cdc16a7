package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
	"github.com/ersonp/canon-core/internal/domain/services"
)

// QueryHandler handles semantic search over the canon.
type QueryHandler struct {
	queryService *services.QueryService
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(queryService *services.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

// QueryResult contains the result of a query.
type QueryResult struct {
	Query   string
	Matches []ports.EntryMatch
}

// Handle searches for entries semantically matching the query.
func (h *QueryHandler) Handle(ctx context.Context, query string, limit int) (*QueryResult, error) {
	matches, err := h.queryService.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}

	return &QueryResult{
		Query:   query,
		Matches: matches,
	}, nil
}

// HandleByType searches for entries filtered by type.
func (h *QueryHandler) HandleByType(ctx context.Context, query string, entryType string, limit int) (*QueryResult, error) {
	if !entities.ValidEntryType(entryType) {
		return nil, fmt.Errorf("unknown entry type %q", entryType)
	}

	matches, err := h.queryService.SearchByType(ctx, query, entities.EntryType(entryType), limit)
	if err != nil {
		return nil, fmt.Errorf("searching entries by type: %w", err)
	}

	return &QueryResult{
		Query:   query,
		Matches: matches,
	}, nil
}
