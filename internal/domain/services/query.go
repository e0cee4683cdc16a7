package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// QueryService finds canon entries semantically related to free text, backed
// by the vector index.
type QueryService struct {
	embedder ports.Embedder
	vectorDB ports.VectorDB
}

// NewQueryService creates a new query service.
func NewQueryService(embedder ports.Embedder, vectorDB ports.VectorDB) *QueryService {
	return &QueryService{
		embedder: embedder,
		vectorDB: vectorDB,
	}
}

// Search finds entries semantically similar to the query.
func (s *QueryService) Search(ctx context.Context, query string, limit int) ([]ports.EntryMatch, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	matches, err := s.vectorDB.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}

	return matches, nil
}

// SearchByType finds entries filtered by entry type.
func (s *QueryService) SearchByType(ctx context.Context, query string, entryType entities.EntryType, limit int) ([]ports.EntryMatch, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	matches, err := s.vectorDB.SearchByType(ctx, embedding, entryType, limit)
	if err != nil {
		return nil, fmt.Errorf("searching entries by type: %w", err)
	}

	return matches, nil
}

// IndexEntry prepares an entry for the semantic index and stores it.
func (s *QueryService) IndexEntry(ctx context.Context, entry *entities.Entry) error {
	embedding, err := s.embedder.Embed(ctx, entryToText(entry))
	if err != nil {
		return fmt.Errorf("generating entry embedding: %w", err)
	}

	vec := ports.EntryVector{
		ID:        entry.ID,
		Type:      entry.Type,
		Name:      entry.Name,
		Summary:   entry.Summary,
		Embedding: embedding,
	}
	if err := s.vectorDB.Save(ctx, vec); err != nil {
		return fmt.Errorf("saving entry vector: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry from the semantic index.
func (s *QueryService) DeleteEntry(ctx context.Context, entryID string) error {
	if err := s.vectorDB.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("deleting entry vector: %w", err)
	}
	return nil
}

// entryToText converts an entry to searchable text for embedding.
func entryToText(entry *entities.Entry) string {
	parts := []string{string(entry.Type), entry.Name}
	if entry.Summary != "" {
		parts = append(parts, entry.Summary)
	}
	return strings.Join(parts, " ")
}
