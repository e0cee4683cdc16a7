package ports

import (
	"context"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// EntryVector is a canon entry prepared for the semantic index.
type EntryVector struct {
	ID        string             `json:"id"`
	Type      entities.EntryType `json:"type"`
	Name      string             `json:"name"`
	Summary   string             `json:"summary"`
	Embedding []float32          `json:"embedding,omitempty"`
}

// EntryMatch is a semantic search hit.
type EntryMatch struct {
	ID      string             `json:"id"`
	Type    entities.EntryType `json:"type"`
	Name    string             `json:"name"`
	Summary string             `json:"summary"`
	Score   float32            `json:"score"`
}

// VectorDB defines the interface for the canon semantic index.
type VectorDB interface {
	// Save stores an entry vector.
	Save(ctx context.Context, vec EntryVector) error

	// SaveBatch stores multiple entry vectors.
	SaveBatch(ctx context.Context, vecs []EntryVector) error

	// Search returns entries semantically similar to the embedding.
	Search(ctx context.Context, embedding []float32, limit int) ([]EntryMatch, error)

	// SearchByType returns similar entries filtered by entry type.
	SearchByType(ctx context.Context, embedding []float32, entryType entities.EntryType, limit int) ([]EntryMatch, error)

	// Delete removes an entry vector by its ID.
	Delete(ctx context.Context, id string) error
}
