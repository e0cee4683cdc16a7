package mocks

import (
	"context"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
)

// VectorDB is a mock implementation of ports.VectorDB.
type VectorDB struct {
	Matches []ports.EntryMatch
	Err     error

	// Collection errors (separate from Err for fine-grained control)
	EnsureCollectionErr error
	DeleteCollectionErr error

	// Call tracking
	SaveCallCount             int
	SaveBatchCallCount        int
	SaveBatchLastVecs         []ports.EntryVector
	SearchCallCount           int
	DeleteCallCount           int
	EnsureCollectionCallCount int
	DeleteCollectionCallCount int
}

// EnsureCollection creates the collection if it doesn't exist.
func (m *VectorDB) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	m.EnsureCollectionCallCount++
	return m.EnsureCollectionErr
}

// DeleteCollection removes the collection and all its data.
func (m *VectorDB) DeleteCollection(ctx context.Context) error {
	m.DeleteCollectionCallCount++
	return m.DeleteCollectionErr
}

// Save stores a single entry vector.
func (m *VectorDB) Save(ctx context.Context, vec ports.EntryVector) error {
	m.SaveCallCount++
	return m.Err
}

// SaveBatch stores multiple entry vectors.
func (m *VectorDB) SaveBatch(ctx context.Context, vecs []ports.EntryVector) error {
	m.SaveBatchCallCount++
	m.SaveBatchLastVecs = vecs
	return m.Err
}

// Search returns the configured matches up to limit.
func (m *VectorDB) Search(ctx context.Context, embedding []float32, limit int) ([]ports.EntryMatch, error) {
	m.SearchCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > len(m.Matches) {
		return m.Matches, nil
	}
	return m.Matches[:limit], nil
}

// SearchByType returns the configured matches filtered by type.
func (m *VectorDB) SearchByType(ctx context.Context, embedding []float32, entryType entities.EntryType, limit int) ([]ports.EntryMatch, error) {
	m.SearchCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	var filtered []ports.EntryMatch
	for _, match := range m.Matches {
		if match.Type == entryType {
			filtered = append(filtered, match)
		}
		if len(filtered) == limit {
			break
		}
	}
	return filtered, nil
}

// Delete removes an entry vector.
func (m *VectorDB) Delete(ctx context.Context, id string) error {
	m.DeleteCallCount++
	return m.Err
}
