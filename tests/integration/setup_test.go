package integration

import (
	"context"
	"os"
	"testing"

	"github.com/ersonp/canon-core/internal/infrastructure/config"
	embedder "github.com/ersonp/canon-core/internal/infrastructure/embedder/openai"
	"github.com/ersonp/canon-core/internal/infrastructure/vectordb/qdrant"
)

const (
	testQdrantHost = "localhost"
	testQdrantPort = 6334
	testCollection = "canon_integration_test"
)

var testRepo *qdrant.Repository

func TestMain(m *testing.M) {
	// Skip if INTEGRATION_TEST is not set
	if os.Getenv("INTEGRATION_TEST") != "1" {
		os.Exit(0)
	}

	cfg := config.QdrantConfig{
		Host:       testQdrantHost,
		Port:       testQdrantPort,
		Collection: testCollection,
	}

	var err error
	testRepo, err = qdrant.NewRepository(cfg)
	if err != nil {
		panic("failed to create repository: " + err.Error())
	}

	// Ensure clean collection
	ctx := context.Background()
	_ = testRepo.DeleteCollection(ctx) // Ignore error if collection doesn't exist
	if err := testRepo.EnsureCollection(ctx, uint64(embedder.VectorSize)); err != nil {
		panic("failed to create collection: " + err.Error())
	}

	code := m.Run()

	// Cleanup
	_ = testRepo.DeleteCollection(ctx)
	testRepo.Close()

	os.Exit(code)
}

// resetCollection recreates the collection so tests start empty.
func resetCollection(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if err := testRepo.DeleteCollection(ctx); err != nil {
		t.Fatalf("failed to drop collection: %v", err)
	}
	if err := testRepo.EnsureCollection(ctx, uint64(embedder.VectorSize)); err != nil {
		t.Fatalf("failed to recreate collection: %v", err)
	}
}

// makeEmbedding builds a deterministic unit-ish vector that leans toward one
// dimension, so near-identical seeds score higher than distant ones.
func makeEmbedding(lean int) []float32 {
	vec := make([]float32, embedder.VectorSize)
	for i := range vec {
		vec[i] = 0.001
	}
	vec[lean%embedder.VectorSize] = 1.0
	return vec
}
