package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/services"
	"github.com/ersonp/canon-core/internal/infrastructure/config"
	"github.com/ersonp/canon-core/internal/infrastructure/relationaldb/sqlite"
)

// Runs the full snapshot → edit → check cycle against a real SQLite file
// with the rule-based analyzer.
func TestContinuityFlow_SQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	repo, err := sqlite.NewRepository(config.SQLiteConfig{
		Path: filepath.Join(tmpDir, "canon.db"),
	})
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	svc := services.NewContinuityService(repo, services.NewRuleBasedAnalyzer())

	entry := &entities.Entry{
		ID:      "entry-1",
		WorldID: "world-1",
		Type:    entities.EntryTypeCharacter,
		Name:    "Elara Voss",
		Character: &entities.CharacterFacts{
			Alive:           true,
			CurrentLocation: "Sunken Library",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.SaveEntry(ctx, entry))

	for n := 1; n <= 3; n++ {
		require.NoError(t, repo.SaveChapter(ctx, &entities.Chapter{
			ID:      fmt.Sprintf("ch-%d", n),
			WorldID: "world-1",
			Number:  n,
		}))
	}

	_, err = svc.CaptureSnapshot(ctx, entry.ID)
	require.NoError(t, err)

	entry.Character.Alive = false
	require.NoError(t, repo.SaveEntry(ctx, entry))

	result, err := svc.CheckImpact(ctx, entry.ID)

	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "alive", result.Changes[0].Field)
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, entities.SeverityCritical, result.Issues[0].Severity)
	require.NotNil(t, result.Report)

	// The issues and report came back out of storage, not just memory.
	stored, err := repo.ListIssues(ctx, "world-1", false)
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	reports, err := repo.ListReports(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	// The snapshot was replaced, so an immediate re-check is clean.
	second, err := svc.CheckImpact(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, second.Changes)
}
