package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/mocks"
	"github.com/ersonp/canon-core/internal/domain/services"
)

type impactHandlerFixture struct {
	handler  *ImpactHandler
	entries  *EntryHandler
	db       *mocks.RelationalDB
	analyzer *mocks.IssueAnalyzer
}

func newImpactHandlerFixture() *impactHandlerFixture {
	db := mocks.NewRelationalDB()
	analyzer := &mocks.IssueAnalyzer{}
	embedder := &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2, 0.3}}
	vectorDB := &mocks.VectorDB{}

	query := services.NewQueryService(embedder, vectorDB)
	continuity := services.NewContinuityService(db, analyzer)

	return &impactHandlerFixture{
		handler:  NewImpactHandler(db, continuity),
		entries:  NewEntryHandler(db, query, continuity),
		db:       db,
		analyzer: analyzer,
	}
}

func TestImpactHandler_HandleSnapshot(t *testing.T) {
	f := newImpactHandlerFixture()

	created, err := f.entries.HandleCreate(context.Background(), characterEntry("Elara Voss"))
	require.NoError(t, err)

	snapshot, err := f.handler.HandleSnapshot(context.Background(), "world-1", "elara voss")

	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.EntryID)
	assert.Equal(t, "Elara Voss", snapshot.Data.Name)
}

func TestImpactHandler_HandleSnapshot_UnknownEntry(t *testing.T) {
	f := newImpactHandlerFixture()

	_, err := f.handler.HandleSnapshot(context.Background(), "world-1", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no entry named "Nobody"`)
}

func TestImpactHandler_HandleCheck(t *testing.T) {
	f := newImpactHandlerFixture()

	created, err := f.entries.HandleCreate(context.Background(), characterEntry("Elara Voss"))
	require.NoError(t, err)

	f.analyzer.Issues = []entities.ValidationIssue{
		{
			ID:           "issue-1",
			Severity:     entities.SeverityCritical,
			Type:         entities.IssueContinuity,
			Title:        "Character death detected",
			CanonEntryID: created.ID,
		},
	}

	created.Character.Alive = false
	require.NoError(t, f.entries.HandleUpdate(context.Background(), created))

	result, err := f.handler.HandleCheck(context.Background(), "world-1", "Elara Voss")

	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "alive", result.Changes[0].Field)
	require.Len(t, result.Issues, 1)
	require.NotNil(t, result.Report)
	assert.Equal(t, 1, f.db.SaveIssuesCallCount)
	assert.Equal(t, 1, f.db.SaveReportCallCount)
}

func TestImpactHandler_HandleCheck_NoChanges(t *testing.T) {
	f := newImpactHandlerFixture()

	_, err := f.entries.HandleCreate(context.Background(), characterEntry("Elara Voss"))
	require.NoError(t, err)

	result, err := f.handler.HandleCheck(context.Background(), "world-1", "Elara Voss")

	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Nil(t, result.Report)
	assert.Equal(t, 0, f.analyzer.AnalyzeCallCount)
}

func TestImpactHandler_HandleReports(t *testing.T) {
	f := newImpactHandlerFixture()

	created, err := f.entries.HandleCreate(context.Background(), characterEntry("Elara Voss"))
	require.NoError(t, err)

	f.analyzer.Issues = []entities.ValidationIssue{
		{ID: "issue-1", Severity: entities.SeverityWarning, CanonEntryID: created.ID},
	}
	created.Character.CurrentLocation = "Gilded City"
	require.NoError(t, f.entries.HandleUpdate(context.Background(), created))

	_, err = f.handler.HandleCheck(context.Background(), "world-1", "Elara Voss")
	require.NoError(t, err)

	reports, err := f.handler.HandleReports(context.Background(), "world-1", "Elara Voss")

	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, created.ID, reports[0].CanonEntryID)
}
