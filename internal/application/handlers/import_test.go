package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/services"
)

func exportDocument(t *testing.T, entries []*entities.Entry, chapters []entities.Chapter) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(WorldExport{
		WorldID:  "source-world",
		Entries:  entries,
		Chapters: chapters,
	})
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func newImportHandlerFixture(f *entryHandlerFixture) *ImportHandler {
	query := services.NewQueryService(f.embedder, f.vectorDB)
	continuity := services.NewContinuityService(f.db, f.analyzer)
	return NewImportHandler(f.db, query, continuity)
}

func TestImportHandler_Handle(t *testing.T) {
	f := newEntryHandlerFixture()
	handler := newImportHandlerFixture(f)

	doc := exportDocument(t,
		[]*entities.Entry{characterEntry("Elara Voss"), characterEntry("Corvo")},
		[]entities.Chapter{{Number: 1, Title: "Landfall"}},
	)

	result, err := handler.Handle(context.Background(), "world-1", doc, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Chapters)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)

	assert.Len(t, f.db.Entries, 2)
	assert.Len(t, f.db.Snapshots, 2, "imported entries get a snapshot baseline")
	assert.Equal(t, 2, f.vectorDB.SaveCallCount)
	for _, entry := range f.db.Entries {
		assert.Equal(t, "world-1", entry.WorldID, "entries are rehomed to the target world")
		assert.NotEmpty(t, entry.ID)
	}
}

func TestImportHandler_Handle_SkipsExisting(t *testing.T) {
	f := newEntryHandlerFixture()
	handler := newImportHandlerFixture(f)

	existing, err := f.handler.HandleCreate(context.Background(), characterEntry("Elara Voss"))
	require.NoError(t, err)

	incoming := characterEntry("Elara Voss")
	incoming.Character.CurrentLocation = "Gilded City"
	doc := exportDocument(t, []*entities.Entry{incoming}, nil)

	result, err := handler.Handle(context.Background(), "world-1", doc, ImportOptions{})

	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Sunken Library", f.db.Entries[existing.ID].Character.CurrentLocation)
}

func TestImportHandler_Handle_Overwrite(t *testing.T) {
	f := newEntryHandlerFixture()
	handler := newImportHandlerFixture(f)

	existing, err := f.handler.HandleCreate(context.Background(), characterEntry("Elara Voss"))
	require.NoError(t, err)

	incoming := characterEntry("Elara Voss")
	incoming.Character.CurrentLocation = "Gilded City"
	doc := exportDocument(t, []*entities.Entry{incoming}, nil)

	result, err := handler.Handle(context.Background(), "world-1", doc, ImportOptions{Overwrite: true})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, result.Skipped)
	require.Len(t, f.db.Entries, 1)
	assert.Equal(t, "Gilded City", f.db.Entries[existing.ID].Character.CurrentLocation)
	assert.Equal(t, existing.ID, f.db.Entries[existing.ID].ID, "overwrite keeps the original identity")
}

func TestImportHandler_Handle_DryRun(t *testing.T) {
	f := newEntryHandlerFixture()
	handler := newImportHandlerFixture(f)

	doc := exportDocument(t,
		[]*entities.Entry{characterEntry("Elara Voss")},
		[]entities.Chapter{{Number: 1}},
	)

	result, err := handler.Handle(context.Background(), "world-1", doc, ImportOptions{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Chapters)
	assert.Empty(t, f.db.Entries)
	assert.Empty(t, f.db.Chapters)
	assert.Zero(t, f.vectorDB.SaveCallCount)
}

func TestImportHandler_Handle_InvalidEntriesReported(t *testing.T) {
	f := newEntryHandlerFixture()
	handler := newImportHandlerFixture(f)

	broken := characterEntry("Broken")
	broken.Character = nil
	badChapter := entities.Chapter{Number: 0, Title: "Unnumbered"}
	doc := exportDocument(t,
		[]*entities.Entry{broken, characterEntry("Elara Voss")},
		[]entities.Chapter{badChapter},
	)

	result, err := handler.Handle(context.Background(), "world-1", doc, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, result.Chapters)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "Broken", result.Errors[0].Name)
	assert.Contains(t, result.Errors[0].Reason, "character facts")
	assert.Contains(t, result.Errors[1].Reason, "at least 1")
}

func TestImportHandler_Handle_BadDocument(t *testing.T) {
	f := newEntryHandlerFixture()
	handler := newImportHandlerFixture(f)

	_, err := handler.Handle(context.Background(), "world-1", strings.NewReader("not json"), ImportOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding import document")
}
