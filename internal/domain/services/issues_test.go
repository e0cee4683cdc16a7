package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

func fixedGenerator() *IssueGenerator {
	id := 0
	return &IssueGenerator{
		now: func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) },
		newID: func() string {
			id++
			return "issue-" + string(rune('0'+id))
		},
	}
}

func TestGenerate_AliveFlipProducesCritical(t *testing.T) {
	gen := fixedGenerator()
	entry := testCharacter()
	changes := []entities.ChangeRecord{
		{Field: "alive", OldValue: true, NewValue: false},
	}

	issues := gen.Generate(entry, changes, 12)

	require.Len(t, issues, 1)
	issue := issues[0]
	assert.Equal(t, entities.SeverityCritical, issue.Severity)
	assert.Equal(t, entities.IssueContinuity, issue.Type)
	assert.Equal(t, "Elara Voss is now deceased", issue.Title)
	assert.Contains(t, issue.Description, "marked as dead")
	assert.Equal(t, entry.ID, issue.CanonEntryID)
	assert.Equal(t, "alive", issue.Field)
	assert.Len(t, issue.AffectedChapterIDs, 12)
	assert.Equal(t, 1, issue.AffectedChapterIDs[0])
	assert.Equal(t, 12, issue.AffectedChapterIDs[11])
}

func TestGenerate_ResurrectionDirection(t *testing.T) {
	gen := fixedGenerator()
	entry := testCharacter()
	changes := []entities.ChangeRecord{
		{Field: "alive", OldValue: false, NewValue: true},
	}

	issues := gen.Generate(entry, changes, 3)

	require.Len(t, issues, 1)
	assert.Equal(t, "Elara Voss is alive again", issues[0].Title)
	assert.Contains(t, issues[0].Description, "alive again")
}

func TestGenerate_LocationChangeTouchesEarlyChaptersOnly(t *testing.T) {
	gen := fixedGenerator()
	entry := testCharacter()
	changes := []entities.ChangeRecord{
		{Field: "currentLocation", OldValue: "Sunken Library", NewValue: "Gilded City"},
	}

	issues := gen.Generate(entry, changes, 20)

	require.Len(t, issues, 1)
	assert.Equal(t, entities.SeverityWarning, issues[0].Severity)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, issues[0].AffectedChapterIDs)
}

func TestGenerate_FirstChapterWindowClampsToChapterCount(t *testing.T) {
	gen := fixedGenerator()
	entry := testCharacter()
	changes := []entities.ChangeRecord{
		{Field: "currentLocation", OldValue: "a", NewValue: "b"},
	}

	issues := gen.Generate(entry, changes, 2)

	require.Len(t, issues, 1)
	assert.Equal(t, []int{1, 2}, issues[0].AffectedChapterIDs)
}

func TestGenerate_NoChaptersMeansNoAffectedChapters(t *testing.T) {
	gen := fixedGenerator()
	issues := gen.Generate(testCharacter(), []entities.ChangeRecord{
		{Field: "alive", OldValue: true, NewValue: false},
	}, 0)

	require.Len(t, issues, 1)
	assert.Empty(t, issues[0].AffectedChapterIDs)
}

func TestGenerate_UnmappedFieldProducesNothing(t *testing.T) {
	gen := fixedGenerator()
	issues := gen.Generate(testCharacter(), []entities.ChangeRecord{
		{Field: "atmosphere", OldValue: "gloomy", NewValue: "bright"},
		{Field: "description", OldValue: "a", NewValue: "b"},
		{Field: "scope", OldValue: "local", NewValue: "global"},
	}, 10)

	assert.Empty(t, issues)
}

func TestGenerate_OneIssuePerMappedChange(t *testing.T) {
	gen := fixedGenerator()
	entry := testCharacter()
	changes := []entities.ChangeRecord{
		{Field: "alive", OldValue: true, NewValue: false},
		{Field: "atmosphere", OldValue: "a", NewValue: "b"},
		{Field: "knowledgeState", OldValue: []string{"x"}, NewValue: []string{"x", "y"}},
	}

	issues := gen.Generate(entry, changes, 4)

	require.Len(t, issues, 2)
	assert.Equal(t, entities.SeverityCritical, issues[0].Severity)
	assert.Equal(t, entities.IssuePlotHole, issues[1].Type)
	assert.Equal(t, entities.SeverityError, issues[1].Severity)
}

func TestGenerate_SeverityByField(t *testing.T) {
	tests := []struct {
		field     string
		severity  entities.Severity
		issueType entities.IssueType
	}{
		{"alive", entities.SeverityCritical, entities.IssueContinuity},
		{"knowledgeState", entities.SeverityError, entities.IssuePlotHole},
		{"accessRules", entities.SeverityError, entities.IssueLogic},
		{"rules", entities.SeverityError, entities.IssueLogic},
		{"statement", entities.SeverityError, entities.IssueLogic},
		{"when", entities.SeverityError, entities.IssueContinuity},
		{"consequences", entities.SeverityError, entities.IssuePlotHole},
		{"role", entities.SeverityWarning, entities.IssueCharacterInconsistency},
		{"speechPattern", entities.SeverityWarning, entities.IssueCharacterInconsistency},
		{"powers", entities.SeverityWarning, entities.IssueLogic},
		{"cost", entities.SeverityWarning, entities.IssueLogic},
		{"personality.traits", entities.SeverityInfo, entities.IssueCharacterInconsistency},
		{"name", entities.SeverityInfo, entities.IssueContinuity},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			gen := fixedGenerator()
			issues := gen.Generate(testCharacter(), []entities.ChangeRecord{
				{Field: tt.field, OldValue: "old", NewValue: "new"},
			}, 1)

			require.Len(t, issues, 1)
			assert.Equal(t, tt.severity, issues[0].Severity)
			assert.Equal(t, tt.issueType, issues[0].Type)
		})
	}
}

func TestGenerate_DeterministicWithInjectedClockAndIDs(t *testing.T) {
	entry := testCharacter()
	changes := []entities.ChangeRecord{
		{Field: "role", OldValue: "protagonist", NewValue: "antagonist"},
	}

	first := fixedGenerator().Generate(entry, changes, 5)
	second := fixedGenerator().Generate(entry, changes, 5)

	assert.Equal(t, first, second)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "(empty)", formatValue(nil))
	assert.Equal(t, "(empty)", formatValue(""))
	assert.Equal(t, "(empty)", formatValue([]string{}))
	assert.Equal(t, `"Gilded City"`, formatValue("Gilded City"))
	assert.Equal(t, `"a, b"`, formatValue([]string{"a", "b"}))
	assert.Equal(t, "false", formatValue(false))
}
