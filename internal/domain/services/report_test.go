package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

func TestBuildImpactReport_NilWhenNoIssues(t *testing.T) {
	entry := testCharacter()
	changes := []entities.ChangeRecord{{Field: "atmosphere", OldValue: "a", NewValue: "b"}}

	report := BuildImpactReport(entry, changes, nil, nil, time.Now())

	assert.Nil(t, report)
}

func TestBuildImpactReport_AggregatesWorstSeverityPerChapter(t *testing.T) {
	entry := testCharacter()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	issues := []entities.ValidationIssue{
		{Severity: entities.SeverityInfo, AffectedChapterIDs: []int{1, 2, 3}},
		{Severity: entities.SeverityCritical, AffectedChapterIDs: []int{2}},
		{Severity: entities.SeverityWarning, AffectedChapterIDs: []int{2, 3}},
	}
	chapters := []entities.Chapter{
		{Number: 1, Title: "The Flooded Stacks"},
		{Number: 2, Title: "What the Codex Held"},
		{Number: 3, Title: "Gilded Streets"},
	}

	report := BuildImpactReport(entry, nil, issues, chapters, now)

	require.NotNil(t, report)
	assert.Equal(t, entry.ID, report.CanonEntryID)
	assert.Equal(t, entry.Name, report.CanonEntryName)
	assert.Equal(t, now, report.Timestamp)
	require.Len(t, report.AffectedChapters, 3)

	assert.Equal(t, 1, report.AffectedChapters[0].Number)
	assert.Equal(t, "The Flooded Stacks", report.AffectedChapters[0].Title)
	assert.Equal(t, entities.SeverityInfo, report.AffectedChapters[0].Severity)

	assert.Equal(t, 2, report.AffectedChapters[1].Number)
	assert.Equal(t, entities.SeverityCritical, report.AffectedChapters[1].Severity)

	assert.Equal(t, 3, report.AffectedChapters[2].Number)
	assert.Equal(t, entities.SeverityWarning, report.AffectedChapters[2].Severity)
}

func TestBuildImpactReport_ChapterWithoutTitleStillListed(t *testing.T) {
	issues := []entities.ValidationIssue{
		{Severity: entities.SeverityWarning, AffectedChapterIDs: []int{7}},
	}

	report := BuildImpactReport(testCharacter(), nil, issues, nil, time.Now())

	require.NotNil(t, report)
	require.Len(t, report.AffectedChapters, 1)
	assert.Equal(t, 7, report.AffectedChapters[0].Number)
	assert.Equal(t, "", report.AffectedChapters[0].Title)
}

func TestBuildImpactReport_ChangeDescription(t *testing.T) {
	changes := []entities.ChangeRecord{
		{Field: "alive", OldValue: true, NewValue: false},
		{Field: "currentLocation", OldValue: "Sunken Library", NewValue: "Gilded City"},
	}
	issues := []entities.ValidationIssue{
		{Severity: entities.SeverityCritical, AffectedChapterIDs: []int{1}},
	}

	report := BuildImpactReport(testCharacter(), changes, issues, nil, time.Now())

	require.NotNil(t, report)
	assert.Equal(t, `alive: true → false; currentLocation: "Sunken Library" → "Gilded City"`, report.ChangeDescription)
}

func TestBuildImpactReport_IssuesWithoutChaptersYieldEmptyChapterList(t *testing.T) {
	issues := []entities.ValidationIssue{
		{Severity: entities.SeverityError, AffectedChapterIDs: nil},
	}

	report := BuildImpactReport(testCharacter(), nil, issues, nil, time.Now())

	require.NotNil(t, report)
	assert.Equal(t, issues, report.Issues)
	assert.Empty(t, report.AffectedChapters)
}
