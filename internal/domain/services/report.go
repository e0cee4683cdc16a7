package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// BuildImpactReport aggregates one edit cycle's issues into a single report.
// Returns nil when there are no issues: an edit with no narrative consequences
// produces no report. The chapter severity per row is the maximum over the
// issues touching that chapter.
func BuildImpactReport(entry *entities.Entry, changes []entities.ChangeRecord, issues []entities.ValidationIssue, chapters []entities.Chapter, now time.Time) *entities.ImpactReport {
	if len(issues) == 0 {
		return nil
	}

	titles := make(map[int]string, len(chapters))
	for _, ch := range chapters {
		titles[ch.Number] = ch.Title
	}

	worst := make(map[int]entities.Severity)
	for _, issue := range issues {
		for _, num := range issue.AffectedChapterIDs {
			if sev, ok := worst[num]; ok {
				worst[num] = entities.MaxSeverity(sev, issue.Severity)
			} else {
				worst[num] = issue.Severity
			}
		}
	}

	numbers := make([]int, 0, len(worst))
	for num := range worst {
		numbers = append(numbers, num)
	}
	sort.Ints(numbers)

	affected := make([]entities.ChapterImpact, 0, len(numbers))
	for _, num := range numbers {
		affected = append(affected, entities.ChapterImpact{
			Number:   num,
			Title:    titles[num],
			Severity: worst[num],
		})
	}

	return &entities.ImpactReport{
		CanonEntryID:      entry.ID,
		CanonEntryName:    entry.Name,
		ChangeDescription: describeChanges(changes),
		Issues:            issues,
		AffectedChapters:  affected,
		Timestamp:         now,
	}
}

// describeChanges renders a change batch as a semicolon-joined
// "field: old → new" list.
func describeChanges(changes []entities.ChangeRecord) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s: %s → %s", c.Field, formatValue(c.OldValue), formatValue(c.NewValue)))
	}
	return strings.Join(parts, "; ")
}
