package entities

import "time"

// ChapterImpact is one chapter touched by an edit, tagged with the maximum
// severity among the issues affecting it.
type ChapterImpact struct {
	Number   int      `json:"number"`
	Title    string   `json:"title,omitempty"`
	Severity Severity `json:"severity"`
}

// ImpactReport aggregates the issues from a single edit cycle. Reports exist
// only for edits that produced at least one issue.
type ImpactReport struct {
	ID                string            `json:"id"`
	CanonEntryID      string            `json:"canon_entry_id"`
	CanonEntryName    string            `json:"canon_entry_name"`
	ChangeDescription string            `json:"change_description"`
	Issues            []ValidationIssue `json:"issues"`
	AffectedChapters  []ChapterImpact   `json:"affected_chapters"`
	Timestamp         time.Time         `json:"timestamp"`
}
