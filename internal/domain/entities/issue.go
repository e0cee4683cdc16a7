package entities

import "time"

// Severity is the ordinal narrative-risk level of a validation issue.
type Severity string

// Severity levels, ordered info < warning < error < critical.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// severityRanks holds the total order over severities.
var severityRanks = map[Severity]int{
	SeverityInfo:     0,
	SeverityWarning:  1,
	SeverityError:    2,
	SeverityCritical: 3,
}

// Rank returns the position of the severity in the total order. Unknown
// severities rank below info.
func (s Severity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return -1
}

// MaxSeverity returns the more severe of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// IssueType categorizes the narrative consequence of a change.
type IssueType string

// Issue types.
const (
	IssueContinuity             IssueType = "continuity"
	IssueCharacterInconsistency IssueType = "character-inconsistency"
	IssuePlotHole               IssueType = "plot-hole"
	IssueLogic                  IssueType = "logic"
)

// ValidationIssue represents one narrative consequence of a canon edit.
// Issues are durable until resolved, overridden, or dismissed by the caller.
type ValidationIssue struct {
	ID                 string    `json:"id"`
	Severity           Severity  `json:"severity"`
	Type               IssueType `json:"type"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Suggestion         string    `json:"suggestion"`
	CanonEntryID       string    `json:"canon_entry_id"`
	CanonEntryName     string    `json:"canon_entry_name"`
	AffectedChapterIDs []int     `json:"affected_chapter_ids"`
	Field              string    `json:"field"`
	OldValue           any       `json:"old_value"`
	NewValue           any       `json:"new_value"`
	Resolved           bool      `json:"resolved"`
	Overridden         bool      `json:"overridden"`
	OverrideReason     string    `json:"override_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
