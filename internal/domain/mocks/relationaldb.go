package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// RelationalDB is an in-memory mock implementation of ports.RelationalDB.
type RelationalDB struct {
	Entries   map[string]*entities.Entry
	Snapshots map[string]*entities.StoredSnapshot // keyed by entry ID
	Chapters  map[string]*entities.Chapter
	Issues    map[string]*entities.ValidationIssue
	Reports   []entities.ImpactReport
	Audit     []entities.AuditEntry

	Err error

	// Call tracking
	SaveEntryCallCount    int
	SaveSnapshotCallCount int
	SaveIssuesCallCount   int
	SaveIssuesLast        []entities.ValidationIssue
	SaveReportCallCount   int
	UpdateIssueCallCount  int
	LogActionCallCount    int
}

// NewRelationalDB creates an empty in-memory mock.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Entries:   make(map[string]*entities.Entry),
		Snapshots: make(map[string]*entities.StoredSnapshot),
		Chapters:  make(map[string]*entities.Chapter),
		Issues:    make(map[string]*entities.ValidationIssue),
	}
}

// EnsureSchema is a no-op.
func (m *RelationalDB) EnsureSchema(ctx context.Context) error { return m.Err }

// Close is a no-op.
func (m *RelationalDB) Close() error { return nil }

// SaveEntry stores an entry.
func (m *RelationalDB) SaveEntry(ctx context.Context, entry *entities.Entry) error {
	m.SaveEntryCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Entries[entry.ID] = entry
	return nil
}

// FindEntryByID returns the stored entry or an error if absent.
func (m *RelationalDB) FindEntryByID(ctx context.Context, entryID string) (*entities.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	entry, ok := m.Entries[entryID]
	if !ok {
		return nil, fmt.Errorf("entry not found: %s", entryID)
	}
	return entry, nil
}

// FindEntryByName returns the entry with a matching name, or nil.
func (m *RelationalDB) FindEntryByName(ctx context.Context, worldID, name string) (*entities.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, entry := range m.Entries {
		if entry.WorldID == worldID && strings.EqualFold(entry.Name, name) {
			return entry, nil
		}
	}
	return nil, nil
}

// ListEntries returns entries for a world sorted by name.
func (m *RelationalDB) ListEntries(ctx context.Context, worldID string, limit, offset int) ([]*entities.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*entities.Entry
	for _, entry := range m.Entries {
		if entry.WorldID == worldID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// DeleteEntry removes an entry and its snapshot.
func (m *RelationalDB) DeleteEntry(ctx context.Context, entryID string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Entries, entryID)
	delete(m.Snapshots, entryID)
	return nil
}

// CountEntries counts entries for a world.
func (m *RelationalDB) CountEntries(ctx context.Context, worldID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, entry := range m.Entries {
		if entry.WorldID == worldID {
			count++
		}
	}
	return count, nil
}

// SaveSnapshot stores a snapshot, replacing any existing one for the entry.
func (m *RelationalDB) SaveSnapshot(ctx context.Context, snapshot *entities.StoredSnapshot) error {
	m.SaveSnapshotCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Snapshots[snapshot.EntryID] = snapshot
	return nil
}

// FindSnapshotByEntry returns the stored snapshot or nil.
func (m *RelationalDB) FindSnapshotByEntry(ctx context.Context, entryID string) (*entities.StoredSnapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Snapshots[entryID], nil
}

// DeleteSnapshot removes the snapshot for an entry.
func (m *RelationalDB) DeleteSnapshot(ctx context.Context, entryID string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Snapshots, entryID)
	return nil
}

// SaveChapter stores a chapter.
func (m *RelationalDB) SaveChapter(ctx context.Context, chapter *entities.Chapter) error {
	if m.Err != nil {
		return m.Err
	}
	m.Chapters[chapter.ID] = chapter
	return nil
}

// ListChapters returns chapters for a world ordered by number.
func (m *RelationalDB) ListChapters(ctx context.Context, worldID string) ([]entities.Chapter, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.Chapter
	for _, ch := range m.Chapters {
		if ch.WorldID == worldID {
			out = append(out, *ch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// CountChapters counts chapters for a world.
func (m *RelationalDB) CountChapters(ctx context.Context, worldID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, ch := range m.Chapters {
		if ch.WorldID == worldID {
			count++
		}
	}
	return count, nil
}

// DeleteChapter removes a chapter.
func (m *RelationalDB) DeleteChapter(ctx context.Context, chapterID string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Chapters, chapterID)
	return nil
}

// SaveIssues stores a batch of issues.
func (m *RelationalDB) SaveIssues(ctx context.Context, issues []entities.ValidationIssue) error {
	m.SaveIssuesCallCount++
	m.SaveIssuesLast = issues
	if m.Err != nil {
		return m.Err
	}
	for i := range issues {
		issue := issues[i]
		m.Issues[issue.ID] = &issue
	}
	return nil
}

// FindIssueByID returns the stored issue or an error if absent.
func (m *RelationalDB) FindIssueByID(ctx context.Context, issueID string) (*entities.ValidationIssue, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	issue, ok := m.Issues[issueID]
	if !ok {
		return nil, fmt.Errorf("issue not found: %s", issueID)
	}
	return issue, nil
}

// ListIssues returns issues for a world, most recent first.
func (m *RelationalDB) ListIssues(ctx context.Context, worldID string, includeClosed bool) ([]entities.ValidationIssue, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.ValidationIssue
	for _, issue := range m.Issues {
		entry, ok := m.Entries[issue.CanonEntryID]
		if !ok || entry.WorldID != worldID {
			continue
		}
		if !includeClosed && (issue.Resolved || issue.Overridden) {
			continue
		}
		out = append(out, *issue)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateIssue replaces a stored issue.
func (m *RelationalDB) UpdateIssue(ctx context.Context, issue *entities.ValidationIssue) error {
	m.UpdateIssueCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Issues[issue.ID] = issue
	return nil
}

// SaveReport stores a report.
func (m *RelationalDB) SaveReport(ctx context.Context, report *entities.ImpactReport) error {
	m.SaveReportCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Reports = append(m.Reports, *report)
	return nil
}

// ListReports returns reports for an entry, most recent first.
func (m *RelationalDB) ListReports(ctx context.Context, entryID string) ([]entities.ImpactReport, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.ImpactReport
	for i := range m.Reports {
		if m.Reports[i].CanonEntryID == entryID {
			out = append(out, m.Reports[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// LogAction appends an audit entry.
func (m *RelationalDB) LogAction(ctx context.Context, action string, entryID string, details map[string]any) error {
	m.LogActionCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:        int64(len(m.Audit) + 1),
		Action:    action,
		EntryID:   entryID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLogByAction returns audit entries matching the action.
func (m *RelationalDB) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if m.Audit[i].Action == action {
			out = append(out, m.Audit[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
