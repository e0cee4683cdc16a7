package ports

import (
	"context"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// RelationalDB defines the interface for relational database operations.
// It owns the durable state the engine itself does not hold: canon entries,
// captured snapshots, chapters, issues, impact reports, and the audit log.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Entry operations

	// SaveEntry saves or updates a canon entry.
	SaveEntry(ctx context.Context, entry *entities.Entry) error

	// FindEntryByID finds an entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*entities.Entry, error)

	// FindEntryByName finds an entry by its name (case-insensitive).
	FindEntryByName(ctx context.Context, worldID, name string) (*entities.Entry, error)

	// ListEntries lists all entries for a world with pagination.
	ListEntries(ctx context.Context, worldID string, limit, offset int) ([]*entities.Entry, error)

	// DeleteEntry deletes an entry, its snapshot, and its issues and reports.
	DeleteEntry(ctx context.Context, entryID string) error

	// CountEntries returns the total number of entries for a world.
	CountEntries(ctx context.Context, worldID string) (int, error)

	// Snapshot operations

	// SaveSnapshot stores a captured snapshot, replacing any existing one for
	// the same entry.
	SaveSnapshot(ctx context.Context, snapshot *entities.StoredSnapshot) error

	// FindSnapshotByEntry finds the captured snapshot for an entry.
	// Returns nil if no snapshot has been captured.
	FindSnapshotByEntry(ctx context.Context, entryID string) (*entities.StoredSnapshot, error)

	// DeleteSnapshot removes the captured snapshot for an entry.
	DeleteSnapshot(ctx context.Context, entryID string) error

	// Chapter operations

	// SaveChapter saves or updates a chapter.
	SaveChapter(ctx context.Context, chapter *entities.Chapter) error

	// ListChapters lists all chapters for a world ordered by number.
	ListChapters(ctx context.Context, worldID string) ([]entities.Chapter, error)

	// CountChapters returns the number of chapters in a world.
	CountChapters(ctx context.Context, worldID string) (int, error)

	// DeleteChapter deletes a chapter by ID.
	DeleteChapter(ctx context.Context, chapterID string) error

	// Issue operations

	// SaveIssues stores a batch of validation issues.
	SaveIssues(ctx context.Context, issues []entities.ValidationIssue) error

	// FindIssueByID finds an issue by its ID.
	FindIssueByID(ctx context.Context, issueID string) (*entities.ValidationIssue, error)

	// ListIssues lists issues for a world, most recent first. When
	// includeClosed is false, resolved and overridden issues are omitted.
	ListIssues(ctx context.Context, worldID string, includeClosed bool) ([]entities.ValidationIssue, error)

	// UpdateIssue persists resolution/override state for an issue.
	UpdateIssue(ctx context.Context, issue *entities.ValidationIssue) error

	// Report operations

	// SaveReport stores an impact report.
	SaveReport(ctx context.Context, report *entities.ImpactReport) error

	// ListReports lists impact reports for an entry, most recent first.
	ListReports(ctx context.Context, entryID string) ([]entities.ImpactReport, error)

	// Audit operations

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, entryID string, details map[string]any) error

	// FindAuditLogByAction finds audit log entries by action type.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
