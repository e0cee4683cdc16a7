// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Canon entries (typed world-bible records, facts stored as JSON)
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_entries_world ON entries(world_id);
	CREATE INDEX IF NOT EXISTS idx_entries_name ON entries(world_id, name COLLATE NOCASE);

	-- Captured snapshots (one per entry, replaced on each capture)
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		entry_id TEXT NOT NULL UNIQUE,
		data TEXT NOT NULL,
		captured_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Manuscript chapters (numbers and titles only)
	CREATE TABLE IF NOT EXISTS chapters (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		title TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(world_id, number)
	);
	CREATE INDEX IF NOT EXISTS idx_chapters_world ON chapters(world_id);

	-- Validation issues (durable until resolved or overridden)
	CREATE TABLE IF NOT EXISTS issues (
		id TEXT PRIMARY KEY,
		canon_entry_id TEXT NOT NULL,
		severity TEXT NOT NULL,
		type TEXT NOT NULL,
		data TEXT NOT NULL,
		resolved INTEGER NOT NULL DEFAULT 0,
		overridden INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_issues_entry ON issues(canon_entry_id);
	CREATE INDEX IF NOT EXISTS idx_issues_open ON issues(resolved, overridden);

	-- Impact reports (one per edit cycle that produced issues)
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		canon_entry_id TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_entry ON reports(canon_entry_id);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		entry_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_entry ON audit_log(entry_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveEntry saves or updates a canon entry.
func (r *Repository) SaveEntry(ctx context.Context, entry *entities.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	query := `
		INSERT INTO entries (id, world_id, type, name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		entry.WorldID,
		string(entry.Type),
		entry.Name,
		string(data),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	return nil
}

// FindEntryByID finds an entry by its ID.
func (r *Repository) FindEntryByID(ctx context.Context, entryID string) (*entities.Entry, error) {
	query := `SELECT data FROM entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, entryID)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entry not found: %s", entryID)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntryByName finds an entry by its name (case-insensitive).
// Returns nil if no entry matches.
func (r *Repository) FindEntryByName(ctx context.Context, worldID, name string) (*entities.Entry, error) {
	query := `SELECT data FROM entries WHERE world_id = ? AND name = ? COLLATE NOCASE`
	row := r.db.QueryRowContext(ctx, query, worldID, name)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries lists all entries for a world with pagination.
func (r *Repository) ListEntries(ctx context.Context, worldID string, limit, offset int) ([]*entities.Entry, error) {
	query := `
		SELECT data
		FROM entries
		WHERE world_id = ?
		ORDER BY name ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, worldID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// DeleteEntry deletes an entry along with its snapshot, issues, and reports.
func (r *Repository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, entryID)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry not found: %s", entryID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE entry_id = ?`, entryID); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM issues WHERE canon_entry_id = ?`, entryID); err != nil {
		return fmt.Errorf("deleting issues: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE canon_entry_id = ?`, entryID); err != nil {
		return fmt.Errorf("deleting reports: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// CountEntries returns the total number of entries for a world.
func (r *Repository) CountEntries(ctx context.Context, worldID string) (int, error) {
	query := `SELECT COUNT(*) FROM entries WHERE world_id = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, worldID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// SaveSnapshot stores a captured snapshot, replacing any existing one for the
// same entry.
func (r *Repository) SaveSnapshot(ctx context.Context, snapshot *entities.StoredSnapshot) error {
	data, err := json.Marshal(snapshot.Data)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (id, entry_id, data, captured_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entry_id) DO UPDATE SET
			id = excluded.id,
			data = excluded.data,
			captured_at = excluded.captured_at
	`
	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.EntryID,
		string(data),
		snapshot.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// FindSnapshotByEntry finds the captured snapshot for an entry.
// Returns nil if no snapshot has been captured.
func (r *Repository) FindSnapshotByEntry(ctx context.Context, entryID string) (*entities.StoredSnapshot, error) {
	query := `SELECT id, entry_id, data, captured_at FROM snapshots WHERE entry_id = ?`
	row := r.db.QueryRowContext(ctx, query, entryID)

	var snapshot entities.StoredSnapshot
	var data string
	err := row.Scan(&snapshot.ID, &snapshot.EntryID, &data, &snapshot.CapturedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &snapshot.Data); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot data: %w", err)
	}
	return &snapshot, nil
}

// DeleteSnapshot removes the captured snapshot for an entry.
func (r *Repository) DeleteSnapshot(ctx context.Context, entryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE entry_id = ?`, entryID)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// SaveChapter saves or updates a chapter.
func (r *Repository) SaveChapter(ctx context.Context, chapter *entities.Chapter) error {
	query := `
		INSERT INTO chapters (id, world_id, number, title, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(world_id, number) DO UPDATE SET
			title = excluded.title
	`
	_, err := r.db.ExecContext(ctx, query,
		chapter.ID,
		chapter.WorldID,
		chapter.Number,
		chapter.Title,
		chapter.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving chapter: %w", err)
	}
	return nil
}

// ListChapters lists all chapters for a world ordered by number.
func (r *Repository) ListChapters(ctx context.Context, worldID string) ([]entities.Chapter, error) {
	query := `
		SELECT id, world_id, number, title, created_at
		FROM chapters
		WHERE world_id = ?
		ORDER BY number ASC
	`
	rows, err := r.db.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("querying chapters: %w", err)
	}
	defer rows.Close()

	var chapters []entities.Chapter
	for rows.Next() {
		var ch entities.Chapter
		var title sql.NullString
		if err := rows.Scan(&ch.ID, &ch.WorldID, &ch.Number, &title, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chapter: %w", err)
		}
		ch.Title = title.String
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// CountChapters returns the number of chapters in a world.
func (r *Repository) CountChapters(ctx context.Context, worldID string) (int, error) {
	query := `SELECT COUNT(*) FROM chapters WHERE world_id = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, worldID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting chapters: %w", err)
	}
	return count, nil
}

// DeleteChapter deletes a chapter by ID.
func (r *Repository) DeleteChapter(ctx context.Context, chapterID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = ?`, chapterID)
	if err != nil {
		return fmt.Errorf("deleting chapter: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("chapter not found: %s", chapterID)
	}
	return nil
}

// SaveIssues stores a batch of validation issues in one transaction.
func (r *Repository) SaveIssues(ctx context.Context, issues []entities.ValidationIssue) error {
	if len(issues) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO issues (id, canon_entry_id, severity, type, data, resolved, overridden, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i := range issues {
		issue := &issues[i]
		data, err := json.Marshal(issue)
		if err != nil {
			return fmt.Errorf("marshaling issue: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query,
			issue.ID,
			issue.CanonEntryID,
			string(issue.Severity),
			string(issue.Type),
			string(data),
			issue.Resolved,
			issue.Overridden,
			issue.CreatedAt,
		); err != nil {
			return fmt.Errorf("saving issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing issues: %w", err)
	}
	return nil
}

// FindIssueByID finds an issue by its ID.
func (r *Repository) FindIssueByID(ctx context.Context, issueID string) (*entities.ValidationIssue, error) {
	query := `SELECT data, resolved, overridden FROM issues WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, issueID)

	issue, err := scanIssue(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("issue not found: %s", issueID)
	}
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// ListIssues lists issues for a world, most recent first. When includeClosed
// is false, resolved and overridden issues are omitted.
func (r *Repository) ListIssues(ctx context.Context, worldID string, includeClosed bool) ([]entities.ValidationIssue, error) {
	query := `
		SELECT i.data, i.resolved, i.overridden
		FROM issues i
		JOIN entries e ON e.id = i.canon_entry_id
		WHERE e.world_id = ?
	`
	if !includeClosed {
		query += ` AND i.resolved = 0 AND i.overridden = 0`
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	var issues []entities.ValidationIssue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *issue)
	}
	return issues, rows.Err()
}

// UpdateIssue persists resolution/override state for an issue.
func (r *Repository) UpdateIssue(ctx context.Context, issue *entities.ValidationIssue) error {
	data, err := json.Marshal(issue)
	if err != nil {
		return fmt.Errorf("marshaling issue: %w", err)
	}

	query := `UPDATE issues SET data = ?, resolved = ?, overridden = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, string(data), issue.Resolved, issue.Overridden, issue.ID)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("issue not found: %s", issue.ID)
	}
	return nil
}

// SaveReport stores an impact report.
func (r *Repository) SaveReport(ctx context.Context, report *entities.ImpactReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	query := `INSERT INTO reports (id, canon_entry_id, data, created_at) VALUES (?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, report.ID, report.CanonEntryID, string(data), report.Timestamp)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// ListReports lists impact reports for an entry, most recent first.
func (r *Repository) ListReports(ctx context.Context, entryID string) ([]entities.ImpactReport, error) {
	query := `
		SELECT data
		FROM reports
		WHERE canon_entry_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []entities.ImpactReport
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		var report entities.ImpactReport
		if err := json.Unmarshal([]byte(data), &report); err != nil {
			return nil, fmt.Errorf("unmarshaling report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, entryID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var entryIDPtr sql.NullString
	if entryID != "" {
		entryIDPtr = sql.NullString{String: entryID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, entry_id, details) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, entryIDPtr, detailsJSON)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLogByAction finds audit log entries by action type.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, entry_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, action, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.AuditEntry, 0, limit)
	for rows.Next() {
		var entry entities.AuditEntry
		var entryID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entryID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.EntryID = entryID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for the shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry reads an entry's JSON column.
func scanEntry(s scanner) (*entities.Entry, error) {
	var data string
	if err := s.Scan(&data); err != nil {
		return nil, err
	}
	var entry entities.Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("unmarshaling entry: %w", err)
	}
	return &entry, nil
}

// scanIssue reads an issue's JSON column plus its mutable flags. The flags
// live in dedicated columns so open-issue filtering stays in SQL; the JSON is
// the source of truth for everything else.
func scanIssue(s scanner) (*entities.ValidationIssue, error) {
	var data string
	var resolved, overridden bool
	if err := s.Scan(&data, &resolved, &overridden); err != nil {
		return nil, err
	}
	var issue entities.ValidationIssue
	if err := json.Unmarshal([]byte(data), &issue); err != nil {
		return nil, fmt.Errorf("unmarshaling issue: %w", err)
	}
	issue.Resolved = resolved
	issue.Overridden = overridden
	return &issue, nil
}
