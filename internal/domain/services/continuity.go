package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
)

// ErrNoSnapshot is returned by CheckImpact when no snapshot was captured for
// the entry, so there is nothing to compare against.
var ErrNoSnapshot = errors.New("no snapshot captured for entry")

// ImpactResult is the outcome of one impact check.
type ImpactResult struct {
	Entry   *entities.Entry
	Changes []entities.ChangeRecord
	Issues  []entities.ValidationIssue
	Report  *entities.ImpactReport
}

// ContinuityService orchestrates the capture → detect → classify → report
// cycle and owns the persistence the pure engine functions do not. The host
// constructs it with its storage and analyzer of choice.
type ContinuityService struct {
	db       ports.RelationalDB
	analyzer ports.IssueAnalyzer
	now      func() time.Time
	newID    func() string
}

// NewContinuityService creates a continuity service.
func NewContinuityService(db ports.RelationalDB, analyzer ports.IssueAnalyzer) *ContinuityService {
	return &ContinuityService{
		db:       db,
		analyzer: analyzer,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// CaptureSnapshot stores a copy of the entry's current state for later
// comparison, replacing any previous snapshot. Call it when an editor opens
// the entry.
func (s *ContinuityService) CaptureSnapshot(ctx context.Context, entryID string) (*entities.StoredSnapshot, error) {
	entry, err := s.db.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("loading entry: %w", err)
	}

	snapshot := &entities.StoredSnapshot{
		ID:         s.newID(),
		EntryID:    entry.ID,
		Data:       *entry.Snapshot(),
		CapturedAt: s.now(),
	}
	if err := s.db.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	return snapshot, nil
}

// CheckImpact diffs the live entry against its captured snapshot, classifies
// the changes, persists any resulting issues and report, and replaces the
// snapshot with the current state.
func (s *ContinuityService) CheckImpact(ctx context.Context, entryID string) (*ImpactResult, error) {
	entry, err := s.db.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("loading entry: %w", err)
	}

	snapshot, err := s.db.FindSnapshotByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, entryID)
	}

	changes, err := DetectChanges(&snapshot.Data, entry)
	if err != nil {
		return nil, fmt.Errorf("detecting changes: %w", err)
	}

	result := &ImpactResult{Entry: entry, Changes: changes}
	if len(changes) == 0 {
		return result, nil
	}

	chapterCount, err := s.db.CountChapters(ctx, entry.WorldID)
	if err != nil {
		return nil, fmt.Errorf("counting chapters: %w", err)
	}

	issues, err := s.analyzer.AnalyzeChanges(ctx, entry, changes, chapterCount)
	if err != nil {
		return nil, fmt.Errorf("analyzing changes: %w", err)
	}
	result.Issues = issues

	if len(issues) > 0 {
		chapters, err := s.db.ListChapters(ctx, entry.WorldID)
		if err != nil {
			return nil, fmt.Errorf("listing chapters: %w", err)
		}

		report := BuildImpactReport(entry, changes, issues, chapters, s.now())
		report.ID = s.newID()
		result.Report = report

		if err := s.db.SaveIssues(ctx, issues); err != nil {
			return nil, fmt.Errorf("saving issues: %w", err)
		}
		if err := s.db.SaveReport(ctx, report); err != nil {
			return nil, fmt.Errorf("saving report: %w", err)
		}
	}

	// Replace the snapshot so the next check compares against this state.
	if _, err := s.CaptureSnapshot(ctx, entryID); err != nil {
		return nil, err
	}

	_ = s.db.LogAction(ctx, "impact_check", entryID, map[string]any{
		"changes": len(changes),
		"issues":  len(issues),
	})

	return result, nil
}

// ResolveIssue marks an issue as resolved.
func (s *ContinuityService) ResolveIssue(ctx context.Context, issueID string) error {
	issue, err := s.db.FindIssueByID(ctx, issueID)
	if err != nil {
		return fmt.Errorf("loading issue: %w", err)
	}

	issue.Resolved = true
	if err := s.db.UpdateIssue(ctx, issue); err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}

	_ = s.db.LogAction(ctx, "issue_resolved", issue.CanonEntryID, map[string]any{"issue_id": issueID})
	return nil
}

// OverrideIssue marks an issue as intentionally overridden. A reason is
// required.
func (s *ContinuityService) OverrideIssue(ctx context.Context, issueID, reason string) error {
	if reason == "" {
		return errors.New("override reason is required")
	}

	issue, err := s.db.FindIssueByID(ctx, issueID)
	if err != nil {
		return fmt.Errorf("loading issue: %w", err)
	}

	issue.Overridden = true
	issue.OverrideReason = reason
	if err := s.db.UpdateIssue(ctx, issue); err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}

	_ = s.db.LogAction(ctx, "issue_overridden", issue.CanonEntryID, map[string]any{
		"issue_id": issueID,
		"reason":   reason,
	})
	return nil
}

// ListIssues returns a world's issues, most recent first.
func (s *ContinuityService) ListIssues(ctx context.Context, worldID string, includeClosed bool) ([]entities.ValidationIssue, error) {
	return s.db.ListIssues(ctx, worldID, includeClosed)
}

// ListReports returns an entry's impact reports, most recent first.
func (s *ContinuityService) ListReports(ctx context.Context, entryID string) ([]entities.ImpactReport, error) {
	return s.db.ListReports(ctx, entryID)
}
