// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// IssueAnalyzer classifies the narrative consequences of canon edits and
// extracts candidate canon from planning conversations. The default
// implementation is rule-based; an LLM-backed implementation can be swapped in
// without changing the output contract.
type IssueAnalyzer interface {
	// AnalyzeChanges maps detected field changes to validation issues.
	AnalyzeChanges(ctx context.Context, entry *entities.Entry, changes []entities.ChangeRecord, chapterCount int) ([]entities.ValidationIssue, error)

	// ExtractCanon extracts candidate canon entries from conversation messages.
	ExtractCanon(ctx context.Context, messages []string) (*entities.AutoGeneratedCanon, error)
}
