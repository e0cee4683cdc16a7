// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// IssueAnalyzer is a mock implementation of ports.IssueAnalyzer.
type IssueAnalyzer struct {
	// AnalyzeChanges return values
	Issues     []entities.ValidationIssue
	AnalyzeErr error

	// ExtractCanon return values
	Canon      *entities.AutoGeneratedCanon
	ExtractErr error

	// Call tracking
	AnalyzeCallCount    int
	AnalyzeLastChanges  []entities.ChangeRecord
	AnalyzeLastChapters int
	ExtractCallCount    int
	ExtractLastMessages []string
}

// AnalyzeChanges returns the configured issues or error.
func (m *IssueAnalyzer) AnalyzeChanges(ctx context.Context, entry *entities.Entry, changes []entities.ChangeRecord, chapterCount int) ([]entities.ValidationIssue, error) {
	m.AnalyzeCallCount++
	m.AnalyzeLastChanges = changes
	m.AnalyzeLastChapters = chapterCount
	if m.AnalyzeErr != nil {
		return nil, m.AnalyzeErr
	}
	return m.Issues, nil
}

// ExtractCanon returns the configured canon or error.
func (m *IssueAnalyzer) ExtractCanon(ctx context.Context, messages []string) (*entities.AutoGeneratedCanon, error) {
	m.ExtractCallCount++
	m.ExtractLastMessages = messages
	if m.ExtractErr != nil {
		return nil, m.ExtractErr
	}
	if m.Canon != nil {
		return m.Canon, nil
	}
	return &entities.AutoGeneratedCanon{}, nil
}
