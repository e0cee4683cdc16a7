package services

import (
	"context"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// RuleBasedAnalyzer implements ports.IssueAnalyzer with the deterministic
// rule table and regex extractor. It is the default analyzer; an LLM-backed
// implementation can replace it behind the same port.
type RuleBasedAnalyzer struct {
	gen *IssueGenerator
}

// NewRuleBasedAnalyzer creates the default analyzer.
func NewRuleBasedAnalyzer() *RuleBasedAnalyzer {
	return &RuleBasedAnalyzer{gen: NewIssueGenerator()}
}

// AnalyzeChanges maps detected changes to issues via the rule table. The
// context is unused; rule evaluation is pure CPU work.
func (a *RuleBasedAnalyzer) AnalyzeChanges(_ context.Context, entry *entities.Entry, changes []entities.ChangeRecord, chapterCount int) ([]entities.ValidationIssue, error) {
	return a.gen.Generate(entry, changes, chapterCount), nil
}

// ExtractCanon runs the heuristic conversation extractor.
func (a *RuleBasedAnalyzer) ExtractCanon(_ context.Context, messages []string) (*entities.AutoGeneratedCanon, error) {
	canon := ExtractCanonFromConversation(messages)
	return &canon, nil
}
