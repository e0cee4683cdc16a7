package handlers

import (
	"context"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/services"
)

// IssueHandler handles validation issue workflow operations.
type IssueHandler struct {
	continuity *services.ContinuityService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(continuity *services.ContinuityService) *IssueHandler {
	return &IssueHandler{continuity: continuity}
}

// HandleList lists a world's issues, most recent first. Resolved and
// overridden issues are included only when includeClosed is set.
func (h *IssueHandler) HandleList(ctx context.Context, worldID string, includeClosed bool) ([]entities.ValidationIssue, error) {
	return h.continuity.ListIssues(ctx, worldID, includeClosed)
}

// HandleResolve marks an issue as resolved.
func (h *IssueHandler) HandleResolve(ctx context.Context, issueID string) error {
	return h.continuity.ResolveIssue(ctx, issueID)
}

// HandleOverride marks an issue as intentionally overridden.
func (h *IssueHandler) HandleOverride(ctx context.Context, issueID, reason string) error {
	return h.continuity.OverrideIssue(ctx, issueID, reason)
}
