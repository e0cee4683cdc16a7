// Package openai provides an IssueAnalyzer implementation using OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/infrastructure/config"
)

const analyzePrompt = `You are a continuity editor for fiction. A canon entry (world-bible record) was edited; you are given the entry, the changed fields, and how many chapters the manuscript has.

For each change, decide what narrative problems it creates. For each problem return:
- severity: "info", "warning", "error", or "critical"
- type: "continuity", "character-inconsistency", "plot-hole", or "logic"
- title: one short line
- description: what breaks and why
- suggestion: what the author should review
- affected_chapters: chapter numbers (1-based) the problem touches, [] if none

Return ONLY a valid JSON array, no other text. Return [] if the changes are harmless.`

const extractPrompt = `You are a story-bible assistant. Extract the entities a planning conversation establishes about a fictional world.

Return ONLY a valid JSON object, no other text:
{
  "characters": [{"name": "...", "description": "...", "role": "protagonist|antagonist|supporting|minor"}],
  "locations": [{"name": "...", "description": "..."}],
  "systems": [{"name": "...", "description": "..."}],
  "artifacts": [{"name": "...", "description": "..."}]
}

Only include entities the conversation actually names. Never invent names.`

// Client implements the IssueAnalyzer interface using OpenAI. It is the
// drop-in alternative to the rule engine for hosts that want model-judged
// analysis.
type Client struct {
	client *openai.Client
	model  string
	now    func() time.Time
	newID  func() string
}

// NewClient creates a new OpenAI analyzer client.
func NewClient(cfg config.AnalyzerConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: client,
		model:  model,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}, nil
}

// AnalyzeChanges asks the model which narrative problems the changes create.
func (c *Client) AnalyzeChanges(ctx context.Context, entry *entities.Entry, changes []entities.ChangeRecord, chapterCount int) ([]entities.ValidationIssue, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(map[string]any{
		"entry":         entry,
		"changes":       changes,
		"chapter_count": chapterCount,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling analysis input: %w", err)
	}

	content, err := c.complete(ctx, analyzePrompt, string(payload))
	if err != nil {
		return nil, err
	}

	var rawIssues []rawIssue
	if err := json.Unmarshal([]byte(content), &rawIssues); err != nil {
		return nil, fmt.Errorf("parsing issues JSON: %w (response: %s)", err, content)
	}

	issues := make([]entities.ValidationIssue, 0, len(rawIssues))
	for _, ri := range rawIssues {
		severity := entities.Severity(ri.Severity)
		if severity.Rank() < 0 {
			severity = entities.SeverityWarning
		}
		issues = append(issues, entities.ValidationIssue{
			ID:                 c.newID(),
			Severity:           severity,
			Type:               entities.IssueType(ri.Type),
			Title:              ri.Title,
			Description:        ri.Description,
			Suggestion:         ri.Suggestion,
			CanonEntryID:       entry.ID,
			CanonEntryName:     entry.Name,
			AffectedChapterIDs: clampChapters(ri.AffectedChapters, chapterCount),
			CreatedAt:          c.now(),
		})
	}

	return issues, nil
}

// ExtractCanon asks the model which entities a planning conversation
// establishes. The per-class caps match the rule-based extractor's.
func (c *Client) ExtractCanon(ctx context.Context, messages []string) (*entities.AutoGeneratedCanon, error) {
	content, err := c.complete(ctx, extractPrompt, strings.Join(messages, "\n\n"))
	if err != nil {
		return nil, err
	}

	var canon entities.AutoGeneratedCanon
	if err := json.Unmarshal([]byte(content), &canon); err != nil {
		return nil, fmt.Errorf("parsing canon JSON: %w (response: %s)", err, content)
	}

	canon.Characters = truncate(canon.Characters, entities.MaxExtractedCharacters)
	canon.Locations = truncate(canon.Locations, entities.MaxExtractedLocations)
	canon.Systems = truncate(canon.Systems, entities.MaxExtractedSystems)
	canon.Artifacts = truncate(canon.Artifacts, entities.MaxExtractedArtifacts)

	return &canon, nil
}

// complete sends one system+user exchange and returns the cleaned response.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return cleanJSONResponse(resp.Choices[0].Message.Content), nil
}

// rawIssue is the JSON structure for model-judged issues.
type rawIssue struct {
	Severity         string `json:"severity"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Suggestion       string `json:"suggestion"`
	AffectedChapters []int  `json:"affected_chapters"`
}

// clampChapters drops chapter numbers outside 1..chapterCount.
func clampChapters(numbers []int, chapterCount int) []int {
	var out []int
	for _, n := range numbers {
		if n >= 1 && n <= chapterCount {
			out = append(out, n)
		}
	}
	return out
}

// truncate limits a candidate list to the given cap.
func truncate(list []entities.ExtractedEntity, max int) []entities.ExtractedEntity {
	if len(list) <= max {
		return list
	}
	return list[:max]
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
