package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/canon-core/internal/domain/entities"
	"github.com/ersonp/canon-core/internal/domain/ports"
	"github.com/ersonp/canon-core/internal/infrastructure/parsers"
)

// ExtractHandler harvests starter canon from planning-conversation
// transcripts.
type ExtractHandler struct {
	analyzer ports.IssueAnalyzer
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(analyzer ports.IssueAnalyzer) *ExtractHandler {
	return &ExtractHandler{analyzer: analyzer}
}

// ExtractResult contains the result of a transcript extraction.
type ExtractResult struct {
	FilePath     string
	MessageCount int
	Canon        *entities.AutoGeneratedCanon
}

// HandleFile parses a transcript file and extracts canon candidates from it.
// Format "auto" (or empty) picks the parser from the file extension.
func (h *ExtractHandler) HandleFile(ctx context.Context, filePath, format string) (*ExtractResult, error) {
	var parser parsers.Parser
	if format == "" || format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	messages, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}

	result, err := h.HandleMessages(ctx, messages)
	if err != nil {
		return nil, err
	}
	result.FilePath = filePath
	return result, nil
}

// HandleMessages extracts canon candidates from already-parsed messages.
func (h *ExtractHandler) HandleMessages(ctx context.Context, messages []string) (*ExtractResult, error) {
	canon, err := h.analyzer.ExtractCanon(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("extracting canon: %w", err)
	}

	return &ExtractResult{
		MessageCount: len(messages),
		Canon:        canon,
	}, nil
}
