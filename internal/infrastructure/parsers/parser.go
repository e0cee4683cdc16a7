// Package parsers provides parsers for planning-conversation transcripts.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// Parser reads a transcript and returns its messages in order. Exactly what a
// "message" is depends on the format: a JSON array element, or a blank-line
// separated block of plain text.
type Parser interface {
	Parse(r io.Reader) ([]string, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "text".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "text", "txt":
		return &TextParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".txt", ".md":
		return &TextParser{}
	default:
		return nil
	}
}
