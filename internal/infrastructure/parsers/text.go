package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextParser parses plain-text transcripts. Blank lines separate messages.
type TextParser struct{}

// Parse reads text from the reader and returns blank-line separated blocks.
func (p *TextParser) Parse(r io.Reader) ([]string, error) {
	var messages []string
	var block strings.Builder

	flush := func() {
		text := strings.TrimSpace(block.String())
		if text != "" {
			messages = append(messages, text)
		}
		block.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if block.Len() > 0 {
			block.WriteString("\n")
		}
		block.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	flush()

	return messages, nil
}
