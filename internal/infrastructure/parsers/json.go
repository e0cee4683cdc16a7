package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses transcripts from JSON format. It accepts either a plain
// array of strings or an array of chat-export objects with a "content" field.
type JSONParser struct{}

// chatMessage is one element of a chat-export transcript.
type chatMessage struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
}

// Parse reads JSON from the reader and returns the messages in order.
func (p *JSONParser) Parse(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}

	var chat []chatMessage
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, fmt.Errorf("parsing JSON transcript: %w", err)
	}

	messages := make([]string, 0, len(chat))
	for _, msg := range chat {
		if msg.Content != "" {
			messages = append(messages, msg.Content)
		}
	}
	return messages, nil
}
