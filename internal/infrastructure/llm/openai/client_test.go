package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.AnalyzerConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: config.AnalyzerConfig{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "valid config with model",
			cfg: config.AnalyzerConfig{
				APIKey: "test-key",
				Model:  "gpt-4o",
			},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.AnalyzerConfig{},
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `[{"severity": "critical"}]`,
			expected: `[{"severity": "critical"}]`,
		},
		{
			name:     "json code block",
			input:    "```json\n[{\"severity\": \"critical\"}]\n```",
			expected: `[{"severity": "critical"}]`,
		},
		{
			name:     "plain code block",
			input:    "```\n[]\n```",
			expected: `[]`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  []  ",
			expected: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONResponse(tt.input))
		})
	}
}

func TestClampChapters(t *testing.T) {
	assert.Equal(t, []int{1, 3}, clampChapters([]int{0, 1, 3, 7, -2}, 5))
	assert.Nil(t, clampChapters([]int{9}, 5))
	assert.Nil(t, clampChapters(nil, 5))
}
