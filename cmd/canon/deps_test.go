package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/services"
	"github.com/ersonp/canon-core/internal/infrastructure/config"
)

func TestBuildAnalyzer_Rules(t *testing.T) {
	for _, provider := range []string{"", "rules"} {
		analyzer, err := buildAnalyzer(config.AnalyzerConfig{Provider: provider})
		require.NoError(t, err)
		assert.IsType(t, &services.RuleBasedAnalyzer{}, analyzer)
	}
}

func TestBuildAnalyzer_OpenAIRequiresKey(t *testing.T) {
	_, err := buildAnalyzer(config.AnalyzerConfig{Provider: "openai"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestBuildAnalyzer_UnknownProvider(t *testing.T) {
	_, err := buildAnalyzer(config.AnalyzerConfig{Provider: "oracle"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown analyzer provider "oracle"`)
}

func TestSeverityTag(t *testing.T) {
	assert.Equal(t, "CRITICAL", severityTag("critical"))
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "1, 2, 5", joinInts([]int{1, 2, 5}))
	assert.Equal(t, "", joinInts(nil))
}
