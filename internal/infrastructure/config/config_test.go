package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeWorldName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "myworld",
			expected: "myworld",
		},
		{
			name:     "uppercase converted",
			input:    "MyWorld",
			expected: "myworld",
		},
		{
			name:     "spaces to underscores",
			input:    "my world",
			expected: "my_world",
		},
		{
			name:     "hyphens to underscores",
			input:    "my-world",
			expected: "my_world",
		},
		{
			name:     "special characters removed",
			input:    "my@world!",
			expected: "myworld",
		},
		{
			name:     "consecutive underscores collapsed",
			input:    "my--world",
			expected: "my_world",
		},
		{
			name:     "leading trailing underscores trimmed",
			input:    "-my-world-",
			expected: "my_world",
		},
		{
			name:     "empty string returns default",
			input:    "",
			expected: "default",
		},
		{
			name:     "only special chars returns default",
			input:    "!!!",
			expected: "default",
		},
		{
			name:     "numbers preserved",
			input:    "world123",
			expected: "world123",
		},
		{
			name:     "complex mixed input",
			input:    "Iron-Throne (Book 1)",
			expected: "iron_throne_book_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeWorldName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGenerateCollectionName(t *testing.T) {
	tests := []struct {
		name      string
		worldName string
		expected  string
	}{
		{
			name:      "simple world",
			worldName: "myworld",
			expected:  "canon_myworld",
		},
		{
			name:      "world with spaces",
			worldName: "my world",
			expected:  "canon_my_world",
		},
		{
			name:      "world with special chars",
			worldName: "Iron-Throne!",
			expected:  "canon_iron_throne",
		},
		{
			name:      "empty world uses default",
			worldName: "",
			expected:  "canon_default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateCollectionName(tt.worldName)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "rules", cfg.Analyzer.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Analyzer.Model)
	assert.Equal(t, "openai", cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
}

func TestConfigDir(t *testing.T) {
	result := ConfigDir("/home/user/project")
	assert.Equal(t, "/home/user/project/.canon", result)
}

func TestConfigFilePath(t *testing.T) {
	result := ConfigFilePath("/home/user/project")
	assert.Equal(t, "/home/user/project/.canon/config.yaml", result)
}

func TestSQLitePathForWorld(t *testing.T) {
	result := SQLitePathForWorld("/project", "Iron Throne")
	assert.Equal(t, "/project/.canon/worlds/iron_throne/canon.db", result)
}

func TestLoad_FileValuesWinOverEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DefaultConfigDir), 0755))
	content := []byte("analyzer:\n  api_key: from-file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigDir, DefaultConfigFile), content, 0644))
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Analyzer.APIKey)
	assert.Equal(t, "from-env", cfg.Embedder.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestWorldsConfig_AddGetRemove(t *testing.T) {
	w := &WorldsConfig{}
	w.Add("ashfall", WorldEntry{Collection: "canon_ashfall"})

	assert.True(t, w.Exists("ashfall"))

	entry, err := w.Get("ashfall")
	require.NoError(t, err)
	assert.Equal(t, "canon_ashfall", entry.Collection)

	_, err = w.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ashfall")

	w.Remove("ashfall")
	assert.False(t, w.Exists("ashfall"))
}

func TestWorldsConfig_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	w := &WorldsConfig{}
	w.Add("ashfall", WorldEntry{Collection: "canon_ashfall", Description: "flooded archive city"})

	require.NoError(t, w.Save(dir))

	loaded, err := LoadWorlds(dir)
	require.NoError(t, err)
	entry, err := loaded.Get("ashfall")
	require.NoError(t, err)
	assert.Equal(t, "flooded archive city", entry.Description)
}
