package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

func TestAttachFacts_Defaults(t *testing.T) {
	entry := &entities.Entry{Type: entities.EntryTypeCharacter}

	err := attachFacts(entry, "")

	require.NoError(t, err)
	require.NotNil(t, entry.Character)
	assert.True(t, entry.Character.Alive, "new characters default to alive")
	assert.Nil(t, entry.Location)
}

func TestAttachFacts_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	factsFile := filepath.Join(tmpDir, "facts.json")
	content := `{"alive": false, "role": "antagonist", "current_location": "Gilded City"}`
	require.NoError(t, os.WriteFile(factsFile, []byte(content), 0644))

	entry := &entities.Entry{Type: entities.EntryTypeCharacter}
	err := attachFacts(entry, factsFile)

	require.NoError(t, err)
	require.NotNil(t, entry.Character)
	assert.False(t, entry.Character.Alive)
	assert.Equal(t, "antagonist", entry.Character.Role)
	assert.Equal(t, "Gilded City", entry.Character.CurrentLocation)
}

func TestAttachFacts_EachType(t *testing.T) {
	tests := []struct {
		entryType entities.EntryType
		populated func(*entities.Entry) bool
	}{
		{entities.EntryTypeCharacter, func(e *entities.Entry) bool { return e.Character != nil }},
		{entities.EntryTypeLocation, func(e *entities.Entry) bool { return e.Location != nil }},
		{entities.EntryTypeSystem, func(e *entities.Entry) bool { return e.System != nil }},
		{entities.EntryTypeArtifact, func(e *entities.Entry) bool { return e.Artifact != nil }},
		{entities.EntryTypeRule, func(e *entities.Entry) bool { return e.Rule != nil }},
		{entities.EntryTypeEvent, func(e *entities.Entry) bool { return e.Event != nil }},
	}

	for _, tt := range tests {
		t.Run(string(tt.entryType), func(t *testing.T) {
			entry := &entities.Entry{Type: tt.entryType}
			require.NoError(t, attachFacts(entry, ""))
			assert.True(t, tt.populated(entry))
		})
	}
}

func TestAttachFacts_BadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	factsFile := filepath.Join(tmpDir, "facts.json")
	require.NoError(t, os.WriteFile(factsFile, []byte("not json"), 0644))

	entry := &entities.Entry{Type: entities.EntryTypeLocation}
	err := attachFacts(entry, factsFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing facts")
}

func TestEntryFacts(t *testing.T) {
	entry := &entities.Entry{
		Type:     entities.EntryTypeArtifact,
		Artifact: &entities.ArtifactFacts{CurrentOwner: "Elara Voss"},
	}

	facts, ok := entryFacts(entry).(*entities.ArtifactFacts)

	require.True(t, ok)
	assert.Equal(t, "Elara Voss", facts.CurrentOwner)
}
