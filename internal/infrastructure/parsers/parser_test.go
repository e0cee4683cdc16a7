package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &JSONParser{}, ForFormat("JSON"))
	assert.IsType(t, &TextParser{}, ForFormat("text"))
	assert.IsType(t, &TextParser{}, ForFormat("txt"))
	assert.Nil(t, ForFormat("xml"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("chat.json"))
	assert.IsType(t, &TextParser{}, ForFile("notes.txt"))
	assert.IsType(t, &TextParser{}, ForFile("planning.MD"))
	assert.Nil(t, ForFile("data.csv"))
}

func TestJSONParser_StringArray(t *testing.T) {
	input := `["The protagonist is Elara Voss.", "She finds the Ember Codex."]`

	messages, err := (&JSONParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"The protagonist is Elara Voss.",
		"She finds the Ember Codex.",
	}, messages)
}

func TestJSONParser_ChatExport(t *testing.T) {
	input := `[
		{"role": "user", "content": "The story is set in the Sunken Library."},
		{"role": "assistant", "content": "Got it. Who is the villain?"},
		{"role": "user", "content": ""}
	]`

	messages, err := (&JSONParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "The story is set in the Sunken Library.", messages[0])
}

func TestJSONParser_Invalid(t *testing.T) {
	_, err := (&JSONParser{}).Parse(strings.NewReader(`{"not": "a transcript"}`))
	require.Error(t, err)
}

func TestTextParser_BlankLineSeparation(t *testing.T) {
	input := "The protagonist is Elara Voss.\nShe is an archivist.\n\nThe villain is Moros Kaine.\n\n\n"

	messages, err := (&TextParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"The protagonist is Elara Voss.\nShe is an archivist.",
		"The villain is Moros Kaine.",
	}, messages)
}

func TestTextParser_Empty(t *testing.T) {
	messages, err := (&TextParser{}).Parse(strings.NewReader("  \n\n  "))

	require.NoError(t, err)
	assert.Empty(t, messages)
}
