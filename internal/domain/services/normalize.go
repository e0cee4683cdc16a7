// Package services contains domain business logic.
package services

import (
	"strings"
	"unicode"
)

// nameTrimCutset holds the quote, bracket, and punctuation runes stripped from
// the edges of a free-text name.
const nameTrimCutset = "\"'‘’“”`()[]{}<>.,!?;:*_-–—"

// SanitizeEntityName cleans a free-text name for display: surrounding
// quotes/brackets/punctuation are stripped, internal whitespace is collapsed,
// and one leading article is dropped when more tokens follow.
func SanitizeEntityName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, nameTrimCutset)
	tokens := strings.Fields(name)
	if len(tokens) > 1 {
		switch strings.ToLower(tokens[0]) {
		case "the", "a", "an":
			tokens = tokens[1:]
		}
	}
	return strings.Join(tokens, " ")
}

// NormalizeEntityKey produces the canonical equality key for a name: each
// token lowercased, trailing possessive markers and non-letter edges stripped,
// empty tokens dropped, tokens joined with single spaces. Two names refer to
// the same entity exactly when their keys are equal.
func NormalizeEntityKey(name string) string {
	var out []string
	for _, tok := range strings.Fields(name) {
		if t := normalizeToken(tok); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}

// NormalizeCharacterKey is NormalizeEntityKey with one extra rule: a leading
// generic-role token is dropped when at least one more token follows, so
// "Detective Mara Voss" and "Mara Voss" collapse to the same key while a bare
// "Detective" stays distinct.
func NormalizeCharacterKey(name string) string {
	tokens := strings.Fields(NormalizeEntityKey(name))
	if len(tokens) > 1 && genericRoleTokens[tokens[0]] {
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

// normalizeToken lowercases a token, strips one trailing possessive marker,
// and trims non-letter edges.
func normalizeToken(tok string) string {
	t := strings.ToLower(tok)
	switch {
	case strings.HasSuffix(t, "'s"):
		t = strings.TrimSuffix(t, "'s")
	case strings.HasSuffix(t, "’s"):
		t = strings.TrimSuffix(t, "’s")
	case strings.HasSuffix(t, "s'"):
		t = strings.TrimSuffix(t, "'")
	case strings.HasSuffix(t, "s’"):
		t = strings.TrimSuffix(t, "’")
	}
	return strings.TrimFunc(t, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
