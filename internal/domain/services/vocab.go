package services

// Fixed vocabularies used by name normalization and conversation extraction.
// All sets are keyed by lowercase token.

// timeWords are calendar and time-of-day tokens that look like names when
// capitalized ("Every Sunday the market opens") but never denote entities.
var timeWords = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"spring": true, "summer": true, "autumn": true, "fall": true, "winter": true,
	"today": true, "tomorrow": true, "yesterday": true, "tonight": true,
	"morning": true, "afternoon": true, "evening": true, "night": true,
	"noon": true, "midnight": true, "dawn": true, "dusk": true,
}

// nonEntityTokens are meta-nouns from the writing process itself. A candidate
// containing one of these is talk about the story, not something in it.
var nonEntityTokens = map[string]bool{
	"question": true, "questions": true, "answer": true, "idea": true,
	"ideas": true, "outline": true, "draft": true, "drafts": true,
	"chapter": true, "chapters": true, "scene": true, "scenes": true,
	"story": true, "stories": true, "plot": true, "subplot": true,
	"novel": true, "manuscript": true, "synopsis": true,
	"act": true, "acts": true, "page": true, "pages": true,
	"title": true, "genre": true, "theme": true, "themes": true,
	"arc": true, "arcs": true, "beat": true, "beats": true,
	"prologue": true, "epilogue": true, "dialogue": true,
	"reader": true, "readers": true, "audience": true,
	"writing": true, "writer": true, "note": true, "notes": true,
	"thing": true, "things": true, "way": true, "part": true,
	"word": true, "words": true, "sentence": true, "paragraph": true,
}

// genericRoleTokens are title-like nouns that appear both standalone
// ("the Captain") and as a prefix of a proper name ("Captain Reyes").
var genericRoleTokens = map[string]bool{
	"detective": true, "captain": true, "doctor": true, "professor": true,
	"sergeant": true, "lieutenant": true, "colonel": true, "major": true,
	"general": true, "admiral": true, "commander": true, "officer": true,
	"agent": true, "inspector": true, "sheriff": true, "chief": true,
	"judge": true, "mayor": true, "king": true, "queen": true,
	"prince": true, "princess": true, "lord": true, "lady": true,
	"duke": true, "duchess": true, "baron": true, "baroness": true,
	"emperor": true, "empress": true, "knight": true, "sir": true,
	"dame": true, "master": true, "mistress": true, "priest": true,
	"priestess": true, "father": true, "mother": true, "brother": true,
	"sister": true, "uncle": true, "aunt": true, "nurse": true,
	"wizard": true, "witch": true, "elder": true,
}

// aliasProneRoles are generic roles that, when mentioned bare alongside named
// characters, almost always alias an already-named character rather than
// introduce a new one.
var aliasProneRoles = map[string]bool{
	"detective": true, "captain": true, "doctor": true, "professor": true,
	"sergeant": true, "lieutenant": true, "colonel": true, "major": true,
	"general": true, "admiral": true, "commander": true, "inspector": true,
	"sheriff": true, "chief": true,
}

// stopWords are capitalized sentence-starters and pronouns that match the
// name shape but are never names.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "i": true, "he": true, "she": true,
	"it": true, "they": true, "we": true, "you": true, "his": true,
	"her": true, "their": true, "my": true, "our": true, "your": true,
	"this": true, "that": true, "these": true, "those": true,
	"there": true, "then": true, "when": true, "while": true,
	"after": true, "before": true, "but": true, "and": true, "or": true,
	"not": true, "if": true, "so": true, "because": true, "once": true,
	"what": true, "who": true, "where": true, "why": true, "how": true,
	"maybe": true, "perhaps": true, "yes": true, "no": true, "okay": true,
	"well": true, "now": true, "here": true, "also": true, "just": true,
	"meanwhile": true, "however": true, "suddenly": true, "finally": true,
	"eventually": true, "later": true, "soon": true, "everyone": true,
	"someone": true, "anyone": true, "nothing": true, "something": true,
	"first": true, "second": true, "third": true,
}

// roleLabelClasses maps a role label found in text to the canonical role
// stored on an extracted character.
var roleLabelClasses = map[string]string{
	"protagonist":    "protagonist",
	"main character": "protagonist",
	"hero":           "protagonist",
	"heroine":        "protagonist",
	"narrator":       "protagonist",
	"villain":        "antagonist",
	"antagonist":     "antagonist",
	"mentor":         "supporting",
	"sidekick":       "supporting",
	"ally":           "supporting",
	"rival":          "supporting",
	"love interest":  "supporting",
}

// roleRanks orders character roles for upgrade-only promotion.
var roleRanks = map[string]int{
	"minor":       0,
	"supporting":  1,
	"antagonist":  2,
	"protagonist": 3,
}

// roleRank returns the promotion rank of a role. Unknown roles rank as minor.
func roleRank(role string) int {
	if r, ok := roleRanks[role]; ok {
		return r
	}
	return 0
}
