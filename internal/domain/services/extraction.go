package services

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// Name shape: one to four capitalized tokens. The repetition bound keeps every
// pattern linear on adversarial input.
const (
	nameToken   = `[A-Z][A-Za-z'’-]*`
	namePattern = nameToken + `(?: ` + nameToken + `){0,3}`
)

// Candidate-harvesting regex families. Class priority is artifact > system >
// location > character: a name claimed by an earlier class never re-enters a
// later pool.
var (
	reArtifactName = regexp.MustCompile(`\b((?:` + nameToken + ` ){1,3}(?:Codex|Amulet|Sword|Key|Crown|Orb|Tome|Artifact|Relic|Device|Book))\b`)

	reSystemName = regexp.MustCompile(`\b((?:` + nameToken + ` ){1,3}(?:System|Protocol|Order|Law|Magic))\b`)

	reLocationSuffix = regexp.MustCompile(`\b((?:` + nameToken + ` ){1,3}(?:City|Town|Kingdom|Realm|World|Planet|Station|District|Valley|Forest|Island|Province|Country|Harbor|Bay|Mountain|River))\b`)

	reLocationPrep = regexp.MustCompile(`\b(?:[Ii]n|[Aa]t|[Ff]rom|[Tt]o|[Ii]nside|[Ww]ithin|[Uu]nder|[Nn]ear|[Aa]cross|[Tt]hroughout) the (` + namePattern + `)`)

	reRoleLabel = regexp.MustCompile(`\b(?:[Pp]rotagonist|[Mm]ain [Cc]haracter|[Hh]ero(?:ine)?|[Nn]arrator|[Vv]illain|[Aa]ntagonist|[Mm]entor|[Ss]idekick|[Aa]lly|[Rr]ival|[Ll]ove [Ii]nterest)(?:['’]s)?(?: name)?(?: is| was| will be|,)?(?: named| called)?(?: the)? (` + namePattern + `)`)

	reActionSubject = regexp.MustCompile(`\b(` + namePattern + `) (?:investigat(?:es|ed)|discover(?:s|ed)|finds?|found|learn(?:s|ed)|realiz(?:es|ed)|fights?|fought|confront(?:s|ed)|meets?|met|lov(?:es|ed)|betray(?:s|ed)|kill(?:s|ed)|seeks?|sought|travel(?:s|ed|led)|return(?:s|ed)|want(?:s|ed)|need(?:s|ed)|knows?|knew|decid(?:es|ed)|says?|said|tells?|told|ask(?:s|ed)|goes|went|sees?|saw|takes?|took|lives?|lived|works?|worked)\b`)

	reNamedCue = regexp.MustCompile(`\b(?:named|about|follows|with) (` + namePattern + `)`)

	// reRoleBinding pairs a word with a following capitalized name
	// ("the captain is Reyes"); the word is checked against the generic-role
	// vocabulary afterwards.
	reRoleBinding = regexp.MustCompile(`\b([A-Za-z]+)(?: is| was|,)(?: named| called)? (` + namePattern + `)`)
)

// rawMention is one harvested candidate before filtering, kept with its text
// offset so merged output preserves first-seen order.
type rawMention struct {
	name string
	role string
	pos  int
}

// charCandidate is a deduplicated character candidate.
type charCandidate struct {
	name       string
	role       string
	roleLabel  bool // role came from an explicit label, not a default
	rolePrefix bool // some observed spelling led with a generic role token
	pos        int
}

// ExtractCanonFromConversation scans ordered free-text planning messages and
// returns bounded candidate lists per entry class. It is a pure function of
// the input: identical messages yield identical output. Empty or degenerate
// input degrades to the documented placeholders, never an error.
func ExtractCanonFromConversation(messages []string) entities.AutoGeneratedCanon {
	text := strings.Join(strings.Fields(strings.Join(messages, " ")), " ")

	claimed := make(map[string]bool)

	artifacts := harvestByClass(text, reArtifactName, claimed)
	systems := harvestByClass(text, reSystemName, claimed)
	locations := harvestLocations(text, claimed)
	characters := harvestCharacters(text, claimed)

	if len(characters) == 0 {
		characters = []entities.ExtractedEntity{{
			Name:        "Protagonist",
			Description: "Placeholder for the main character; no named characters were mentioned",
			Role:        "protagonist",
		}}
	}
	if len(locations) == 0 {
		locations = []entities.ExtractedEntity{{
			Name:        "Primary Setting",
			Description: "Placeholder for the main setting; no named locations were mentioned",
		}}
	}

	return entities.AutoGeneratedCanon{
		Characters: capList(characters, entities.MaxExtractedCharacters),
		Locations:  capList(locations, entities.MaxExtractedLocations),
		Systems:    capList(systems, entities.MaxExtractedSystems),
		Artifacts:  capList(artifacts, entities.MaxExtractedArtifacts),
	}
}

// harvestByClass collects type-suffix names for a single class (artifacts or
// systems), deduplicated by normalized key. Matched keys are claimed so lower
// priority classes skip them.
func harvestByClass(text string, re *regexp.Regexp, claimed map[string]bool) []entities.ExtractedEntity {
	var out []entities.ExtractedEntity
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		name := SanitizeEntityName(match[1])
		if !validEntityName(name) || len(strings.Fields(name)) < 2 {
			continue
		}
		key := NormalizeEntityKey(name)
		if key == "" || claimed[key] {
			continue
		}
		claimed[key] = true
		out = append(out, entities.ExtractedEntity{
			Name:        name,
			Description: "Extracted from the planning conversation",
		})
	}
	return out
}

// harvestLocations merges the suffix and prepositional cue families in text
// order. On a key collision the longer spelling wins without losing the
// first-seen position.
func harvestLocations(text string, claimed map[string]bool) []entities.ExtractedEntity {
	var mentions []rawMention
	for _, idx := range reLocationSuffix.FindAllStringSubmatchIndex(text, -1) {
		mentions = append(mentions, rawMention{name: text[idx[2]:idx[3]], pos: idx[0]})
	}
	for _, idx := range reLocationPrep.FindAllStringSubmatchIndex(text, -1) {
		mentions = append(mentions, rawMention{name: text[idx[2]:idx[3]], pos: idx[0]})
	}
	sort.SliceStable(mentions, func(i, j int) bool { return mentions[i].pos < mentions[j].pos })

	byKey := make(map[string]int)
	var names []string
	for _, m := range mentions {
		name := SanitizeEntityName(m.name)
		if !validEntityName(name) {
			continue
		}
		key := NormalizeEntityKey(name)
		if key == "" || claimed[key] {
			continue
		}
		if i, seen := byKey[key]; seen {
			if len(name) > len(names[i]) {
				names[i] = name
			}
			continue
		}
		byKey[key] = len(names)
		names = append(names, name)
	}

	out := make([]entities.ExtractedEntity, 0, len(names))
	for _, name := range names {
		claimed[NormalizeEntityKey(name)] = true
		out = append(out, entities.ExtractedEntity{
			Name:        name,
			Description: "Extracted from the planning conversation",
		})
	}
	return out
}

// harvestCharacters collects character mentions from role labels, relational
// verb subjects, and naming cues, then applies deduplication, role upgrades,
// role-alias suppression, and the trailing-token collision filter.
func harvestCharacters(text string, claimed map[string]bool) []entities.ExtractedEntity {
	var mentions []rawMention
	for _, idx := range reRoleLabel.FindAllStringSubmatchIndex(text, -1) {
		label := strings.ToLower(strings.Fields(text[idx[0]:idx[1]])[0])
		role := roleLabelClasses[label]
		if role == "" {
			// Two-word labels ("main character", "love interest").
			fields := strings.Fields(strings.ToLower(text[idx[0]:idx[1]]))
			if len(fields) > 1 {
				role = roleLabelClasses[fields[0]+" "+fields[1]]
			}
		}
		if role == "" {
			role = "minor"
		}
		mentions = append(mentions, rawMention{name: text[idx[2]:idx[3]], role: role, pos: idx[0]})
	}
	for _, idx := range reActionSubject.FindAllStringSubmatchIndex(text, -1) {
		mentions = append(mentions, rawMention{name: text[idx[2]:idx[3]], role: "minor", pos: idx[0]})
	}
	for _, idx := range reNamedCue.FindAllStringSubmatchIndex(text, -1) {
		mentions = append(mentions, rawMention{name: text[idx[2]:idx[3]], role: "minor", pos: idx[0]})
	}
	// Explicit naming of a generic role ("the doctor is Halloran") introduces
	// the bound name as a character too.
	for _, idx := range reRoleBinding.FindAllStringSubmatchIndex(text, -1) {
		word := strings.ToLower(text[idx[2]:idx[3]])
		if !genericRoleTokens[word] {
			continue
		}
		mentions = append(mentions, rawMention{name: text[idx[4]:idx[5]], role: "minor", pos: idx[0]})
	}
	sort.SliceStable(mentions, func(i, j int) bool { return mentions[i].pos < mentions[j].pos })

	byKey := make(map[string]*charCandidate)
	var order []string
	for _, m := range mentions {
		name := SanitizeEntityName(m.name)
		if !validEntityName(name) {
			continue
		}
		if claimed[NormalizeEntityKey(name)] {
			continue
		}
		key := NormalizeCharacterKey(name)
		if key == "" {
			continue
		}
		labeled := m.role != "minor"
		cand, seen := byKey[key]
		if !seen {
			byKey[key] = &charCandidate{
				name:       name,
				role:       m.role,
				roleLabel:  labeled,
				rolePrefix: hasGenericRolePrefix(name),
				pos:        m.pos,
			}
			order = append(order, key)
			continue
		}
		if preferName(name, cand.name) {
			cand.name = name
		}
		if hasGenericRolePrefix(name) {
			cand.rolePrefix = true
		}
		// Roles are upgraded, never downgraded.
		if roleRank(m.role) > roleRank(cand.role) {
			cand.role = m.role
			cand.roleLabel = cand.roleLabel || labeled
		}
	}

	boundRoles := boundRoleTokens(text)

	// Collect evidence from multi-token candidates for alias suppression.
	multiRolePrefixes := make(map[string]bool)
	lastTokens := make(map[string]bool)
	namedMultiExists := false
	for _, key := range order {
		cand := byKey[key]
		tokens := strings.Fields(cand.name)
		if len(tokens) < 2 {
			continue
		}
		namedMultiExists = true
		lastTokens[normalizeToken(tokens[len(tokens)-1])] = true
		if first := strings.ToLower(tokens[0]); genericRoleTokens[first] {
			multiRolePrefixes[first] = true
		}
		if cand.rolePrefix {
			// Original spelling led with a role ("Captain Reyes") even if the
			// preferred display name dropped it.
			for _, raw := range mentions {
				n := SanitizeEntityName(raw.name)
				if NormalizeCharacterKey(n) != key {
					continue
				}
				toks := strings.Fields(n)
				if len(toks) > 1 && genericRoleTokens[strings.ToLower(toks[0])] {
					multiRolePrefixes[strings.ToLower(toks[0])] = true
				}
			}
		}
	}

	var out []entities.ExtractedEntity
	for _, key := range order {
		cand := byKey[key]
		tokens := strings.Fields(cand.name)
		if len(tokens) == 1 {
			tok := strings.ToLower(tokens[0])
			if genericRoleTokens[tok] {
				if multiRolePrefixes[tok] || boundRoles[tok] || (namedMultiExists && aliasProneRoles[tok]) {
					continue
				}
			}
			if lastTokens[normalizeToken(tokens[0])] {
				continue
			}
		}
		claimed[NormalizeEntityKey(cand.name)] = true
		out = append(out, entities.ExtractedEntity{
			Name:        cand.name,
			Description: "Extracted from the planning conversation",
			Role:        cand.role,
		})
	}
	return out
}

// boundRoleTokens returns generic-role tokens the text explicitly binds to a
// named character ("the captain is Reyes").
func boundRoleTokens(text string) map[string]bool {
	bound := make(map[string]bool)
	for _, match := range reRoleBinding.FindAllStringSubmatch(text, -1) {
		role := strings.ToLower(match[1])
		if !genericRoleTokens[role] {
			continue
		}
		if validEntityName(SanitizeEntityName(match[2])) {
			bound[role] = true
		}
	}
	return bound
}

// hasGenericRolePrefix reports whether a multi-token name leads with a
// generic-role token.
func hasGenericRolePrefix(name string) bool {
	tokens := strings.Fields(name)
	return len(tokens) > 1 && genericRoleTokens[strings.ToLower(tokens[0])]
}

// preferName reports whether candidate name a should replace b: multi-token
// beats single-token, a non-generic-role lead beats a generic one, then the
// longer spelling wins.
func preferName(a, b string) bool {
	aTokens, bTokens := strings.Fields(a), strings.Fields(b)
	if len(aTokens) > 1 && len(bTokens) == 1 {
		return true
	}
	if len(aTokens) == 1 && len(bTokens) > 1 {
		return false
	}
	aGeneric := genericRoleTokens[strings.ToLower(aTokens[0])]
	bGeneric := genericRoleTokens[strings.ToLower(bTokens[0])]
	if aGeneric != bGeneric {
		return bGeneric
	}
	return len(a) > len(b)
}

// validEntityName checks the name shape: one to four capitalized tokens, none
// of which is a stop word, time word, or meta-noun.
func validEntityName(name string) bool {
	tokens := strings.Fields(name)
	if len(tokens) == 0 || len(tokens) > 4 {
		return false
	}
	for _, tok := range tokens {
		first, _ := utf8.DecodeRuneInString(tok)
		if !unicode.IsUpper(first) {
			return false
		}
		lower := normalizeToken(tok)
		if lower == "" {
			return false
		}
		if stopWords[lower] || timeWords[lower] || nonEntityTokens[lower] {
			return false
		}
	}
	return true
}

// capList truncates a candidate list to its per-category cap.
func capList(list []entities.ExtractedEntity, max int) []entities.ExtractedEntity {
	if len(list) > max {
		return list[:max]
	}
	return list
}
