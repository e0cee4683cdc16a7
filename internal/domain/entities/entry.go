// Package entities contains core domain data structures.
package entities

import "time"

// EntryType represents the category of a canon entry.
type EntryType string

// Canon entry types. Each type carries its own facts struct on Entry.
const (
	EntryTypeCharacter EntryType = "character"
	EntryTypeLocation  EntryType = "location"
	EntryTypeSystem    EntryType = "system"
	EntryTypeArtifact  EntryType = "artifact"
	EntryTypeRule      EntryType = "rule"
	EntryTypeEvent     EntryType = "event"
)

// Entry represents a single canon record about a fictional world. Exactly one
// of the typed facts fields is non-nil, matching Type.
type Entry struct {
	ID        string         `json:"id"`
	WorldID   string         `json:"world_id"`
	Type      EntryType      `json:"type"`
	Name      string         `json:"name"`
	Summary   string         `json:"summary,omitempty"`
	Character *CharacterFacts `json:"character,omitempty"`
	Location  *LocationFacts  `json:"location,omitempty"`
	System    *SystemFacts    `json:"system,omitempty"`
	Artifact  *ArtifactFacts  `json:"artifact,omitempty"`
	Rule      *RuleFacts      `json:"rule,omitempty"`
	Event     *EventFacts     `json:"event,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Personality holds the inner life of a character.
type Personality struct {
	Traits  []string `json:"traits,omitempty"`
	Fears   []string `json:"fears,omitempty"`
	Desires []string `json:"desires,omitempty"`
}

// CharacterFacts holds the narratively significant state of a character.
type CharacterFacts struct {
	Alive           bool         `json:"alive"`
	Role            string       `json:"role,omitempty"`
	CurrentLocation string       `json:"current_location,omitempty"`
	SpeechPattern   string       `json:"speech_pattern,omitempty"`
	Personality     *Personality `json:"personality,omitempty"`
	KnowledgeState  []string     `json:"knowledge_state,omitempty"`
	Relationships   []string     `json:"relationships,omitempty"`
}

// LocationFacts holds the narratively significant state of a location.
type LocationFacts struct {
	Description        string   `json:"description,omitempty"`
	Atmosphere         string   `json:"atmosphere,omitempty"`
	AccessRules        []string `json:"access_rules,omitempty"`
	ConnectedLocations []string `json:"connected_locations,omitempty"`
}

// SystemFacts holds the mechanics of a magic/technology/social system.
type SystemFacts struct {
	Rules       []string `json:"rules,omitempty"`
	Limitations []string `json:"limitations,omitempty"`
	Cost        string   `json:"cost,omitempty"`
}

// ArtifactFacts holds the state of a significant object.
type ArtifactFacts struct {
	Powers            []string `json:"powers,omitempty"`
	CurrentOwner      string   `json:"current_owner,omitempty"`
	LastKnownLocation string   `json:"last_known_location,omitempty"`
}

// RuleFacts holds a world rule (law, custom, constraint).
type RuleFacts struct {
	Statement  string   `json:"statement,omitempty"`
	Exceptions []string `json:"exceptions,omitempty"`
	Scope      string   `json:"scope,omitempty"`
}

// EventFacts holds a fixed historical event.
type EventFacts struct {
	When         string   `json:"when,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Consequences []string `json:"consequences,omitempty"`
}

// Snapshot returns a deep copy of the entry, suitable for capture-before-edit
// comparison. The copy shares nothing with the original.
func (e *Entry) Snapshot() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Character != nil {
		c := *e.Character
		if e.Character.Personality != nil {
			p := *e.Character.Personality
			p.Traits = copyStrings(e.Character.Personality.Traits)
			p.Fears = copyStrings(e.Character.Personality.Fears)
			p.Desires = copyStrings(e.Character.Personality.Desires)
			c.Personality = &p
		}
		c.KnowledgeState = copyStrings(e.Character.KnowledgeState)
		c.Relationships = copyStrings(e.Character.Relationships)
		cp.Character = &c
	}
	if e.Location != nil {
		l := *e.Location
		l.AccessRules = copyStrings(e.Location.AccessRules)
		l.ConnectedLocations = copyStrings(e.Location.ConnectedLocations)
		cp.Location = &l
	}
	if e.System != nil {
		s := *e.System
		s.Rules = copyStrings(e.System.Rules)
		s.Limitations = copyStrings(e.System.Limitations)
		cp.System = &s
	}
	if e.Artifact != nil {
		a := *e.Artifact
		a.Powers = copyStrings(e.Artifact.Powers)
		cp.Artifact = &a
	}
	if e.Rule != nil {
		r := *e.Rule
		r.Exceptions = copyStrings(e.Rule.Exceptions)
		cp.Rule = &r
	}
	if e.Event != nil {
		ev := *e.Event
		ev.Participants = copyStrings(e.Event.Participants)
		ev.Consequences = copyStrings(e.Event.Consequences)
		cp.Event = &ev
	}
	return &cp
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
