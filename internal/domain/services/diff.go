package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// fieldAccessor resolves one narratively significant field of an entry.
// get fails loudly, naming the path, when a required nested value is absent.
type fieldAccessor struct {
	path string
	get  func(e *entities.Entry) (any, error)
}

// Per-type allowlists of comparable fields. This is intentionally not a
// generic deep-diff: bookkeeping fields (IDs, timestamps, summaries) carry no
// narrative weight and are excluded.
var (
	characterFields = []fieldAccessor{
		{"name", entryName},
		{"alive", characterField("alive", func(c *entities.CharacterFacts) any { return c.Alive })},
		{"role", characterField("role", func(c *entities.CharacterFacts) any { return c.Role })},
		{"currentLocation", characterField("currentLocation", func(c *entities.CharacterFacts) any { return c.CurrentLocation })},
		{"speechPattern", characterField("speechPattern", func(c *entities.CharacterFacts) any { return c.SpeechPattern })},
		{"personality.traits", personalityField("personality.traits", func(p *entities.Personality) any { return p.Traits })},
		{"personality.fears", personalityField("personality.fears", func(p *entities.Personality) any { return p.Fears })},
		{"personality.desires", personalityField("personality.desires", func(p *entities.Personality) any { return p.Desires })},
		{"knowledgeState", characterField("knowledgeState", func(c *entities.CharacterFacts) any { return c.KnowledgeState })},
		{"relationships", characterField("relationships", func(c *entities.CharacterFacts) any { return c.Relationships })},
	}

	locationFields = []fieldAccessor{
		{"name", entryName},
		{"description", locationField("description", func(l *entities.LocationFacts) any { return l.Description })},
		{"atmosphere", locationField("atmosphere", func(l *entities.LocationFacts) any { return l.Atmosphere })},
		{"accessRules", locationField("accessRules", func(l *entities.LocationFacts) any { return l.AccessRules })},
		{"connectedLocations", locationField("connectedLocations", func(l *entities.LocationFacts) any { return l.ConnectedLocations })},
	}

	systemFields = []fieldAccessor{
		{"name", entryName},
		{"rules", systemField("rules", func(s *entities.SystemFacts) any { return s.Rules })},
		{"limitations", systemField("limitations", func(s *entities.SystemFacts) any { return s.Limitations })},
		{"cost", systemField("cost", func(s *entities.SystemFacts) any { return s.Cost })},
	}

	artifactFields = []fieldAccessor{
		{"name", entryName},
		{"powers", artifactField("powers", func(a *entities.ArtifactFacts) any { return a.Powers })},
		{"currentOwner", artifactField("currentOwner", func(a *entities.ArtifactFacts) any { return a.CurrentOwner })},
		{"lastKnownLocation", artifactField("lastKnownLocation", func(a *entities.ArtifactFacts) any { return a.LastKnownLocation })},
	}

	ruleFields = []fieldAccessor{
		{"name", entryName},
		{"statement", ruleField("statement", func(r *entities.RuleFacts) any { return r.Statement })},
		{"exceptions", ruleField("exceptions", func(r *entities.RuleFacts) any { return r.Exceptions })},
		{"scope", ruleField("scope", func(r *entities.RuleFacts) any { return r.Scope })},
	}

	eventFields = []fieldAccessor{
		{"name", entryName},
		{"when", eventField("when", func(ev *entities.EventFacts) any { return ev.When })},
		{"participants", eventField("participants", func(ev *entities.EventFacts) any { return ev.Participants })},
		{"consequences", eventField("consequences", func(ev *entities.EventFacts) any { return ev.Consequences })},
	}

	fieldsByType = map[entities.EntryType][]fieldAccessor{
		entities.EntryTypeCharacter: characterFields,
		entities.EntryTypeLocation:  locationFields,
		entities.EntryTypeSystem:    systemFields,
		entities.EntryTypeArtifact:  artifactFields,
		entities.EntryTypeRule:      ruleFields,
		entities.EntryTypeEvent:     eventFields,
	}
)

func entryName(e *entities.Entry) (any, error) {
	return e.Name, nil
}

func characterField(path string, get func(*entities.CharacterFacts) any) func(*entities.Entry) (any, error) {
	return func(e *entities.Entry) (any, error) {
		if e.Character == nil {
			return nil, missingPathError(e, path, "character")
		}
		return get(e.Character), nil
	}
}

func personalityField(path string, get func(*entities.Personality) any) func(*entities.Entry) (any, error) {
	return func(e *entities.Entry) (any, error) {
		if e.Character == nil {
			return nil, missingPathError(e, path, "character")
		}
		// Personality is optional (omitempty on the wire); absent reads as
		// empty rather than corrupt.
		if e.Character.Personality == nil {
			return get(&entities.Personality{}), nil
		}
		return get(e.Character.Personality), nil
	}
}

func locationField(path string, get func(*entities.LocationFacts) any) func(*entities.Entry) (any, error) {
	return func(e *entities.Entry) (any, error) {
		if e.Location == nil {
			return nil, missingPathError(e, path, "location")
		}
		return get(e.Location), nil
	}
}

func systemField(path string, get func(*entities.SystemFacts) any) func(*entities.Entry) (any, error) {
	return func(e *entities.Entry) (any, error) {
		if e.System == nil {
			return nil, missingPathError(e, path, "system")
		}
		return get(e.System), nil
	}
}

func artifactField(path string, get func(*entities.ArtifactFacts) any) func(*entities.Entry) (any, error) {
	return func(e *entities.Entry) (any, error) {
		if e.Artifact == nil {
			return nil, missingPathError(e, path, "artifact")
		}
		return get(e.Artifact), nil
	}
}

func ruleField(path string, get func(*entities.RuleFacts) any) func(*entities.Entry) (any, error) {
	return func(e *entities.Entry) (any, error) {
		if e.Rule == nil {
			return nil, missingPathError(e, path, "rule")
		}
		return get(e.Rule), nil
	}
}

func eventField(path string, get func(*entities.EventFacts) any) func(*entities.Entry) (any, error) {
	return func(e *entities.Entry) (any, error) {
		if e.Event == nil {
			return nil, missingPathError(e, path, "event")
		}
		return get(e.Event), nil
	}
}

// missingPathError is deliberately loud: a missing nested value means the
// stored record is corrupt, and defaulting it would mask that upstream.
func missingPathError(e *entities.Entry, path, segment string) error {
	return fmt.Errorf("entry %q (%s): no value at path %q: missing %q facts", e.Name, e.Type, path, segment)
}

// DetectChanges diffs two same-typed snapshots of one canon entry and returns
// the field-level differences in allowlist order. Arrays compare as serialized
// sequences, so reordering identical members is reported as a change: element
// order can carry narrative meaning.
func DetectChanges(oldEntry, newEntry *entities.Entry) ([]entities.ChangeRecord, error) {
	if oldEntry == nil || newEntry == nil {
		return nil, errors.New("detecting changes: both snapshots are required")
	}
	if oldEntry.Type != newEntry.Type {
		return nil, fmt.Errorf("detecting changes: snapshot types differ (%s vs %s)", oldEntry.Type, newEntry.Type)
	}

	accessors, ok := fieldsByType[oldEntry.Type]
	if !ok {
		return nil, fmt.Errorf("detecting changes: unknown entry type %q", oldEntry.Type)
	}

	var changes []entities.ChangeRecord
	for _, acc := range accessors {
		oldVal, err := acc.get(oldEntry)
		if err != nil {
			return nil, err
		}
		newVal, err := acc.get(newEntry)
		if err != nil {
			return nil, err
		}
		if encodeValue(oldVal) != encodeValue(newVal) {
			changes = append(changes, entities.ChangeRecord{
				Field:    acc.path,
				OldValue: oldVal,
				NewValue: newVal,
			})
		}
	}
	return changes, nil
}

// encodeValue serializes a field value for structural comparison. The values
// reaching it are strings, bools, and string slices, which never fail to
// marshal.
func encodeValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}
