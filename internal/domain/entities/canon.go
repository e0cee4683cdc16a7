package entities

// Per-category caps on auto-generated canon. Conversation extraction never
// returns more candidates than these.
const (
	MaxExtractedCharacters = 8
	MaxExtractedLocations  = 8
	MaxExtractedSystems    = 6
	MaxExtractedArtifacts  = 6
)

// ExtractedEntity is a candidate canon entry harvested from planning-chat
// text. Role is only set for characters.
type ExtractedEntity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Role        string `json:"role,omitempty"`
}

// AutoGeneratedCanon groups extraction candidates by entry class.
type AutoGeneratedCanon struct {
	Characters []ExtractedEntity `json:"characters"`
	Locations  []ExtractedEntity `json:"locations"`
	Systems    []ExtractedEntity `json:"systems"`
	Artifacts  []ExtractedEntity `json:"artifacts"`
}

// Total returns the number of candidates across all classes.
func (c *AutoGeneratedCanon) Total() int {
	return len(c.Characters) + len(c.Locations) + len(c.Systems) + len(c.Artifacts)
}
