package entities

// EntryTypeInfo describes a canon entry type for CLI listings and validation.
type EntryTypeInfo struct {
	Type        EntryType `json:"type"`
	Description string    `json:"description"`
}

// EntryTypes are the supported canon entry types.
var EntryTypes = []EntryTypeInfo{
	{
		Type:        EntryTypeCharacter,
		Description: "People and beings: role, state, knowledge, relationships",
	},
	{
		Type:        EntryTypeLocation,
		Description: "Places: description, atmosphere, access rules, connections",
	},
	{
		Type:        EntryTypeSystem,
		Description: "Magic/technology/social systems: rules, limitations, cost",
	},
	{
		Type:        EntryTypeArtifact,
		Description: "Significant objects: powers, owner, last known location",
	},
	{
		Type:        EntryTypeRule,
		Description: "World laws and customs: statement, exceptions, scope",
	},
	{
		Type:        EntryTypeEvent,
		Description: "Fixed historical events: timing, participants, consequences",
	},
}

// ValidEntryType reports whether the given type name is supported.
func ValidEntryType(t string) bool {
	for _, info := range EntryTypes {
		if string(info.Type) == t {
			return true
		}
	}
	return false
}
