package entities

// ChangeRecord represents one detected difference between two snapshots of the
// same canon entry. Field is a dotted path into the entry's typed facts
// (e.g. "personality.traits").
type ChangeRecord struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}
