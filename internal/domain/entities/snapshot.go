package entities

import "time"

// StoredSnapshot is a captured copy of an entry held for later comparison.
// The caller captures one when an editor opens an entry and replaces it after
// each impact check.
type StoredSnapshot struct {
	ID         string    `json:"id"`
	EntryID    string    `json:"entry_id"`
	Data       Entry     `json:"data"`
	CapturedAt time.Time `json:"captured_at"`
}
