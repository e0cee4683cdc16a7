package entities

import "time"

// Chapter represents a manuscript chapter. The engine only reads chapters to
// resolve affected chapter numbers into titled report rows; the host
// application owns their content.
type Chapter struct {
	ID        string    `json:"id"`
	WorldID   string    `json:"world_id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
