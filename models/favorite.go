package models

// FavoriteEntry is one persisted favorite. Field names match the stored JSON
// layout.
type FavoriteEntry struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Year    int     `json:"year"`
	MPG     float64 `json:"mpg"`
	AddedAt int64   `json:"addedAt"`
}
