package model

import "time"

// Topic is a debate topic catalog record. The engine only reads topics
// (category lookup at debate creation); catalog management is external.
type Topic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Difficulty  int       `json:"difficulty"`
	Tags        []string  `json:"tags,omitempty"`
	Trending    bool      `json:"trending"`
	UsageCount  int       `json:"usage_count"`
	Official    bool      `json:"official"`
	CreatedAt   time.Time `json:"created_at"`
}
