package model

import "time"

// LeaderboardEntry is a fully derived ranking row. It is recomputable from
// the user records and never authoritative for rating.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Rating      int     `json:"rating"`
	// Change is previous rank minus new rank; positive means moved up,
	// zero when there was no prior entry.
	Change      int     `json:"change"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	Tier        Tier    `json:"tier"`
}

// Leaderboard is the persisted derived board document.
type Leaderboard struct {
	Entries    []LeaderboardEntry `json:"entries"`
	ComputedAt time.Time          `json:"computed_at"`
}
