// Package model contains domain records passed between layers.
package model

import "time"

// Tier is the coarse display bucket derived from level. It is never stored
// as ground truth anywhere else; the user record carries the last derived
// value for read convenience.
type Tier string

// Tiers in ascending order.
const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// Result is the outcome of a single debate from one participant's view.
type Result string

// Per-participant results.
const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// User is the rating/stat record for a participant. It is the only contended
// document in the system; every mutation flows through the lifecycle
// controller's transaction.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`

	Rating      int  `json:"rating"`
	Provisional bool `json:"provisional"`

	GamesPlayed   int `json:"games_played"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Draws         int `json:"draws"`
	WinStreak     int `json:"win_streak"`
	BestWinStreak int `json:"best_win_streak"`

	// CategoryWins counts wins per topic category. Maintained here so the
	// category-wins achievement condition has authoritative input.
	CategoryWins map[string]int `json:"category_wins,omitempty"`

	XP    int  `json:"xp"`
	Level int  `json:"level"`
	Tier  Tier `json:"tier"`

	Achievements []string `json:"achievements,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// WinRate returns the user's win rate in percent, 0 for an unplayed account.
func (u *User) WinRate() float64 {
	if u.GamesPlayed == 0 {
		return 0
	}
	return float64(u.Wins) / float64(u.GamesPlayed) * 100
}

// HasAchievement reports whether the achievement id is already unlocked.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// RecordResult folds one completed debate into the user's counters.
// The streak resets on any non-win; best streak tracks the historical max.
// Category wins are only credited on a win.
func (u *User) RecordResult(result Result, category string) {
	u.GamesPlayed++
	switch result {
	case ResultWin:
		u.Wins++
		u.WinStreak++
		if u.WinStreak > u.BestWinStreak {
			u.BestWinStreak = u.WinStreak
		}
		if category != "" {
			if u.CategoryWins == nil {
				u.CategoryWins = make(map[string]int)
			}
			u.CategoryWins[category]++
		}
	case ResultLoss:
		u.Losses++
		u.WinStreak = 0
	case ResultDraw:
		u.Draws++
		u.WinStreak = 0
	}
}
