// Package ranking recomputes the derived leaderboard from the full user set.
//
// Recomputation is total rather than incremental so the derived board can
// never drift from the source ratings. Identical input produces identical
// output regardless of invocation order or count.
package ranking

import (
	"sort"
	"time"

	"github.com/debattle/engine/internal/domain/model"
)

// Recompute builds a fresh board from users, carrying rank deltas over from
// previous. Ordering: rating descending, then fewer games played, then user
// id ascending, which makes the order a deterministic total order.
func Recompute(users []model.User, previous *model.Leaderboard, now time.Time) model.Leaderboard {
	sorted := make([]model.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed < b.GamesPlayed
		}
		return a.UID < b.UID
	})

	prevRank := make(map[string]int)
	if previous != nil {
		for _, e := range previous.Entries {
			prevRank[e.UserID] = e.Rank
		}
	}

	board := model.Leaderboard{
		Entries:    make([]model.LeaderboardEntry, len(sorted)),
		ComputedAt: now,
	}
	for i := range sorted {
		u := &sorted[i]
		rank := i + 1
		change := 0
		if prev, ok := prevRank[u.UID]; ok {
			change = prev - rank
		}
		board.Entries[i] = model.LeaderboardEntry{
			Rank:        rank,
			UserID:      u.UID,
			DisplayName: u.DisplayName,
			Rating:      u.Rating,
			Change:      change,
			GamesPlayed: u.GamesPlayed,
			Wins:        u.Wins,
			Losses:      u.Losses,
			WinRate:     u.WinRate(),
			Tier:        u.Tier,
		}
	}
	return board
}
