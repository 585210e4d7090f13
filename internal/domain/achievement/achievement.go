// Package achievement evaluates unlock conditions against user statistics.
//
// Evaluation is a pure set transform: running it twice over unchanged stats
// yields nothing new the second time.
package achievement

import (
	"github.com/debattle/engine/internal/domain/model"
)

// Unlock is one newly earned achievement with its XP reward.
type Unlock struct {
	ID       string
	XPReward int
}

// Evaluate tests every active, not-yet-unlocked catalog entry against the
// user's post-update statistics and returns the newly unlocked set in
// catalog order.
func Evaluate(user *model.User, catalog []model.Achievement) []Unlock {
	var unlocked []Unlock
	for _, a := range catalog {
		if !a.Active || user.HasAchievement(a.ID) {
			continue
		}
		if satisfied(user, a.Condition) {
			unlocked = append(unlocked, Unlock{ID: a.ID, XPReward: a.XPReward})
		}
	}
	return unlocked
}

// satisfied tests one typed condition. Unknown condition types never fire,
// so a newer catalog cannot trip an older engine into a bogus unlock.
func satisfied(user *model.User, c model.Condition) bool {
	switch c.Type {
	case model.ConditionWins:
		return user.Wins >= c.Value
	case model.ConditionDebates:
		return user.GamesPlayed >= c.Value
	case model.ConditionWinRate:
		return user.GamesPlayed >= c.MinDebates && user.WinRate() >= float64(c.Value)
	case model.ConditionStreak:
		return user.WinStreak >= c.Value
	case model.ConditionCategoryWins:
		if c.Category != "" {
			return user.CategoryWins[c.Category] >= c.Value
		}
		for _, wins := range user.CategoryWins {
			if wins >= c.Value {
				return true
			}
		}
		return false
	}
	return false
}
