package model

import "time"

// ConditionType enumerates the typed unlock conditions.
type ConditionType string

// Condition types.
const (
	ConditionWins         ConditionType = "wins"
	ConditionDebates      ConditionType = "debates"
	ConditionWinRate      ConditionType = "win_rate"
	ConditionStreak       ConditionType = "streak"
	ConditionCategoryWins ConditionType = "category_wins"
)

// Condition is an achievement's typed unlock rule.
// MinDebates guards win-rate conditions; Category scopes category-win ones.
type Condition struct {
	Type       ConditionType `json:"type"`
	Value      int           `json:"value"`
	MinDebates int           `json:"min_debates,omitempty"`
	Category   string        `json:"category,omitempty"`
}

// Achievement is a catalog entry. Immutable after creation except the
// Active flag, which external administration may toggle.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	XPReward    int       `json:"xp_reward"`
	Condition   Condition `json:"condition"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultCatalog returns the built-in achievement set. The seed tool writes
// these into the store; deployments may replace them out of band.
func DefaultCatalog(now time.Time) []Achievement {
	return []Achievement{
		{
			ID:          "first_win",
			Title:       "First Victory",
			Description: "Win your first debate",
			Icon:        "🏆",
			Category:    "milestone",
			Difficulty:  "common",
			XPReward:    50,
			Condition:   Condition{Type: ConditionWins, Value: 1},
			Active:      true,
			CreatedAt:   now,
		},
		{
			ID:          "debate_veteran",
			Title:       "Debate Veteran",
			Description: "Participate in 10 debates",
			Icon:        "🎖️",
			Category:    "milestone",
			Difficulty:  "uncommon",
			XPReward:    100,
			Condition:   Condition{Type: ConditionDebates, Value: 10},
			Active:      true,
			CreatedAt:   now,
		},
		{
			ID:          "logic_master",
			Title:       "Logic Master",
			Description: "Maintain 70% win rate with 15+ debates",
			Icon:        "🧠",
			Category:    "skill",
			Difficulty:  "rare",
			XPReward:    200,
			Condition:   Condition{Type: ConditionWinRate, Value: 70, MinDebates: 15},
			Active:      true,
			CreatedAt:   now,
		},
		{
			ID:          "persuasion_expert",
			Title:       "Persuasion Expert",
			Description: "Win 5 debates in a row",
			Icon:        "💬",
			Category:    "streak",
			Difficulty:  "uncommon",
			XPReward:    150,
			Condition:   Condition{Type: ConditionStreak, Value: 5},
			Active:      true,
			CreatedAt:   now,
		},
		{
			ID:          "topic_specialist",
			Title:       "Topic Specialist",
			Description: "Win 10 debates in the same category",
			Icon:        "📚",
			Category:    "specialization",
			Difficulty:  "uncommon",
			XPReward:    120,
			Condition:   Condition{Type: ConditionCategoryWins, Value: 10},
			Active:      true,
			CreatedAt:   now,
		},
	}
}
