package model

// Document key layout. Collections are key prefixes, matching the
// get/set/list/transaction contract of the repository.
const (
	UserPrefix        = "users/"
	DebatePrefix      = "debates/"
	AchievementPrefix = "achievements/"
	TopicPrefix       = "topics/"

	// LeaderboardKey holds the single derived board document.
	LeaderboardKey = "leaderboard/board"
)

// UserKey returns the document key for a user id.
func UserKey(uid string) string { return UserPrefix + uid }

// DebateKey returns the document key for a debate id.
func DebateKey(id string) string { return DebatePrefix + id }

// AchievementKey returns the document key for an achievement id.
func AchievementKey(id string) string { return AchievementPrefix + id }

// TopicKey returns the document key for a topic id.
func TopicKey(id string) string { return TopicPrefix + id }
