// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Rating engine settings.
	StartingRating        int     `koanf:"starting_rating"`
	KFactor               int     `koanf:"k_factor"`
	ProvisionalKMultiplier float64 `koanf:"provisional_k_multiplier"`
	MinRating             int     `koanf:"min_rating"`
	MaxRating             int     `koanf:"max_rating"`
	ProvisionalGames      int     `koanf:"provisional_games"`

	// Gamification settings.
	XPPerWin        int     `koanf:"xp_per_win"`
	XPPerLoss       int     `koanf:"xp_per_loss"`
	XPPerDraw       int     `koanf:"xp_per_draw"`
	LevelBaseXP     int     `koanf:"level_base_xp"`
	LevelMultiplier float64 `koanf:"level_multiplier"`
	StreakBonus     float64 `koanf:"streak_bonus"`

	// CommitRetries bounds re-attempts of a conflicted judgment commit.
	CommitRetries int `koanf:"commit_retries"`

	// RefreshQueueSize bounds the leaderboard refresh queue.
	RefreshQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of leaderboard refresh workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the judgment idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RateLimitRPS and RateLimitBurst shape the mutating-endpoint limiter.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New returns a Config carrying the platform defaults. The rating and
// gamification values mirror the system settings the product ships with.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":9080",

		StartingRating:        1200,
		KFactor:               32,
		ProvisionalKMultiplier: 2.0,
		MinRating:             100,
		MaxRating:             3000,
		ProvisionalGames:      10,

		XPPerWin:        100,
		XPPerLoss:       25,
		XPPerDraw:       50,
		LevelBaseXP:     100,
		LevelMultiplier: 1.5,
		StreakBonus:     0.1,

		CommitRetries:       3,
		RefreshQueueSize:    10_000,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          50_000,
		MaxLeaderboardLimit: 100,
		RateLimitRPS:        50,
		RateLimitBurst:      100,
	}
}
