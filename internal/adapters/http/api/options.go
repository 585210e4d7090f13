package api

// Default server tunables.
const (
	defaultMaxLeaderboardLimit = 100
	defaultRateLimitRPS        = 50.0
	defaultRateLimitBurst      = 100
)

type serverConfig struct {
	maxLeaderboardLimit int
	rateLimitRPS        float64
	rateLimitBurst      int
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

// WithMaxLeaderboardLimit caps the leaderboard page size clients may ask for.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(c *serverConfig) {
		if limit > 0 {
			c.maxLeaderboardLimit = limit
		}
	}
}

// WithRateLimit shapes the token bucket guarding mutating endpoints.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *serverConfig) {
		if rps > 0 && burst > 0 {
			c.rateLimitRPS = rps
			c.rateLimitBurst = burst
		}
	}
}
