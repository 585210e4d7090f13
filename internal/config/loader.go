package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DEBATTLE_CONFIG is set
//  3. env (prefix DEBATTLE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DEBATTLE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: DEBATTLE_K_FACTOR -> k_factor, etc.
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("DEBATTLE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "debattle_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the engine cannot run under. Range errors
// surface here, before any debate is processed, never mid-commit.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinRating >= c.MaxRating:
		return fmt.Errorf("%w: min_rating %d must be below max_rating %d",
			ErrInvalidConfig, c.MinRating, c.MaxRating)
	case c.StartingRating < c.MinRating || c.StartingRating > c.MaxRating:
		return fmt.Errorf("%w: starting_rating %d outside [%d, %d]",
			ErrInvalidConfig, c.StartingRating, c.MinRating, c.MaxRating)
	case c.KFactor <= 0:
		return fmt.Errorf("%w: k_factor must be positive", ErrInvalidConfig)
	case c.ProvisionalKMultiplier <= 0:
		return fmt.Errorf("%w: provisional_k_multiplier must be positive", ErrInvalidConfig)
	case c.ProvisionalGames < 0:
		return fmt.Errorf("%w: provisional_games must not be negative", ErrInvalidConfig)
	case c.LevelMultiplier <= 1:
		return fmt.Errorf("%w: level_multiplier must exceed 1", ErrInvalidConfig)
	case c.CommitRetries < 0:
		return fmt.Errorf("%w: commit_retries must not be negative", ErrInvalidConfig)
	}
	return nil
}
