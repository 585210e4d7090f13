package service

import (
	"github.com/debattle/engine/internal/adapters/repository"
	"github.com/debattle/engine/internal/domain/progression"
	"github.com/debattle/engine/internal/domain/rating"
	"github.com/debattle/engine/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a document store. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRatingEngine sets the rating engine used for judgment commits.
func WithRatingEngine(engine *rating.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.rating = engine
		}
	}
}

// WithProgression sets the XP/level/tier rules.
func WithProgression(p *progression.Progression) Option {
	return func(s *Service) {
		if p != nil {
			s.progression = p
		}
	}
}

// WithWorkerCount sets the number of leaderboard refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the refresh event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the judgment idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithCommitRetries sets how many times a conflicted judgment commit is
// retried before giving up.
func WithCommitRetries(retries int) Option {
	return func(s *Service) {
		if retries >= 0 {
			s.commitRetries = retries
		}
	}
}

// WithProvisionalGames sets how many games a user stays provisional.
func WithProvisionalGames(games int) Option {
	return func(s *Service) {
		if games >= 0 {
			s.provisionalGames = games
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
