// Package service implements the debate lifecycle controller: the single
// writer for debates, user ratings, progression, and achievement unlocks,
// plus the read surface the HTTP API exposes.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/debattle/engine/internal/adapters/mq/queue"
	workerpool "github.com/debattle/engine/internal/adapters/mq/worker"
	"github.com/debattle/engine/internal/adapters/repository"
	"github.com/debattle/engine/internal/domain/achievement"
	"github.com/debattle/engine/internal/domain/dedupe"
	"github.com/debattle/engine/internal/domain/model"
	"github.com/debattle/engine/internal/domain/progression"
	"github.com/debattle/engine/internal/domain/ranking"
	"github.com/debattle/engine/internal/domain/rating"
	"github.com/debattle/engine/pkg/logger"
	"github.com/debattle/engine/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize     = 10000
	defaultDedupeSize    = 50000
	defaultCommitRetries = 3
	defaultProvisional   = 10

	shutdownTimeout = 5 * time.Second
)

// Service wires the document store, the judgment idempotency cache, and the
// leaderboard refresh pipeline behind the lifecycle operations.
type Service struct {
	mu sync.RWMutex

	store       repository.Store
	deduper     dedupe.Deduper
	queue       eventqueue.Queue
	pool        *workerpool.Pool
	rating      *rating.Engine
	progression *progression.Progression

	workerCount      int
	queueSize        int
	dedupeSize       int
	commitRetries    int
	provisionalGames int

	started bool

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU(),
		queueSize:        defaultQueueSize,
		dedupeSize:       defaultDedupeSize,
		commitRetries:    defaultCommitRetries,
		provisionalGames: defaultProvisional,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store, caches, and refresh workers, seeds the
// achievement catalog if absent, and computes an initial leaderboard.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("engine")
	}
	if s.rating == nil {
		s.rating = rating.New()
	}
	if s.progression == nil {
		s.progression = progression.New()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	if err := s.seedCatalog(ctx); err != nil {
		return fmt.Errorf("seed achievement catalog: %w", err)
	}
	if err := s.RebuildLeaderboard(ctx); err != nil {
		return fmt.Errorf("initial leaderboard build: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "engine started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("commitRetries", s.commitRetries),
	)

	return nil
}

// Stop drains the refresh queue and shuts the workers down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Closing the queue first lets workers drain buffered refreshes
	// before the pool shutdown fires.
	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		if err := s.pool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "engine stopped")
}

// ready reports whether Start has run, so callers fail cleanly instead of
// hitting nil components.
func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// seedCatalog writes the built-in achievement set for any id not already
// present, so a replaced catalog survives restarts untouched.
func (s *Service) seedCatalog(ctx context.Context) error {
	for _, a := range model.DefaultCatalog(time.Now().UTC()) {
		key := model.AchievementKey(a.ID)
		var existing model.Achievement
		err := s.store.Get(ctx, key, &existing)
		if errors.Is(err, repository.ErrNotFound) {
			if err := s.store.Set(ctx, key, a); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterUser creates a user record with the starting rating. New users
// are provisional until they have played enough debates.
func (s *Service) RegisterUser(ctx context.Context, email, displayName, username string) (*model.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name is required", ErrValidation)
	}

	now := time.Now().UTC()
	user := model.User{
		UID:         uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		Username:    username,
		Rating:      s.rating.StartingRating(),
		Provisional: s.provisionalGames > 0,
		Level:       1,
		Tier:        model.TierBronze,
		CreatedAt:   now,
		LastActive:  now,
	}

	if err := s.store.Set(ctx, model.UserKey(user.UID), user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}
	metrics.UpdateTotalUsers(s.countUsers(ctx))

	return &user, nil
}

// AddTopic writes a topic catalog record, assigning an id when absent.
func (s *Service) AddTopic(ctx context.Context, topic model.Topic) (*model.Topic, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if topic.Title == "" || topic.Category == "" {
		return nil, fmt.Errorf("%w: topic title and category are required", ErrValidation)
	}
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now().UTC()
	}

	if err := s.store.Set(ctx, model.TopicKey(topic.ID), topic); err != nil {
		return nil, fmt.Errorf("store topic: %w", err)
	}
	return &topic, nil
}

// CreateDebateRequest carries the inputs for CreateDebate.
type CreateDebateRequest struct {
	TopicID   string
	Format    string
	ProUserID string
	ConUserID string
}

// CreateDebate validates the participants and topic, snapshots both
// ratings, and writes the debate in the created state.
func (s *Service) CreateDebate(ctx context.Context, req CreateDebateRequest) (*model.Debate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if req.ProUserID == "" || req.ConUserID == "" {
		return nil, fmt.Errorf("%w: both participant ids are required", ErrValidation)
	}
	if req.ProUserID == req.ConUserID {
		return nil, fmt.Errorf("%w: participants must be distinct", ErrValidation)
	}
	if req.TopicID == "" {
		return nil, fmt.Errorf("%w: topic id is required", ErrValidation)
	}

	var topic model.Topic
	if err := s.store.Get(ctx, model.TopicKey(req.TopicID), &topic); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, req.TopicID)
		}
		return nil, fmt.Errorf("load topic: %w", err)
	}

	participants := [2]model.Participant{}
	for i, uid := range []string{req.ProUserID, req.ConUserID} {
		var user model.User
		if err := s.store.Get(ctx, model.UserKey(uid), &user); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownUser, uid)
			}
			return nil, fmt.Errorf("load user %s: %w", uid, err)
		}
		stance := model.StancePro
		if i == 1 {
			stance = model.StanceCon
		}
		participants[i] = model.Participant{
			UserID:      user.UID,
			DisplayName: user.DisplayName,
			Rating:      user.Rating,
			Provisional: user.Provisional,
			Stance:      stance,
		}
	}

	debate := model.Debate{
		ID:           uuid.NewString(),
		TopicID:      topic.ID,
		Topic:        topic.Title,
		Category:     topic.Category,
		Format:       req.Format,
		Participants: participants,
		Status:       model.StatusCreated,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Set(ctx, model.DebateKey(debate.ID), debate); err != nil {
		return nil, fmt.Errorf("store debate: %w", err)
	}

	metrics.RecordDebateCreated()
	s.logger.Info(ctx, "debate created",
		logger.String("debateID", debate.ID),
		logger.String("topicID", debate.TopicID),
		logger.String("pro", req.ProUserID),
		logger.String("con", req.ConUserID),
	)

	return &debate, nil
}

// StartDebate transitions a debate from created to active.
func (s *Service) StartDebate(ctx context.Context, debateID string) (*model.Debate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var debate model.Debate
	err := s.transact(ctx, func(tx repository.Tx) error {
		if err := s.loadDebate(tx, debateID, &debate); err != nil {
			return err
		}
		if debate.Status != model.StatusCreated {
			return fmt.Errorf("%w: cannot start a %s debate", ErrInvalidTransition, debate.Status)
		}
		now := time.Now().UTC()
		debate.Status = model.StatusActive
		debate.StartedAt = &now
		tx.Set(model.DebateKey(debate.ID), debate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDebateStarted()
	s.logger.Info(ctx, "debate started", logger.String("debateID", debate.ID))
	return &debate, nil
}

// CancelDebate transitions a created or active debate to cancelled.
// Cancellation never touches ratings or statistics.
func (s *Service) CancelDebate(ctx context.Context, debateID string) (*model.Debate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var debate model.Debate
	err := s.transact(ctx, func(tx repository.Tx) error {
		if err := s.loadDebate(tx, debateID, &debate); err != nil {
			return err
		}
		if debate.Status.Terminal() {
			return fmt.Errorf("%w: cannot cancel a %s debate", ErrInvalidTransition, debate.Status)
		}
		now := time.Now().UTC()
		debate.Status = model.StatusCancelled
		debate.CancelledAt = &now
		tx.Set(model.DebateKey(debate.ID), debate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDebateCancelled()
	s.logger.Info(ctx, "debate cancelled", logger.String("debateID", debate.ID))
	return &debate, nil
}

// judgmentOutcome is everything a successful commit produced, collected so
// metrics and logging happen once, outside the retried transaction.
type judgmentOutcome struct {
	debate  model.Debate
	deltas  map[string]int
	unlocks map[string][]achievement.Unlock
}

// SubmitJudgment applies a judgment to an active debate. The commit is a
// single atomic transaction covering both user records and the debate, and
// is retried on optimistic-concurrency conflicts. A judgment id seen before
// returns the debate with duplicate=true and changes nothing.
func (s *Service) SubmitJudgment(ctx context.Context, debateID string, j model.Judgment) (*model.Debate, bool, error) {
	if err := s.ready(); err != nil {
		return nil, false, err
	}
	if j.ID == "" {
		return nil, false, fmt.Errorf("%w: judgment id is required", ErrValidation)
	}

	if s.deduper.SeenAndRecord(ctx, j.ID) {
		metrics.RecordJudgmentDuplicate()
		s.logger.Info(ctx, "duplicate judgment acknowledged",
			logger.String("debateID", debateID),
			logger.String("judgmentID", j.ID),
		)
		debate, err := s.Debate(ctx, debateID)
		if err != nil {
			return nil, true, err
		}
		return debate, true, nil
	}

	outcome, err := s.commitJudgment(ctx, debateID, j)
	if err != nil {
		// Release the idempotency slot so the judge can retry after a
		// transient failure. A permanently invalid judgment will fail
		// validation again on resubmission anyway.
		s.deduper.Unrecord(ctx, j.ID)
		return nil, false, err
	}

	metrics.RecordDebateCompleted()
	for _, delta := range outcome.deltas {
		metrics.RecordRatingDelta(abs(delta))
	}
	for _, unlocks := range outcome.unlocks {
		for _, u := range unlocks {
			metrics.RecordAchievementUnlocked(u.ID)
		}
	}

	s.logger.Info(ctx, "judgment committed",
		logger.String("debateID", debateID),
		logger.String("judgmentID", j.ID),
		logger.String("winner", outcome.debate.Winner),
		logger.Bool("draw", j.Draw),
	)

	s.requestRefresh(ctx, debateID)
	return &outcome.debate, false, nil
}

// commitJudgment runs the five-effect transaction with bounded retries.
// Every attempt re-reads the debate and both users, so a retry that finds
// the debate already terminal surfaces ErrInvalidTransition instead of
// double-applying.
func (s *Service) commitJudgment(ctx context.Context, debateID string, j model.Judgment) (*judgmentOutcome, error) {
	var lastErr error
	for attempt := 0; attempt <= s.commitRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordCommitRetry()
		}

		outcome := &judgmentOutcome{
			deltas:  make(map[string]int, 2),
			unlocks: make(map[string][]achievement.Unlock, 2),
		}
		err := s.store.Update(ctx, func(tx repository.Tx) error {
			return s.applyJudgment(tx, debateID, j, outcome)
		})
		if err == nil {
			return outcome, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, err
		}

		metrics.RecordCommitConflict()
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrCommitExhausted, s.commitRetries+1, lastErr)
}

// applyJudgment is one attempt at the atomic commit: rating updates, user
// statistics, XP and achievements, and the debate closing record, all staged
// on the same transaction.
func (s *Service) applyJudgment(tx repository.Tx, debateID string, j model.Judgment, outcome *judgmentOutcome) error {
	var debate model.Debate
	if err := s.loadDebate(tx, debateID, &debate); err != nil {
		return err
	}
	if debate.Status != model.StatusActive {
		metrics.RecordJudgmentRejected("not_active")
		return fmt.Errorf("%w: cannot judge a %s debate", ErrInvalidTransition, debate.Status)
	}
	if err := j.Validate(&debate); err != nil {
		metrics.RecordJudgmentRejected("invalid")
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	users := [2]model.User{}
	for i, p := range debate.Participants {
		if err := tx.Get(model.UserKey(p.UserID), &users[i]); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownUser, p.UserID)
			}
			return err
		}
	}

	// Expected scores come from the rating snapshots taken at creation,
	// not the live ratings.
	sideA := rating.Side{Rating: debate.Participants[0].Rating, Provisional: debate.Participants[0].Provisional}
	sideB := rating.Side{Rating: debate.Participants[1].Rating, Provisional: debate.Participants[1].Provisional}

	ratingOutcome := rating.OutcomeDraw
	switch j.Winner {
	case debate.Participants[0].UserID:
		ratingOutcome = rating.OutcomeAWins
	case debate.Participants[1].UserID:
		ratingOutcome = rating.OutcomeBWins
	}
	updateA, updateB := s.rating.Compute(sideA, sideB, ratingOutcome)

	now := time.Now().UTC()
	updates := [2]rating.Update{updateA, updateB}
	for i := range users {
		user := &users[i]

		result := model.ResultDraw
		switch j.Winner {
		case user.UID:
			result = model.ResultWin
		case "":
		default:
			result = model.ResultLoss
		}

		// The engine's delta is snapshot-derived; re-clamping against the
		// live rating can shrink it further when an overlapping debate
		// already moved the user to a bound. The persisted change must be
		// the one the stored rating actually took.
		pre := user.Rating
		user.Rating = s.rating.Clamp(user.Rating + updates[i].Delta)
		applied := user.Rating - pre
		user.RecordResult(result, debate.Category)
		if user.Provisional && user.GamesPlayed >= s.provisionalGames {
			user.Provisional = false
		}

		user.XP += s.progression.Award(result, user.WinStreak)
		unlocks := achievement.Evaluate(user, s.catalog(tx))
		for _, u := range unlocks {
			user.Achievements = append(user.Achievements, u.ID)
			user.XP += u.XPReward
		}
		user.Level = s.progression.Level(user.XP)
		user.Tier = s.progression.Tier(user.Level)
		user.LastActive = now

		outcome.deltas[user.UID] = applied
		outcome.unlocks[user.UID] = unlocks
		tx.Set(model.UserKey(user.UID), *user)
	}

	debate.Status = model.StatusCompleted
	debate.EndedAt = &now
	debate.Winner = j.Winner
	debate.Judgment = &j
	debate.RatingChanges = outcome.deltas
	tx.Set(model.DebateKey(debate.ID), debate)

	outcome.debate = debate
	return nil
}

// catalog reads the achievement catalog inside the transaction so a
// concurrent catalog change conflicts rather than half-applies.
func (s *Service) catalog(tx repository.Tx) []model.Achievement {
	var catalog []model.Achievement
	_ = tx.List(model.AchievementPrefix, func(_ string, raw []byte) error {
		var a model.Achievement
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		catalog = append(catalog, a)
		return nil
	})
	return catalog
}

// requestRefresh enqueues a leaderboard refresh, falling back to a
// synchronous rebuild when the queue is full or closed so a completed
// debate is never left off the board.
func (s *Service) requestRefresh(ctx context.Context, debateID string) {
	event := eventqueue.Event{
		DebateID:   debateID,
		Reason:     "judgment",
		EnqueuedAt: time.Now().UTC(),
	}
	if s.queue.Enqueue(ctx, event) {
		return
	}

	s.logger.Warn(ctx, "refresh queue saturated, rebuilding synchronously",
		logger.String("debateID", debateID),
	)
	if err := s.RebuildLeaderboard(ctx); err != nil {
		s.logger.Error(ctx, "synchronous leaderboard rebuild failed", logger.Error(err))
	}
}

// RebuildLeaderboard recomputes the derived board from every user record
// and persists it. Total recompute keeps the ordering invariant trivially;
// concurrent rebuilds are harmless because the last writer wins with a
// board derived from an equal-or-newer snapshot.
func (s *Service) RebuildLeaderboard(ctx context.Context) error {
	start := time.Now()

	var users []model.User
	err := s.store.List(ctx, model.UserPrefix, func(_ string, raw []byte) error {
		var u model.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var previous *model.Leaderboard
	var prev model.Leaderboard
	if err := s.store.Get(ctx, model.LeaderboardKey, &prev); err == nil {
		previous = &prev
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("load previous board: %w", err)
	}

	board := ranking.Recompute(users, previous, time.Now().UTC())
	if err := s.store.Set(ctx, model.LeaderboardKey, board); err != nil {
		return fmt.Errorf("store board: %w", err)
	}

	metrics.RecordLeaderboardRebuild(float64(time.Since(start).Milliseconds()))
	metrics.UpdateLeaderboardSize(len(board.Entries))
	metrics.UpdateTotalUsers(len(users))
	return nil
}

// Debate returns a debate by id.
func (s *Service) Debate(ctx context.Context, debateID string) (*model.Debate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var debate model.Debate
	if err := s.store.Get(ctx, model.DebateKey(debateID), &debate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: debate %s", ErrNotFound, debateID)
		}
		return nil, err
	}
	return &debate, nil
}

// User returns a user's rating and statistics by id.
func (s *Service) User(ctx context.Context, uid string) (*model.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var user model.User
	if err := s.store.Get(ctx, model.UserKey(uid), &user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return nil, err
	}
	return &user, nil
}

// Leaderboard returns the current derived board, truncated to limit
// entries when limit is positive.
func (s *Service) Leaderboard(ctx context.Context, limit int) (*model.Leaderboard, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var board model.Leaderboard
	if err := s.store.Get(ctx, model.LeaderboardKey, &board); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.Leaderboard{ComputedAt: time.Now().UTC()}, nil
		}
		return nil, err
	}
	if limit > 0 && len(board.Entries) > limit {
		board.Entries = board.Entries[:limit]
	}
	return &board, nil
}

// Achievements returns the achievement catalog in id order.
func (s *Service) Achievements(ctx context.Context) ([]model.Achievement, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var catalog []model.Achievement
	err := s.store.List(ctx, model.AchievementPrefix, func(_ string, raw []byte) error {
		var a model.Achievement
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		catalog = append(catalog, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return catalog, nil
}

// Topics returns the topic catalog in id order.
func (s *Service) Topics(ctx context.Context) ([]model.Topic, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var topics []model.Topic
	err := s.store.List(ctx, model.TopicPrefix, func(_ string, raw []byte) error {
		var t model.Topic
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		topics = append(topics, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// GetStats returns a service statistics snapshot for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueCapacity": s.queueSize,
		"commitRetries": s.commitRetries,
	}

	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["dedupeEntries"] = s.deduper.Size()
		stats["totalUsers"] = s.countUsers(ctx)
	}

	return stats
}

// transact runs fn with bounded conflict retries for the short lifecycle
// transitions, where losing a race just means re-reading one document.
func (s *Service) transact(ctx context.Context, fn func(tx repository.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt <= s.commitRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordCommitRetry()
		}
		err := s.store.Update(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return err
		}
		metrics.RecordCommitConflict()
		lastErr = err
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrCommitExhausted, s.commitRetries+1, lastErr)
}

// loadDebate reads a debate inside a transaction, mapping a missing key to
// the service-level not-found error.
func (s *Service) loadDebate(tx repository.Tx, debateID string, out *model.Debate) error {
	debateID = strings.TrimSpace(debateID)
	if debateID == "" {
		return fmt.Errorf("%w: debate id is required", ErrValidation)
	}
	if err := tx.Get(model.DebateKey(debateID), out); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: debate %s", ErrNotFound, debateID)
		}
		return err
	}
	return nil
}

func (s *Service) countUsers(ctx context.Context) int {
	count := 0
	_ = s.store.List(ctx, model.UserPrefix, func(string, []byte) error {
		count++
		return nil
	})
	return count
}

func abs(delta int) float64 {
	if delta < 0 {
		return float64(-delta)
	}
	return float64(delta)
}
