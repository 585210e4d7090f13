// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/debattle/engine/internal/app"
	"github.com/debattle/engine/internal/domain/model"
)

// Dependencies is the engine surface the HTTP handlers are written against.
// The app service implements it; tests substitute mocks.
type Dependencies interface {
	CreateDebate(ctx context.Context, req service.CreateDebateRequest) (*model.Debate, error)
	StartDebate(ctx context.Context, debateID string) (*model.Debate, error)
	CancelDebate(ctx context.Context, debateID string) (*model.Debate, error)
	SubmitJudgment(ctx context.Context, debateID string, j model.Judgment) (*model.Debate, bool, error)

	Debate(ctx context.Context, debateID string) (*model.Debate, error)
	User(ctx context.Context, uid string) (*model.User, error)
	Leaderboard(ctx context.Context, limit int) (*model.Leaderboard, error)
	Achievements(ctx context.Context) ([]model.Achievement, error)
	Topics(ctx context.Context) ([]model.Topic, error)
}

// Server wires HTTP routes for the engine API.
type Server struct {
	debatesHandler      *DebatesHandler
	leaderboardHandler  *LeaderboardHandler
	usersHandler        *UsersHandler
	achievementsHandler *AchievementsHandler
	topicsHandler       *TopicsHandler
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler

	rateLimiter *rateLimiter
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := &serverConfig{
		maxLeaderboardLimit: defaultMaxLeaderboardLimit,
		rateLimitRPS:        defaultRateLimitRPS,
		rateLimitBurst:      defaultRateLimitBurst,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{
		rateLimiter: newRateLimiter(cfg.rateLimitRPS, cfg.rateLimitBurst),
	}

	s.debatesHandler = NewDebatesHandler(deps)
	s.leaderboardHandler = NewLeaderboardHandler(deps, cfg.maxLeaderboardLimit)
	s.usersHandler = NewUsersHandler(deps)
	s.achievementsHandler = NewAchievementsHandler(deps)
	s.topicsHandler = NewTopicsHandler(deps)
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)

	return s
}

// Register attaches all HTTP routes to mux. Mutating endpoints sit behind
// the rate limiter; reads only get the metrics wrapper.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/debates", MetricsMiddleware(s.rateLimiter.Limit(s.debatesHandler.HandleDebates, "debates"), "debates"))
	mux.HandleFunc("/debates/", MetricsMiddleware(s.rateLimiter.Limit(s.debatesHandler.HandleDebate, "debates"), "debates"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/users/", MetricsMiddleware(s.usersHandler.HandleGetUser, "users"))
	mux.HandleFunc("/achievements", MetricsMiddleware(s.achievementsHandler.HandleGetAchievements, "achievements"))
	mux.HandleFunc("/topics", MetricsMiddleware(s.topicsHandler.HandleGetTopics, "topics"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates engine sentinels onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, service.ErrUnknownTopic):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", err)
	case errors.Is(err, service.ErrCommitExhausted):
		writeError(w, http.StatusServiceUnavailable, "commit_contention", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
