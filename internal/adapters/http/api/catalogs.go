// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/debattle/engine/internal/domain/model"
)

// AchievementDependencies defines the interface for catalog reads.
type AchievementDependencies interface {
	Achievements(ctx context.Context) ([]model.Achievement, error)
}

// AchievementsHandler handles achievement catalog requests.
type AchievementsHandler struct {
	deps AchievementDependencies
}

// NewAchievementsHandler creates a new achievements handler.
func NewAchievementsHandler(deps AchievementDependencies) *AchievementsHandler {
	return &AchievementsHandler{deps: deps}
}

// HandleGetAchievements handles GET /achievements requests.
func (h *AchievementsHandler) HandleGetAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	catalog, err := h.deps.Achievements(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if catalog == nil {
		catalog = []model.Achievement{}
	}
	writeJSON(w, http.StatusOK, catalog)
}

// TopicDependencies defines the interface for topic catalog reads.
type TopicDependencies interface {
	Topics(ctx context.Context) ([]model.Topic, error)
}

// TopicsHandler handles topic catalog requests.
type TopicsHandler struct {
	deps TopicDependencies
}

// NewTopicsHandler creates a new topics handler.
func NewTopicsHandler(deps TopicDependencies) *TopicsHandler {
	return &TopicsHandler{deps: deps}
}

// HandleGetTopics handles GET /topics requests.
func (h *TopicsHandler) HandleGetTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	topics, err := h.deps.Topics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}
