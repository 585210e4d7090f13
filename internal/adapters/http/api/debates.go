// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	service "github.com/debattle/engine/internal/app"
	"github.com/debattle/engine/internal/domain/model"
)

// DebateDependencies defines the interface for debate lifecycle operations.
type DebateDependencies interface {
	CreateDebate(ctx context.Context, req service.CreateDebateRequest) (*model.Debate, error)
	StartDebate(ctx context.Context, debateID string) (*model.Debate, error)
	CancelDebate(ctx context.Context, debateID string) (*model.Debate, error)
	SubmitJudgment(ctx context.Context, debateID string, j model.Judgment) (*model.Debate, bool, error)
	Debate(ctx context.Context, debateID string) (*model.Debate, error)
}

// DebatesHandler handles debate lifecycle requests.
type DebatesHandler struct {
	deps DebateDependencies
}

// NewDebatesHandler creates a new debates handler.
func NewDebatesHandler(deps DebateDependencies) *DebatesHandler {
	return &DebatesHandler{deps: deps}
}

// createDebateRequest mirrors the OpenAPI schema for POST /debates.
type createDebateRequest struct {
	TopicID   string `json:"topic_id"`
	Format    string `json:"format"`
	ProUserID string `json:"pro_user_id"`
	ConUserID string `json:"con_user_id"`
}

func (r createDebateRequest) validate() error {
	switch {
	case strings.TrimSpace(r.TopicID) == "":
		return errors.New("missing topic_id")
	case strings.TrimSpace(r.ProUserID) == "":
		return errors.New("missing pro_user_id")
	case strings.TrimSpace(r.ConUserID) == "":
		return errors.New("missing con_user_id")
	}
	return nil
}

// judgmentResponse acknowledges a judgment submission.
type judgmentResponse struct {
	Status    string        `json:"status"`
	Duplicate bool          `json:"duplicate"`
	Debate    *model.Debate `json:"debate"`
}

// HandleDebates handles POST /debates requests.
func (h *DebatesHandler) HandleDebates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	var req createDebateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	debate, err := h.deps.CreateDebate(r.Context(), service.CreateDebateRequest{
		TopicID:   req.TopicID,
		Format:    req.Format,
		ProUserID: req.ProUserID,
		ConUserID: req.ConUserID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, debate)
}

// HandleDebate handles GET /debates/{id} and the lifecycle actions
// POST /debates/{id}/start, /debates/{id}/judgment, /debates/{id}/cancel.
func (h *DebatesHandler) HandleDebate(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/debates/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" || strings.Contains(action, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.getDebate(w, r, id)
	case action == "start" && r.Method == http.MethodPost:
		h.startDebate(w, r, id)
	case action == "judgment" && r.Method == http.MethodPost:
		h.submitJudgment(w, r, id)
	case action == "cancel" && r.Method == http.MethodPost:
		h.cancelDebate(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	}
}

func (h *DebatesHandler) getDebate(w http.ResponseWriter, r *http.Request, id string) {
	debate, err := h.deps.Debate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debate)
}

func (h *DebatesHandler) startDebate(w http.ResponseWriter, r *http.Request, id string) {
	debate, err := h.deps.StartDebate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debate)
}

func (h *DebatesHandler) cancelDebate(w http.ResponseWriter, r *http.Request, id string) {
	debate, err := h.deps.CancelDebate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debate)
}

func (h *DebatesHandler) submitJudgment(w http.ResponseWriter, r *http.Request, id string) {
	var j model.Judgment
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if j.IssuedAt.IsZero() {
		j.IssuedAt = time.Now().UTC()
	}

	debate, duplicate, err := h.deps.SubmitJudgment(r.Context(), id, j)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := "completed"
	if duplicate {
		status = "duplicate"
	}
	writeJSON(w, http.StatusOK, judgmentResponse{Status: status, Duplicate: duplicate, Debate: debate})
}
