// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/debattle/engine/internal/domain/model"
)

// UserDependencies defines the interface for user reads.
type UserDependencies interface {
	User(ctx context.Context, uid string) (*model.User, error)
}

// UsersHandler handles user requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleGetUser handles GET /users/{id} requests.
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	uid := strings.TrimPrefix(r.URL.Path, "/users/")
	if uid == "" || strings.Contains(uid, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	user, err := h.deps.User(r.Context(), uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
