package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/me/gogrid/internal/entity"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/pkg/model"
)

// idParam parses the {id} URL parameter as a grid id. 0 is never a valid
// live id, so it doubles as the failure sentinel.
func idParam(r *http.Request) uint32 {
	v, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

// handleListUsers returns every registered user.
// GET /api/v1/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	s.mu.Lock()
	users := s.mgr.FindUsers(func(grid.User) bool { return true })
	views := make([]model.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	s.mu.Unlock()

	respondOK(w, reqID, views)
}

// handleCreateUser registers a new user.
// POST /api/v1/users
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	var req struct {
		Name  string `json:"name"`
		Quota uint32 `json:"quota"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if req.Name == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("name is required"))
		return
	}

	u := entity.NewUser(req.Name, req.Quota)
	s.mu.Lock()
	id := s.mgr.AddUser(u)
	s.mu.Unlock()
	if id == 0 {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: "user registration failed"})
		return
	}

	respondCreated(w, reqID, userView(u))
}

// handleGetUser looks up one user.
// GET /api/v1/users/{id}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())
	id := idParam(r)

	s.mu.Lock()
	u, ok := s.mgr.GetUser(id)
	s.mu.Unlock()
	if !ok {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("user", id))
		return
	}

	respondOK(w, reqID, userView(u))
}

// handleRemoveUser deletes a user by id.
// DELETE /api/v1/users/{id}
func (s *Server) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())
	id := idParam(r)

	s.mu.Lock()
	removed := s.mgr.RemoveUser(id)
	s.mu.Unlock()
	if !removed {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("user", id))
		return
	}

	respondOK(w, reqID, map[string]any{"removed": id})
}
