package server

import (
	"net/http"

	"github.com/me/gogrid/pkg/model"
)

// handleSnapshotSave writes the current manager state to the snapshot file.
// POST /api/v1/snapshot/save
func (s *Server) handleSnapshotSave(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())
	if s.snaps == nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("snapshot persistence is not configured"))
		return
	}

	s.mu.Lock()
	err := s.snaps.Save(s.mgr)
	info := model.SnapshotInfo{
		Path:     s.snaps.Path(),
		Users:    s.mgr.UserCount(),
		Machines: s.mgr.MachineCount(),
	}
	s.mu.Unlock()
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondOK(w, reqID, info)
}

// handleSnapshotLoad replaces the manager with the snapshot's state. The
// swap is atomic from the API's point of view: either the whole decoded
// state takes over or nothing changes.
// POST /api/v1/snapshot/load
func (s *Server) handleSnapshotLoad(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())
	if s.snaps == nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("snapshot persistence is not configured"))
		return
	}

	m, err := s.snaps.Load(s.base)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.mgr = m
	info := model.SnapshotInfo{
		Path:     s.snaps.Path(),
		Users:    m.UserCount(),
		Machines: m.MachineCount(),
	}
	s.mu.Unlock()

	respondOK(w, reqID, info)
}
