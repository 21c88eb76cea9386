package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/gogrid/internal/entity"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/pkg/model"
)

// handleListMachines returns every registered machine.
// GET /api/v1/machines
func (s *Server) handleListMachines(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	s.mu.Lock()
	machines := s.mgr.FindMachines(func(grid.Machine) bool { return true })
	views := make([]model.MachineView, 0, len(machines))
	for _, mc := range machines {
		views = append(views, machineView(mc))
	}
	s.mu.Unlock()

	respondOK(w, reqID, views)
}

// handleCreateMachine registers a new machine.
// POST /api/v1/machines
func (s *Server) handleCreateMachine(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	var req struct {
		Name    string `json:"name"`
		MaxJobs uint32 `json:"max_jobs"`
		RAM     uint32 `json:"ram"`
		Disk    uint32 `json:"disk"`
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

	mc := entity.NewMachine(req.Name, req.MaxJobs, req.RAM, req.Disk)
	s.mu.Lock()
	id := s.mgr.AddMachine(mc)
	s.mu.Unlock()
	if id == 0 {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: "machine registration failed"})
		return
	}

	respondCreated(w, reqID, machineView(mc))
}

// handleGetMachine looks up one machine.
// GET /api/v1/machines/{id}
func (s *Server) handleGetMachine(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())
	id := idParam(r)

	s.mu.Lock()
	mc, ok := s.mgr.GetMachine(id)
	s.mu.Unlock()
	if !ok {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("machine", id))
		return
	}

	respondOK(w, reqID, machineView(mc))
}

// handleRemoveMachine deletes a machine by id; its jobs go with it.
// DELETE /api/v1/machines/{id}
func (s *Server) handleRemoveMachine(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())
	id := idParam(r)

	s.mu.Lock()
	removed := s.mgr.RemoveMachine(id)
	s.mu.Unlock()
	if !removed {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("machine", id))
		return
	}

	respondOK(w, reqID, map[string]any{"removed": id})
}

// handleMachineJobs lists the jobs a machine currently owns.
// GET /api/v1/machines/{id}/jobs
func (s *Server) handleMachineJobs(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())
	id := idParam(r)

	s.mu.Lock()
	mc, ok := s.mgr.GetMachine(id)
	var views []model.JobView
	if ok {
		jobs := mc.Jobs()
		views = make([]model.JobView, 0, len(jobs))
		for _, j := range jobs {
			views = append(views, jobView(j, mc.ID()))
		}
	}
	s.mu.Unlock()
	if !ok {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("machine", id))
		return
	}

	respondOK(w, reqID, views)
}
