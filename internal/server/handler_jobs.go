package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/gogrid/internal/entity"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/pkg/model"
)

// handleSubmitJob submits a job for placement. With a user_id the submission
// is attributed and authorization-gated; without one it goes straight to the
// scheduler. A submission no machine accepts is a terminal failure for this
// call; there are no retries and no queueing.
// POST /api/v1/jobs
func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	var req model.SubmitRequest
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

	job := entity.NewJob(req.Name, req.RequiredRAM, req.RequiredDisk, req.Duration)

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.UserID != 0 {
		u, ok := s.mgr.GetUser(req.UserID)
		if !ok {
			respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("user", req.UserID))
			return
		}
		if !u.CanCreateJob(job) {
			respondError(w, reqID, http.StatusForbidden, &model.APIError{
				Code:    model.ErrUnauthorized,
				Message: "user is not allowed to create this job",
			})
			return
		}
		if !s.mgr.AddJobByUser(u, job) {
			respondError(w, reqID, http.StatusConflict, &model.APIError{
				Code:    model.ErrNoCapacity,
				Message: "no machine accepted the job",
			})
			return
		}
	} else if !s.mgr.AddJob(job) {
		respondError(w, reqID, http.StatusConflict, &model.APIError{
			Code:    model.ErrNoCapacity,
			Message: "no machine accepted the job",
		})
		return
	}

	// Report which machine took the job; it is only reachable through the
	// machine that owns it now.
	placed := jobView(job, 0)
	for _, mc := range s.mgr.FindMachines(func(grid.Machine) bool { return true }) {
		for _, j := range mc.Jobs() {
			if j == job {
				placed.MachineID = mc.ID()
			}
		}
	}
	respondCreated(w, reqID, placed)
}
