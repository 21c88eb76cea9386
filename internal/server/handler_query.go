package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/gogrid/internal/expr"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/pkg/model"
)

// handleQuery evaluates a JavaScript predicate over one entity kind and
// returns the matches. The three kinds are enumerated explicitly; anything
// else is rejected up front rather than answered with an empty result.
// POST /api/v1/query
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	var req model.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}

	var binding string
	switch req.Kind {
	case "users":
		binding = "user"
	case "machines":
		binding = "machine"
	case "jobs":
		binding = "job"
	default:
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("unsupported kind: "+req.Kind+" (want users, machines, or jobs)"))
		return
	}

	pred, err := expr.Compile(binding, req.Expression)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Collect candidates first, then evaluate: an expression error aborts
	// the whole query rather than slipping through as a partial result.
	var results []map[string]any
	var evalErr error

	match := func(m map[string]any) bool {
		if evalErr != nil {
			return false
		}
		ok, err := pred.Match(m)
		if err != nil {
			evalErr = err
			return false
		}
		return ok
	}

	switch req.Kind {
	case "users":
		for _, u := range s.mgr.FindUsers(func(grid.User) bool { return true }) {
			if m := userMap(u); match(m) {
				results = append(results, m)
			}
		}
	case "machines":
		for _, mc := range s.mgr.FindMachines(func(grid.Machine) bool { return true }) {
			if m := machineMap(mc); match(m) {
				results = append(results, m)
			}
		}
	case "jobs":
		for _, mc := range s.mgr.FindMachines(func(grid.Machine) bool { return true }) {
			for _, j := range mc.Jobs() {
				if m := jobMap(j, mc.ID()); match(m) {
					results = append(results, m)
				}
			}
		}
	}

	if evalErr != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(evalErr.Error()))
		return
	}
	if results == nil {
		results = []map[string]any{}
	}
	respondOK(w, reqID, results)
}
