package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/me/gogrid/internal/grid"
)

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Users     int    `json:"users"`
	Machines  int    `json:"machines"`
	Jobs      int    `json:"jobs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	s.mu.Lock()
	users := s.mgr.UserCount()
	machines := s.mgr.MachineCount()
	jobs := 0
	for _, mc := range s.mgr.FindMachines(func(grid.Machine) bool { return true }) {
		jobs += int(mc.CurrentJobs())
	}
	s.mu.Unlock()

	respondOK(w, reqID, healthResponse{
		Status:    "healthy",
		Version:   "0.1.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Users:     users,
		Machines:  machines,
		Jobs:      jobs,
	})
}
