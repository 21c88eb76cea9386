// Package server exposes the grid manager over HTTP: registry CRUD, job
// submission, expression queries, and snapshot control.
//
// The grid core does no locking of its own, so this package is where the
// single-writer contract is enforced: every handler and the tick-loop
// adapter funnel through one mutex before touching the manager.
package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/internal/snapshot"
	"github.com/me/gogrid/internal/ticker"
)

// Server is the gridd REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	base      *slog.Logger // untagged; handed to managers decoded from snapshots
	startTime time.Time

	mu    sync.Mutex
	mgr   *grid.Manager
	snaps *snapshot.Store // nil when persistence is disabled
}

// New creates a Server with all routes registered. snaps may be nil, in
// which case the snapshot endpoints report failure.
func New(mgr *grid.Manager, snaps *snapshot.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		base:      logger,
		startTime: time.Now(),
		mgr:       mgr,
		snaps:     snaps,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// TickTarget returns the tick-loop target: an adapter that serializes with
// the HTTP handlers and always reaches the current manager, even after a
// snapshot load swaps it.
func (s *Server) TickTarget() ticker.Updater {
	return tickTarget{s}
}

type tickTarget struct{ s *Server }

func (t tickTarget) Update(diff uint32) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.mgr.Update(diff)
}

// SaveSnapshot writes the current manager state through the snapshot store.
// A nil store is a no-op.
func (s *Server) SaveSnapshot() error {
	if s.snaps == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snaps.Save(s.mgr)
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetUser)
				r.Delete("/", s.handleRemoveUser)
			})
		})

		r.Route("/machines", func(r chi.Router) {
			r.Get("/", s.handleListMachines)
			r.Post("/", s.handleCreateMachine)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetMachine)
				r.Delete("/", s.handleRemoveMachine)
				r.Get("/jobs", s.handleMachineJobs)
			})
		})

		r.Post("/jobs", s.handleSubmitJob)
		r.Post("/query", s.handleQuery)

		r.Route("/snapshot", func(r chi.Router) {
			r.Post("/save", s.handleSnapshotSave)
			r.Post("/load", s.handleSnapshotLoad)
		})
	})
}
