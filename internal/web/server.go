// Package web exposes the task backend over HTTP. It is glue: parsing and
// routing live here, every decision lives in the services.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/nextup/nextup/internal/nextup"
)

// Server serves the task and note APIs.
type Server struct {
	tasks *nextup.Service
	notes *nextup.NoteService
	log   zerolog.Logger

	http *http.Server
}

// NewServer creates an HTTP server bound to addr.
func NewServer(addr string, tasks *nextup.Service, notes *nextup.NoteService, log zerolog.Logger) *Server {
	s := &Server{
		tasks: tasks,
		notes: notes,
		log:   log.With().Str("component", "web").Logger(),
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.handleListTasks)
		r.Post("/", s.handleCreateTask)
		r.Patch("/reorder", s.handleReorder)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", s.handleUpdateTask)
			r.Delete("/", s.handleDeleteTask)
			r.Post("/complete", s.handleCompleteTask)
			r.Post("/start", s.handleStartTask)
			r.Post("/snooze", s.handleSnoozeTask)
			r.Put("/reschedule", s.handleRescheduleTask)
			r.Patch("/duration", s.handleRecordDuration)
		})
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", s.handleListNotes)
		r.Post("/", s.handleUpsertNote)
		r.Delete("/", s.handleDeleteNote)
	})

	r.Get("/ics", s.handleICS)

	return r
}

// Handler returns the router, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
