// Package server exposes mazewalk games over HTTP.
//
// Each session holds one game. Clients create a session, move the player,
// start a search and advance it with /step, so the scheduling of ticks stays
// with the caller:
//
//	POST   /v1/mazes                    create {"width":20,"height":15,"seed":7}
//	GET    /v1/mazes/{id}               full snapshot, maze included
//	GET    /v1/mazes/{id}/render        ?format=txt|json|dot|svg|png|pdf
//	POST   /v1/mazes/{id}/move          {"direction":"up"}
//	POST   /v1/mazes/{id}/search        {"mode":"bfs"}
//	POST   /v1/mazes/{id}/step          ?n=1
//	POST   /v1/mazes/{id}/reset         discard the search
//	POST   /v1/mazes/{id}/regenerate    new maze, same size
//	DELETE /v1/mazes/{id}
//	GET    /healthz
//
// Errors are JSON objects carrying the code from pkg/errors.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mazewalk/pkg/config"
)

const (
	// MaxStepsPerRequest bounds ?n= on /step.
	MaxStepsPerRequest = 10000

	sweepInterval   = time.Minute
	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP API.
type Server struct {
	cfg    config.Config
	store  *Store
	logger *log.Logger
	router chi.Router
}

// New builds a server from cfg. A nil logger means log.Default().
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		store:  NewStore(cfg.Server.MaxSessions, cfg.Server.SessionTTL.Duration),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Store returns the session store.
func (s *Server) Store() *Store { return s.store }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(serverHeader)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1/mazes", func(r chi.Router) {
		r.Post("/", s.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.get)
			r.Delete("/", s.remove)
			r.Get("/render", s.render)
			r.Post("/move", s.move)
			r.Post("/search", s.search)
			r.Post("/step", s.step)
			r.Post("/reset", s.reset)
			r.Post("/regenerate", s.regenerate)
		})
	})
	return r
}

// ListenAndServe serves on cfg.Server.Addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx); n > 0 {
				s.logger.Debug("expired sessions", "count", n)
			}
		}
	}
}
