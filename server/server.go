package server

import (
	"context"
	"errors"
	"hex/gamemaster"
	"hex/searcher"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxPlayouts    = 1_000
	// DefaultMaxSimulations bounds the playouts of one request summed over every empty cell.
	DefaultMaxSimulations = 100_000
	DefaultPingInterval   = 30 * time.Second
	shutdownTimeout       = 5 * time.Second
)

type Option func(s *Server)

// Server exposes a GameMaster over HTTP and streams game updates over websockets.
type Server struct {
	master       *gamemaster.GameMaster
	goroutines   int // Evaluator workers for stateless evaluations
	playouts     int
	maxPlayouts  int
	maxSims      int
	pingInterval time.Duration
	upgrader     websocket.Upgrader
	router       chi.Router
}

func WithGoroutines(goroutines int) Option {
	return func(s *Server) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithPlayouts(playouts int) Option {
	return func(s *Server) {
		if playouts > 0 {
			s.playouts = playouts
		}
	}
}

// WithMaxPlayouts caps the playouts a single request may ask for.
func WithMaxPlayouts(playouts int) Option {
	return func(s *Server) {
		if playouts > 0 {
			s.maxPlayouts = playouts
		}
	}
}

// WithMaxSimulations caps empty cells times playouts for a single request.
func WithMaxSimulations(simulations int) Option {
	return func(s *Server) {
		if simulations > 0 {
			s.maxSims = simulations
		}
	}
}

func WithPingInterval(interval time.Duration) Option {
	return func(s *Server) {
		if interval > 0 {
			s.pingInterval = interval
		}
	}
}

func New(master *gamemaster.GameMaster, options ...Option) *Server {
	s := &Server{ // Default values
		master:       master,
		goroutines:   searcher.DefaultGoroutines,
		playouts:     searcher.DefaultPlayouts,
		maxPlayouts:  DefaultMaxPlayouts,
		maxSims:      DefaultMaxSimulations,
		pingInterval: DefaultPingInterval,
		upgrader:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	for _, option := range options {
		option(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Post("/{id}/move", s.handleMove)
		r.Post("/{id}/auto", s.handleAuto)
	})
	r.Get("/api/records/{id}", s.handleRecord)
	r.Post("/api/evaluate", s.handleEvaluate)
	r.Get("/ws/games/{id}", s.handleStream)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", addr).Msg("server listening")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info().Msg("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
