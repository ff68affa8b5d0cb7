// Package api serves scores, net worth and dashboards as JSON for a presentation layer.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Rates provides the exchange rate. It never fails, see fx.Service.
type Rates interface {
	Rate(ctx context.Context) vitals.ExchangeRate
}

// Config holds server configuration
type Config struct {
	Addr    string
	Log     zerolog.Logger
	Scheme  vitals.Scheme
	Rates   Rates
	DataDir string // journals directory
	// Origins allowed by CORS, every origin when empty.
	Origins []string
	// Today returns the default date of the dashboards.
	Today func() date.Date
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	cfg      Config
	validate *validator.Validate
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	if cfg.Today == nil {
		cfg.Today = date.Today
	}
	if len(cfg.Origins) == 0 {
		cfg.Origins = []string{"*"}
	}
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "api").Logger(),
		cfg:      cfg,
		validate: newValidator(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "scheme": s.cfg.Scheme.Name})
	})

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/scores/health", s.handleHealthScore)
		r.Post("/scores/mental", s.handleMentalScore)
		r.Get("/rate", s.handleRate)
		r.Route("/{identity}", func(r chi.Router) {
			r.Get("/networth", s.handleNetWorth)
			r.Get("/dashboard", s.handleDashboard)
		})
	})
}

// ServeHTTP makes the server usable as a handler, in tests in particular.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Run serves until ctx is canceled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Str("scheme", s.cfg.Scheme.Name).Msg("Starting HTTP server")
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down HTTP server")
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
