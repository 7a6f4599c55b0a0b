// Package server exposes the route table over HTTP and drives live
// navigation sessions over WebSocket.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/history"
	"github.com/ziadkadry99/pageshell/internal/logging"
	"github.com/ziadkadry99/pageshell/internal/router"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	SiteName string
	Home     string
	Delay    time.Duration
	Render   router.RenderConfig
}

// Server serves the page API, the HTML shell and live sessions.
type Server struct {
	cfg        Config
	table      *content.Table
	renderer   *router.Renderer
	history    *history.Store
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server over table. A nil history store keeps live sessions
// in memory only.
func New(cfg Config, table *content.Table, store *history.Store, logger *zap.Logger) (*Server, error) {
	if cfg.Home == "" {
		cfg.Home = router.DefaultHome
	}
	if !table.Has(cfg.Home) {
		return nil, fmt.Errorf("home %w: %s", router.ErrRouteNotFound, cfg.Home)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Render.SiteName == "" {
		cfg.Render.SiteName = cfg.SiteName
	}

	s := &Server{
		cfg:      cfg,
		table:    table,
		renderer: router.NewRenderer(cfg.Render),
		history:  store,
		logger:   logger.Named("server"),
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", s.handleShell)
	r.Get("/ws", s.handleLive)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/routes", s.handleRoutes)
		r.Get("/pages/{route}", s.handlePage)
		r.Get("/search", s.handleSearch)
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("pageshell server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
