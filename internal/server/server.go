// Package server exposes the composition pipeline as the HTTP backend of
// the browser toy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sanjaysah101/pi-loom/internal/config"
)

// Server is the HTTP server
type Server struct {
	config *config.Config
	router *chi.Mux
	logger *slog.Logger
}

// New creates a new server
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	r := s.router

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/health", s.handleHealth)

	// API
	r.Get("/api/scales", s.handleScales)
	r.Post("/api/compose", s.handleCompose)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		s.logger.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	s.logger.Info("server starting", slog.Int("port", s.config.Port))
	fmt.Printf("\n  pi-loom API running at: http://localhost:%d\n\n", s.config.Port)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	<-done
	return nil
}
