// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "composition root" — the one place where the whole
// dependency chain is assembled:
//
//	sqlite.DB → repositories → services → handlers / mailer / scheduler
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, the scheduler gets the resolver and
// the mailer. Nothing here is a package-level global; the server owns the
// store handle and the scheduler and shuts both down explicitly.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/word-of-the-day/internal/config"
	"github.com/sakif/word-of-the-day/internal/handler"
	"github.com/sakif/word-of-the-day/internal/mailer"
	"github.com/sakif/word-of-the-day/internal/middleware"
	sqliteRepo "github.com/sakif/word-of-the-day/internal/repository/sqlite"
	"github.com/sakif/word-of-the-day/internal/scheduler"
	"github.com/sakif/word-of-the-day/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection and the scheduler. When it shuts
// down it must stop the scheduler (waiting for an in-flight job) and close
// the connection to flush the WAL and release the file lock.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	sched  *scheduler.Scheduler
}

// New creates a new Server with the given config.
//
// IMPORT ALIAS:
// We import repository/sqlite as `sqliteRepo` to avoid confusion with the
// sqlite driver package.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	userService := service.NewUserService(db.Users(), logger)
	wordService, err := service.NewWordService(db.Words(), logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating word service: %w", err)
	}

	emailSender := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Server,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	}, logger)

	sched, err := scheduler.New(wordService, userService, emailSender, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
		sched:  sched,
	}

	s.setupRoutes(userService, wordService)

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// POST /users        → register a subscriber (JSON)
// GET  /users/count  → total subscribers
// POST /words        → create one word
// GET  /words        → list the catalog
// POST /words/bulk   → transactional batch insert
// GET  /words/today  → today's word (404 on a day with no word)
//
// MIDDLEWARE ORDER MATTERS — our order:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. CORS — answers preflights before they reach the handlers
// 5. Logger — logs each request with timing info
func (s *Server) setupRoutes(userService *service.UserService, wordService *service.WordService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)

	// Browser callers come from a fixed allow-list of frontend origins.
	// Only GET and POST exist in this API; all headers are permitted.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	s.router.Use(middleware.Logger(s.logger))

	userHandler := handler.NewUserHandler(userService, s.logger)
	wordHandler := handler.NewWordHandler(wordService, s.logger)

	s.router.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.HandleCreate)
		r.Get("/count", userHandler.HandleCount)
	})

	s.router.Route("/words", func(r chi.Router) {
		r.Post("/", wordHandler.HandleCreate)
		r.Get("/", wordHandler.HandleList)
		r.Post("/bulk", wordHandler.HandleBulkCreate)
		r.Get("/today", wordHandler.HandleToday)
	})
}

// Start starts the scheduler and the HTTP server, then blocks until
// shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Stop the scheduler (waits for an in-flight job run)
// 4. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	if err := s.sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		s.sched.Stop()
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			s.sched.Stop()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.sched.Stop()
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
