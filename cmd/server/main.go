// Package main is the entry point for the word-of-the-day server.
//
// The main package is kept minimal — its job is to:
// 1. Read configuration (env vars, optionally a .env file)
// 2. Create dependencies (logger, server)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.). This separation makes the app testable and its
// components reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/word-of-the-day/internal/config"
	"github.com/sakif/word-of-the-day/internal/server"
)

func main() {
	// slog.New creates a structured logger. slog.NewTextHandler outputs
	// human-readable logs to the terminal.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure the database directory exists.
	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// The email job degrades to a logged no-op when SMTP is unconfigured,
	// but that's worth a loud warning at startup rather than a silent
	// surprise at send time.
	if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" || cfg.SMTP.Sender == "" {
		logger.Warn("SMTP credentials not set — the daily email job will skip sending")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
