// Package main is the entry point for the wellness tracker API.
//
// main stays minimal: load configuration, build the logger, make sure the
// database directory exists, then hand everything to internal/server.
// All settings come from the environment (or a .env file); see
// internal/config for the list and defaults.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/wellness-tracker/internal/config"
	"github.com/sakif/wellness-tracker/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate already checked the level parses.
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.GroqAPIKey == "" {
		logger.Warn("GROQ_API_KEY not set, chat will answer with its fallback reply")
	}

	// os.MkdirAll is like `mkdir -p`. Skipped for in-memory databases.
	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(*cfg, logger, nil)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
