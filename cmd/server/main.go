// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

// Tunegraph server: ingests listening history and serves the artist
// relationship graph over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tunegraph/tunegraph/internal/api"
	"github.com/tunegraph/tunegraph/internal/config"
	"github.com/tunegraph/tunegraph/internal/database"
	"github.com/tunegraph/tunegraph/internal/genres"
	"github.com/tunegraph/tunegraph/internal/graph"
	"github.com/tunegraph/tunegraph/internal/logging"
	"github.com/tunegraph/tunegraph/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("genre_provider", cfg.Genres.Provider).
		Msg("Starting Tunegraph server")

	// Root context is cancelled on SIGINT/SIGTERM, which drains the
	// supervisor tree and shuts the HTTP server down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if cfg.Database.SeedMockData {
		if err := db.SeedMockData(ctx); err != nil {
			return fmt.Errorf("seed mock data: %w", err)
		}
	}

	resolver := buildResolver(&cfg.Genres)
	builder := graph.NewBuilder(db, resolver)

	handler := api.NewHandler(db, builder, cfg)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.Add(supervisor.NewHTTPService(server, cfg.Server.Timeout))

	logging.Info().Str("addr", server.Addr).Msg("Listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}

// buildResolver selects the genre backend and wraps it with the LRU
// cache. The static provider works offline; lastfm needs an API key,
// which configuration validation already enforced.
func buildResolver(cfg *config.GenresConfig) genres.Resolver {
	var inner genres.Resolver
	switch cfg.Provider {
	case "lastfm":
		inner = genres.NewLastfmResolver(cfg)
	default:
		inner = genres.NewBuiltinResolver()
	}
	return genres.NewCachedResolver(inner, cfg.CacheSize, cfg.CacheTTL)
}
