// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment
// variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Graph    GraphConfig    `koanf:"graph"`
	Genres   GenresConfig   `koanf:"genres"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - SERVER_HOST: Bind address (default: 0.0.0.0)
//   - SERVER_PORT: Listen port (default: 8632)
//   - SERVER_TIMEOUT: Request read/write timeout (default: 30s)
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings for the listen-event store.
//
// Environment Variables:
//   - DATABASE_PATH: Database file path (default: /data/tunegraph.duckdb)
//   - DATABASE_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DATABASE_THREADS: Query threads, 0 = runtime.NumCPU() (default: 0)
//   - DATABASE_SEED_MOCK_DATA: Seed demo listening history (default: false)
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// GraphConfig holds default thresholds for graph construction. Query
// parameters override these per request.
type GraphConfig struct {
	MinPlayCount           int     `koanf:"min_play_count"`
	MaxArtists             int     `koanf:"max_artists"`
	ProximityWindowMinutes int     `koanf:"proximity_window_minutes"`
	MinEdgeWeight          float64 `koanf:"min_edge_weight"`
}

// GenresConfig holds genre resolver settings.
//
// Provider values:
//   - "static": built-in table only (offline mode, tests)
//   - "lastfm": Last.fm-compatible artist.getTopTags endpoint
//
// Environment Variables:
//   - GENRES_PROVIDER: Resolver backend (default: static)
//   - GENRES_LASTFM_URL: API root (default: https://ws.audioscrobbler.com/2.0/)
//   - GENRES_LASTFM_API_KEY: API key (required when provider is lastfm)
//   - GENRES_MAX_TAGS: Tags kept per artist (default: 5)
//   - GENRES_CACHE_SIZE: LRU capacity (default: 10000)
//   - GENRES_CACHE_TTL: LRU entry lifetime (default: 24h)
//   - GENRES_REQUESTS_PER_SECOND: Upstream rate limit (default: 5)
type GenresConfig struct {
	Provider          string        `koanf:"provider"`
	LastfmURL         string        `koanf:"lastfm_url"`
	LastfmAPIKey      string        `koanf:"lastfm_api_key"`
	MaxTags           int           `koanf:"max_tags"`
	CacheSize         int           `koanf:"cache_size"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// APIConfig holds rate limiting and CORS settings for the HTTP layer.
type APIConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	MaxPageSize     int           `koanf:"max_page_size"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for inconsistencies that would
// surface as confusing runtime failures later.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Graph.MinPlayCount < 1 {
		return fmt.Errorf("graph.min_play_count must be >= 1, got %d", c.Graph.MinPlayCount)
	}
	if c.Graph.MaxArtists < 0 {
		return fmt.Errorf("graph.max_artists must be >= 0, got %d", c.Graph.MaxArtists)
	}
	if c.Graph.ProximityWindowMinutes < 1 {
		return fmt.Errorf("graph.proximity_window_minutes must be >= 1, got %d", c.Graph.ProximityWindowMinutes)
	}
	if c.Graph.MinEdgeWeight < 0 {
		return fmt.Errorf("graph.min_edge_weight must be >= 0, got %g", c.Graph.MinEdgeWeight)
	}

	switch c.Genres.Provider {
	case "static":
	case "lastfm":
		if c.Genres.LastfmURL == "" {
			return fmt.Errorf("genres.lastfm_url is required when genres.provider is lastfm")
		}
		if c.Genres.LastfmAPIKey == "" {
			return fmt.Errorf("genres.lastfm_api_key is required when genres.provider is lastfm")
		}
	default:
		return fmt.Errorf("genres.provider must be static or lastfm, got %q", c.Genres.Provider)
	}

	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be >= 1, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be > 0, got %s", c.API.RateLimitWindow)
	}

	return nil
}
