// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8632 {
		t.Errorf("server.port = %d, want 8632", cfg.Server.Port)
	}
	if cfg.Graph.MinPlayCount != 1 {
		t.Errorf("graph.min_play_count = %d, want 1", cfg.Graph.MinPlayCount)
	}
	if cfg.Graph.ProximityWindowMinutes != 30 {
		t.Errorf("graph.proximity_window_minutes = %d, want 30", cfg.Graph.ProximityWindowMinutes)
	}
	if cfg.Genres.Provider != "static" {
		t.Errorf("genres.provider = %q, want static", cfg.Genres.Provider)
	}
	if cfg.Genres.CacheTTL != 24*time.Hour {
		t.Errorf("genres.cache_ttl = %s, want 24h", cfg.Genres.CacheTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("GRAPH_MIN_PLAY_COUNT", "3")
	t.Setenv("GENRES_CACHE_SIZE", "500")
	t.Setenv("API_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Graph.MinPlayCount != 3 {
		t.Errorf("graph.min_play_count = %d, want 3", cfg.Graph.MinPlayCount)
	}
	if cfg.Genres.CacheSize != 500 {
		t.Errorf("genres.cache_size = %d, want 500", cfg.Genres.CacheSize)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.API.CORSOrigins, want) {
		t.Errorf("api.cors_origins = %v, want %v", cfg.API.CORSOrigins, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 7777\ngraph:\n  max_artists: 100\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("server.port = %d, want 7777 from file", cfg.Server.Port)
	}
	if cfg.Graph.MaxArtists != 100 {
		t.Errorf("graph.max_artists = %d, want 100 from file", cfg.Graph.MaxArtists)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7777\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return defaultConfig()
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 0 }, true},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"zero min play count", func(c *Config) { c.Graph.MinPlayCount = 0 }, true},
		{"negative max artists", func(c *Config) { c.Graph.MaxArtists = -1 }, true},
		{"zero proximity window", func(c *Config) { c.Graph.ProximityWindowMinutes = 0 }, true},
		{"negative edge weight", func(c *Config) { c.Graph.MinEdgeWeight = -1 }, true},
		{"unknown genre provider", func(c *Config) { c.Genres.Provider = "discogs" }, true},
		{"lastfm without api key", func(c *Config) {
			c.Genres.Provider = "lastfm"
			c.Genres.LastfmAPIKey = ""
		}, true},
		{"lastfm with api key", func(c *Config) {
			c.Genres.Provider = "lastfm"
			c.Genres.LastfmAPIKey = "key"
		}, false},
		{"zero rate limit", func(c *Config) { c.API.RateLimitReqs = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"SERVER_PORT", "server.port"},
		{"GENRES_LASTFM_API_KEY", "genres.lastfm_api_key"},
		{"GRAPH_MIN_PLAY_COUNT", "graph.min_play_count"},
		{"API_CORS_ORIGINS", ""}, // handled as a comma-separated special case
		{"PATH", ""},
		{"HOME", ""},
		{"UNRELATED_THING", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
