// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

// Package database provides the DuckDB-backed listen-event store.
//
// DuckDB's columnar engine fits the workload: the graph pipeline reads
// wide time-range scans of (artist_id, played_at) pairs, and analytics
// aggregations (top artists) run over the same table.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tunegraph/tunegraph/internal/config"
	"github.com/tunegraph/tunegraph/internal/logging"
	"github.com/tunegraph/tunegraph/internal/metrics"
)

// DB wraps the DuckDB connection and provides data access methods.
// Safe for concurrent reads; DuckDB serializes writes internally.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New creates a new database connection and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists so first startup does not fail
	// with "No such file or directory". 0750 per gosec G301.
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	// Disable extension auto-install/auto-load to prevent hangs in
	// restricted network environments; nothing here needs extensions.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}

	// DuckDB works best with a small pool; a single writer connection
	// avoids write-write conflicts on ingest.
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)

	if err := db.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", numThreads).Msg("Database initialized")
	return db, nil
}

// initSchema creates the listen_events table and indexes if missing.
func (db *DB) initSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS listen_events (
			id          UUID PRIMARY KEY,
			user_id     VARCHAR NOT NULL,
			artist_id   VARCHAR NOT NULL,
			artist_name VARCHAR NOT NULL,
			track       VARCHAR,
			played_at   TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_listen_events_user_time
			ON listen_events (user_id, played_at);
		CREATE INDEX IF NOT EXISTS idx_listen_events_artist
			ON listen_events (artist_id);
	`
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// observeQuery records query duration and errors for an operation.
func observeQuery(operation string, started time.Time, err error) {
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}
