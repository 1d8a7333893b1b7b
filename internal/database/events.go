// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tunegraph/tunegraph/internal/models"
)

// FetchListenEvents returns the listen events matching the query,
// ordered ascending by played_at. It implements graph.EventSource.
//
// The translation from the typed EventQuery into SQL lives here; the
// graph core never constructs engine-specific filters.
func (db *DB) FetchListenEvents(ctx context.Context, q models.EventQuery) (_ []models.ListenEvent, err error) {
	started := time.Now()
	defer func() { observeQuery("fetch_listen_events", started, err) }()

	whereClauses, args := buildEventFilter(q)
	whereClause := "1=1"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, artist_id, artist_name, COALESCE(track, ''), played_at
		FROM listen_events
		WHERE %s
		ORDER BY played_at ASC
	`, whereClause)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listen events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []models.ListenEvent
	for rows.Next() {
		var ev models.ListenEvent
		if err = rows.Scan(&ev.ID, &ev.UserID, &ev.ArtistID, &ev.ArtistName, &ev.Track, &ev.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan listen event: %w", err)
		}
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listen events: %w", err)
	}

	return events, nil
}

// buildEventFilter translates an EventQuery into parameterized WHERE
// clauses. Nil fields contribute no constraint.
func buildEventFilter(q models.EventQuery) ([]string, []interface{}) {
	var clauses []string
	var args []interface{}

	if q.UserID != nil {
		clauses = append(clauses, "user_id = ?")
		args = append(args, *q.UserID)
	}
	if q.StartDate != nil {
		clauses = append(clauses, "played_at >= ?")
		args = append(args, *q.StartDate)
	}
	if q.EndDate != nil {
		clauses = append(clauses, "played_at <= ?")
		args = append(args, *q.EndDate)
	}

	return clauses, args
}

// InsertListenEvents batch-inserts scrobbles. Events without an ID get
// a generated UUID; events without a played_at default to now.
func (db *DB) InsertListenEvents(ctx context.Context, events []models.ListenEvent) (err error) {
	if len(events) == 0 {
		return nil
	}

	started := time.Now()
	defer func() { observeQuery("insert_listen_events", started, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listen_events (id, user_id, artist_id, artist_name, track, played_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, ev := range events {
		id := ev.ID
		if id == "" {
			id = uuid.NewString()
		}
		playedAt := ev.PlayedAt
		if playedAt.IsZero() {
			playedAt = time.Now().UTC()
		}
		if _, err = stmt.ExecContext(ctx, id, ev.UserID, ev.ArtistID, ev.ArtistName, ev.Track, playedAt); err != nil {
			return fmt.Errorf("insert listen event %s: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit insert transaction: %w", err)
	}
	return nil
}

// TopArtists returns per-artist play counts descending, for the artist
// listing endpoint.
func (db *DB) TopArtists(ctx context.Context, q models.EventQuery, limit, offset int) (_ []models.ArtistPlays, err error) {
	started := time.Now()
	defer func() { observeQuery("top_artists", started, err) }()

	whereClauses, args := buildEventFilter(q)
	whereClause := "1=1"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT artist_id, MAX(artist_name) AS artist_name, COUNT(*) AS play_count
		FROM listen_events
		WHERE %s
		GROUP BY artist_id
		ORDER BY play_count DESC, artist_id ASC
		LIMIT ? OFFSET ?
	`, whereClause)
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query top artists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var artists []models.ArtistPlays
	for rows.Next() {
		var a models.ArtistPlays
		if err = rows.Scan(&a.ArtistID, &a.ArtistName, &a.PlayCount); err != nil {
			return nil, fmt.Errorf("scan artist row: %w", err)
		}
		artists = append(artists, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist rows: %w", err)
	}

	return artists, nil
}
