// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package models

import "time"

// ListenEvent is a single play of a track by a user.
//
// Events are owned by the event store and treated as read-only by the
// graph pipeline. Artist identity is assumed to be resolved upstream;
// the graph core does not deduplicate naming variants.
type ListenEvent struct {
	// ID is the unique event identifier (UUID).
	ID string `json:"id"`

	// UserID identifies the listener.
	UserID string `json:"user_id"`

	// ArtistID is the resolved artist identity and the join key for
	// all graph construction.
	ArtistID string `json:"artist_id"`

	// ArtistName is the display name at the time of the play.
	ArtistName string `json:"artist_name"`

	// Track is the track title, kept for UI drill-down.
	Track string `json:"track,omitempty"`

	// PlayedAt is when the play started.
	PlayedAt time.Time `json:"played_at"`
}

// ArtistPlays is a per-artist play count row for the artist listing
// endpoint.
type ArtistPlays struct {
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	PlayCount  int    `json:"play_count"`
}

// EventQuery is the typed filter passed to the event store.
//
// Nil fields mean "no constraint". The store translates this into its
// own query syntax; callers never build engine-specific filters.
type EventQuery struct {
	UserID    *string
	StartDate *time.Time
	EndDate   *time.Time
}
