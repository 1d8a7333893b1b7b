// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/tunegraph/tunegraph/internal/logging"
	"github.com/tunegraph/tunegraph/internal/models"
)

// seedArtists is the demo roster. IDs are stable slugs so repeated
// seeding is idempotent at the artist level.
var seedArtists = []struct {
	id   string
	name string
}{
	{"boards-of-canada", "Boards of Canada"},
	{"aphex-twin", "Aphex Twin"},
	{"four-tet", "Four Tet"},
	{"radiohead", "Radiohead"},
	{"portishead", "Portishead"},
	{"massive-attack", "Massive Attack"},
	{"bonobo", "Bonobo"},
	{"tycho", "Tycho"},
	{"nils-frahm", "Nils Frahm"},
	{"olafur-arnalds", "Olafur Arnalds"},
	{"khruangbin", "Khruangbin"},
	{"tame-impala", "Tame Impala"},
	{"king-gizzard", "King Gizzard & The Lizard Wizard"},
	{"mf-doom", "MF DOOM"},
	{"madlib", "Madlib"},
	{"j-dilla", "J Dilla"},
}

// SeedMockData inserts a deterministic demo listening history so the
// graph UI has something to show in CI and first-run setups. Listening
// sessions are generated in bursts, which gives the proximity builder
// realistic co-occurrence structure.
//
// No-op if the table already has rows.
func (db *DB) SeedMockData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM listen_events").Scan(&count); err != nil {
		return fmt.Errorf("count existing events: %w", err)
	}
	if count > 0 {
		logging.Info().Int("existing_events", count).Msg("Skipping mock data seed, table not empty")
		return nil
	}

	// Fixed seed: identical demo data on every fresh install.
	rng := rand.New(rand.NewSource(8632))
	start := time.Now().UTC().AddDate(0, 0, -30).Truncate(24 * time.Hour)

	var events []models.ListenEvent
	for day := 0; day < 30; day++ {
		sessions := 1 + rng.Intn(3)
		for s := 0; s < sessions; s++ {
			sessionStart := start.AddDate(0, 0, day).
				Add(time.Duration(8+rng.Intn(14)) * time.Hour).
				Add(time.Duration(rng.Intn(60)) * time.Minute)

			// A session sticks to a small neighborhood of the roster,
			// so related artists land inside the proximity window.
			anchor := rng.Intn(len(seedArtists))
			plays := 3 + rng.Intn(8)
			at := sessionStart
			for p := 0; p < plays; p++ {
				artist := seedArtists[(anchor+rng.Intn(4))%len(seedArtists)]
				events = append(events, models.ListenEvent{
					UserID:     "demo",
					ArtistID:   artist.id,
					ArtistName: artist.name,
					Track:      fmt.Sprintf("Track %02d", 1+rng.Intn(14)),
					PlayedAt:   at,
				})
				at = at.Add(time.Duration(3+rng.Intn(7)) * time.Minute)
			}
		}
	}

	if err := db.InsertListenEvents(ctx, events); err != nil {
		return fmt.Errorf("insert mock events: %w", err)
	}

	logging.Info().Int("events", len(events)).Msg("Seeded mock listening history")
	return nil
}
