// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package genres

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tunegraph/tunegraph/internal/config"
	"github.com/tunegraph/tunegraph/internal/logging"
	"github.com/tunegraph/tunegraph/internal/metrics"
)

// maxResponseBytes caps the tag response body read to guard against a
// misbehaving upstream.
const maxResponseBytes = 1 << 20

// LastfmResolver resolves genres via a Last.fm-compatible
// artist.getTopTags endpoint.
//
// The upstream is an external dependency shared by all requests, so the
// client is wrapped with a circuit breaker (prevents hammering a dead
// API) and a rate limiter (Last.fm enforces per-key request rates).
// Every failure mode degrades to an empty tag set: the resolver
// contract is that misses are not errors.
//
// DETERMINISM NOTE: the circuit breaker uses real time for its interval
// and timeout calculations. Unit tests should exercise the resolver
// through a test server rather than asserting on breaker timing.
type LastfmResolver struct {
	baseURL string
	apiKey  string
	maxTags int
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]string]
}

// NewLastfmResolver creates a resolver against cfg.LastfmURL.
//
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 1 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewLastfmResolver(cfg *config.GenresConfig) *LastfmResolver {
	cbName := "lastfm-api"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Genre API circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	maxTags := cfg.MaxTags
	if maxTags <= 0 {
		maxTags = 5
	}

	return &LastfmResolver{
		baseURL: cfg.LastfmURL,
		apiKey:  cfg.LastfmAPIKey,
		maxTags: maxTags,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cb:      cb,
	}
}

// topTagsResponse mirrors the artist.getTopTags JSON payload.
type topTagsResponse struct {
	TopTags struct {
		Tag []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"tag"`
	} `json:"toptags"`
}

// GenresFor implements Resolver. Tags come back ordered by upstream
// relevance; the first tag becomes the artist's primary genre.
func (r *LastfmResolver) GenresFor(ctx context.Context, artist string) []string {
	tags, err := r.cb.Execute(func() ([]string, error) {
		return r.fetchTopTags(ctx, artist)
	})
	if err != nil {
		logging.Debug().Err(err).Str("artist", artist).Msg("Genre lookup failed, treating as unknown")
		return nil
	}
	return tags
}

func (r *LastfmResolver) fetchTopTags(ctx context.Context, artist string) ([]string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("method", "artist.gettoptags")
	query.Set("artist", artist)
	query.Set("api_key", r.apiKey)
	query.Set("format", "json")
	query.Set("autocorrect", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tag request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tag request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tag request: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read tag response: %w", err)
	}

	var parsed topTagsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode tag response: %w", err)
	}

	tags := make([]string, 0, r.maxTags)
	for _, tag := range parsed.TopTags.Tag {
		if tag.Name == "" {
			continue
		}
		tags = append(tags, tag.Name)
		if len(tags) == r.maxTags {
			break
		}
	}
	return tags, nil
}

// breakerStateValue maps gobreaker states onto the gauge encoding
// 0 = closed, 1 = half-open, 2 = open.
func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
