// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tunegraph/tunegraph/internal/config"
	"github.com/tunegraph/tunegraph/internal/graph"
	"github.com/tunegraph/tunegraph/internal/logging"
	"github.com/tunegraph/tunegraph/internal/metrics"
	"github.com/tunegraph/tunegraph/internal/models"
	"github.com/tunegraph/tunegraph/internal/validation"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// dateLayout is the accepted format for start_date/end_date params.
const dateLayout = "2006-01-02"

// EventStore is the persistence surface the handlers need.
type EventStore interface {
	graph.EventSource
	InsertListenEvents(ctx context.Context, events []models.ListenEvent) error
	TopArtists(ctx context.Context, q models.EventQuery, limit, offset int) ([]models.ArtistPlays, error)
	Ping(ctx context.Context) error
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	store   EventStore
	builder *graph.Builder
	cfg     *config.Config
}

// NewHandler creates a handler over the store and graph builder.
func NewHandler(store EventStore, builder *graph.Builder, cfg *config.Config) *Handler {
	return &Handler{store: store, builder: builder, cfg: cfg}
}

// Health reports service and database status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		logging.Error().Err(err).Msg("Health check database ping failed")
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respondSuccess(w, httpStatus, map[string]string{
		"status":  status,
		"version": Version,
	}, 0)
}

// HealthLive is a trivial liveness probe that does not touch the
// database.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, 0)
}

// graphRequest carries the validated query parameters for Graph.
type graphRequest struct {
	UserID                 string  `validate:"omitempty,max=128"`
	StartDate              string  `validate:"omitempty,datetime=2006-01-02"`
	EndDate                string  `validate:"omitempty,datetime=2006-01-02"`
	MinPlayCount           int     `validate:"min=1"`
	MaxArtists             int     `validate:"min=0,max=5000"`
	ProximityWindowMinutes int     `validate:"min=1,max=1440"`
	MinEdgeWeight          float64 `validate:"min=0"`
}

// Graph builds and returns the artist network graph.
//
// Query parameters: user_id, start_date, end_date (YYYY-MM-DD),
// min_play_count, max_artists, proximity_window_minutes,
// min_edge_weight. Unset thresholds fall back to the configured
// defaults.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	req := graphRequest{
		UserID:                 r.URL.Query().Get("user_id"),
		StartDate:              r.URL.Query().Get("start_date"),
		EndDate:                r.URL.Query().Get("end_date"),
		MinPlayCount:           getIntParam(r, "min_play_count", h.cfg.Graph.MinPlayCount),
		MaxArtists:             getIntParam(r, "max_artists", h.cfg.Graph.MaxArtists),
		ProximityWindowMinutes: getIntParam(r, "proximity_window_minutes", h.cfg.Graph.ProximityWindowMinutes),
		MinEdgeWeight:          getFloatParam(r, "min_edge_weight", h.cfg.Graph.MinEdgeWeight),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	params := graph.Params{
		UserID:                 req.UserID,
		MinPlayCount:           req.MinPlayCount,
		MaxArtists:             req.MaxArtists,
		ProximityWindowMinutes: req.ProximityWindowMinutes,
		MinEdgeWeight:          req.MinEdgeWeight,
	}

	if req.StartDate != "" {
		start, _ := time.Parse(dateLayout, req.StartDate)
		params.StartDate = &start
	}
	if req.EndDate != "" {
		// End date is inclusive: extend to the last instant of the day.
		end, _ := time.Parse(dateLayout, req.EndDate)
		end = end.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}
	if params.StartDate != nil && params.EndDate != nil && params.StartDate.After(*params.EndDate) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must not be after end_date", nil)
		return
	}

	started := time.Now()
	result, err := h.builder.Build(r.Context(), params)
	if err != nil {
		if errors.Is(err, graph.ErrInvalidParams) {
			metrics.GraphBuildsTotal.WithLabelValues("invalid_params").Inc()
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		metrics.GraphBuildsTotal.WithLabelValues("error").Inc()
		respondError(w, http.StatusInternalServerError, "GRAPH_BUILD_FAILED", "Failed to build artist graph", err)
		return
	}

	elapsed := time.Since(started)
	metrics.GraphBuildsTotal.WithLabelValues("success").Inc()
	metrics.GraphBuildDuration.Observe(elapsed.Seconds())
	metrics.GraphNodesPerBuild.Observe(float64(result.Summary.TotalArtists))
	metrics.GraphEdgesPerBuild.Observe(float64(result.Summary.TotalConnections))

	respondSuccess(w, http.StatusOK, result, elapsed)
}

// artistsRequest carries the validated query parameters for Artists.
type artistsRequest struct {
	UserID string `validate:"omitempty,max=128"`
	Limit  int    `validate:"min=1"`
	Offset int    `validate:"min=0"`
}

// Artists returns per-artist play counts descending.
func (h *Handler) Artists(w http.ResponseWriter, r *http.Request) {
	req := artistsRequest{
		UserID: r.URL.Query().Get("user_id"),
		Limit:  getIntParam(r, "limit", 50),
		Offset: getIntParam(r, "offset", 0),
	}
	if req.Limit > h.cfg.API.MaxPageSize {
		req.Limit = h.cfg.API.MaxPageSize
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	var query models.EventQuery
	if req.UserID != "" {
		query.UserID = &req.UserID
	}

	started := time.Now()
	artists, err := h.store.TopArtists(r.Context(), query, req.Limit, req.Offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list artists", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"artists": artists,
		"total":   len(artists),
	}, time.Since(started))
}

// listenPayload is one scrobble in an ingest request.
type listenPayload struct {
	UserID     string    `json:"user_id" validate:"required,max=128"`
	ArtistID   string    `json:"artist_id" validate:"required,max=256"`
	ArtistName string    `json:"artist_name" validate:"required,max=512"`
	Track      string    `json:"track" validate:"max=512"`
	PlayedAt   time.Time `json:"played_at"`
}

// ingestRequest is the batch ingest body.
type ingestRequest struct {
	Listens []listenPayload `json:"listens" validate:"required,min=1,max=1000,dive"`
}

// IngestListens accepts a batch of scrobbles and stores them.
func (h *Handler) IngestListens(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	events := make([]models.ListenEvent, len(req.Listens))
	for i, l := range req.Listens {
		events[i] = models.ListenEvent{
			UserID:     l.UserID,
			ArtistID:   l.ArtistID,
			ArtistName: l.ArtistName,
			Track:      l.Track,
			PlayedAt:   l.PlayedAt,
		}
	}

	started := time.Now()
	if err := h.store.InsertListenEvents(r.Context(), events); err != nil {
		respondError(w, http.StatusInternalServerError, "INGEST_FAILED", "Failed to store listen events", err)
		return
	}

	logging.Debug().Int("count", len(events)).Msg("Ingested listen events")
	respondSuccess(w, http.StatusAccepted, map[string]int{"accepted": len(events)}, time.Since(started))
}
