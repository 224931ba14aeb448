// Package deck serves the swipe-deck HTTP API: unseen profiles out, swipe
// actions in.
package deck

import (
	"context"
	"encoding/json"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"swipestack/internal/database"
	"swipestack/internal/producer"
	"swipestack/internal/realtime"
)

const (
	// deckSize is the maximum number of profiles returned per request.
	deckSize = 5

	// defaultSession is used when the client does not supply a session id.
	defaultSession = "default"

	payloadCacheSize = 1024
)

// Store is the slice of the query layer the handlers need.
type Store interface {
	UnseenProfiles(ctx context.Context, sessionID string, limit int) ([]database.ProfileRow, error)
	RecordSwipe(ctx context.Context, sessionID, profileID, action string) error
	CountProfiles(ctx context.Context) (int, error)
	MaxSessionSwipes(ctx context.Context) (int, error)
}

// Handler carries the handlers' dependencies.
type Handler struct {
	store Store
	hub   *realtime.Hub

	// payloads caches parsed profile payloads by id. Profiles are immutable
	// once stored, so entries never go stale.
	payloads *lru.Cache[string, map[string]any]
}

func NewHandler(store Store, hub *realtime.Hub) (*Handler, error) {
	cache, err := lru.New[string, map[string]any](payloadCacheSize)
	if err != nil {
		return nil, err
	}
	return &Handler{store: store, hub: hub, payloads: cache}, nil
}

type profileResponse struct {
	ID       string         `json:"id"`
	Data     map[string]any `json:"data"`
	ImageURL string         `json:"image_url"`
}

type swipeRequest struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	SessionID string `json:"session_id"`
}

// GetProfiles returns up to five profiles the session has not swiped yet,
// in random order. An exhausted deck is an empty array, not an error.
func (h *Handler) GetProfiles(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		sessionID = defaultSession
	}

	rows, err := h.store.UnseenProfiles(ctx, sessionID, deckSize)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to fetch profiles")
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}

	profiles := make([]profileResponse, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, profileResponse{
			ID:       row.ID,
			Data:     h.parsePayload(row.ID, row.Data),
			ImageURL: row.ImageURL,
		})
	}

	return c.JSON(http.StatusOK, profiles)
}

// Swipe records a swipe. Repeats on the same (session, profile) pair are
// silent no-ops; the action label is stored as-is, unvalidated. The profile
// id is not checked against the store: it may already have been recycled.
func (h *Handler) Swipe(c echo.Context) error {
	ctx := c.Request().Context()

	var req swipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}
	if req.ID == "" || req.Action == "" || req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "id, action and session_id are required"})
	}

	if err := h.store.RecordSwipe(ctx, req.SessionID, req.ID, req.Action); err != nil {
		log.Error().Err(err).Str("session_id", req.SessionID).Str("profile_id", req.ID).
			Msg("failed to record swipe")
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// Stats reports the pool snapshot the replenishment policy works from.
func (h *Handler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.store.CountProfiles(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
	maxSwipes, err := h.store.MaxSessionSwipes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}

	return c.JSON(http.StatusOK, producer.Stats{
		TotalProfiles:   total,
		MaxSessionSwipe: maxSwipes,
		BufferRemaining: total - maxSwipes,
	})
}

// StatsSocket upgrades to a websocket that receives a stats push after each
// replenishment run.
func (h *Handler) StatsSocket(c echo.Context) error {
	return h.hub.Upgrade(c.Response(), c.Request())
}

// parsePayload deserializes a stored payload, going through the LRU cache.
// A payload that fails to parse is served as an empty object so one bad row
// cannot take down the whole deck.
func (h *Handler) parsePayload(id, data string) map[string]any {
	if cached, ok := h.payloads.Get(id); ok {
		return cached
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		log.Warn().Err(err).Str("profile_id", id).Msg("unparseable profile payload")
		return map[string]any{}
	}

	h.payloads.Add(id, payload)
	return payload
}
