package api

import (
	"encoding/json"
	"f1timingapi/pkg/config"
	"f1timingapi/pkg/timing"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

const apiVersion = "1.0"

const (
	defaultFastestLapsLimit = 5
	defaultRaceControlLimit = 10
)

// Handler serves the timing snapshot over the REST routes. It never mutates
// the store except through LoadSession and Refresh.
type Handler struct {
	store *timing.Store
	cfg   config.Config
}

func NewHandler(store *timing.Store, cfg config.Config) *Handler {
	return &Handler{
		store: store,
		cfg:   cfg,
	}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.handleHome).Methods(http.MethodGet)
	// OPTIONS is answered by the CORS middleware; the route only has to match.
	r.HandleFunc("/api/session/load", h.handleLoadSession).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/positions", h.handlePositions).Methods(http.MethodGet)
	r.HandleFunc("/api/top3", h.handleTop3).Methods(http.MethodGet)
	r.HandleFunc("/api/track-status", h.handleTrackStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/fastest-laps", h.handleFastestLaps).Methods(http.MethodGet)
	r.HandleFunc("/api/pit-stops", h.handlePitStops).Methods(http.MethodGet)
	r.HandleFunc("/api/race-control", h.handleRaceControl).Methods(http.MethodGet)
	r.HandleFunc("/api/full-data", h.handleFullData).Methods(http.MethodGet)
	r.HandleFunc("/api/status", h.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/refresh", h.handleRefresh).Methods(http.MethodPost, http.MethodOptions)
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "F1 Live Timing API",
		"version": apiVersion,
		"endpoints": map[string]string{
			"/api/session/load": "POST - Load a session (year, event, session_type)",
			"/api/positions":    "GET - Get current positions",
			"/api/top3":         "GET - Get top 3 positions",
			"/api/track-status": "GET - Get track status/flags",
			"/api/fastest-laps": "GET - Get fastest laps",
			"/api/pit-stops":    "GET - Get pit stops",
			"/api/race-control": "GET - Get race control messages",
			"/api/full-data":    "GET - Get all data at once",
			"/api/status":       "GET - Get API status",
			"/api/refresh":      "POST - Refresh session data",
		},
	})
}

type loadSessionRequest struct {
	Year        *int    `json:"year"`
	Event       *string `json:"event"`
	SessionType *string `json:"session_type"`
}

func (h *Handler) handleLoadSession(w http.ResponseWriter, r *http.Request) {
	var req loadSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Missing or unreadable body means "load the default session".
		req = loadSessionRequest{}
	}

	year := h.cfg.DefaultYear
	event := h.cfg.DefaultEvent
	kind := h.cfg.DefaultSessionKind
	if req.Year != nil {
		year = *req.Year
	}
	if req.Event != nil {
		event = *req.Event
	}
	if req.SessionType != nil {
		kind = *req.SessionType
	}

	err := h.store.LoadSession(r.Context(), year, event, kind)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to load session",
		})
		return
	}

	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Session loaded: %d %s %s", year, event, kind),
		"data":    snap,
	})
}

func (h *Handler) handlePositions(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeData(w, snap.Positions, snap.LastUpdate)
}

func (h *Handler) handleTop3(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	top3 := snap.Positions
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	writeData(w, top3, snap.LastUpdate)
}

func (h *Handler) handleTrackStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeData(w, snap.TrackStatus, snap.LastUpdate)
}

func (h *Handler) handleFastestLaps(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	limit := queryLimit(r, defaultFastestLapsLimit)
	laps := snap.FastestLaps
	if len(laps) > limit {
		laps = laps[:limit]
	}
	writeData(w, laps, snap.LastUpdate)
}

func (h *Handler) handlePitStops(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeData(w, snap.PitStops, snap.LastUpdate)
}

func (h *Handler) handleRaceControl(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	limit := queryLimit(r, defaultRaceControlLimit)
	messages := snap.RaceControlMessages
	if len(messages) > limit {
		messages = messages[:limit]
	}
	writeData(w, messages, snap.LastUpdate)
}

func (h *Handler) handleFullData(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeData(w, snap, snap.LastUpdate)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"status":         "running",
		"session_loaded": h.store.SessionLoaded(),
		"last_update":    snap.LastUpdate,
		"is_live":        snap.IsLive,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := h.store.Refresh()
	if errors.Is(err, timing.ErrNoSessionLoaded) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "No session loaded",
		})
		return
	}

	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Data refreshed",
		"last_update": snap.LastUpdate,
	})
}

// queryLimit reads the limit query parameter, falling back to def when it is
// missing, unparsable or negative.
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return def
	}
	return limit
}

func writeData(w http.ResponseWriter, data interface{}, lastUpdate *string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"data":        data,
		"last_update": lastUpdate,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %s", err.Error())
	}
}
