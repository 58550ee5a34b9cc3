package planner

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/FACorreiaa/travelvibe-api/internal/domain/geolocation"
	"github.com/FACorreiaa/travelvibe-api/internal/domain/history"
	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

const (
	sessionName  = "travelvibe"
	sessionKeyID = "sid"

	defaultNearest = 5
	maxNearest     = 50
)

type searchRequest struct {
	Location string                      `json:"location"`
	Position *geolocation.ClientPosition `json:"position,omitempty"`
}

type hoverRequest struct {
	Name string `json:"name"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type Handler struct {
	registry *Registry
	history  history.Service
	store    sessions.Store
	logger   *slog.Logger
}

func NewHandler(registry *Registry, historySvc history.Service, store sessions.Store, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		history:  historySvc,
		store:    store,
		logger:   logger.With(slog.String("handler", "planner")),
	}
}

// RegisterRoutes mounts the planner API on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/planner/search", h.Search)
	mux.HandleFunc("POST /api/v1/planner/itinerary", h.GenerateItinerary)
	mux.HandleFunc("PUT /api/v1/planner/hover", h.Hover)
	mux.HandleFunc("GET /api/v1/planner", h.GetState)
	mux.HandleFunc("GET /api/v1/planner/map", h.GetMap)
	mux.HandleFunc("GET /api/v1/planner/nearby", h.GetNearby)
	mux.HandleFunc("GET /api/v1/planner/itinerary/links", h.GetItineraryLinks)
	mux.HandleFunc("GET /api/v1/searches/recent", h.GetRecentSearches)
}

// Search handles POST /api/v1/planner/search.
// A failed guide generation is still a 200: the error is part of the state.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, ok := h.planner(w, r)
	if !ok {
		return
	}

	// in-flight work is never cancelled; a client that goes away finds the
	// result on its next read
	ctx := context.WithoutCancel(r.Context())
	if err := p.Search(ctx, req.Location, geolocation.ClientLocator{Position: req.Position}); err != nil {
		if errors.Is(err, types.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", MsgEmptyQuery)
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.State())
}

// GenerateItinerary handles POST /api/v1/planner/itinerary.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.planner(w, r)
	if !ok {
		return
	}
	if err := p.GenerateItinerary(context.WithoutCancel(r.Context())); err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.State())
}

// Hover handles PUT /api/v1/planner/hover. An empty name clears the selection.
func (h *Handler) Hover(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, ok := h.planner(w, r)
	if !ok {
		return
	}
	p.SetHovered(req.Name)
	w.WriteHeader(http.StatusNoContent)
}

// GetState handles GET /api/v1/planner.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	p, ok := h.planner(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p.State())
}

// GetMap handles GET /api/v1/planner/map.
func (h *Handler) GetMap(w http.ResponseWriter, r *http.Request) {
	p, ok := h.planner(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": p.MapLocations()})
}

// GetNearby handles GET /api/v1/planner/nearby?k=.
func (h *Handler) GetNearby(w http.ResponseWriter, r *http.Request) {
	k, err := intParam(r, "k", defaultNearest)
	if err != nil || k <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "k must be a positive integer")
		return
	}
	if k > maxNearest {
		k = maxNearest
	}

	p, ok := h.planner(w, r)
	if !ok {
		return
	}
	locs, err := p.Nearest(k)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", geolocation.ErrUnavailable.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": locs})
}

// GetItineraryLinks handles GET /api/v1/planner/itinerary/links.
func (h *Handler) GetItineraryLinks(w http.ResponseWriter, r *http.Request) {
	p, ok := h.planner(w, r)
	if !ok {
		return
	}
	links, err := p.ItineraryLinks()
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "itinerary not found")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// GetRecentSearches handles GET /api/v1/searches/recent?limit=.
func (h *Handler) GetRecentSearches(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", history.DefaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"searches": records})
}

// planner resolves the caller's session, issuing a new session cookie when
// there is none or it cannot be decoded.
func (h *Handler) planner(w http.ResponseWriter, r *http.Request) (*Planner, bool) {
	sess, err := h.store.Get(r, sessionName)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Discarding invalid session cookie", slog.Any("error", err))
	}

	id, _ := sess.Values[sessionKeyID].(string)
	if id == "" {
		id = uuid.NewString()
		sess.Values[sessionKeyID] = id
		if err := sess.Save(r, w); err != nil {
			h.internalError(w, r, err)
			return nil, false
		}
	}
	return h.registry.Get(id), true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "Request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}
