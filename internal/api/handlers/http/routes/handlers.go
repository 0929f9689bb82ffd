package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/service"
)

type Handler struct {
	logger *slog.Logger
	Routes service.RouteService
}

func NewHandler(logger *slog.Logger, routes service.RouteService) *Handler {
	return &Handler{
		logger: logger,
		Routes: routes,
	}
}

// RoutePlan resolves a walking route between two free-text locations and
// annotates every point with an accessibility classification. No viable
// route answers 422.
func (h *Handler) RoutePlan(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("RoutePlan", slog.String("remote", r.RemoteAddr))

	var req domain.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	l.Info("planning route", slog.String("start", req.Start), slog.String("end", req.End))

	annotated, err := h.Routes.PlanRoute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("route planned",
		slog.Int("points", len(annotated.Points)),
		slog.Int("steps", len(annotated.Steps)),
	)
	h.writeJSON(w, http.StatusOK, annotated)
}

// PlaceSuggest returns autocomplete candidates for a partial location. A
// provider failure degrades to an empty list, never an error page.
func (h *Handler) PlaceSuggest(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PlaceSuggest", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	input := r.URL.Query().Get("input")
	if input == "" {
		h.writeJSON(w, http.StatusOK, map[string]any{"suggestions": []domain.PlaceSuggestion{}})
		return
	}

	suggestions, err := h.Routes.SuggestPlaces(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

type narrationRequest struct {
	StepIndex int              `json:"step_index"`
	Step      domain.RouteStep `json:"step"`
	Reason    string           `json:"reason"`
}

// Narrate assembles the spoken form of one route step and synthesizes it.
// The response body is raw audio; quota exhaustion answers 429.
func (h *Handler) Narrate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("Narrate", slog.String("remote", r.RemoteAddr))

	var req narrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	text := service.NarrationText(req.StepIndex, req.Step, req.Reason)

	audio, err := h.Routes.Narrate(r.Context(), text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		l.Error("write audio failed", slog.Any("error", err))
	}
}
