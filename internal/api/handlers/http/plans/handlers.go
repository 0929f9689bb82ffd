package plans

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sidewalksafe/internal/service"
)

type Handler struct {
	logger *slog.Logger
	Plans  service.PlanService
}

func NewHandler(logger *slog.Logger, plans service.PlanService) *Handler {
	return &Handler{
		logger: logger,
		Plans:  plans,
	}
}

// PlanGenerate produces a remediation plan for a stored report. The budget
// field is present only when the generated text carries one.
func (h *Handler) PlanGenerate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PlanGenerate", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		l.Warn("invalid id", slog.String("id", idStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	plan, err := h.Plans.GeneratePlan(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("plan generated", slog.Int64("hazard_id", id))
	h.writeJSON(w, http.StatusOK, plan)
}
