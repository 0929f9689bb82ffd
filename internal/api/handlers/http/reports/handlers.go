package reports

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sidewalksafe/internal/domain"
	"sidewalksafe/internal/service"
	"sidewalksafe/pkg/validator"
)

// maxImageBytes caps the multipart memory buffer for report photos.
const maxImageBytes = 10 << 20

type Handler struct {
	logger  *slog.Logger
	Hazards service.HazardService
}

func NewHandler(logger *slog.Logger, hazards service.HazardService) *Handler {
	return &Handler{
		logger:  logger,
		Hazards: hazards,
	}
}

// ReportSubmit accepts either a JSON body or a multipart form with an
// optional "image" part. Duplicates answer 409; missing or invalid fields
// answer 400.
func (h *Handler) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ReportSubmit", slog.String("remote", r.RemoteAddr))

	req, err := h.decodeSubmit(r)
	if err != nil {
		l.Warn("invalid submit body", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.Hazards.Submit(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("report submitted", slog.Int64("id", resp.Report.ID))
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) decodeSubmit(r *http.Request) (domain.SubmitReportRequest, error) {
	var req domain.SubmitReportRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			return req, err
		}
		req.Description = r.FormValue("description")
		req.Severity = domain.Severity(r.FormValue("severity"))
		req.Accessibility = domain.AccessibilityLevel(r.FormValue("accessibility"))
		req.Address = r.FormValue("address")

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return req, err
			}
			req.ImageName = header.Filename
			req.ImageBytes = data
		} else if err != http.ErrMissingFile {
			return req, err
		}
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}

// ReportList returns the full table, or the subset matching repeated
// ?status= query values.
func (h *Handler) ReportList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ReportList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	var resp domain.ListReportsResponse
	var err error

	if raw := r.URL.Query()["status"]; len(raw) > 0 {
		statuses := make([]domain.Status, 0, len(raw))
		for _, s := range raw {
			statuses = append(statuses, domain.Status(s))
		}
		resp, err = h.Hazards.FilterByStatus(r.Context(), statuses)
	} else {
		resp, err = h.Hazards.List(r.Context())
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("reports listed", slog.Int("total", resp.Total))
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ReportGet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ReportGet", slog.String("remote", r.RemoteAddr))

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	view, err := h.Hazards.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// ReportStatusUpdate moves a report to any of the three lifecycle statuses.
// Transitions are unrestricted.
func (h *Handler) ReportStatusUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ReportStatusUpdate", slog.String("remote", r.RemoteAddr))

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.Hazards.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("report status updated", slog.Int64("id", id), slog.String("status", string(req.Status)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log(r).Warn("invalid id", slog.String("id", idStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
