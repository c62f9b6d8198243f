package analytics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drapehaus/drapehaus/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	if v := r.URL.Query().Get("day"); v != "" {
		parsed, err := time.Parse(dayFormat, v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "day must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	counts, err := h.service.Summary(r.Context(), day)
	if err != nil {
		h.logger.Error("analytics summary failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"day":        day.Format(dayFormat),
		"page_views": counts,
	})
}

func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/analytics/summary", h.Summary)
}
