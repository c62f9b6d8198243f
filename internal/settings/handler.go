package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/drapehaus/drapehaus/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

type updateSettingRequest struct {
	Value float64 `json:"value" validate:"gte=0"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values, err := h.service.Values(r.Context())
	if err != nil {
		h.logger.Error("list settings failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"settings": values})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req updateSettingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if err := h.service.Update(r.Context(), key, req.Value); err != nil {
		h.logger.Error("update setting failed", slog.String("key", key), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"key": key, "value": req.Value})
}

// MountAdminRoutes wires the settings endpoints under the admin router.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/settings", h.List)
	r.Put("/settings/{key}", h.Update)
}
