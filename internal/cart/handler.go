package cart

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/drapehaus/drapehaus/internal/catalog"
	"github.com/drapehaus/drapehaus/internal/platform/httpx"
	"github.com/drapehaus/drapehaus/internal/pricing"
	"github.com/drapehaus/drapehaus/internal/view"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.CreateDraft(r.Context())
	if err != nil {
		h.logger.Error("create draft failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, draft)
}

func (h *Handler) ShowDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid draft ID")
		return
	}
	draft, err := h.service.GetDraft(r.Context(), id)
	if err != nil {
		h.respondDraftError(w, err)
		return
	}
	total := draft.Total()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"draft":         draft,
		"total":         total,
		"total_display": view.Money(total),
	})
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	item, err := h.service.Preview(r.Context(), req)
	if err != nil {
		h.respondPricingError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid draft ID")
		return
	}
	var req QuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	item, err := h.service.AddItem(r.Context(), id, req)
	if err != nil {
		h.respondPricingError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid draft ID")
		return
	}
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid item ID")
		return
	}
	if err := h.service.RemoveItem(r.Context(), draftID, itemID); err != nil {
		h.respondDraftError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Reprice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid draft ID")
		return
	}
	draft, err := h.service.Reprice(r.Context(), id)
	if err != nil {
		h.respondPricingError(w, err)
		return
	}
	total := draft.Total()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"draft":         draft,
		"total":         total,
		"total_display": view.Money(total),
	})
}

// respondPricingError maps engine errors onto the API. Out-of-range
// dimensions are the customer's to fix; an invalid pricing model is a catalog
// data bug that gets logged and answered with a generic message, never
// silently defaulted.
func (h *Handler) respondPricingError(w http.ResponseWriter, err error) {
	var rangeErr *pricing.OutOfRangeError
	if errors.As(err, &rangeErr) {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Out Of Range", rangeErr.Error())
		return
	}
	var modelErr *pricing.InvalidPricingModelError
	if errors.As(err, &modelErr) {
		h.logger.Error("pricing model inconsistent", slog.Any("error", err))
		httpx.Problem(w, http.StatusConflict, "Unable To Price", "unable to price this product")
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if errors.Is(err, catalog.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
		return
	}
	h.respondDraftError(w, err)
}

func (h *Handler) respondDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "draft not found")
	case errors.Is(err, ErrMalformedDraft):
		h.logger.Error("malformed draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusConflict, "Malformed Draft", err.Error())
	default:
		h.logger.Error("draft operation failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
