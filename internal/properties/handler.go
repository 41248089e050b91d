package properties

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/riohost/riohost/internal/platform/httpx"
	"github.com/riohost/riohost/internal/shared"
)

// Handler wires JSON endpoints for property management.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers property routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type propertyForm struct {
	Name                string   `json:"name" validate:"required"`
	Nickname            string   `json:"nickname"`
	Address             string   `json:"address"`
	PropertyType        string   `json:"property_type" validate:"required"`
	Status              string   `json:"status"`
	AirbnbLink          string   `json:"airbnb_link" validate:"omitempty,url"`
	BookingLink         string   `json:"booking_link" validate:"omitempty,url"`
	CommissionRate      float64  `json:"commission_rate" validate:"gte=0,lte=1"`
	CleaningFee         *float64 `json:"cleaning_fee" validate:"omitempty,gte=0"`
	BaseNightlyPrice    *float64 `json:"base_nightly_price" validate:"omitempty,gte=0"`
	MaxGuests           *int     `json:"max_guests" validate:"omitempty,gte=1"`
	DefaultCheckinTime  string   `json:"default_checkin_time"`
	DefaultCheckoutTime string   `json:"default_checkout_time"`
	Notes               string   `json:"notes"`
}

func (f propertyForm) toModel() Property {
	return Property{
		Name:                f.Name,
		Nickname:            f.Nickname,
		Address:             f.Address,
		PropertyType:        f.PropertyType,
		Status:              f.Status,
		AirbnbLink:          f.AirbnbLink,
		BookingLink:         f.BookingLink,
		CommissionRate:      f.CommissionRate,
		CleaningFee:         f.CleaningFee,
		BaseNightlyPrice:    f.BaseNightlyPrice,
		MaxGuests:           f.MaxGuests,
		DefaultCheckinTime:  f.DefaultCheckinTime,
		DefaultCheckoutTime: f.DefaultCheckoutTime,
		Notes:               f.Notes,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	filters := ListFilters{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list properties failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"properties": items,
		"pagination": shared.NewPagination(page, limit, total),
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	property, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, property)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form propertyForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	created, err := h.service.Create(r.Context(), form.toModel())
	if err != nil {
		h.logger.Error("create property failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var form propertyForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Update(r.Context(), id, form.toModel()); err != nil {
		h.logger.Error("update property failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete property failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
