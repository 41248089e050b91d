package reservations

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/platform/httpx"
	"github.com/riohost/riohost/internal/shared"
)

// Handler wires JSON endpoints for reservations.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New(), now: time.Now}
}

// MountRoutes registers reservation routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Post("/{id}/status", h.changeStatus)
	r.Delete("/{id}", h.remove)
}

type reservationForm struct {
	PropertyID         string   `json:"property_id" validate:"required,uuid4"`
	Platform           string   `json:"platform"`
	ReservationCode    string   `json:"reservation_code" validate:"required"`
	CheckInDate        string   `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate       string   `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	GuestName          string   `json:"guest_name"`
	GuestPhone         string   `json:"guest_phone"`
	GuestEmail         string   `json:"guest_email" validate:"omitempty,email"`
	NumberOfGuests     *int     `json:"number_of_guests" validate:"omitempty,gte=1"`
	TotalRevenue       *float64 `json:"total_revenue" validate:"omitempty,gte=0"`
	CheckinTime        string   `json:"checkin_time"`
	CheckoutTime       string   `json:"checkout_time"`
	ReservationStatus  string   `json:"reservation_status"`
	PaymentStatus      string   `json:"payment_status"`
	CleaningAllocation string   `json:"cleaning_allocation"`
	CleanerUserID      string   `json:"cleaner_user_id" validate:"omitempty,uuid4"`
}

func (f reservationForm) toModel() Reservation {
	return Reservation{
		PropertyID:         f.PropertyID,
		Platform:           f.Platform,
		ReservationCode:    f.ReservationCode,
		CheckInDate:        f.CheckInDate,
		CheckOutDate:       f.CheckOutDate,
		GuestName:          f.GuestName,
		GuestPhone:         f.GuestPhone,
		GuestEmail:         f.GuestEmail,
		NumberOfGuests:     f.NumberOfGuests,
		TotalRevenue:       f.TotalRevenue,
		CheckinTime:        f.CheckinTime,
		CheckoutTime:       f.CheckoutTime,
		ReservationStatus:  f.ReservationStatus,
		PaymentStatus:      f.PaymentStatus,
		CleaningAllocation: f.CleaningAllocation,
		CleanerUserID:      f.CleanerUserID,
		CreatedBySource:    "api",
	}
}

// list resolves the reporting filters from the query string. Without explicit
// dates the period code decides the range, current year by default.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rng := filters.Resolve(q.Get("period"), nil, nil, h.now())
	start, end := rng.Strings()
	if v := q.Get("start"); v != "" {
		start = v
	}
	if v := q.Get("end"); v != "" {
		end = v
	}

	var propertyIDs []string
	if v := q.Get("properties"); v != "" {
		propertyIDs = strings.Split(v, ",")
	}

	items, err := h.service.ListOverlapping(r.Context(), ListQuery{
		Start:       start,
		End:         end,
		PropertyIDs: propertyIDs,
		Platform:    q.Get("platform"),
	})
	if err != nil {
		h.logger.Error("list reservations failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"reservations": items,
		"start":        start,
		"end":          end,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form reservationForm
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
		h.logger.Error("create reservation failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var form reservationForm
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
		h.logger.Error("update reservation failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusForm struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	var form statusForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.ChangeStatus(r.Context(), id, form.Status); err != nil {
		h.logger.Error("change reservation status failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete reservation failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
