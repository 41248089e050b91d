package expenses

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

// Handler wires JSON endpoints for expenses.
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

// MountRoutes registers expense routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type expenseForm struct {
	PropertyID  string   `json:"property_id" validate:"omitempty,uuid4"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount" validate:"required,gte=0"`
	Category    string   `json:"category"`
	ExpenseDate string   `json:"expense_date" validate:"required,datetime=2006-01-02"`
}

func (f expenseForm) toModel() Expense {
	return Expense{
		PropertyID:  f.PropertyID,
		Description: f.Description,
		Amount:      f.Amount,
		Category:    f.Category,
		ExpenseDate: f.ExpenseDate,
	}
}

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

	items, err := h.service.ListBetween(r.Context(), ListQuery{Start: start, End: end, PropertyIDs: propertyIDs})
	if err != nil {
		h.logger.Error("list expenses failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"expenses": items,
		"start":    start,
		"end":      end,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	expense, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form expenseForm
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
		h.logger.Error("create expense failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var form expenseForm
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
		h.logger.Error("update expense failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete expense failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
