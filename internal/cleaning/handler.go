package cleaning

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/riohost/riohost/internal/platform/httpx"
	"github.com/riohost/riohost/internal/shared"
)

// Handler wires JSON endpoints for housekeeping management.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers cleaning routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listAssigned)
	r.Get("/available", h.listAvailable)
	r.Get("/cleaners", h.listCleaners)
	r.Get("/cleaners/{cleanerID}/schedule", h.schedule)
	r.Post("/{id}/assign", h.assign)
	r.Post("/{id}/unassign", h.unassign)
	r.Post("/{id}/toggle-status", h.toggleStatus)
	r.Post("/{id}/feedback", h.feedback)
}

func (h *Handler) listAssigned(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAssigned(r.Context(), queryFromRequest(r))
	if err != nil {
		h.logger.Error("list cleanings failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cleanings": items})
}

func (h *Handler) listAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAvailable(r.Context(), queryFromRequest(r))
	if err != nil {
		h.logger.Error("list available cleanings failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cleanings": items})
}

func (h *Handler) listCleaners(w http.ResponseWriter, r *http.Request) {
	var propertyIDs []string
	if v := r.URL.Query().Get("properties"); v != "" {
		propertyIDs = strings.Split(v, ",")
	}
	cleaners, err := h.service.Cleaners(r.Context(), propertyIDs)
	if err != nil {
		h.logger.Error("list cleaners failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cleaners": cleaners})
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	cleanerID := chi.URLParam(r, "cleanerID")
	items, err := h.service.Schedule(r.Context(), cleanerID, queryFromRequest(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cleanings": items})
}

type assignForm struct {
	CleanerID string `json:"cleaner_id" validate:"required,uuid4"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	var form assignForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Assign(r.Context(), id, form.CleanerID); err != nil {
		h.logger.Error("assign cleaning failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unassign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Unassign(r.Context(), id); err != nil {
		h.logger.Error("unassign cleaning failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, err := h.service.ToggleStatus(r.Context(), id)
	if err != nil {
		h.logger.Error("toggle cleaning status failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cleaning_status": status})
}

type feedbackForm struct {
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Notes  string `json:"notes"`
}

func (h *Handler) feedback(w http.ResponseWriter, r *http.Request) {
	var form feedbackForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.SetFeedback(r.Context(), id, form.Rating, form.Notes); err != nil {
		h.logger.Error("set cleaning feedback failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryFromRequest(r *http.Request) ListQuery {
	q := r.URL.Query()
	out := ListQuery{Start: q.Get("start"), End: q.Get("end")}
	if v := q.Get("properties"); v != "" {
		out.PropertyIDs = strings.Split(v, ",")
	}
	return out
}
