// Package dashhttp exposes the reporting dashboard over JSON.
package dashhttp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/riohost/riohost/internal/dashboard"
	"github.com/riohost/riohost/internal/filters"
	"github.com/riohost/riohost/internal/platform/httpx"
	"github.com/riohost/riohost/internal/shared"
)

const requestTimeout = 5 * time.Second

// KPIService defines the dashboard data contract used by the handler.
type KPIService interface {
	Load(ctx context.Context, sel filters.Selection) (dashboard.KPISummary, error)
}

// Handler coordinates HTTP requests for the operations dashboard.
type Handler struct {
	logger  *slog.Logger
	service KPIService
	now     func() time.Time
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service KPIService) *Handler {
	return &Handler{logger: logger, service: service, now: time.Now}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleKPIs(w http.ResponseWriter, r *http.Request) {
	sel := h.parseSelection(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.Load(ctx, sel)
	if err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	start, end := sel.DateRange(h.now()).Strings()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"kpis":    summary,
		"display": displayFields(summary, start, end),
		"start":   start,
		"end":     end,
	})
}

// displayFields carries the pre-formatted card labels alongside the raw
// decimals. The KPI cards show compact BRL and dd/MM/yyyy dates.
func displayFields(s dashboard.KPISummary, start, end string) map[string]string {
	return map[string]string{
		"total_revenue":  shared.FormatBRLCompact(s.TotalRevenue),
		"net_revenue":    shared.FormatBRLCompact(s.NetRevenue),
		"total_expenses": shared.FormatBRLCompact(s.TotalExpenses),
		"net_profit":     shared.FormatBRLCompact(s.NetProfit),
		"period":         shared.FormatDisplayDate(start) + " - " + shared.FormatDisplayDate(end),
	}
}

// handleFilters serves the option lists the filter bar renders.
func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	periods := make([]map[string]string, 0, len(filters.PeriodLabels))
	for _, p := range filters.PeriodLabels {
		periods = append(periods, map[string]string{"code": p.Code, "label": p.Label})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"periods":   periods,
		"platforms": shared.KnownPlatforms,
	})
}

// parseSelection builds a filter selection from query parameters. Anything
// malformed falls back to the defaults; filter resolution never fails.
func (h *Handler) parseSelection(r *http.Request) filters.Selection {
	q := r.URL.Query()
	sel := filters.DefaultSelection()

	if v := q.Get("period"); v != "" {
		sel.Period = v
	}
	if v := q.Get("properties"); v != "" {
		sel.Properties = strings.Split(v, ",")
	}
	if v := q.Get("platform"); v != "" {
		sel.Platform = v
	}
	if v := q.Get("start"); v != "" {
		if d, ok := filters.ParseISODate(v); ok {
			sel.CustomStart = &d
			sel.Period = filters.PeriodCustom
		}
	}
	if v := q.Get("end"); v != "" {
		if d, ok := filters.ParseISODate(v); ok {
			sel.CustomEnd = &d
			sel.Period = filters.PeriodCustom
		}
	}
	return sel
}
