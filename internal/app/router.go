package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/riohost/riohost/internal/cleaning"
	dashhttp "github.com/riohost/riohost/internal/dashboard/http"
	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/observability"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/reservations"
	"github.com/riohost/riohost/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	PropertiesHandler   *properties.Handler
	ReservationsHandler *reservations.Handler
	ExpensesHandler     *expenses.Handler
	CleaningHandler     *cleaning.Handler
	DashboardHandler    *dashhttp.Handler
	JobHandler          *jobs.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if params.PropertiesHandler != nil {
			api.Route("/properties", params.PropertiesHandler.MountRoutes)
		}
		if params.ReservationsHandler != nil {
			api.Route("/reservations", params.ReservationsHandler.MountRoutes)
		}
		if params.ExpensesHandler != nil {
			api.Route("/expenses", params.ExpensesHandler.MountRoutes)
		}
		if params.CleaningHandler != nil {
			api.Route("/cleanings", params.CleaningHandler.MountRoutes)
		}
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(api)
		}
		if params.JobHandler != nil {
			api.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
