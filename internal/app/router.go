package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/drapehaus/drapehaus/internal/analytics"
	"github.com/drapehaus/drapehaus/internal/auth"
	"github.com/drapehaus/drapehaus/internal/cart"
	"github.com/drapehaus/drapehaus/internal/catalog"
	"github.com/drapehaus/drapehaus/internal/settings"
	"github.com/drapehaus/drapehaus/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthService      *auth.Service
	AuthHandler      *auth.Handler
	CatalogHandler   *catalog.Handler
	CartHandler      *cart.Handler
	SettingsHandler  *settings.Handler
	AnalyticsService *analytics.Service
	AnalyticsHandler *analytics.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with Drapehaus defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	if params.AnalyticsService != nil {
		r.Use(params.AnalyticsService.TrackPageViews)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.CatalogHandler.MountRoutes(r)
	params.CartHandler.MountRoutes(r)

	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(params.AuthService.RequireAdmin)
		params.CatalogHandler.MountAdminRoutes(r)
		params.SettingsHandler.MountAdminRoutes(r)
		params.AnalyticsHandler.MountAdminRoutes(r)
		if params.JobsHandler != nil {
			r.Route("/jobs", func(r chi.Router) {
				params.JobsHandler.MountRoutes(r)
			})
		}
	})

	return r
}
