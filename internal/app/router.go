package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawan-gold/goldcrest/internal/auth"
	"github.com/pawan-gold/goldcrest/internal/customers"
	"github.com/pawan-gold/goldcrest/internal/dashboard"
	"github.com/pawan-gold/goldcrest/internal/geo"
	"github.com/pawan-gold/goldcrest/internal/observability"
	"github.com/pawan-gold/goldcrest/internal/purposes"
	"github.com/pawan-gold/goldcrest/internal/shared"
	"github.com/pawan-gold/goldcrest/internal/staff"
	"github.com/pawan-gold/goldcrest/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	AuthHandler      *auth.Handler
	DashboardHandler *dashboard.Handler
	CustomersHandler *customers.Handler
	PurposesHandler  *purposes.Handler
	StaffHandler     *staff.Handler
	MapHandler       *geo.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router for the dashboard.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Every dashboard screen sits behind the auth gate.
	r.Group(func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/", params.DashboardHandler.Show)
		r.Route("/customers", params.CustomersHandler.MountRoutes)
		r.Route("/purposes", params.PurposesHandler.MountRoutes)
		r.Route("/staff", params.StaffHandler.MountRoutes)
		r.Route("/map", params.MapHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
