package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mateohidalgo/landrecords-backend/api/controllers"
	"github.com/mateohidalgo/landrecords-backend/api/middleware"
	"github.com/mateohidalgo/landrecords-backend/internal/auth"
	"github.com/mateohidalgo/landrecords-backend/internal/categories"
	"github.com/mateohidalgo/landrecords-backend/internal/documents"
	"github.com/mateohidalgo/landrecords-backend/internal/profiles"
	"github.com/mateohidalgo/landrecords-backend/internal/records"
	"github.com/mateohidalgo/landrecords-backend/pkg/auth/session"
	"github.com/mateohidalgo/landrecords-backend/pkg/config"
	"github.com/mateohidalgo/landrecords-backend/pkg/logger"
	"github.com/mateohidalgo/landrecords-backend/pkg/metrics"
)

const adminRole = "admin"

// Deps bundles everything the router needs.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	ReadinessProbes map[string]controllers.Pinger

	SessionManager  *session.Manager
	AuthService     auth.Service
	RegisterService auth.RegisterService
	ProfileService  profiles.Service
	CategoryService categories.Service
	RecordService   records.Service
	DocumentService documents.Service

	PromRegistry *prometheus.Registry
}

// NewRouter wires the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.Metrics),
		middleware.SecureHeaders,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadinessProbes))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Route("/records", func(r chi.Router) {
			// Document limit plus slack for the accompanying form fields.
			r.Use(middleware.MaxBodyBytes(cfg.Upload.MaxUploadBytes() + 1<<20))

			r.Get("/", controllers.RecordsList(deps.RecordService, logg))
			r.Post("/", controllers.RecordsCreate(deps.RecordService, logg))
			r.Get("/{recordId}", controllers.RecordsDetail(deps.RecordService, logg))
			r.Patch("/{recordId}", controllers.RecordsUpdate(deps.RecordService, logg))
			r.Delete("/{recordId}", controllers.RecordsDelete(deps.RecordService, logg))
			r.Get("/{recordId}/download", controllers.DocumentDownload(deps.DocumentService, logg))
			r.Get("/{recordId}/preview", controllers.DocumentPreview(deps.DocumentService, logg))
		})

		r.Get("/categories", controllers.CategoriesList(deps.CategoryService, logg))
		r.Get("/dashboard", controllers.Dashboard(deps.RecordService, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(deps.ProfileService, logg))
			r.Put("/", controllers.ProfileUpdate(deps.ProfileService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.RequireRole(adminRole, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoriesCreate(deps.CategoryService, logg))
			r.Patch("/{categoryId}", controllers.CategoriesUpdate(deps.CategoryService, logg))
			r.Delete("/{categoryId}", controllers.CategoriesDelete(deps.CategoryService, logg))
		})
	})

	return r
}
