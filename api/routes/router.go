package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmcalloway/insuquote-backend/api/controllers"
	"github.com/jmcalloway/insuquote-backend/api/middleware"
	"github.com/jmcalloway/insuquote-backend/internal/auth"
	"github.com/jmcalloway/insuquote-backend/internal/dashboard"
	"github.com/jmcalloway/insuquote-backend/internal/documents"
	"github.com/jmcalloway/insuquote-backend/internal/notifications"
	"github.com/jmcalloway/insuquote-backend/internal/quotes"
	"github.com/jmcalloway/insuquote-backend/internal/rebates"
	"github.com/jmcalloway/insuquote-backend/internal/settings"
	"github.com/jmcalloway/insuquote-backend/pkg/auth/session"
	"github.com/jmcalloway/insuquote-backend/pkg/config"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
	"github.com/jmcalloway/insuquote-backend/pkg/metrics"
	"github.com/jmcalloway/insuquote-backend/pkg/redis"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics
	Probes  controllers.ReadinessProbes

	Sessions session.AccessSessionChecker

	AuthService     auth.Service
	RegisterService auth.RegisterService

	Quotes        quotes.Service
	Dashboard     dashboard.Service
	Documents     documents.Service
	Rebates       rebates.Service
	Settings      settings.Service
	Notifications notifications.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Probes, logg))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", controllers.QuoteCreate(deps.Quotes, deps.Dashboard, logg))
			r.Get("/", controllers.QuoteList(deps.Quotes, logg))
			r.Get("/stats", controllers.DashboardStats(deps.Dashboard, logg))
			r.Get("/{quoteID}", controllers.QuoteGet(deps.Quotes, logg))
			r.Patch("/{quoteID}", controllers.QuoteUpdate(deps.Quotes, deps.Dashboard, logg))
			r.Patch("/{quoteID}/status", controllers.QuoteUpdateStatus(deps.Quotes, deps.Dashboard, logg))
			r.Delete("/{quoteID}", controllers.QuoteDelete(deps.Quotes, deps.Dashboard, logg))
		})

		r.Get("/dashboard", controllers.DashboardStats(deps.Dashboard, logg))

		r.Route("/documents", func(r chi.Router) {
			r.Route("/groups", func(r chi.Router) {
				r.Post("/", controllers.DocumentGroupCreate(deps.Documents, logg))
				r.Get("/", controllers.DocumentGroupList(deps.Documents, logg))
				r.Delete("/{groupID}", controllers.DocumentGroupDelete(deps.Documents, logg))
			})
			r.Route("/files", func(r chi.Router) {
				r.Post("/", controllers.DocumentUpload(deps.Documents, cfg.Documents, logg))
				r.Get("/", controllers.DocumentList(deps.Documents, logg))
				r.Patch("/{fileID}/group", controllers.DocumentMoveToGroup(deps.Documents, logg))
				r.Delete("/{fileID}", controllers.DocumentDelete(deps.Documents, logg))
			})
		})

		r.Route("/rebates", func(r chi.Router) {
			r.Get("/catalog", controllers.RebateSearch(deps.Rebates, logg))
			r.Post("/toggle", controllers.RebateToggle(deps.Rebates, logg))
			r.Route("/saved", func(r chi.Router) {
				r.Get("/", controllers.RebateListSaved(deps.Rebates, logg))
				r.Post("/", controllers.RebateSave(deps.Rebates, logg))
				r.Delete("/{rebateID}", controllers.RebateRemove(deps.Rebates, logg))
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsGet(deps.Settings, logg))
			r.Put("/", controllers.SettingsUpdate(deps.Settings, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationList(deps.Notifications, logg))
			r.Post("/{notificationID}/read", controllers.NotificationMarkRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.NotificationMarkAllRead(deps.Notifications, logg))
		})
	})

	return r
}
