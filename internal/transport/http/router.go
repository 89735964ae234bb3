package http

import (
	"net/http"

	"github.com/edustack/accounts-api/internal/application/auth"
	"github.com/edustack/accounts-api/internal/application/user"
	"github.com/edustack/accounts-api/internal/config"
	"github.com/edustack/accounts-api/internal/transport/http/handler"
	appmiddleware "github.com/edustack/accounts-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	metrics := appmiddleware.NewMetrics("accounts_api")
	r.Use(metrics.Instrument)

	userSvc := user.NewService(deps.Store)
	authSvc := auth.NewService(deps.Store, deps.Mailer)

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(userSvc, authSvc)
	pwH := handler.NewPasswordRecoveryHandler(authSvc)
	profileH := handler.NewProfileHandler(userSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/users", accountH.Signup)
		r.Post("/sessions/login", accountH.Login)
		r.Post("/password-recovery/{action}", pwH.Action)
		r.Get("/profile", profileH.Get)
		r.Put("/profile", profileH.Update)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
