package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/search-team-api/internal/application/auth"
	"github.com/search-team-api/internal/application/search"
	"github.com/search-team-api/internal/application/team"
	"github.com/search-team-api/internal/application/user"
	"github.com/search-team-api/internal/config"
	"github.com/search-team-api/internal/transport/http/handler"
	appmiddleware "github.com/search-team-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. ctx bounds the
// rate limiter's background cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, on endpoints that issue or redeem codes.
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		Accounts:               deps.UserRepo,
		Codes:                  deps.Codes,
		Notifier:               deps.Notifier,
		Clock:                  deps.Clock,
		ConcealUnknownAccounts: cfg.ConcealUnknownAccounts,
		ResetPasswordURL:       cfg.ResetPasswordURL,
		ConfirmEmailURL:        cfg.ConfirmEmailURL,
	})
	userSvc := user.NewService(user.ServiceDeps{UserRepo: deps.UserRepo})
	teamSvc := team.NewService(team.ServiceDeps{TeamRepo: deps.TeamRepo, UserRepo: deps.UserRepo})
	searchSvc := search.NewService(search.ServiceDeps{TeamRepo: deps.TeamRepo, UserRepo: deps.UserRepo})

	healthH := handler.NewHealthHandler(deps.Probes)
	userH := handler.NewUserHandler(userSvc)
	teamH := handler.NewTeamHandler(teamSvc)
	searchH := handler.NewSearchHandler(searchSvc)
	pwH := handler.NewPasswordResetHandler(authSvc)
	emailH := handler.NewEmailConfirmHandler(authSvc)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(sensitiveRL.Limit)
			r.Post("/password-reset/{action}", pwH.Action)
			r.Post("/email-confirmation/{action}", emailH.Action)
			r.Post("/users", userH.Register)
			r.Put("/users/{id}/password", userH.ChangePassword)
		})

		r.Get("/users", userH.List)
		r.Get("/users/{id}", userH.Get)
		r.Put("/users/{id}", userH.Update)
		r.Put("/users/{id}/role", userH.UpdateRole)

		r.Post("/teams", teamH.Create)
		r.Get("/teams", teamH.List)
		r.Get("/teams/{id}", teamH.Get)
		r.Put("/teams/{id}", teamH.Update)
		r.Delete("/teams/{id}", teamH.Delete)

		r.Post("/search/teams", searchH.Teams)
		r.Post("/search/users", searchH.Users)
	})

	return r
}
