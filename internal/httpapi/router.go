package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/PabloPavan/snipmark_api/internal/telemetry"
)

type App struct {
	ServiceName    string
	IdentityHeader string
	SearchLimiter  RateLimiter

	Health   *HealthHandler
	Public   *PublicHandler
	Personal *PersonalHandler
}

func NewRouter(app *App) http.Handler {
	name := app.ServiceName
	if name == "" {
		name = "snipmark-api"
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.ChiTraceMiddleware(name))
	r.Use(telemetry.ChiMetricsMiddleware)
	r.Use(telemetry.ChiLogMiddleware(name))
	r.Use(GatewayIdentity(app.IdentityHeader))

	r.Get("/health", app.Health.Get)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	searchLimit := RateLimit(app.SearchLimiter, "search")

	r.Route("/v1", func(r chi.Router) {
		r.Route("/public", func(r chi.Router) {
			r.With(searchLimit).Get("/snippets", app.Public.Search)
			r.Get("/snippets/tagged/{tag}", app.Public.Tagged)
			r.Get("/snippets/{id}", app.Public.Get)
			r.Get("/tags", app.Public.Tags)
		})

		r.Route("/personal/users/{userID}", func(r chi.Router) {
			r.Use(RequireOwner)

			r.With(searchLimit).Get("/snippets", app.Personal.Search)
			r.Post("/snippets", app.Personal.Create)
			r.Get("/snippets/export", app.Personal.Export)
			r.Get("/snippets/tags", app.Personal.Tags)
			r.Get("/snippets/{id}", app.Personal.Get)
			r.Get("/used-tags", app.Personal.UsedTags)
			r.Get("/feed", app.Personal.Feed)
			r.Get("/pinned", app.Personal.Pinned)
		})
	})
	return r
}
