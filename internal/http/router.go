package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"storyboard/internal/http/handlers"
	"storyboard/internal/middleware"
)

// NewRouter assembles the HTTP surface. The lookup may be nil when no GeoIP
// database is configured.
func NewRouter(app *handlers.App, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(app.Config.AllowedOrigins))
	r.Use(middleware.I18N(app.Config.DefaultLocale, lookup))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/login", app.Login)
		r.Get("/me", app.Me)
		r.Post("/logout", app.Logout)
	})

	r.Route("/v1/production", func(r chi.Router) {
		r.Post("/start", app.ProductionStart)
		r.Post("/stop", app.ProductionStop)
		r.Get("/status", app.ProductionStatus)
	})

	r.Post("/v1/scenes/{id}/regenerate", app.SceneRegenerate)

	r.Get("/v1/export/zip", app.ExportZip)

	if app.Frames != nil {
		frames := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(app.Frames.BasePath())))
		r.Get("/static/*", frames.ServeHTTP)
	}

	return r
}
