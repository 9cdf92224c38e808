package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter assembles the API surface over the handler container.
func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(app.Logger))
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.CORS(app.Config.AllowedOrigins))
	r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/studio", func(r chi.Router) {
		r.Post("/composite", app.StudioComposite)
		r.Post("/composite-background", app.StudioCompositeBackground)
	})

	r.Route("/v1/images", func(r chi.Router) {
		r.Post("/edit", app.ImagesEdit)
		r.Post("/generate", app.ImagesGenerate)
	})

	r.Route("/v1/style", func(r chi.Router) {
		r.Post("/copy", app.StyleCopy)
		r.Post("/background", app.StyleBackground)
	})

	r.Post("/v1/products/describe", app.ProductsDescribe)

	r.Route("/v1/presets", func(r chi.Router) {
		r.Get("/", app.PresetsList)
		r.Post("/", app.PresetsAdd)
		r.Delete("/", app.PresetsRemove)
	})

	r.Route("/v1/export", func(r chi.Router) {
		r.Post("/", app.ExportRender)
		r.Post("/zip", app.ExportZip)
	})

	return r
}
