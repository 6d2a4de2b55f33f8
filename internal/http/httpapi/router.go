package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"adcraft/internal/http/handlers"
	"adcraft/internal/middleware"
)

// Options configures cross-cutting router behavior.
type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/stats/summary", app.StatsSummary)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
	})

	r.Post("/v1/billing/webhook", app.BillingWebhook)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))

		r.Get("/v1/me", app.Me)

		r.Route("/v1/campaigns", func(r chi.Router) {
			r.Post("/", app.CampaignsCreate)
			r.Get("/", app.CampaignsList)
			r.Get("/{id}", app.CampaignsGet)
			r.Put("/{id}/status", app.CampaignsUpdateStatus)
		})

		r.Route("/v1/ads", func(r chi.Router) {
			r.Post("/", app.AdsCreate)
			r.Get("/", app.AdsList)
			r.Get("/{id}", app.AdsGet)
			r.Put("/{id}", app.AdsUpdate)
			r.Delete("/{id}", app.AdsArchive)
			r.Get("/{id}/export", app.AdsExport)
		})

		r.Route("/v1/generations", func(r chi.Router) {
			r.Post("/", app.GenerationsCreate)
			r.Get("/{job_id}", app.GenerationStatus)
			r.Get("/{job_id}/assets", app.GenerationAssets)
		})

		r.Route("/v1/uploads", func(r chi.Router) {
			r.Post("/", app.UploadsCreate)
		})

		r.Route("/v1/assets", func(r chi.Router) {
			r.Get("/", app.AssetsList)
			r.Get("/{id}/download", app.AssetsDownload)
		})

		r.Route("/v1/billing", func(r chi.Router) {
			r.Get("/status", app.BillingStatus)
			r.Post("/checkout", app.BillingCheckout)
		})
	})

	return r
}
