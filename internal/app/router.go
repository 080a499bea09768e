package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/offerkit/offerkit/internal/customers"
	"github.com/offerkit/offerkit/internal/doctemplates"
	"github.com/offerkit/offerkit/internal/observability"
	"github.com/offerkit/offerkit/internal/offers"
	"github.com/offerkit/offerkit/internal/projects"
	"github.com/offerkit/offerkit/internal/render"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Metrics          *observability.Metrics
	OffersHandler    *offers.Handler
	RenderHandler    *render.Handler
	CustomersHandler *customers.Handler
	ProjectsHandler  *projects.Handler
	TemplatesHandler *doctemplates.Handler
}

// NewRouter constructs the chi.Router with OfferKit defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/offers", func(r chi.Router) {
		params.OffersHandler.MountRoutes(r)
		if params.RenderHandler != nil {
			params.RenderHandler.MountRoutes(r)
		}
	})
	r.Route("/items", params.OffersHandler.MountItemRoutes)
	if params.CustomersHandler != nil {
		r.Route("/customers", params.CustomersHandler.MountRoutes)
	}
	if params.ProjectsHandler != nil {
		r.Route("/projects", params.ProjectsHandler.MountRoutes)
	}
	if params.TemplatesHandler != nil {
		r.Route("/templates", params.TemplatesHandler.MountRoutes)
	}

	return r
}
