package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/addressbook/internal/service"
	"github.com/utafrali/addressbook/pkg/health"
	"github.com/utafrali/addressbook/pkg/middleware"
)

// NewRouter creates a chi router with all address service routes registered.
func NewRouter(
	addressService *service.AddressService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("address"))
	r.Use(middleware.PrometheusMetrics("address"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Address endpoints (gateway identity required)
	addressHandler := NewAddressHandler(addressService, logger)

	r.Route("/api/v1/address", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Identity())
		r.Use(middleware.RequestLogger(logger))

		r.Post("/", addressHandler.Create)
		r.Get("/", addressHandler.List)
		r.Get("/{addressId}", addressHandler.Get)
		r.Put("/{addressId}", addressHandler.Update)
		r.Delete("/{addressId}", addressHandler.Delete)
	})

	return r
}
