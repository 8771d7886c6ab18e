package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Harshalkatakiya/invoice-maker/api/controllers"
	"github.com/Harshalkatakiya/invoice-maker/api/middleware"
	invoice "github.com/Harshalkatakiya/invoice-maker/internal/invoices"
	product "github.com/Harshalkatakiya/invoice-maker/internal/products"
	"github.com/Harshalkatakiya/invoice-maker/pkg/config"
	"github.com/Harshalkatakiya/invoice-maker/pkg/db"
	"github.com/Harshalkatakiya/invoice-maker/pkg/logger"
	"github.com/Harshalkatakiya/invoice-maker/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	productService product.Service,
	invoiceService invoice.Service,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.CreateInvoice(invoiceService, logg))
			r.Get("/{invoiceId}", controllers.GetInvoice(invoiceService, logg))
		})
	})

	return r
}
