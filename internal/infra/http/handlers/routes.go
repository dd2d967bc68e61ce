package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/deal-sync/internal/infra/http/middleware"
)

func NewRouter(deals *DealHandler, health *HealthHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	r.Get("/deals", deals.HandleList)
	r.Get("/deals/{deal_name}", deals.HandleGet)
	r.Post("/deals", deals.HandleCreate)
	r.Post("/create-deal", deals.HandleCreate)
	r.Put("/deals", deals.HandleUpdate)
	r.Put("/update-deal", deals.HandleUpdate)

	if health != nil {
		r.Get("/health", health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}
