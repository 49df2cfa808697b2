package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	catHnd "pedido-service/internal/catalog/handler"
	"pedido-service/internal/config"
	"pedido-service/internal/middleware"
	ordHnd "pedido-service/internal/order/handler"
	"pedido-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, catalog *catHnd.Handler, order *ordHnd.Handler) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", catalog.Status)

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/upload", catalog.Upload)
			r.Get("/products", catalog.Products)
			r.Get("/search", catalog.Search)
			r.Get("/sku/{sku}", catalog.BySKU)
			r.Delete("/", catalog.Clear)
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", order.Get)
			r.Delete("/", order.Clear)
			r.Post("/rows", order.AddRow)
			r.Patch("/rows/{id}", order.UpdateRow)
			r.Delete("/rows/{id}", order.DeleteRow)
			r.Post("/rows/{id}/duplicate", order.DuplicateRow)
			r.Post("/rows/{id}/product", order.SelectProduct)
			r.Post("/export", order.ExportXLSX)
			r.Post("/export/pdf", order.ExportPDF)
		})
	})

	return r
}
