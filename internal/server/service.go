package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salesdesk/order-intake/internal/pipeline"
	"github.com/salesdesk/order-intake/internal/repository"
)

// Server is the REST surface over the order store, the catalog mirror, and
// the batch orchestrator.
type Server struct {
	store     repository.OrderStore
	products  repository.CatalogRepository
	processor *pipeline.Processor
	logger    *slog.Logger
}

func New(store repository.OrderStore, products repository.CatalogRepository, processor *pipeline.Processor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, products: products, processor: processor, logger: logger}
}

// Routes mounts all handlers on a chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/orders", s.handleListOrders)
	r.Post("/orders/refresh", s.handleRefresh)
	r.Get("/orders/{id}", s.handleGetOrder)
	r.Get("/orders/{id}/pdf", s.handleGetOrderPDF)
	r.Get("/products", s.handleListProducts)
	r.Get("/products/{sku}", s.handleGetProduct)
	r.Method(http.MethodGet, "/metrics", s.processor.Metrics().Handler())
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
