package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/common"
)

const productSearchLimit = 50

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	items, err := s.products.Search(r.Context(), query, productSearchLimit)
	if err != nil {
		s.logger.Error("product search failed", "query", query, "error", err)
		s.writeError(w, http.StatusInternalServerError, "product search failed")
		return
	}
	if items == nil {
		items = []catalog.Entry{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	item, err := s.products.Get(r.Context(), sku)
	if errors.Is(err, common.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		s.logger.Error("get product failed", "sku", sku, "error", err)
		s.writeError(w, http.StatusInternalServerError, "get product failed")
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}
