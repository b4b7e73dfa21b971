package server

import (
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/salesdesk/order-intake/internal/common"
	"github.com/salesdesk/order-intake/internal/entity"
)

func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	orders, err := s.store.List()
	if err != nil {
		s.logger.Error("list orders failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "list orders failed")
		return
	}
	summaries := make([]entity.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, o.Summary())
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := s.store.Get(id)
	if errors.Is(err, common.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		s.logger.Error("get order failed", "order_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "get order failed")
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleGetOrderPDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := s.store.Get(id)
	if errors.Is(err, common.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		s.logger.Error("get order failed", "order_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "get order failed")
		return
	}

	data, err := os.ReadFile(order.PDFPath)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "PDF not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write pdf response failed", "order_id", id, "error", err)
	}
}

// handleRefresh triggers a background batch run. It acknowledges immediately:
// 202 when initiated, 409 when a run is already in flight.
func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	err := s.processor.StartBatch()
	if errors.Is(err, common.ErrBatchInProgress) {
		s.writeError(w, http.StatusConflict, "batch already in progress")
		return
	}
	if err != nil {
		s.logger.Error("start batch failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to start refresh")
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]string{"message": "Refresh initiated"})
}
