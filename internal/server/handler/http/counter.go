package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/merchco/counterpos/internal/apperr"
	"github.com/merchco/counterpos/internal/middleware"
	"github.com/merchco/counterpos/internal/models"
	"github.com/merchco/counterpos/internal/service"
)

// CounterService defines the interface for inventory and transaction
// operations required by the HTTP handlers.
type CounterService interface {
	// Products returns the full inventory document.
	Products(ctx context.Context) (*models.Inventory, error)
	// Sale books a sale and returns the discounted total.
	Sale(ctx context.Context, staffName string, req service.SaleRequest) (int, error)
	// Gift books a giveaway.
	Gift(ctx context.Context, staffName string, req service.GiftRequest) error
	// Return books a return and returns the refund total.
	Return(ctx context.Context, staffName string, req service.ReturnRequest) (int, error)
	// Exchange books an exchange and returns the price difference.
	Exchange(ctx context.Context, staffName string, req service.ExchangeRequest) (int, error)
	// LatestReturns returns the two most recent return blocks.
	LatestReturns(ctx context.Context) ([]models.ReturnBlock, error)
}

// CounterHandler handles the inventory and transaction endpoints.
type CounterHandler struct {
	CounterService CounterService
}

// Products handles GET /api/products: the full inventory mapping,
// product and size keys in file order.
func (h *CounterHandler) Products(w http.ResponseWriter, r *http.Request) {
	inv, err := h.CounterService.Products(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// Sale handles POST /api/sale.
func (h *CounterHandler) Sale(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.KindNotAuthenticated, "未登入"))
		return
	}
	var req service.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "invalid request"))
		return
	}
	total, err := h.CounterService.Sale(r.Context(), sess.Name, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "total": total})
}

// Gift handles POST /api/gift.
func (h *CounterHandler) Gift(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.KindNotAuthenticated, "未登入"))
		return
	}
	var req service.GiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "invalid request"))
		return
	}
	if err := h.CounterService.Gift(r.Context(), sess.Name, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

// Return handles POST /api/return.
func (h *CounterHandler) Return(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.KindNotAuthenticated, "未登入"))
		return
	}
	var req service.ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "invalid request"))
		return
	}
	total, err := h.CounterService.Return(r.Context(), sess.Name, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "total": total})
}

// Exchange handles POST /api/exchange.
func (h *CounterHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.KindNotAuthenticated, "未登入"))
		return
	}
	var req service.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "invalid request"))
		return
	}
	diff, err := h.CounterService.Exchange(r.Context(), sess.Name, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "diff": diff})
}

// RelogLatest handles GET /api/relog-latest: up to two most recent
// return blocks, an empty array when nothing was ever returned.
func (h *CounterHandler) RelogLatest(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.CounterService.LatestReturns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if blocks == nil {
		blocks = []models.ReturnBlock{}
	}
	writeJSON(w, http.StatusOK, blocks)
}
