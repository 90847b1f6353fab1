package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/daeseda/laundry-api/internal/application/order"
	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/pkg/validate"
	"github.com/daeseda/laundry-api/internal/transport/http/middleware"
)

// OrderHandler handles laundry order endpoints.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler { return &OrderHandler{svc: svc} }

// OrderForm returns the service categories and priced clothing items needed to
// compose an order.
func (h *OrderHandler) OrderForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.svc.GetOrderForm(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *OrderHandler) Request(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.svc.RequestOrder(r.Context(), claims.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "order withdrawn", h.svc.WithdrawOrder)
}

func (h *OrderHandler) Cash(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "order paid", h.svc.MarkPaid)
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, okMsg string,
	apply func(ctx context.Context, userID, orderID string) error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.OrderRef
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := apply(r.Context(), claims.UserID, req.OrderID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: okMsg})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orders, err := h.svc.ListMyOrders(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Notices(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	notices, err := h.svc.ListNotices(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notices)
}
