package httpapi

import (
	"net/http"
	"strconv"

	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type checkoutRequest struct {
	CartID uuid.UUID `json:"cart_id"`
}

type paymentStatusRequest struct {
	PaymentStatus order.PaymentStatus `json:"payment_status"`
}

func viewerFrom(r *http.Request) order.Viewer {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return order.Viewer{UserID: userID, IsAdmin: utils.IsAdmin(r.Context())}
}

// Checkout turns the posted cart into an order for the caller.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	if req.CartID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "validation_error", "cart_id is required", nil)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	o, err := h.orders.Checkout(r.Context(), order.CheckoutParams{CartID: req.CartID, UserID: userID})
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/orders/"+strconv.FormatUint(uint64(o.ID), 10))
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params := order.ListParams{
		Viewer: viewerFrom(r),
		Sort:   r.URL.Query().Get("sort"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}
	if s := r.URL.Query().Get("payment_status"); s != "" {
		status := order.PaymentStatus(s)
		params.PaymentStatus = &status
	}

	res, err := h.orders.ListOrders(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	o, err := h.orders.GetOrder(r.Context(), id, viewerFrom(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var req paymentStatusRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	o, err := h.orders.UpdatePaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
