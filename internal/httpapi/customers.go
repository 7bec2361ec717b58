package httpapi

import (
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/customer"
	"storefront-be/internal/utils"
)

type CustomerHandler struct {
	customers customer.Service
	addresses address.Service
}

func NewCustomerHandler(customers customer.Service, addresses address.Service) *CustomerHandler {
	return &CustomerHandler{customers: customers, addresses: addresses}
}

func currentUserID(r *http.Request) uint {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}

func (h *CustomerHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.Me(r.Context(), currentUserID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req customer.UpdateInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	c, err := h.customers.UpdateMe(r.Context(), currentUserID(r), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	items, err := h.addresses.List(r.Context(), currentUserID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CustomerHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req address.CreateInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	a, err := h.addresses.Create(r.Context(), currentUserID(r), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *CustomerHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.addresses.Delete(r.Context(), currentUserID(r), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
