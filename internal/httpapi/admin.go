package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	"storefront-be/internal/admin"
	"storefront-be/internal/customer"
	"storefront-be/internal/product"

	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	admin     admin.Service
	products  product.Service
	customers customer.Service
}

func NewAdminHandler(a admin.Service, products product.Service, customers customer.Service) *AdminHandler {
	return &AdminHandler{admin: a, products: products, customers: customers}
}

type priceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type membershipRequest struct {
	Membership customer.Membership `json:"membership"`
}

func productListParams(w http.ResponseWriter, r *http.Request) (admin.ProductListParams, bool) {
	q := r.URL.Query()
	params := admin.ProductListParams{
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
		Page:     queryInt(r, "page"),
		LowStock: q.Get("inventory") == "<10",
	}

	var ok bool
	params.CollectionID, ok = queryUint(w, r, "collection_id")
	return params, ok
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, ok := productListParams(w, r)
	if !ok {
		return
	}

	page, err := h.admin.ListProducts(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *AdminHandler) UpdateProductPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var req priceRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	p, err := h.products.UpdatePrice(r.Context(), id, req.UnitPrice)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ExportProducts renders the workbook into memory first so a failure can
// still be reported as JSON.
func (h *AdminHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	params, ok := productListParams(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.admin.ExportProducts(r.Context(), params, &buf); err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := h.admin.ListCustomers(r.Context(), admin.CustomerListParams{
		Search: r.URL.Query().Get("search"),
		Page:   queryInt(r, "page"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *AdminHandler) SetMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var req membershipRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	c, err := h.customers.SetMembership(r.Context(), id, req.Membership)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
