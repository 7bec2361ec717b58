package httpapi

import (
	"net/http"
	"strconv"

	"storefront-be/internal/product"

	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func queryDecimal(w http.ResponseWriter, r *http.Request, name string) (*decimal.Decimal, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid "+name, nil)
		return nil, false
	}
	return &d, true
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := product.ListParams{
		Ordering: q.Get("ordering"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	var ok bool
	if params.CollectionID, ok = queryUint(w, r, "collection_id"); !ok {
		return
	}
	if params.PriceGTE, ok = queryDecimal(w, r, "unit_price__gte"); !ok {
		return
	}
	if params.PriceLTE, ok = queryDecimal(w, r, "unit_price__lte"); !ok {
		return
	}
	if s := q.Get("search"); s != "" {
		params.Search = &s
	}
	if raw := q.Get("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid in_stock", nil)
			return
		}
		params.InStock = &inStock
	}

	res, err := h.products.List(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req product.CreateInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	p, err := h.products.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/products/"+strconv.FormatUint(uint64(p.ID), 10))
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var req product.UpdateInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	p, err := h.products.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
