package httpapi

import (
	"net/http"

	"storefront-be/internal/collection"
)

type CollectionHandler struct {
	collections collection.Service
}

func NewCollectionHandler(collections collection.Service) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	params := collection.ListParams{Page: queryInt(r, "page"), Limit: queryInt(r, "limit")}
	if s := r.URL.Query().Get("search"); s != "" {
		params.Search = &s
	}

	items, total, err := h.collections.List(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	c, err := h.collections.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req collection.Input
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	c, err := h.collections.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var req collection.Input
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	c, err := h.collections.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.collections.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
