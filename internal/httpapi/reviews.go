package httpapi

import (
	"net/http"

	"storefront-be/internal/review"
	"storefront-be/internal/tag"
)

type ReviewHandler struct {
	reviews review.Service
}

func NewReviewHandler(reviews review.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	items, err := h.reviews.List(r.Context(), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	reviewID, ok := uintParam(w, r, "reviewID")
	if !ok {
		return
	}

	rv, err := h.reviews.Get(r.Context(), productID, reviewID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var req review.CreateInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	rv, err := h.reviews.Create(r.Context(), productID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	reviewID, ok := uintParam(w, r, "reviewID")
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), productID, reviewID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TagHandler exposes the tags attached to products.
type TagHandler struct {
	tags tag.Service
}

func NewTagHandler(tags tag.Service) *TagHandler {
	return &TagHandler{tags: tags}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	items, err := h.tags.TagsFor(r.Context(), tag.ContentTypeProduct, productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var req tag.TagInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	item, err := h.tags.Tag(r.Context(), tag.ContentTypeProduct, productID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	tagID, ok := uintParam(w, r, "tagID")
	if !ok {
		return
	}

	if err := h.tags.Untag(r.Context(), tag.ContentTypeProduct, productID, tagID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
