package collection

import "storefront-be/internal/apperror"

var (
	ErrCollectionNotFound      = apperror.NotFound("collection not found")
	ErrFeaturedProductNotFound = apperror.Validation("featured product does not exist")
	ErrCollectionProtected     = apperror.Conflict("collection cannot be deleted because it includes one or more products")
)
