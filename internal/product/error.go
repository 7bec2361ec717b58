package product

import "storefront-be/internal/apperror"

var (
	ErrProductNotFound    = apperror.NotFound("product not found")
	ErrCollectionNotFound = apperror.Validation("collection does not exist")
	ErrInvalidPrice       = apperror.Validation("unit_price must be between 1 and 9999.99")
	ErrInvalidOrdering    = apperror.Validation("invalid ordering field")
	ErrProductProtected   = apperror.Conflict("product cannot be deleted because it is associated with an order item")
)
