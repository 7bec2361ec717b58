package order

import "storefront-be/internal/apperror"

var (
	ErrCartNotFound         = apperror.NotFound("cart not found")
	ErrCartEmpty            = apperror.Validation("cart is empty")
	ErrCustomerNotFound     = apperror.NotFound("customer not found")
	ErrOrderNotFound        = apperror.NotFound("order not found")
	ErrInvalidPaymentStatus = apperror.Validation("payment_status must be one of P, C, F")
	ErrInvalidSort          = apperror.Validation("sort must be placed_at or -placed_at")
	ErrOrderProtected       = apperror.Conflict("order cannot be deleted because it has order items")
)
