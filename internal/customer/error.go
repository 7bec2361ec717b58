package customer

import "storefront-be/internal/apperror"

var (
	ErrCustomerNotFound  = apperror.NotFound("customer not found")
	ErrInvalidMembership = apperror.Validation("membership must be one of B, S, G")
	ErrBirthDateInFuture = apperror.Validation("birth_date cannot be in the future")
)
