package address

import "storefront-be/internal/apperror"

var ErrAddressNotFound = apperror.NotFound("address not found")
