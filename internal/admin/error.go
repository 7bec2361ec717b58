package admin

import "storefront-be/internal/apperror"

var ErrInvalidOrdering = apperror.Validation("ordering must be one of title, unit_price, inventory")
