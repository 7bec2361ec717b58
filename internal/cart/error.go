package cart

import "storefront-be/internal/apperror"

var (
	ErrCartNotFound     = apperror.NotFound("cart not found")
	ErrCartItemNotFound = apperror.NotFound("cart item not found")
	ErrProductNotFound  = apperror.Validation("no product found with the given id")
)

const fkCartItemsProduct = "cart_items_product_id_fkey"
