package tag

import "storefront-be/internal/apperror"

var (
	ErrUnknownContentType = apperror.Validation("unknown content type")
	ErrTaggedItemNotFound = apperror.NotFound("tagged item not found")
)
