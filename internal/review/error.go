package review

import "storefront-be/internal/apperror"

var ErrReviewNotFound = apperror.NotFound("review not found")
