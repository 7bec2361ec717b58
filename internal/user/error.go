package user

import "storefront-be/internal/apperror"

var (
	ErrEmailExists        = apperror.Conflict("email already registered")
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrInvalidCredentials = apperror.Unauthorized("invalid email or password")
)

const uniqueUsersEmail = "users_email_key"
