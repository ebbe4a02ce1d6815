package user

import "foodgram-backend/internal/shared/apperror"

var (
	ErrUserNotFound = apperror.NotFound("Not found.")

	ErrEmailAlreadyExists    = apperror.FieldError("email", "A user with that email already exists.")
	ErrUsernameAlreadyExists = apperror.FieldError("username", "A user with that username already exists.")

	ErrInvalidPassword = apperror.FieldError("current_password", "Invalid password.")
)
