package collection

import "foodgram-backend/internal/shared/apperror"

var (
	ErrAlreadyInFavorites = apperror.AlreadyExists("Recipe is already in favorites.")
	ErrAlreadyInCart      = apperror.AlreadyExists("Recipe is already in the shopping list.")

	ErrNotInFavorites = apperror.NotFound("Recipe is not in favorites.")
	ErrNotInCart      = apperror.NotFound("Recipe is not in the shopping list.")

	ErrUnknownFormat = apperror.FieldError("format", "Supported formats are txt and xlsx.")
)
