package ingredient

import "foodgram-backend/internal/shared/apperror"

var ErrIngredientNotFound = apperror.NotFound("Not found.")
