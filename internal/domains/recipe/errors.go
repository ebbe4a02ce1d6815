package recipe

import (
	"fmt"

	"foodgram-backend/internal/shared/apperror"
)

var (
	ErrRecipeNotFound     = apperror.NotFound("Not found.")
	ErrIngredientNotFound = apperror.NotFound("Not found.")

	// Create-only check on (name, text)
	ErrDuplicateRecipe = apperror.Validation("Such a recipe already exists. Change the name or description.")

	ErrTagsNotFound        = apperror.FieldError("tags", "Object does not exist.")
	ErrDuplicateIngredient = apperror.FieldError("ingredients", "Ingredients must not repeat.")

	// unique_for_author
	ErrNameAlreadyUsed = apperror.FieldError("name", "You already have a recipe with this name.")
)

// ErrUnknownTag reports a tag id that does not exist
func ErrUnknownTag(id int64) error {
	return apperror.FieldError("tags", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

// ErrInvalidImage wraps image processing failures as a field error
func ErrInvalidImage(err error) error {
	return apperror.FieldError("image", err.Error()).Wrap(err)
}
