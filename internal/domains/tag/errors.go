package tag

import "foodgram-backend/internal/shared/apperror"

var (
	ErrTagNotFound = apperror.NotFound("Not found.")

	ErrNameAlreadyExists  = apperror.FieldError("name", "Tag with this name already exists.")
	ErrColorAlreadyExists = apperror.FieldError("color", "Tag with this color already exists.")
	ErrSlugAlreadyExists  = apperror.FieldError("slug", "Tag with this slug already exists.")
)
