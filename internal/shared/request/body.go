package request

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/shared/apperror"
)

var ErrMalformedJSON = apperror.Validation("JSON parse error.")

// BindJSON decodes the request body into dst
func BindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperror.FieldError(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+".")
		}
		return ErrMalformedJSON.Wrap(err)
	}
	return nil
}
