package request

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/shared/apperror"
)

// ErrNotFound is returned for path ids that cannot name any row
var ErrNotFound = apperror.NotFound("Not found.")

// PathID parses a positive integer path parameter
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound
	}
	return id, nil
}

// OptionalNonNegativeInt reads an integer query parameter that may be absent.
// Returns nil when absent; a negative, malformed or out of int4 range value is a field error.
func OptionalNonNegativeInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	// Bound to int32 because the value is bound as a Postgres int
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || parsed < 0 {
		return nil, apperror.FieldError(name, "A valid non-negative integer is required.")
	}
	v := int(parsed)
	return &v, nil
}

// OptionalBool reads a 1/0/true/false query flag. Returns nil when absent.
func OptionalBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	switch raw {
	case "1", "true", "True":
		v := true
		return &v, nil
	case "0", "false", "False":
		v := false
		return &v, nil
	}
	return nil, apperror.FieldError(name, "Enter a valid boolean value.")
}
