package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/shared/apperror"
)

// ErrorBody is the envelope for 400-class validation and conflict errors
type ErrorBody struct {
	Errors interface{} `json:"errors"`
}

// DetailBody is the envelope for auth, not-found and server errors
type DetailBody struct {
	Detail string `json:"detail"`
}

// Success writes the payload as the response body without an envelope
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses
func Errors(c *gin.Context, statusCode int, errs interface{}) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Errors: errs})
}

func Detail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, DetailBody{Detail: message})
}

func Unauthorized(c *gin.Context, message string) {
	Detail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Detail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Detail(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Detail(c, http.StatusInternalServerError, "Internal server error")
}

// FromError maps any error returned by a service to an HTTP response
func FromError(c *gin.Context, err error) {
	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		Errors(c, http.StatusBadRequest, valErrs)
		return
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		logUnexpected(c, err)
		InternalServerError(c)
		return
	}

	if appErr, ok := apperror.As(err); ok {
		switch {
		case len(appErr.Fields) > 0:
			Errors(c, appErr.HTTPStatus, appErr.Fields)
		case appErr.HTTPStatus == http.StatusBadRequest:
			Errors(c, appErr.HTTPStatus, appErr.Message)
		default:
			if appErr.HTTPStatus >= http.StatusInternalServerError {
				logUnexpected(c, err)
			}
			Detail(c, appErr.HTTPStatus, appErr.Message)
		}
		return
	}

	logUnexpected(c, err)
	InternalServerError(c)
}

func logUnexpected(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")
}
