package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/fashionforward/psp-router/internal/model"
)

// ErrorResponse is the uniform error envelope for domain failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// fieldError is implemented by request-validation errors raised in the
// service layer.
type fieldError interface {
	Field() string
	Message() string
}

// MapDomainError translates a routing-core error into an HTTP status and
// response body. Declines never reach here; they are results, not errors.
func MapDomainError(err error) (int, ErrorResponse) {
	if errors.Is(err, model.ErrUnknownCountry) {
		return http.StatusBadRequest, ErrorResponse{
			Error:   "unknown country",
			Details: err.Error(),
		}
	}

	if errors.Is(err, model.ErrInvalidStrategy) {
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid routing strategy",
			Details: err.Error(),
		}
	}

	var fieldErr fieldError
	if errors.As(err, &fieldErr) {
		return http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: fieldErr.Field() + ": " + fieldErr.Message(),
		}
	}

	log.Error().Err(err).Msg("unhandled routing error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

// ErrorHandler turns errors attached to the gin context into JSON responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			status, resp := MapDomainError(err)
			c.JSON(status, resp)
		}
	}
}
