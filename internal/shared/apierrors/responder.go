package apierrors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responder maps errors to the uniform {"error": string} response.
type Responder struct {
	logger *slog.Logger
}

// NewResponder creates a responder that logs internal causes to logger.
func NewResponder(logger *slog.Logger) *Responder {
	return &Responder{logger: logger}
}

// DefaultResponder logs internal causes through the default slog logger.
var DefaultResponder = NewResponder(nil)

// Respond sends an APIError as-is.
func (r *Responder) Respond(c *gin.Context, apiErr APIError) {
	c.JSON(apiErr.Status, apiErr)
}

// RespondError converts an error to the uniform contract. Errors that are not
// APIErrors become a 500 with the cause logged and a generic message sent.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		r.Respond(c, apiErr)
		return
	}
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("unhandled error",
		slog.String("path", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String("error", err.Error()),
	)
	r.Respond(c, ErrInternal)
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, apiErr APIError) {
	DefaultResponder.Respond(c, apiErr)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// HTTPStatusFromError extracts the HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
