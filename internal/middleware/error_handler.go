package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"recomart/domain"
	"recomart/pkg/logger"
)

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorHandler is the echo fallback for errors that escape the handlers
// (echo.HTTPError from routing, panics recovered upstream, stray domain
// errors). Handlers normally map their own errors; this keeps the taxonomy
// consistent for everything else.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := errorBody{Message: "internal server error"}

	var httpErr *echo.HTTPError
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		} else {
			body.Message = http.StatusText(status)
		}
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		body.Message = err.Error()
	case errors.As(err, &vErr):
		status = http.StatusUnprocessableEntity
		body.Message = "validation failed"
		body.Fields = vErr.Fields
	default:
		logger.Error("unhandled error", "path", c.Path(), "error", err)
	}

	if jsonErr := c.JSON(status, body); jsonErr != nil {
		logger.Error("failed to write error response", jsonErr)
	}
}
