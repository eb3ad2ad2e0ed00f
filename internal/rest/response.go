package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"recomart/domain"
)

type ResponseError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses:
// not-found to 404, validation faults to 422 with field detail, everything
// else (storage) to 500.
func writeServiceError(c echo.Context, err error) error {
	var vErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.As(err, &vErr):
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{
			Message: "validation failed",
			Fields:  vErr.Fields,
		})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
	}
}
