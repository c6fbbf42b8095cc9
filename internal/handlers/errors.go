package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/service"
)

// httpError maps service errors to HTTP statuses. Unclassified errors are
// logged under event and reported with a generic message.
func httpError(c echo.Context, event string, err error) error {
	l := logging.FromContext(c.Request().Context())

	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidPeriod):
		l.Warn(event, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		l.Error(event, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
