package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gmfn-backend/internal/domain/fault"
)

// writeError maps the domain error taxonomy onto HTTP status codes.
// Anything untyped is a storage/internal failure and must not leak.
func writeError(c echo.Context, err error) error {
	switch fault.KindOf(err) {
	case fault.KindNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case fault.KindForbidden:
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case fault.KindInvalidInput:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case fault.KindConflict:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case fault.KindPreconditionFailed:
		return c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
