package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pageturn/bookshelf-api/internal/api/middleware"
)

// ctxUsername extracts the subject injected by the access guard and
// fast-fails before any service call: an empty username on a guarded route
// means the middleware chain is miswired, which is a server bug, not a
// client error.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(middleware.CtxUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "missing authentication claims")
	}
	return username, nil
}
