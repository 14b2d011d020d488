package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pageturn/bookshelf-api/internal/metrics"
)

// RBAC enforces role-based access control. It must run after Auth, which
// populates the caller's role set in the context. A caller whose role set
// intersects allowedRoles passes; anyone else is rejected with 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(CtxRoles).([]string)
			for _, r := range roles {
				if _, ok := allowed[r]; ok {
					return next(c)
				}
			}
			metrics.AuthRejectionsTotal.WithLabelValues("role_mismatch").Inc()
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
