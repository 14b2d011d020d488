package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
	"github.com/pageturn/bookshelf-api/internal/core/service"
	"github.com/pageturn/bookshelf-api/internal/metrics"
)

// Context keys set by the access guard for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxPseudonym = "pseudonym"
	CtxRoles     = "roles"
)

// Auth is the access guard. It extracts the bearer token, verifies it, and
// resolves the subject's identity and role set from the credential store
// before any handler runs.
//
// All rejections are 403: this API does not use a WWW-Authenticate
// challenge flow, so a missing token and an invalid one get the same
// answer. A token whose subject no longer exists in the store is an
// internal inconsistency, not a client error.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid authorization header")
			}

			subject, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("unknown_subject").Inc()
					return echo.NewHTTPError(http.StatusInternalServerError, "identity for verified token not found")
				}
				return err
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxUsername, user.Username)
			c.Set(CtxPseudonym, user.AuthorPseudonym)
			c.Set(CtxRoles, user.Roles)

			return next(c)
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "expired"
	case errors.Is(err, service.ErrTokenSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed"
	}
}
