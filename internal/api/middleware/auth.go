package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskforge/internal/api/metrics"
	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

// Authenticate resolves the bearer token on each request and attaches the
// resulting Identity to the echo context. It never rejects a request itself:
// a missing header, a wrong scheme, or any verification failure simply leaves
// the request anonymous, and RequireRoles produces the single uniform
// rejection for protected routes.
func Authenticate(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			subject, roles, err := codec.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			setIdentity(c, Identity{Subject: subject, Roles: roles})
			return next(c)
		}
	}
}

// verifyResult maps the internal three-way verification failure onto a
// metric label. The distinction stays internal; the client only ever sees
// the guard's uniform rejection.
func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenTampered):
		return "tampered"
	default:
		return "malformed"
	}
}
