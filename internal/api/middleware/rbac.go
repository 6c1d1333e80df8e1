package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskforge/internal/api/metrics"
	"github.com/taskforge/taskforge/internal/core/domain"
)

// RequireRoles guards a route with a required-role set. An empty set means
// "any authenticated identity". Anonymous requests are rejected before any
// role comparison; authenticated requests whose roles do not intersect the
// required set are rejected as forbidden. Public routes simply carry no
// guard.
func RequireRoles(required ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(required))
	for _, r := range required {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				metrics.AuthzDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrUnauthenticated
			}

			if len(allowed) > 0 && !intersects(id.Roles, allowed) {
				metrics.AuthzDecisionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}

func intersects(roles []string, allowed map[string]struct{}) bool {
	for _, r := range roles {
		if _, ok := allowed[r]; ok {
			return true
		}
	}
	return false
}
