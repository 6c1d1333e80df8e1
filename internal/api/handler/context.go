package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/core/domain"
)

// ctxIdentity extracts the identity attached by the Authenticate middleware.
// Guarded routes always carry one; a missing identity here means the route
// was wired without its guard, so fail closed.
func ctxIdentity(c echo.Context) (middleware.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
