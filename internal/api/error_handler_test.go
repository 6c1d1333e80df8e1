package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/security"
)

func TestResolveError_DomainMapping(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	log := zerolog.Nop()

	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: email must not be blank", domain.ErrInvalidArgument), http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrProjectNotFound, http.StatusNotFound},
		{domain.ErrTaskNotFound, http.StatusNotFound},
		{fmt.Errorf("some backend failure"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, _ := resolveError(tc.err, log, c)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

// newGuardedEcho wires the authenticator, the guard and the error handler the
// way the router does, with one member route and one admin-only route.
func newGuardedEcho(codec *security.TokenCodec) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.Use(middleware.Authenticate(codec))

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/member", ok, middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin))
	e.GET("/admin", ok, middleware.RequireRoles(domain.RoleAdmin))
	return e
}

func TestGuardedRoutes_UserToken(t *testing.T) {
	codec := security.NewTokenCodec("secret")
	e := newGuardedEcho(codec)

	token, err := codec.Issue("user-1", []string{domain.RoleUser}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// USER satisfies the member route
	req := httptest.NewRequest(http.MethodGet, "/member", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("member route: expected 200, got %d", rec.Code)
	}

	// but not the admin-only route
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin route: expected 403, got %d", rec.Code)
	}
}

func TestGuardedRoutes_Anonymous(t *testing.T) {
	e := newGuardedEcho(security.NewTokenCodec("secret"))

	req := httptest.NewRequest(http.MethodGet, "/member", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "authentication required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGuardedRoutes_TamperedToken(t *testing.T) {
	codec := security.NewTokenCodec("secret")
	e := newGuardedEcho(codec)

	// a token signed under a different key yields the same uniform 401 as
	// no token at all
	forged, err := security.NewTokenCodec("other").Issue("user-1", []string{domain.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
