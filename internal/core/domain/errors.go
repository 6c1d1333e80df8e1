package domain

import "errors"

// Caller-facing errors. The API error handler maps each to a deterministic
// HTTP status code.
var (
	// ErrInvalidArgument marks blank or malformed input. Wrap it with the
	// offending field so the message reaches the client:
	// fmt.Errorf("%w: email must not be blank", ErrInvalidArgument).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmailTaken is returned when a registration collides with an
	// existing account. The unique index on email is the authority under
	// concurrent registrations.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password". Login must surface this exact sentinel in both cases so
	// the two are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts is returned when the login throttle trips.
	ErrTooManyAttempts = errors.New("too many login attempts")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")

	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrEpicNotFound    = errors.New("epic not found")
	ErrTaskNotFound    = errors.New("task not found")
)

// Token verification failures. These never reach the client: the request
// authenticator downgrades all three to an anonymous context and the guard
// produces a single, uniform rejection. The distinction exists for
// diagnostics and metrics only.
var (
	ErrTokenTampered  = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)
