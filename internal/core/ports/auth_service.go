package ports

import (
	"context"
	"time"
)

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Subject   string
	Token     string
	ExpiresIn time.Duration
	Roles     []string
}

// AuthService orchestrates registration and login.
type AuthService interface {
	// Register creates a new account and immediately authenticates it.
	// roleNames may be empty; the standard role is assigned by default.
	Register(ctx context.Context, name, email, password string, roleNames []string) (*AuthResult, error)

	// Login verifies credentials and mints a session token. Unknown
	// accounts and wrong passwords both fail with
	// domain.ErrInvalidCredentials, indistinguishably.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
