package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// CredentialStore persists user credentials and the role-name catalog.
type CredentialStore interface {
	// FindByEmail looks up a user by exact email match. Returns
	// domain.ErrUserNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create persists a new user and allocates its identity. A concurrent
	// insert with the same email surfaces domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// RoleExists reports whether name is present in the role catalog.
	RoleExists(ctx context.Context, name string) (bool, error)
}
