package domain

import "time"

// Canonical role names. Role matching is exact and case-sensitive; there is
// no hierarchy between roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// DefaultRoles is assigned when a registration carries no explicit roles.
var DefaultRoles = []string{RoleUser}

// User models a registered account. The ID is allocated by the credential
// store and never changes once issued. PasswordHash is only ever compared
// through the password hasher, never by raw equality.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the given canonical role name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}
