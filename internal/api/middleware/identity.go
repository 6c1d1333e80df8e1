package middleware

import "github.com/labstack/echo/v4"

// identityKey is the echo context key under which the authenticated identity
// is stored for the duration of a single request.
const identityKey = "auth.identity"

// Identity is the per-request authentication context: the token subject and
// its role names. Absence of an Identity on the request means anonymous.
type Identity struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the identity carries the given role name. Matching
// is exact and case-sensitive.
func (id Identity) HasRole(name string) bool {
	for _, r := range id.Roles {
		if r == name {
			return true
		}
	}
	return false
}

func setIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity attached by Authenticate, or false when
// the request is anonymous.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
