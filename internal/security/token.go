// Package security holds the leaf identity components: the password hasher
// and the session token codec. Both are pure and safe for concurrent use.
package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// rolePrefix marks role entries inside the token's authority claim. Entries
// without it (scopes, junk) are not roles and are dropped on extraction.
const rolePrefix = "ROLE_"

// sessionClaims is the wire shape of a session token payload: sub, iat, exp
// plus the role authority list.
type sessionClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 session tokens with a single
// process-wide symmetric key.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue mints a signed token for subject carrying roles, valid for ttl.
func (tc *TokenCodec) Issue(subject string, roles []string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: subject must not be blank", domain.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	claims := sessionClaims{
		Roles: Authorities(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
}

// Verify checks signature integrity first, then expiry, then claim
// structure, and returns the subject with its extracted role names.
func (tc *TokenCodec) Verify(token string) (string, []string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil {
		return "", nil, classifyTokenError(err)
	}
	if !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", nil, domain.ErrTokenMalformed
	}

	// exp is an exclusive bound: the token is already expired at the exact
	// expiry instant. No clock skew is tolerated.
	if !time.Now().UTC().Before(claims.ExpiresAt.Time) {
		return "", nil, domain.ErrTokenExpired
	}

	return claims.Subject, RoleNames(claims.Roles), nil
}

// classifyTokenError maps jwt parse failures onto the three internal
// verification failure kinds.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenTampered
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}

// Authorities converts role names into prefixed authority strings for the
// token claim. Already-prefixed entries pass through unchanged.
func Authorities(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r == "" {
			continue
		}
		if strings.HasPrefix(r, rolePrefix) {
			out = append(out, r)
			continue
		}
		out = append(out, rolePrefix+r)
	}
	return out
}

// RoleNames filters an authority list down to canonical role names. It is
// the inverse of Authorities and is applied identically at issuance and at
// verification so both sides stay symmetric.
func RoleNames(authorities []string) []string {
	names := make([]string, 0, len(authorities))
	for _, a := range authorities {
		if rest, ok := strings.CutPrefix(a, rolePrefix); ok && rest != "" {
			names = append(names, rest)
		}
	}
	return names
}
