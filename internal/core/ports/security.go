package ports

import (
	"context"
	"time"
)

// PasswordHasher provides one-way hashing and constant-time verification of
// passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way digest of plaintext. Empty input is
	// rejected with domain.ErrInvalidArgument.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. It never errors on a
	// mismatch; comparison is constant-time.
	Verify(plaintext, hash string) bool
}

// TokenCodec signs and verifies self-contained session tokens. Verification
// is a pure function of the token bytes and the immutable signing key, so
// implementations must be safe for concurrent use without locking.
type TokenCodec interface {
	// Issue mints a signed token for subject carrying the given role names,
	// valid for ttl from now. Empty subjects are rejected.
	Issue(subject string, roles []string, ttl time.Duration) (string, error)

	// Verify checks signature integrity, then expiry, then claim structure.
	// Failures are classified as domain.ErrTokenTampered,
	// domain.ErrTokenExpired, or domain.ErrTokenMalformed.
	Verify(token string) (subject string, roles []string, err error)
}

// LoginThrottle limits repeated failed logins per account.
type LoginThrottle interface {
	// Allow reports whether another attempt for email is permitted.
	Allow(ctx context.Context, email string) (bool, error)

	// RecordFailure counts one failed attempt against email.
	RecordFailure(ctx context.Context, email string) error

	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, email string) error
}
