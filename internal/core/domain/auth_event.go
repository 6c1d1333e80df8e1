package domain

import "time"

// Auth event kinds recorded by the security telemetry pipeline.
const (
	AuthEventRegistered     = "registered"
	AuthEventLoginSucceeded = "login_succeeded"
	AuthEventLoginFailed    = "login_failed"
)

// AuthEvent is a security-relevant occurrence (registration, login outcome)
// persisted asynchronously for operational visibility. Subject is empty for
// failed logins against unknown accounts.
type AuthEvent struct {
	Kind      string
	Subject   string
	Email     string
	Timestamp time.Time
}
