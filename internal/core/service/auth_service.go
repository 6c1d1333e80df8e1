package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// AuthService implements registration and login on top of the credential
// store, the password hasher and the token codec.
type AuthService struct {
	store    ports.CredentialStore
	hasher   ports.PasswordHasher
	codec    ports.TokenCodec
	throttle ports.LoginThrottle
	events   ports.AuthEventSink
	tokenTTL time.Duration
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. throttle and events may be nil
// when the corresponding infrastructure is disabled.
func NewAuthService(
	store ports.CredentialStore,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	throttle ports.LoginThrottle,
	events ports.AuthEventSink,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		store:    store,
		hasher:   hasher,
		codec:    codec,
		throttle: throttle,
		events:   events,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates a new account and immediately authenticates it. The
// existence check runs before any write, so nothing is persisted on failure;
// a concurrent duplicate insert is caught by the store's unique constraint.
func (s *AuthService) Register(ctx context.Context, name, email, password string, roleNames []string) (*ports.AuthResult, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name must not be blank", domain.ErrInvalidArgument)
	case email == "":
		return nil, fmt.Errorf("%w: email must not be blank", domain.ErrInvalidArgument)
	case password == "":
		return nil, fmt.Errorf("%w: password must not be blank", domain.ErrInvalidArgument)
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.store.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(created.ID, created.Roles, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.record(domain.AuthEventRegistered, created.ID, email)
	s.log.Info().Str("subject", created.ID).Str("email", email).Msg("user registered")

	return &ports.AuthResult{
		Subject:   created.ID,
		Token:     token,
		ExpiresIn: s.tokenTTL,
		Roles:     created.Roles,
	}, nil
}

// Login verifies credentials and mints a session token. A missing account
// and a wrong password both return the bare domain.ErrInvalidCredentials
// sentinel so the caller cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	switch {
	case email == "":
		return nil, fmt.Errorf("%w: email must not be blank", domain.ErrInvalidArgument)
	case password == "":
		return nil, fmt.Errorf("%w: password must not be blank", domain.ErrInvalidArgument)
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, email)
		if err != nil {
			// throttle is best-effort: a broken redis must not lock everyone out
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, "", email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.loginFailed(ctx, user.ID, email)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Roles, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}
	s.record(domain.AuthEventLoginSucceeded, user.ID, email)

	return &ports.AuthResult{
		Subject:   user.ID,
		Token:     token,
		ExpiresIn: s.tokenTTL,
		Roles:     user.Roles,
	}, nil
}

// resolveRoles validates requested role names against the catalog, falling
// back to the standard role when none are requested.
func (s *AuthService) resolveRoles(ctx context.Context, roleNames []string) ([]string, error) {
	if len(roleNames) == 0 {
		return append([]string(nil), domain.DefaultRoles...), nil
	}

	resolved := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		ok, err := s.store.RoleExists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("register: resolve role: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidArgument, name)
		}
		resolved = append(resolved, name)
	}
	return resolved, nil
}

func (s *AuthService) loginFailed(ctx context.Context, subject, email string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	s.record(domain.AuthEventLoginFailed, subject, email)
}

func (s *AuthService) record(kind, subject, email string) {
	if s.events == nil {
		return
	}
	s.events.Record(ports.AuthEventInput{
		Kind:      kind,
		Subject:   subject,
		Email:     email,
		Timestamp: time.Now().UTC(),
	})
}
