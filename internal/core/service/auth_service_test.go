package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
	"github.com/taskforge/taskforge/internal/security"
)

type stubStore struct {
	users map[string]*domain.User // keyed by email
	roles map[string]struct{}
	seq   int
}

func newStubStore() *stubStore {
	return &stubStore{
		users: make(map[string]*domain.User),
		roles: map[string]struct{}{domain.RoleUser: {}, domain.RoleAdmin: {}},
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := s.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := s.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	s.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", s.seq)
	s.users[user.Email] = cloneUser(created)
	return created, nil
}

func (s *stubStore) RoleExists(_ context.Context, name string) (bool, error) {
	_, ok := s.roles[name]
	return ok, nil
}

type stubThrottle struct {
	allowed  bool
	failures int
	resets   int
}

func (t *stubThrottle) Allow(context.Context, string) (bool, error) { return t.allowed, nil }
func (t *stubThrottle) RecordFailure(context.Context, string) error { t.failures++; return nil }
func (t *stubThrottle) Reset(context.Context, string) error         { t.resets++; return nil }

type stubSink struct {
	events []ports.AuthEventInput
}

func (s *stubSink) Record(event ports.AuthEventInput) {
	s.events = append(s.events, event)
}

func newTestAuthService(store ports.CredentialStore, throttle ports.LoginThrottle, sink ports.AuthEventSink) *AuthService {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	codec := security.NewTokenCodec("test-secret")
	return NewAuthService(store, hasher, codec, throttle, sink, time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(store, nil, nil)

	result, err := svc.Register(context.Background(), "Jane", "jane@x.com", "secret1", nil)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Subject == "" {
		t.Fatalf("expected subject, got empty")
	}
	if len(result.Roles) != 1 || result.Roles[0] != domain.RoleUser {
		t.Fatalf("expected default roles [USER], got %v", result.Roles)
	}
	if result.ExpiresIn != time.Hour {
		t.Fatalf("unexpected ttl: %v", result.ExpiresIn)
	}

	// token must decode back to the new identity and its roles
	codec := security.NewTokenCodec("test-secret")
	subject, roles, err := codec.Verify(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if subject != result.Subject {
		t.Fatalf("expected subject %q in token, got %q", result.Subject, subject)
	}
	if len(roles) != 1 || roles[0] != domain.RoleUser {
		t.Fatalf("unexpected token roles: %v", roles)
	}

	stored := store.users["jane@x.com"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
}

func TestAuthService_Register_BlankFields(t *testing.T) {
	svc := newTestAuthService(newStubStore(), nil, nil)

	cases := []struct {
		name, email, password string
	}{
		{"", "a@x.com", "pw"},
		{"Al", "", "pw"},
		{"Al", "a@x.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.name, tc.email, tc.password, nil); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("register(%q,%q,%q): expected ErrInvalidArgument, got %v", tc.name, tc.email, tc.password, err)
		}
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(store, nil, nil)

	_, err := svc.Register(context.Background(), "Al", "al@x.com", "pw", []string{"SUPERUSER"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if len(store.users) != 0 {
		t.Fatalf("nothing must be persisted on role resolution failure")
	}
}

func TestAuthService_Register_ExplicitRoles(t *testing.T) {
	svc := newTestAuthService(newStubStore(), nil, nil)

	result, err := svc.Register(context.Background(), "Root", "root@x.com", "pw", []string{domain.RoleAdmin, domain.RoleUser})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(result.Roles) != 2 || result.Roles[0] != domain.RoleAdmin || result.Roles[1] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", result.Roles)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubStore(), nil, nil)

	if _, err := svc.Register(context.Background(), "Bob", "bob@x.com", "pw", nil); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// second registration with the same email always conflicts, regardless
	// of differing name and password
	if _, err := svc.Register(context.Background(), "Robert", "bob@x.com", "other", nil); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubStore(), nil, nil)

	reg, err := svc.Register(context.Background(), "Carol", "carol@x.com", "s3cret", []string{domain.RoleAdmin, domain.RoleUser})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Subject != reg.Subject {
		t.Fatalf("login subject %q does not match registration %q", result.Subject, reg.Subject)
	}

	// embedded roles must equal the account's role set
	want := map[string]struct{}{domain.RoleAdmin: {}, domain.RoleUser: {}}
	codec := security.NewTokenCodec("test-secret")
	_, roles, err := codec.Verify(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if len(roles) != len(want) {
		t.Fatalf("unexpected roles: %v", roles)
	}
	for _, r := range roles {
		if _, ok := want[r]; !ok {
			t.Fatalf("unexpected role %q", r)
		}
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc := newTestAuthService(newStubStore(), nil, nil)

	if _, err := svc.Register(context.Background(), "Dave", "dave@x.com", "goodpass", nil); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), "dave@x.com", "badpass")
	_, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "whatever")

	// the two failure modes must be externally indistinguishable
	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure modes distinguishable: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_BlankFields(t *testing.T) {
	svc := newTestAuthService(newStubStore(), nil, nil)

	// blank-field validation runs before any credential check
	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	throttle := &stubThrottle{allowed: false}
	svc := newTestAuthService(newStubStore(), throttle, nil)

	if _, err := svc.Login(context.Background(), "dave@x.com", "pw"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleBookkeeping(t *testing.T) {
	throttle := &stubThrottle{allowed: true}
	svc := newTestAuthService(newStubStore(), throttle, nil)

	if _, err := svc.Register(context.Background(), "Eve", "eve@x.com", "pw", nil); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _ = svc.Login(context.Background(), "eve@x.com", "wrong")
	if throttle.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures)
	}

	if _, err := svc.Login(context.Background(), "eve@x.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}
}

func TestAuthService_EventsRecorded(t *testing.T) {
	sink := &stubSink{}
	svc := newTestAuthService(newStubStore(), nil, sink)

	if _, err := svc.Register(context.Background(), "Frank", "frank@x.com", "pw", nil); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, _ = svc.Login(context.Background(), "frank@x.com", "wrong")
	if _, err := svc.Login(context.Background(), "frank@x.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if len(sink.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(sink.events))
	}
	kinds := []string{domain.AuthEventRegistered, domain.AuthEventLoginFailed, domain.AuthEventLoginSucceeded}
	for i, want := range kinds {
		if sink.events[i].Kind != want {
			t.Fatalf("event %d: expected %s, got %s", i, want, sink.events[i].Kind)
		}
	}
}
