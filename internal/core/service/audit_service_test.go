package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

type stubAuditRepo struct {
	inserted []*domain.AuthEvent
	err      error
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, event)
	return nil
}

func TestAuthEventService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuthEventService(repo, zerolog.Nop())

	now := time.Now().UTC()
	err := svc.Process(context.Background(), ports.AuthEventInput{
		Kind:      domain.AuthEventLoginSucceeded,
		Subject:   "user-1",
		Email:     "jane@example.com",
		Timestamp: now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 inserted event, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.Kind != domain.AuthEventLoginSucceeded || got.Subject != "user-1" || got.Email != "jane@example.com" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if !got.Timestamp.Equal(now) {
		t.Fatalf("expected timestamp %v, got %v", now, got.Timestamp)
	}
}

func TestAuthEventService_Process_RepoError(t *testing.T) {
	cause := errors.New("write concern failed")
	svc := NewAuthEventService(&stubAuditRepo{err: cause}, zerolog.Nop())

	err := svc.Process(context.Background(), ports.AuthEventInput{Kind: domain.AuthEventRegistered})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
