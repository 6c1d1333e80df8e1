package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

type authEventService struct {
	repo ports.AuthEventRepository
	log  zerolog.Logger
}

// NewAuthEventService returns the AuthEventService that persists security
// telemetry events. Processing errors are surfaced to the dispatcher, which
// logs them; they never propagate to request handling.
func NewAuthEventService(repo ports.AuthEventRepository, log zerolog.Logger) ports.AuthEventService {
	return &authEventService{repo: repo, log: log}
}

func (s *authEventService) Process(ctx context.Context, in ports.AuthEventInput) error {
	event := &domain.AuthEvent{
		Kind:      in.Kind,
		Subject:   in.Subject,
		Email:     in.Email,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("process auth event: %w", err)
	}

	s.log.Debug().
		Str("kind", in.Kind).
		Str("subject", in.Subject).
		Msg("auth event recorded")

	return nil
}
