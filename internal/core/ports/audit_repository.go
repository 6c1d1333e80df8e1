package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// AuthEventRepository persists auth events to the telemetry collection.
type AuthEventRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
