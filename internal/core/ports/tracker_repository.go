package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// TrackerRepository defines persistence operations for projects, epics and
// tasks. Not-found conditions surface as the matching domain sentinel.
type TrackerRepository interface {
	InsertProject(ctx context.Context, p *domain.Project) error
	FindProject(ctx context.Context, id string) (*domain.Project, error)
	// ListProjects returns all projects when ownerID is empty, otherwise
	// only those owned by ownerID.
	ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error

	InsertEpic(ctx context.Context, e *domain.Epic) error
	FindEpic(ctx context.Context, id string) (*domain.Epic, error)
	ListEpics(ctx context.Context, projectID string) ([]*domain.Epic, error)
	DeleteEpic(ctx context.Context, id string) error

	InsertTask(ctx context.Context, t *domain.Task) error
	FindTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, epicID string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, t *domain.Task) error
	DeleteTask(ctx context.Context, id string) error
}
