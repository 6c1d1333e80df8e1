package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// CreateProjectInput carries the data for a new project. OwnerID comes from
// the authenticated identity, never from the request body.
type CreateProjectInput struct {
	OwnerID     string
	Name        string
	Description string
}

// ListProjectsInput scopes project listing. Non-admin callers are always
// restricted to their own projects by the service.
type ListProjectsInput struct {
	Subject string
	Roles   []string
}

// CreateEpicInput carries the data for a new epic under a project.
type CreateEpicInput struct {
	ProjectID   string
	Name        string
	Description string
}

// CreateTaskInput carries the data for a new task under an epic.
type CreateTaskInput struct {
	EpicID      string
	Title       string
	Description string
	AssigneeID  string
}

// UpdateTaskInput carries the mutable task fields. Zero values leave the
// corresponding field unchanged.
type UpdateTaskInput struct {
	TaskID      string
	Title       string
	Description string
	Status      domain.TaskStatus
}

// TrackerService defines the project/epic/task CRUD operations. All
// operations run after authentication and authorization have already been
// enforced by the transport layer.
type TrackerService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, in ListProjectsInput) ([]*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error

	CreateEpic(ctx context.Context, in CreateEpicInput) (*domain.Epic, error)
	ListEpics(ctx context.Context, projectID string) ([]*domain.Epic, error)
	DeleteEpic(ctx context.Context, id string) error

	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, epicID string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, in UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
