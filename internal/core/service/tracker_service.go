package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

// TrackerService implements the project/epic/task CRUD pass-through. It
// trusts the transport layer to have authenticated and authorized the caller
// already; only ownership scoping happens here.
type TrackerService struct {
	repo ports.TrackerRepository
	log  zerolog.Logger
}

func NewTrackerService(repo ports.TrackerRepository, log zerolog.Logger) *TrackerService {
	return &TrackerService{repo: repo, log: log}
}

func (s *TrackerService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", domain.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.InsertProject(ctx, project); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", project.ID).Str("owner_id", in.OwnerID).Msg("project created")
	return project, nil
}

func (s *TrackerService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindProject(ctx, id)
}

// ListProjects returns all projects for admins and only owned projects for
// everyone else.
func (s *TrackerService) ListProjects(ctx context.Context, in ports.ListProjectsInput) ([]*domain.Project, error) {
	ownerID := in.Subject
	for _, r := range in.Roles {
		if r == domain.RoleAdmin {
			ownerID = ""
			break
		}
	}
	return s.repo.ListProjects(ctx, ownerID)
}

func (s *TrackerService) DeleteProject(ctx context.Context, id string) error {
	return s.repo.DeleteProject(ctx, id)
}

func (s *TrackerService) CreateEpic(ctx context.Context, in ports.CreateEpicInput) (*domain.Epic, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", domain.ErrInvalidArgument)
	}
	if _, err := s.repo.FindProject(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	epic := &domain.Epic{
		ID:          uuid.NewString(),
		ProjectID:   in.ProjectID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.InsertEpic(ctx, epic); err != nil {
		return nil, err
	}
	return epic, nil
}

func (s *TrackerService) ListEpics(ctx context.Context, projectID string) ([]*domain.Epic, error) {
	return s.repo.ListEpics(ctx, projectID)
}

func (s *TrackerService) DeleteEpic(ctx context.Context, id string) error {
	return s.repo.DeleteEpic(ctx, id)
}

func (s *TrackerService) CreateTask(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title must not be blank", domain.ErrInvalidArgument)
	}
	if _, err := s.repo.FindEpic(ctx, in.EpicID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		EpicID:      in.EpicID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.TaskTodo,
		AssigneeID:  in.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.InsertTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TrackerService) ListTasks(ctx context.Context, epicID string) ([]*domain.Task, error) {
	return s.repo.ListTasks(ctx, epicID)
}

func (s *TrackerService) UpdateTask(ctx context.Context, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindTask(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, in.Status)
		}
		task.Status = in.Status
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TrackerService) DeleteTask(ctx context.Context, id string) error {
	return s.repo.DeleteTask(ctx, id)
}
