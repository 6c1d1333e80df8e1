package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/taskforge/internal/core/domain"
)

const (
	projectsCollection = "projects"
	epicsCollection    = "epics"
	tasksCollection    = "tasks"
)

// TrackerRepository implements ports.TrackerRepository on MongoDB.
type TrackerRepository struct {
	projects *mongo.Collection
	epics    *mongo.Collection
	tasks    *mongo.Collection
}

func NewTrackerRepository(db *mongo.Database) *TrackerRepository {
	return &TrackerRepository{
		projects: db.Collection(projectsCollection),
		epics:    db.Collection(epicsCollection),
		tasks:    db.Collection(tasksCollection),
	}
}

type projectDoc struct {
	ID          string `bson:"_id"`
	OwnerID     string `bson:"owner_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

type epicDoc struct {
	ID          string `bson:"_id"`
	ProjectID   string `bson:"project_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

type taskDoc struct {
	ID          string `bson:"_id"`
	EpicID      string `bson:"epic_id"`
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`
	Status      string `bson:"status"`
	AssigneeID  string `bson:"assignee_id,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

// --- Projects ---

func (r *TrackerRepository) InsertProject(ctx context.Context, p *domain.Project) error {
	doc := projectDoc{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}
	if _, err := r.projects.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *TrackerRepository) FindProject(ctx context.Context, id string) (*domain.Project, error) {
	var doc projectDoc
	if err := r.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return projectFromDoc(doc), nil
}

func (r *TrackerRepository) ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	cursor, err := r.projects.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Project
	for cursor.Next(ctx) {
		var doc projectDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, projectFromDoc(doc))
	}
	return out, cursor.Err()
}

func (r *TrackerRepository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// --- Epics ---

func (r *TrackerRepository) InsertEpic(ctx context.Context, e *domain.Epic) error {
	doc := epicDoc{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.Unix(),
		UpdatedAt:   e.UpdatedAt.Unix(),
	}
	if _, err := r.epics.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert epic: %w", err)
	}
	return nil
}

func (r *TrackerRepository) FindEpic(ctx context.Context, id string) (*domain.Epic, error) {
	var doc epicDoc
	if err := r.epics.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEpicNotFound
		}
		return nil, fmt.Errorf("find epic: %w", err)
	}
	return epicFromDoc(doc), nil
}

func (r *TrackerRepository) ListEpics(ctx context.Context, projectID string) ([]*domain.Epic, error) {
	cursor, err := r.epics.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("list epics: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Epic
	for cursor.Next(ctx) {
		var doc epicDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode epic: %w", err)
		}
		out = append(out, epicFromDoc(doc))
	}
	return out, cursor.Err()
}

func (r *TrackerRepository) DeleteEpic(ctx context.Context, id string) error {
	res, err := r.epics.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete epic: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEpicNotFound
	}
	return nil
}

// --- Tasks ---

func (r *TrackerRepository) InsertTask(ctx context.Context, t *domain.Task) error {
	if _, err := r.tasks.InsertOne(ctx, taskToDoc(t)); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TrackerRepository) FindTask(ctx context.Context, id string) (*domain.Task, error) {
	var doc taskDoc
	if err := r.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return taskFromDoc(doc), nil
}

func (r *TrackerRepository) ListTasks(ctx context.Context, epicID string) ([]*domain.Task, error) {
	cursor, err := r.tasks.Find(ctx, bson.M{"epic_id": epicID})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Task
	for cursor.Next(ctx) {
		var doc taskDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		out = append(out, taskFromDoc(doc))
	}
	return out, cursor.Err()
}

func (r *TrackerRepository) UpdateTask(ctx context.Context, t *domain.Task) error {
	res, err := r.tasks.ReplaceOne(ctx, bson.M{"_id": t.ID}, taskToDoc(t))
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TrackerRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// --- mapping helpers ---

func projectFromDoc(doc projectDoc) *domain.Project {
	return &domain.Project{
		ID:          doc.ID,
		OwnerID:     doc.OwnerID,
		Name:        doc.Name,
		Description: doc.Description,
		CreatedAt:   unixToTime(doc.CreatedAt),
		UpdatedAt:   unixToTime(doc.UpdatedAt),
	}
}

func epicFromDoc(doc epicDoc) *domain.Epic {
	return &domain.Epic{
		ID:          doc.ID,
		ProjectID:   doc.ProjectID,
		Name:        doc.Name,
		Description: doc.Description,
		CreatedAt:   unixToTime(doc.CreatedAt),
		UpdatedAt:   unixToTime(doc.UpdatedAt),
	}
}

func taskToDoc(t *domain.Task) taskDoc {
	return taskDoc{
		ID:          t.ID,
		EpicID:      t.EpicID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt.Unix(),
		UpdatedAt:   t.UpdatedAt.Unix(),
	}
}

func taskFromDoc(doc taskDoc) *domain.Task {
	return &domain.Task{
		ID:          doc.ID,
		EpicID:      doc.EpicID,
		Title:       doc.Title,
		Description: doc.Description,
		Status:      domain.TaskStatus(doc.Status),
		AssigneeID:  doc.AssigneeID,
		CreatedAt:   unixToTime(doc.CreatedAt),
		UpdatedAt:   unixToTime(doc.UpdatedAt),
	}
}
