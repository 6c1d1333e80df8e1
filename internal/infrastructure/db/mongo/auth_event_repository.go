package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/taskforge/internal/core/domain"
)

const authEventsCollection = "auth_events"

// AuthEventRepository persists security telemetry events.
type AuthEventRepository struct {
	coll *mongo.Collection
}

func NewAuthEventRepository(db *mongo.Database) *AuthEventRepository {
	return &AuthEventRepository{coll: db.Collection(authEventsCollection)}
}

type authEventDoc struct {
	Kind      string `bson:"kind"`
	Subject   string `bson:"subject,omitempty"`
	Email     string `bson:"email"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuthEventRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := authEventDoc{
		Kind:      event.Kind,
		Subject:   event.Subject,
		Email:     event.Email,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
