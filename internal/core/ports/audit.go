package ports

import (
	"context"
	"time"
)

// AuthEventInput is the DTO handed from the auth service to the event
// pipeline.
type AuthEventInput struct {
	Kind      string
	Subject   string
	Email     string
	Timestamp time.Time
}

// AuthEventSink accepts events for asynchronous processing. Record must
// never block the request path beyond queue capacity.
type AuthEventSink interface {
	Record(event AuthEventInput)
}

// AuthEventService processes a single auth event.
type AuthEventService interface {
	Process(ctx context.Context, event AuthEventInput) error
}
