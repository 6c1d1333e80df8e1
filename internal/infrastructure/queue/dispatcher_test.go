package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/core/ports"
)

// captureService records every processed event and signals on a channel so
// tests can wait without sleeping.
type captureService struct {
	mu     sync.Mutex
	events []ports.AuthEventInput
	done   chan struct{}
}

func newCaptureService() *captureService {
	return &captureService{done: make(chan struct{}, 64)}
}

func (s *captureService) Process(_ context.Context, event ports.AuthEventInput) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func (s *captureService) wait(t *testing.T, n int) []ports.AuthEventInput {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuthEventInput, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := newCaptureService()
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(ports.AuthEventInput{Kind: "login_succeeded", Subject: "user-1", Email: "a@example.com"})
	d.Record(ports.AuthEventInput{Kind: "login_failed", Email: "b@example.com"})

	events := svc.wait(t, 2)
	kinds := map[string]bool{}
	for _, e := range events {
		kinds[e.Kind] = true
	}
	if !kinds["login_succeeded"] || !kinds["login_failed"] {
		t.Fatalf("missing events, got %v", events)
	}
}

func TestDispatcher_SameSubjectInOrder(t *testing.T) {
	svc := newCaptureService()
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// events for the same subject land on the same worker, so processing
	// order matches submission order
	for _, kind := range []string{"registered", "login_failed", "login_succeeded"} {
		d.Record(ports.AuthEventInput{Kind: kind, Subject: "user-1"})
	}

	events := svc.wait(t, 3)
	want := []string{"registered", "login_failed", "login_succeeded"}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Fatalf("event %d: expected %q, got %q", i, kind, events[i].Kind)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newCaptureService(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newCaptureService(), zerolog.Nop())

	a := ports.AuthEventInput{Subject: "user-1"}
	if d.shardIndex(a) != d.shardIndex(a) {
		t.Fatal("shard index must be stable for the same subject")
	}

	// anonymous failures shard on email instead
	b := ports.AuthEventInput{Email: "a@example.com"}
	if d.shardIndex(b) != d.shardIndex(b) {
		t.Fatal("shard index must be stable for the same email")
	}
}
