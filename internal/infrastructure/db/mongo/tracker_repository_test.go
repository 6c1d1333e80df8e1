package mongo

import (
	"testing"
	"time"

	"github.com/taskforge/taskforge/internal/core/domain"
)

func TestTaskDocRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	task := &domain.Task{
		ID:          "task-1",
		EpicID:      "epic-1",
		Title:       "wire payment form",
		Description: "stripe elements",
		Status:      domain.TaskInProgress,
		AssigneeID:  "user-1",
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
	}

	got := taskFromDoc(taskToDoc(task))
	if got.ID != task.ID || got.EpicID != task.EpicID || got.Title != task.Title {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if got.Status != domain.TaskInProgress {
		t.Fatalf("expected status %q, got %q", domain.TaskInProgress, got.Status)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) || !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("timestamps did not survive the round trip: %+v", got)
	}
}

func TestProjectDocMapping(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	doc := projectDoc{
		ID:        "project-1",
		OwnerID:   "alice",
		Name:      "Launch",
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}

	got := projectFromDoc(doc)
	if got.ID != "project-1" || got.OwnerID != "alice" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("expected created at %v, got %v", now, got.CreatedAt)
	}
}

func TestUnixToTime_Zero(t *testing.T) {
	if !unixToTime(0).IsZero() {
		t.Fatal("zero timestamp must map to the zero time")
	}
}
