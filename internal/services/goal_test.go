package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloomworks/bloom-practice/internal/model"
)

func TestAddGoalPopulatesLibrary(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	fs.addKid("k2", nil)
	svc := NewGoalService(fs)

	if _, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", Title: "Count to ten", CategoryID: "cognitive",
	}); err != nil {
		t.Fatalf("AddGoalToKid error: %v", err)
	}
	if _, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k2", Title: "Count to ten", CategoryID: "cognitive",
	}); err != nil {
		t.Fatalf("AddGoalToKid error: %v", err)
	}
	// Same title, different category is a distinct library item.
	if _, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", Title: "Count to ten", CategoryID: "language",
	}); err != nil {
		t.Fatalf("AddGoalToKid error: %v", err)
	}

	if len(fs.library) != 2 {
		t.Fatalf("want 2 library items, got %d", len(fs.library))
	}
	item, err := fs.GoalLibrary().FindByTitleCategory(context.Background(), "Count to ten", "cognitive")
	if err != nil {
		t.Fatalf("FindByTitleCategory error: %v", err)
	}
	if item.UsageCount != 2 {
		t.Fatalf("want usageCount 2, got %d", item.UsageCount)
	}
}

func TestAddGoalValidation(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	svc := NewGoalService(fs)

	if _, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", Title: "Fly", CategoryID: "aviation",
	}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation for unknown category, got %v", err)
	}
	if _, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", CategoryID: "cognitive",
	}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation for empty title, got %v", err)
	}
	if _, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "missing", Title: "Count", CategoryID: "cognitive",
	}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing kid, got %v", err)
	}
}

func TestDeactivateStampsTime(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	svc := NewGoalService(fs)
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	goal, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", Title: "Count to ten", CategoryID: "cognitive",
	})
	if err != nil {
		t.Fatalf("AddGoalToKid error: %v", err)
	}
	got, err := svc.Deactivate(context.Background(), goal.GoalID)
	if err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if got.IsActive {
		t.Fatal("goal still active")
	}
	if got.DeactivationTime == nil || !got.DeactivationTime.Equal(at) {
		t.Fatalf("deactivation time not stamped: %v", got.DeactivationTime)
	}
}

func TestLibraryMarksOrphans(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	svc := NewGoalService(fs)

	active, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", Title: "Two-word sentences", CategoryID: "language",
	})
	if err != nil {
		t.Fatalf("AddGoalToKid error: %v", err)
	}
	retired, err := svc.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", Title: "Name five colors", CategoryID: "cognitive",
	})
	if err != nil {
		t.Fatalf("AddGoalToKid error: %v", err)
	}
	if _, err := svc.Deactivate(context.Background(), retired.GoalID); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}

	items, err := svc.Library(context.Background())
	if err != nil {
		t.Fatalf("Library error: %v", err)
	}
	orphans := map[string]bool{}
	for _, item := range items {
		orphans[item.Title] = item.IsOrphan
	}
	if orphans[active.Title] {
		t.Fatal("item backed by an active goal marked orphan")
	}
	if !orphans["Name five colors"] {
		t.Fatal("item with no active goal not marked orphan")
	}
}
