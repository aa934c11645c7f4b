package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// GoalService manages per-kid goals and the shared cross-kid goal library.
// Every goal added to a kid also lands in the library, deduplicated by
// (title, categoryId) with a usage counter feeding autocomplete ranking.
type GoalService struct {
	store store.Store
	now   func() time.Time
}

func NewGoalService(s store.Store) *GoalService {
	return &GoalService{store: s, now: time.Now}
}

// AddGoalToKid validates the category, creates the goal active, then updates
// the library: an exact (title, categoryId) match bumps usageCount, a miss
// inserts a fresh item with usageCount 1.
func (g *GoalService) AddGoalToKid(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if goal.KidID == "" {
		return nil, fmt.Errorf("%w: kidId is required", model.ErrValidation)
	}
	if goal.Title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if !model.IsGoalCategory(goal.CategoryID) {
		return nil, fmt.Errorf("%w: unknown category %q", model.ErrValidation, goal.CategoryID)
	}
	if _, err := g.store.Kids().Get(ctx, goal.KidID); err != nil {
		return nil, err
	}
	goal.IsActive = true
	goal.DeactivationTime = nil
	created, err := g.store.Goals().Create(ctx, goal)
	if err != nil {
		return nil, err
	}

	item, err := g.store.GoalLibrary().FindByTitleCategory(ctx, created.Title, created.CategoryID)
	switch {
	case err == nil:
		if err := g.store.GoalLibrary().IncrementUsage(ctx, item.ItemID); err != nil {
			return nil, err
		}
	case errors.Is(err, model.ErrNotFound):
		if _, err := g.store.GoalLibrary().Insert(ctx, &model.GoalLibraryItem{
			Title:      created.Title,
			CategoryID: created.CategoryID,
			UsageCount: 1,
		}); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return created, nil
}

func (g *GoalService) Get(ctx context.Context, goalID string) (*model.Goal, error) {
	return g.store.Goals().Get(ctx, goalID)
}

func (g *GoalService) ListForKid(ctx context.Context, kidID string, activeOnly bool) ([]*model.Goal, error) {
	return g.store.Goals().ListByKid(ctx, kidID, activeOnly)
}

// Update applies a whitelisted partial update to a kid's goal. Stored form
// snapshots are never touched.
func (g *GoalService) Update(ctx context.Context, goalID string, fields map[string]interface{}) (*model.Goal, error) {
	var p model.GoalPatch
	p.Title = stringField(fields, "title")
	if c := stringField(fields, "categoryId"); c != nil {
		if !model.IsGoalCategory(*c) {
			return nil, fmt.Errorf("%w: unknown category %q", model.ErrValidation, *c)
		}
		p.CategoryID = c
	}
	return g.store.Goals().Update(ctx, goalID, p)
}

// Deactivate soft-deletes the goal, stamping the deactivation time. The row
// stays so historical snapshots keep a referent.
func (g *GoalService) Deactivate(ctx context.Context, goalID string) (*model.Goal, error) {
	return g.store.Goals().Deactivate(ctx, goalID, g.now())
}

// Library returns the full goal library with each item tagged isOrphan when
// no active goal of any kid matches its (title, categoryId). Library and
// active goals are fetched concurrently; the join happens in memory.
func (g *GoalService) Library(ctx context.Context) ([]*model.GoalLibraryItem, error) {
	var items []*model.GoalLibraryItem
	var active []*model.Goal

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		items, err = g.store.GoalLibrary().List(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		active, err = g.store.Goals().ListActive(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	type key struct{ title, category string }
	inUse := make(map[key]bool, len(active))
	for _, goal := range active {
		inUse[key{goal.Title, goal.CategoryID}] = true
	}
	for _, item := range items {
		item.IsOrphan = !inUse[key{item.Title, item.CategoryID}]
	}
	return items, nil
}
