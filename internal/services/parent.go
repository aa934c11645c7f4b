package services

import (
	"context"
	"fmt"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// ParentService manages guardian contacts, each scoped to one kid.
type ParentService struct {
	store store.Store
}

func NewParentService(s store.Store) *ParentService {
	return &ParentService{store: s}
}

func (p *ParentService) Create(ctx context.Context, parent *model.Parent) (*model.Parent, error) {
	if parent.Name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if _, err := p.store.Kids().Get(ctx, parent.KidID); err != nil {
		return nil, err
	}
	return p.store.Parents().Create(ctx, parent)
}

func (p *ParentService) Get(ctx context.Context, parentID string) (*model.Parent, error) {
	return p.store.Parents().Get(ctx, parentID)
}

func (p *ParentService) ListForKid(ctx context.Context, kidID string) ([]*model.Parent, error) {
	return p.store.Parents().ListByKid(ctx, kidID)
}

func (p *ParentService) Update(ctx context.Context, parentID string, fields map[string]interface{}) (*model.Parent, error) {
	patch := model.ParentPatch{
		Name:  stringField(fields, "name"),
		Email: stringField(fields, "email"),
		Phone: stringField(fields, "phone"),
	}
	return p.store.Parents().Update(ctx, parentID, patch)
}

func (p *ParentService) Delete(ctx context.Context, parentID string) error {
	if _, err := p.store.Parents().Get(ctx, parentID); err != nil {
		return err
	}
	return p.store.Parents().Delete(ctx, parentID)
}
