package services

import (
	"context"
	"fmt"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// PractitionerService manages practitioners and their per-kid links.
// Practitioners are shared across kids; deleting one removes only its links.
type PractitionerService struct {
	store store.Store
}

func NewPractitionerService(s store.Store) *PractitionerService {
	return &PractitionerService{store: s}
}

func (p *PractitionerService) Create(ctx context.Context, pr *model.Practitioner) (*model.Practitioner, error) {
	if pr.Name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	return p.store.Practitioners().Create(ctx, pr)
}

func (p *PractitionerService) Get(ctx context.Context, practitionerID string) (*model.Practitioner, error) {
	return p.store.Practitioners().Get(ctx, practitionerID)
}

func (p *PractitionerService) List(ctx context.Context) ([]*model.Practitioner, error) {
	return p.store.Practitioners().List(ctx)
}

func (p *PractitionerService) Update(ctx context.Context, practitionerID string, fields map[string]interface{}) (*model.Practitioner, error) {
	patch := model.PractitionerPatch{
		Name:  stringField(fields, "name"),
		Role:  stringField(fields, "role"),
		Email: stringField(fields, "email"),
		Phone: stringField(fields, "phone"),
	}
	return p.store.Practitioners().Update(ctx, practitionerID, patch)
}

// Delete removes the practitioner and its kid links.
func (p *PractitionerService) Delete(ctx context.Context, practitionerID string) error {
	if _, err := p.store.Practitioners().Get(ctx, practitionerID); err != nil {
		return err
	}
	if err := p.store.Links().DeleteByPractitioner(ctx, practitionerID); err != nil {
		return err
	}
	return p.store.Practitioners().Delete(ctx, practitionerID)
}

// Link associates a practitioner with a kid. Both must exist.
func (p *PractitionerService) Link(ctx context.Context, kidID, practitionerID string) error {
	if _, err := p.store.Kids().Get(ctx, kidID); err != nil {
		return err
	}
	if _, err := p.store.Practitioners().Get(ctx, practitionerID); err != nil {
		return err
	}
	return p.store.Links().Link(ctx, kidID, practitionerID)
}

func (p *PractitionerService) Unlink(ctx context.Context, kidID, practitionerID string) error {
	return p.store.Links().Unlink(ctx, kidID, practitionerID)
}

func (p *PractitionerService) ListForKid(ctx context.Context, kidID string) ([]*model.Practitioner, error) {
	links, err := p.store.Links().ListByKid(ctx, kidID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Practitioner, 0, len(links))
	for _, link := range links {
		pr, err := p.store.Practitioners().Get(ctx, link.PractitionerID)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, nil
}
