package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// AdminService registers practice administrators and mints their access keys.
type AdminService struct {
	store store.Store
}

func NewAdminService(s store.Store) *AdminService {
	return &AdminService{store: s}
}

// Register creates an admin with a fresh access key. The key is returned
// once here and never serialized afterwards.
func (a *AdminService) Register(ctx context.Context, name, email string) (*model.Admin, string, error) {
	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	key := uuid.New().String()
	admin, err := a.store.Admins().Create(ctx, &model.Admin{
		Name:      name,
		Email:     email,
		AccessKey: key,
	})
	if err != nil {
		return nil, "", err
	}
	return admin, key, nil
}

func (a *AdminService) Get(ctx context.Context, adminID string) (*model.Admin, error) {
	return a.store.Admins().Get(ctx, adminID)
}
