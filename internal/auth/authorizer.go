package auth

import (
	"context"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// Actor is the authenticated admin identity resolved from an access key.
type Actor struct {
	AdminID string `json:"adminId"`
	Name    string `json:"name"`
}

// Authorizer resolves an access key to an admin identity.
type Authorizer interface {
	// Authorize returns the actor for the key, or model.ErrUnauthorized.
	Authorize(ctx context.Context, accessKey string) (*Actor, error)
}

// StoreAuthorizer looks access keys up in the admins collection.
type StoreAuthorizer struct {
	store store.Store
}

func NewStoreAuthorizer(s store.Store) *StoreAuthorizer {
	return &StoreAuthorizer{store: s}
}

func (a *StoreAuthorizer) Authorize(ctx context.Context, accessKey string) (*Actor, error) {
	if accessKey == "" {
		return nil, model.ErrUnauthorized
	}
	admin, err := a.store.Admins().GetByAccessKey(ctx, accessKey)
	if err != nil {
		return nil, model.ErrUnauthorized
	}
	return &Actor{AdminID: admin.AdminID, Name: admin.Name}, nil
}

// StaticAuthorizer accepts a single fixed key. Local development only.
type StaticAuthorizer struct {
	key   string
	actor Actor
}

func NewStaticAuthorizer(key, adminID, name string) *StaticAuthorizer {
	return &StaticAuthorizer{key: key, actor: Actor{AdminID: adminID, Name: name}}
}

func (a *StaticAuthorizer) Authorize(_ context.Context, accessKey string) (*Actor, error) {
	if accessKey == "" || accessKey != a.key {
		return nil, model.ErrUnauthorized
	}
	actor := a.actor
	return &actor, nil
}
