package services

import (
	"context"
	"fmt"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// BoardRequestService manages requests to change a kid's board configuration.
type BoardRequestService struct {
	store store.Store
}

func NewBoardRequestService(s store.Store) *BoardRequestService {
	return &BoardRequestService{store: s}
}

var boardRequestStatuses = map[string]bool{
	"open":     true,
	"approved": true,
	"rejected": true,
	"done":     true,
}

func (b *BoardRequestService) Create(ctx context.Context, req *model.BoardRequest) (*model.BoardRequest, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", model.ErrValidation)
	}
	if _, err := b.store.Kids().Get(ctx, req.KidID); err != nil {
		return nil, err
	}
	req.Status = "open"
	return b.store.BoardRequests().Create(ctx, req)
}

func (b *BoardRequestService) ListForKid(ctx context.Context, kidID string) ([]*model.BoardRequest, error) {
	return b.store.BoardRequests().ListByKid(ctx, kidID)
}

func (b *BoardRequestService) UpdateStatus(ctx context.Context, requestID, status string) (*model.BoardRequest, error) {
	if !boardRequestStatuses[status] {
		return nil, fmt.Errorf("%w: unknown request status %q", model.ErrValidation, status)
	}
	return b.store.BoardRequests().UpdateStatus(ctx, requestID, status)
}

func (b *BoardRequestService) Delete(ctx context.Context, requestID string) error {
	if _, err := b.store.BoardRequests().Get(ctx, requestID); err != nil {
		return err
	}
	return b.store.BoardRequests().Delete(ctx, requestID)
}
