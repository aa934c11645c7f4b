package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// KidService manages kid profiles, admin ownership and the cascade delete
// spanning every collection scoped to a kid.
type KidService struct {
	store store.Store
}

func NewKidService(s store.Store) *KidService {
	return &KidService{store: s}
}

// KidIDFromName derives the immutable kid id: lowercase, spaces to hyphens,
// everything outside [a-z0-9-] dropped.
func KidIDFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}

// Create derives the kid id from the name and rejects a duplicate id.
func (k *KidService) Create(ctx context.Context, kid *model.Kid) (*model.Kid, error) {
	id := KidIDFromName(kid.Name)
	if id == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if _, err := k.store.Kids().Get(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: kid %q already exists", model.ErrConflict, id)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	kid.KidID = id
	return k.store.Kids().Create(ctx, kid)
}

func (k *KidService) Get(ctx context.Context, kidID string) (*model.Kid, error) {
	return k.store.Kids().Get(ctx, kidID)
}

// List returns every kid, assigned or not.
func (k *KidService) List(ctx context.Context) ([]*model.Kid, error) {
	return k.store.Kids().List(ctx)
}

func (k *KidService) ListForAdmin(ctx context.Context, adminID string) ([]*model.Kid, error) {
	return k.store.Kids().ListByAdmin(ctx, adminID)
}

// ListVisible returns the kids an admin works with: their own plus every
// unassigned kid.
func (k *KidService) ListVisible(ctx context.Context, adminID string) ([]*model.Kid, error) {
	kids, err := k.store.Kids().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Kid, 0, len(kids))
	for _, kid := range kids {
		if kid.AdminID == nil || *kid.AdminID == adminID {
			out = append(out, kid)
		}
	}
	return out, nil
}

// Update applies a whitelisted partial update. The id and adminId are not
// mutable here; ownership moves only through Attach/Detach.
func (k *KidService) Update(ctx context.Context, kidID string, fields map[string]interface{}) (*model.Kid, error) {
	var p model.KidPatch
	p.Name = stringField(fields, "name")
	p.Age = intField(fields, "age")
	p.Gender = stringField(fields, "gender")
	if v, ok := fields["boardConfig"]; ok {
		if cfg, ok := v.(map[string]interface{}); ok {
			p.BoardConfig = cfg
		}
	}
	return k.store.Kids().Update(ctx, kidID, p)
}

// Attach assigns the kid to adminID. The kid must currently be unassigned.
func (k *KidService) Attach(ctx context.Context, kidID, adminID string) (*model.Kid, error) {
	kid, err := k.store.Kids().Get(ctx, kidID)
	if err != nil {
		return nil, err
	}
	if kid.AdminID != nil {
		return nil, fmt.Errorf("%w: kid %q is already assigned", model.ErrConflict, kidID)
	}
	return k.store.Kids().Update(ctx, kidID, model.KidPatch{AdminID: &adminID})
}

// Detach releases the kid. Only the current owner may detach.
func (k *KidService) Detach(ctx context.Context, kidID, callerAdminID string) (*model.Kid, error) {
	kid, err := k.store.Kids().Get(ctx, kidID)
	if err != nil {
		return nil, err
	}
	if kid.AdminID == nil || *kid.AdminID != callerAdminID {
		return nil, fmt.Errorf("%w: kid %q is not owned by caller", model.ErrUnauthorized, kidID)
	}
	return k.store.Kids().Update(ctx, kidID, model.KidPatch{ClearAdmin: true})
}

// Delete removes the kid and everything scoped to it: sessions, forms,
// meeting forms, goals, parents, board requests and practitioner links.
// Practitioners themselves are shared and stay. Batch deletes run in chunks;
// a failure between chunks leaves partial deletion with no compensation.
func (k *KidService) Delete(ctx context.Context, kidID string) error {
	if _, err := k.store.Kids().Get(ctx, kidID); err != nil {
		return err
	}

	sessions, err := k.store.Sessions().ListByKid(ctx, model.ListSessionsRequest{KidID: kidID})
	if err != nil {
		return err
	}
	sessionIDs := make([]string, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.SessionID)
	}
	if err := chunked(sessionIDs, func(ids []string) error {
		return k.store.Sessions().DeleteMany(ctx, ids)
	}); err != nil {
		return err
	}

	forms, err := k.store.Forms().ListByKid(ctx, kidID)
	if err != nil {
		return err
	}
	formIDs := make([]string, 0, len(forms))
	for _, f := range forms {
		formIDs = append(formIDs, f.FormID)
	}
	if err := chunked(formIDs, func(ids []string) error {
		return k.store.Forms().DeleteMany(ctx, ids)
	}); err != nil {
		return err
	}

	meetingForms, err := k.store.MeetingForms().ListByKid(ctx, kidID)
	if err != nil {
		return err
	}
	meetingIDs := make([]string, 0, len(meetingForms))
	for _, f := range meetingForms {
		meetingIDs = append(meetingIDs, f.FormID)
	}
	if err := chunked(meetingIDs, func(ids []string) error {
		return k.store.MeetingForms().DeleteMany(ctx, ids)
	}); err != nil {
		return err
	}

	goals, err := k.store.Goals().ListByKid(ctx, kidID, false)
	if err != nil {
		return err
	}
	goalIDs := make([]string, 0, len(goals))
	for _, g := range goals {
		goalIDs = append(goalIDs, g.GoalID)
	}
	if err := chunked(goalIDs, func(ids []string) error {
		return k.store.Goals().DeleteMany(ctx, ids)
	}); err != nil {
		return err
	}

	parents, err := k.store.Parents().ListByKid(ctx, kidID)
	if err != nil {
		return err
	}
	parentIDs := make([]string, 0, len(parents))
	for _, p := range parents {
		parentIDs = append(parentIDs, p.ParentID)
	}
	if err := chunked(parentIDs, func(ids []string) error {
		return k.store.Parents().DeleteMany(ctx, ids)
	}); err != nil {
		return err
	}

	requests, err := k.store.BoardRequests().ListByKid(ctx, kidID)
	if err != nil {
		return err
	}
	requestIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		requestIDs = append(requestIDs, r.RequestID)
	}
	if err := chunked(requestIDs, func(ids []string) error {
		return k.store.BoardRequests().DeleteMany(ctx, ids)
	}); err != nil {
		return err
	}

	if err := k.store.Links().DeleteByKid(ctx, kidID); err != nil {
		return err
	}
	return k.store.Kids().Delete(ctx, kidID)
}
