package services

import (
	"context"
	"fmt"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// NotificationService manages notifications with two independent "deleted
// for me" views: Dismiss hides a row from its recipient, DismissByAdmin
// hides it from the sending admin. Neither removes the row.
type NotificationService struct {
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

func (n *NotificationService) Create(ctx context.Context, note *model.Notification) (*model.Notification, error) {
	if note.RecipientType != model.RecipientPractitioner && note.RecipientType != model.RecipientParent {
		return nil, fmt.Errorf("%w: unknown recipient type %q", model.ErrValidation, note.RecipientType)
	}
	if note.RecipientID == "" {
		return nil, fmt.Errorf("%w: recipientId is required", model.ErrValidation)
	}
	if note.AdminID == "" {
		return nil, fmt.Errorf("%w: adminId is required", model.ErrValidation)
	}
	note.Dismissed = false
	note.DismissedByAdmin = false
	return n.store.Notifications().Create(ctx, note)
}

func (n *NotificationService) ListForRecipient(ctx context.Context, recipientType, recipientID string) ([]*model.Notification, error) {
	return n.store.Notifications().ListForRecipient(ctx, recipientType, recipientID)
}

func (n *NotificationService) ListForAdmin(ctx context.Context, adminID string) ([]*model.Notification, error) {
	return n.store.Notifications().ListForAdmin(ctx, adminID)
}

// Dismiss hides the notification from its recipient's view.
func (n *NotificationService) Dismiss(ctx context.Context, notificationID string) error {
	return n.store.Notifications().SetDismissed(ctx, notificationID)
}

// DismissByAdmin hides the notification from the sender's view. Only the
// owning admin may do so.
func (n *NotificationService) DismissByAdmin(ctx context.Context, notificationID, callerAdminID string) error {
	note, err := n.store.Notifications().Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if note.AdminID != callerAdminID {
		return fmt.Errorf("%w: notification %s is not owned by caller", model.ErrUnauthorized, notificationID)
	}
	return n.store.Notifications().SetDismissedByAdmin(ctx, notificationID)
}
