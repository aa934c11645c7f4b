package store

import (
	"context"
	"time"

	"github.com/bloomworks/bloom-practice/internal/model"
)

// MaxBatchDelete is the largest number of ids a single DeleteMany call may
// carry. Callers chunk larger sets; each call is atomic, the sequence of
// chunks is not.
const MaxBatchDelete = 500

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Admins() Admins
	Kids() Kids
	Practitioners() Practitioners
	Links() Links
	Parents() Parents
	Sessions() Sessions
	Forms() Forms
	MeetingForms() MeetingForms
	Goals() Goals
	GoalLibrary() GoalLibrary
	Notifications() Notifications
	BoardRequests() BoardRequests
}

type Admins interface {
	Create(ctx context.Context, a *model.Admin) (*model.Admin, error)
	Get(ctx context.Context, adminID string) (*model.Admin, error)
	GetByAccessKey(ctx context.Context, key string) (*model.Admin, error)
}

type Kids interface {
	Create(ctx context.Context, k *model.Kid) (*model.Kid, error)
	Get(ctx context.Context, kidID string) (*model.Kid, error)
	List(ctx context.Context) ([]*model.Kid, error)
	ListByAdmin(ctx context.Context, adminID string) ([]*model.Kid, error)
	Update(ctx context.Context, kidID string, p model.KidPatch) (*model.Kid, error)
	Delete(ctx context.Context, kidID string) error
}

type Practitioners interface {
	Create(ctx context.Context, p *model.Practitioner) (*model.Practitioner, error)
	Get(ctx context.Context, practitionerID string) (*model.Practitioner, error)
	List(ctx context.Context) ([]*model.Practitioner, error)
	Update(ctx context.Context, practitionerID string, p model.PractitionerPatch) (*model.Practitioner, error)
	Delete(ctx context.Context, practitionerID string) error
}

type Links interface {
	Link(ctx context.Context, kidID, practitionerID string) error
	Unlink(ctx context.Context, kidID, practitionerID string) error
	ListByKid(ctx context.Context, kidID string) ([]*model.KidPractitionerLink, error)
	DeleteByKid(ctx context.Context, kidID string) error
	DeleteByPractitioner(ctx context.Context, practitionerID string) error
}

type Parents interface {
	Create(ctx context.Context, p *model.Parent) (*model.Parent, error)
	Get(ctx context.Context, parentID string) (*model.Parent, error)
	ListByKid(ctx context.Context, kidID string) ([]*model.Parent, error)
	Update(ctx context.Context, parentID string, p model.ParentPatch) (*model.Parent, error)
	Delete(ctx context.Context, parentID string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type Sessions interface {
	Create(ctx context.Context, s *model.Session) (*model.Session, error)
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	ListByKid(ctx context.Context, req model.ListSessionsRequest) ([]*model.Session, error)
	// ListByAdmin returns sessions whose owning kid is assigned to adminID.
	ListByAdmin(ctx context.Context, adminID string) ([]*model.Session, error)
	Update(ctx context.Context, sessionID string, p model.SessionPatch) (*model.Session, error)
	// Delete is a no-op when the session does not exist.
	Delete(ctx context.Context, sessionID string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type Forms interface {
	Create(ctx context.Context, f *model.Form) (*model.Form, error)
	Get(ctx context.Context, formID string) (*model.Form, error)
	GetBySession(ctx context.Context, sessionID string) (*model.Form, error)
	ListByKid(ctx context.Context, kidID string) ([]*model.Form, error)
	ListByKidBetween(ctx context.Context, kidID string, from, to time.Time) ([]*model.Form, error)
	Update(ctx context.Context, formID string, p model.FormPatch) (*model.Form, error)
	Delete(ctx context.Context, formID string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type MeetingForms interface {
	Create(ctx context.Context, f *model.MeetingForm) (*model.MeetingForm, error)
	Get(ctx context.Context, formID string) (*model.MeetingForm, error)
	GetBySession(ctx context.Context, sessionID string) (*model.MeetingForm, error)
	ListByKid(ctx context.Context, kidID string) ([]*model.MeetingForm, error)
	Update(ctx context.Context, formID string, p model.MeetingFormPatch) (*model.MeetingForm, error)
	Delete(ctx context.Context, formID string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type Goals interface {
	Create(ctx context.Context, g *model.Goal) (*model.Goal, error)
	Get(ctx context.Context, goalID string) (*model.Goal, error)
	ListByKid(ctx context.Context, kidID string, activeOnly bool) ([]*model.Goal, error)
	ListActive(ctx context.Context) ([]*model.Goal, error)
	Update(ctx context.Context, goalID string, p model.GoalPatch) (*model.Goal, error)
	Deactivate(ctx context.Context, goalID string, at time.Time) (*model.Goal, error)
	DeleteMany(ctx context.Context, ids []string) error
}

type GoalLibrary interface {
	Insert(ctx context.Context, item *model.GoalLibraryItem) (*model.GoalLibraryItem, error)
	FindByTitleCategory(ctx context.Context, title, categoryID string) (*model.GoalLibraryItem, error)
	IncrementUsage(ctx context.Context, itemID string) error
	List(ctx context.Context) ([]*model.GoalLibraryItem, error)
}

type Notifications interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	Get(ctx context.Context, notificationID string) (*model.Notification, error)
	// ListForRecipient excludes rows hidden by the Dismissed flag.
	ListForRecipient(ctx context.Context, recipientType, recipientID string) ([]*model.Notification, error)
	// ListForAdmin excludes rows hidden by the DismissedByAdmin flag.
	ListForAdmin(ctx context.Context, adminID string) ([]*model.Notification, error)
	SetDismissed(ctx context.Context, notificationID string) error
	SetDismissedByAdmin(ctx context.Context, notificationID string) error
}

type BoardRequests interface {
	Create(ctx context.Context, b *model.BoardRequest) (*model.BoardRequest, error)
	Get(ctx context.Context, requestID string) (*model.BoardRequest, error)
	ListByKid(ctx context.Context, kidID string) ([]*model.BoardRequest, error)
	UpdateStatus(ctx context.Context, requestID, status string) (*model.BoardRequest, error)
	Delete(ctx context.Context, requestID string) error
	DeleteMany(ctx context.Context, ids []string) error
}
