package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
	"github.com/bloomworks/bloom-practice/internal/timeutil"
)

// SessionService owns the session state machine: scheduled → pending_form →
// completed, scheduled → missed (terminal), completed → scheduled only via
// form deletion. It also generates weekly recurring sessions and derives
// overdue alerts.
type SessionService struct {
	store store.Store
	now   func() time.Time
}

func NewSessionService(s store.Store) *SessionService {
	return &SessionService{store: s, now: time.Now}
}

var sessionStatuses = map[string]bool{
	model.SessionScheduled:   true,
	model.SessionPendingForm: true,
	model.SessionCompleted:   true,
	model.SessionMissed:      true,
}

var sessionTypes = map[string]bool{
	model.SessionTypeTherapy: true,
	model.SessionTypeMeeting: true,
}

// Schedule creates a single session in scheduled state.
func (s *SessionService) Schedule(ctx context.Context, sess *model.Session) (*model.Session, error) {
	if sess.KidID == "" {
		return nil, fmt.Errorf("%w: kidId is required", model.ErrValidation)
	}
	if _, err := s.store.Kids().Get(ctx, sess.KidID); err != nil {
		return nil, err
	}
	if sess.Type == "" {
		sess.Type = model.SessionTypeTherapy
	}
	if !sessionTypes[sess.Type] {
		return nil, fmt.Errorf("%w: unknown session type %q", model.ErrValidation, sess.Type)
	}
	sess.Status = model.SessionScheduled
	sess.FormID = nil
	return s.store.Sessions().Create(ctx, sess)
}

// ScheduleRecurring creates one session per 7-day step from start up to and
// including until. Sessions are created independently; a failure midway
// leaves the already-created prefix in place.
func (s *SessionService) ScheduleRecurring(ctx context.Context, kidID string, therapistID *string, sessionType string, start, until time.Time) ([]*model.Session, error) {
	if kidID == "" {
		return nil, fmt.Errorf("%w: kidId is required", model.ErrValidation)
	}
	if _, err := s.store.Kids().Get(ctx, kidID); err != nil {
		return nil, err
	}
	if sessionType == "" {
		sessionType = model.SessionTypeTherapy
	}
	if !sessionTypes[sessionType] {
		return nil, fmt.Errorf("%w: unknown session type %q", model.ErrValidation, sessionType)
	}
	var out []*model.Session
	for d := start; !d.After(until); d = d.AddDate(0, 0, 7) {
		sess, err := s.store.Sessions().Create(ctx, &model.Session{
			KidID:         kidID,
			TherapistID:   therapistID,
			ScheduledDate: d,
			Type:          sessionType,
			Status:        model.SessionScheduled,
		})
		if err != nil {
			return out, err
		}
		out = append(out, sess)
	}
	return out, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.store.Sessions().Get(ctx, sessionID)
}

func (s *SessionService) ListForKid(ctx context.Context, req model.ListSessionsRequest) ([]*model.Session, error) {
	return s.store.Sessions().ListByKid(ctx, req)
}

// Update applies a partial update. Mutable fields are therapistId,
// scheduledDate, status, formId and type; any other key is silently ignored.
func (s *SessionService) Update(ctx context.Context, sessionID string, fields map[string]interface{}) (*model.Session, error) {
	var p model.SessionPatch
	p.TherapistID = stringField(fields, "therapistId")
	if v, ok := fields["scheduledDate"]; ok {
		d := timeutil.Normalize(v)
		p.ScheduledDate = &d
	}
	if st := stringField(fields, "status"); st != nil {
		if !sessionStatuses[*st] {
			return nil, fmt.Errorf("%w: unknown session status %q", model.ErrValidation, *st)
		}
		p.Status = st
	}
	if v, ok := fields["formId"]; ok {
		if v == nil {
			p.ClearFormID = true
		} else if id, ok := v.(string); ok {
			p.FormID = &id
		}
	}
	if ty := stringField(fields, "type"); ty != nil {
		if !sessionTypes[*ty] {
			return nil, fmt.Errorf("%w: unknown session type %q", model.ErrValidation, *ty)
		}
		p.Type = ty
	}
	return s.store.Sessions().Update(ctx, sessionID, p)
}

// Delete removes a session and, when one is linked, the report form of the
// session's kind. Deleting an absent session is a no-op.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	sess, err := s.store.Sessions().Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	if sess.FormID != nil {
		switch sess.Type {
		case model.SessionTypeMeeting:
			if err := s.store.MeetingForms().Delete(ctx, *sess.FormID); err != nil {
				return err
			}
		default:
			if err := s.store.Forms().Delete(ctx, *sess.FormID); err != nil {
				return err
			}
		}
	}
	return s.store.Sessions().Delete(ctx, sessionID)
}

// Alerts returns the sessions owned by adminID (through Kid.adminId) that are
// past their scheduled date without a completing report. The view is derived
// on every call; nothing is persisted.
func (s *SessionService) Alerts(ctx context.Context, adminID string) ([]*model.Session, error) {
	sessions, err := s.store.Sessions().ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*model.Session, 0, len(sessions))
	for _, sess := range sessions {
		if sess.Status != model.SessionScheduled && sess.Status != model.SessionPendingForm {
			continue
		}
		if !sess.ScheduledDate.Before(now) {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}
