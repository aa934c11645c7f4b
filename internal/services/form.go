package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
	"github.com/bloomworks/bloom-practice/internal/timeutil"
)

// FormService owns the session↔form linkage for therapy session reports and
// meeting reports. The invariant it maintains: a session's formId is non-nil
// exactly when a form referencing that session exists.
type FormService struct {
	store store.Store
}

func NewFormService(s store.Store) *FormService {
	return &FormService{store: s}
}

// Submit stores a session report. With no sessionId, a fresh session is
// synthesized directly in completed state; with a sessionId, the referenced
// session transitions to completed and is stamped with the new form id after
// the form document is written. A session that already carries a form
// rejects a second submission.
func (f *FormService) Submit(ctx context.Context, form *model.Form) (*model.Form, error) {
	if form.KidID == "" {
		return nil, fmt.Errorf("%w: kidId is required", model.ErrValidation)
	}
	if form.GoalsWorkedOn == nil {
		form.GoalsWorkedOn = []model.GoalSnapshot{}
	}

	if form.SessionID == "" {
		form.SessionID = uuid.New().String()
		created, err := f.store.Forms().Create(ctx, form)
		if err != nil {
			return nil, err
		}
		_, err = f.store.Sessions().Create(ctx, &model.Session{
			SessionID:     form.SessionID,
			KidID:         form.KidID,
			ScheduledDate: form.SessionDate,
			Type:          model.SessionTypeTherapy,
			Status:        model.SessionCompleted,
			FormID:        &created.FormID,
		})
		if err != nil {
			return nil, err
		}
		return created, nil
	}

	sess, err := f.store.Sessions().Get(ctx, form.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.FormID != nil {
		return nil, fmt.Errorf("%w: session %s already has a form", model.ErrConflict, sess.SessionID)
	}
	if _, err := f.store.Forms().GetBySession(ctx, sess.SessionID); err == nil {
		return nil, fmt.Errorf("%w: session %s already has a form", model.ErrConflict, sess.SessionID)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	created, err := f.store.Forms().Create(ctx, form)
	if err != nil {
		return nil, err
	}
	completed := model.SessionCompleted
	if _, err := f.store.Sessions().Update(ctx, sess.SessionID, model.SessionPatch{
		Status: &completed,
		FormID: &created.FormID,
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (f *FormService) Get(ctx context.Context, formID string) (*model.Form, error) {
	return f.store.Forms().Get(ctx, formID)
}

func (f *FormService) ListForKid(ctx context.Context, kidID string) ([]*model.Form, error) {
	return f.store.Forms().ListByKid(ctx, kidID)
}

// ListForWeek returns a kid's forms with sessionDate in [weekStart, weekStart+7d).
func (f *FormService) ListForWeek(ctx context.Context, kidID string, weekStart time.Time) ([]*model.Form, error) {
	return f.store.Forms().ListByKidBetween(ctx, kidID, weekStart, weekStart.AddDate(0, 0, 7))
}

// Update applies a whitelisted partial update. sessionDate is the one field
// needing coercion from its wire shape to an instant.
func (f *FormService) Update(ctx context.Context, formID string, fields map[string]interface{}) (*model.Form, error) {
	var p model.FormPatch
	p.TherapistName = stringField(fields, "therapistName")
	if v, ok := fields["sessionDate"]; ok {
		d := timeutil.Normalize(v)
		p.SessionDate = &d
	}
	p.Cooperation = intField(fields, "cooperation")
	p.SessionDuration = intField(fields, "sessionDuration")
	p.SittingDuration = intField(fields, "sittingDuration")
	p.Communication = stringField(fields, "communication")
	p.Notes = stringField(fields, "notes")
	if v, ok := fields["goalsWorkedOn"]; ok {
		p.GoalsWorkedOn = decodeSnapshots(v)
	}
	return f.store.Forms().Update(ctx, formID, p)
}

// Delete removes a form and reverts its session to scheduled with formId
// cleared. A missing form is an error, unlike session deletion.
func (f *FormService) Delete(ctx context.Context, formID string) error {
	form, err := f.store.Forms().Get(ctx, formID)
	if err != nil {
		return err
	}
	scheduled := model.SessionScheduled
	if _, err := f.store.Sessions().Update(ctx, form.SessionID, model.SessionPatch{
		Status:      &scheduled,
		ClearFormID: true,
	}); err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}
	return f.store.Forms().Delete(ctx, formID)
}

// SubmitMeeting mirrors Submit for meeting reports.
func (f *FormService) SubmitMeeting(ctx context.Context, form *model.MeetingForm) (*model.MeetingForm, error) {
	if form.KidID == "" {
		return nil, fmt.Errorf("%w: kidId is required", model.ErrValidation)
	}
	if form.Attendees == nil {
		form.Attendees = []string{}
	}

	if form.SessionID == "" {
		form.SessionID = uuid.New().String()
		created, err := f.store.MeetingForms().Create(ctx, form)
		if err != nil {
			return nil, err
		}
		_, err = f.store.Sessions().Create(ctx, &model.Session{
			SessionID:     form.SessionID,
			KidID:         form.KidID,
			ScheduledDate: form.SessionDate,
			Type:          model.SessionTypeMeeting,
			Status:        model.SessionCompleted,
			FormID:        &created.FormID,
		})
		if err != nil {
			return nil, err
		}
		return created, nil
	}

	sess, err := f.store.Sessions().Get(ctx, form.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.FormID != nil {
		return nil, fmt.Errorf("%w: session %s already has a form", model.ErrConflict, sess.SessionID)
	}
	if _, err := f.store.MeetingForms().GetBySession(ctx, sess.SessionID); err == nil {
		return nil, fmt.Errorf("%w: session %s already has a form", model.ErrConflict, sess.SessionID)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	created, err := f.store.MeetingForms().Create(ctx, form)
	if err != nil {
		return nil, err
	}
	completed := model.SessionCompleted
	if _, err := f.store.Sessions().Update(ctx, sess.SessionID, model.SessionPatch{
		Status: &completed,
		FormID: &created.FormID,
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (f *FormService) GetMeeting(ctx context.Context, formID string) (*model.MeetingForm, error) {
	return f.store.MeetingForms().Get(ctx, formID)
}

func (f *FormService) ListMeetingsForKid(ctx context.Context, kidID string) ([]*model.MeetingForm, error) {
	return f.store.MeetingForms().ListByKid(ctx, kidID)
}

func (f *FormService) UpdateMeeting(ctx context.Context, formID string, fields map[string]interface{}) (*model.MeetingForm, error) {
	var p model.MeetingFormPatch
	if v, ok := fields["sessionDate"]; ok {
		d := timeutil.Normalize(v)
		p.SessionDate = &d
	}
	if v, ok := fields["attendees"]; ok {
		if raw, ok := v.([]interface{}); ok {
			attendees := make([]string, 0, len(raw))
			for _, a := range raw {
				if s, ok := a.(string); ok {
					attendees = append(attendees, s)
				}
			}
			p.Attendees = attendees
		}
	}
	p.Summary = stringField(fields, "summary")
	p.BehaviorNotes = stringField(fields, "behaviorNotes")
	p.Decisions = stringField(fields, "decisions")
	p.NextSteps = stringField(fields, "nextSteps")
	return f.store.MeetingForms().Update(ctx, formID, p)
}

// DeleteMeeting mirrors Delete for meeting reports.
func (f *FormService) DeleteMeeting(ctx context.Context, formID string) error {
	form, err := f.store.MeetingForms().Get(ctx, formID)
	if err != nil {
		return err
	}
	scheduled := model.SessionScheduled
	if _, err := f.store.Sessions().Update(ctx, form.SessionID, model.SessionPatch{
		Status:      &scheduled,
		ClearFormID: true,
	}); err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}
	return f.store.MeetingForms().Delete(ctx, formID)
}

// decodeSnapshots copies decoded-JSON goal snapshots into their typed form,
// dropping entries that are not objects.
func decodeSnapshots(v interface{}) []model.GoalSnapshot {
	raw, ok := v.([]interface{})
	if !ok {
		return []model.GoalSnapshot{}
	}
	out := make([]model.GoalSnapshot, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var snap model.GoalSnapshot
		if s, ok := m["goalId"].(string); ok {
			snap.GoalID = s
		}
		if s, ok := m["goalTitle"].(string); ok {
			snap.GoalTitle = s
		}
		if s, ok := m["categoryId"].(string); ok {
			snap.CategoryID = s
		}
		out = append(out, snap)
	}
	return out
}
